// Package instance_test covers record validation, the line-format parser and
// the YAML codec.
package instance_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/allot/instance"
)

// scenarioA is the smallest feasible instance: one producer, one region, one requester.
const scenarioA = `1 1 1
1 1 1
1 0 1
1 1 1
`

func TestParse_ScenarioA(t *testing.T) {
	in, err := instance.ParseString(scenarioA)
	require.NoError(t, err)
	require.Equal(t, 1, in.NumProducers())
	require.Equal(t, 1, in.NumRegions())
	require.Equal(t, 1, in.NumRequesters())
	require.Equal(t, instance.Producer{ID: 1, Region: 1, Capacity: 1}, in.Producer(1))
	require.Equal(t, instance.Region{ID: 1, ExportQuota: 0, MinFulfillment: 1}, in.Region(1))
	require.Equal(t, []int{1}, in.Requester(1).Wants)
}

func TestParse_OutOfOrderIDsAndDuplicates(t *testing.T) {
	src := `2 1 2
2 1 5
1 1 0
1 3 0
2 1 2 2 1
1 1
`
	in, err := instance.ParseString(src)
	require.NoError(t, err)
	require.Equal(t, 0, in.Producer(1).Capacity)
	require.Equal(t, 5, in.Producer(2).Capacity)
	require.Equal(t, []int{1, 2}, in.Requester(2).Wants, "wants are sorted and de-duplicated")
	require.Nil(t, in.Requester(1).Wants)
	require.Equal(t, 5, in.TotalCapacity())
	require.Equal(t, []int{0, 1}, in.EligibleRequesters())
}

func TestTotals_Saturate(t *testing.T) {
	const half = 1 << 62
	in := instance.MustNew(
		[]instance.Producer{{ID: 1, Region: 1, Capacity: half}, {ID: 2, Region: 2, Capacity: half}},
		[]instance.Region{{ID: 1, MinFulfillment: half}, {ID: 2, MinFulfillment: half}},
		nil,
	)
	require.Equal(t, math.MaxInt, in.TotalCapacity())
	require.Equal(t, math.MaxInt, in.TotalMinimum())
}

func TestParse_BlankLinesAndTrailingGarbage(t *testing.T) {
	src := "\n1 1 1\n\n1 1 1\n  \n1 0 1\n1 1 1\nthis line is never read\n"
	_, err := instance.ParseString(src)
	require.NoError(t, err)
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		src  string
		line int
	}{
		{"empty", "", 1},
		{"short header", "1 1\n", 1},
		{"non-integer", "1 1 x\n", 1},
		{"negative capacity", "1 1 1\n1 1 -3\n1 0 0\n1 1 1\n", 2},
		{"truncated producers", "2 1 0\n1 1 1\n", 3},
		{"extra producer field", "1 1 0\n1 1 1 9\n1 0 0\n", 2},
		{"requester without region", "1 1 1\n1 1 1\n1 0 0\n1\n", 4},
		{"truncated requesters", "1 1 2\n1 1 1\n1 0 0\n1 1 1\n", 5},
		{"huge producer count", "1000000000000000000 0 0\n", 2},
		{"huge region count", "0 1000000000000000000 0\n", 2},
		{"huge requester count", "0 0 1000000000000000000\n", 2},
		{"huge count after records", "1 1 1000000000000000000\n1 1 1\n1 0 0\n1 1 1\n", 5},
		{"header beyond int", "99999999999999999999 0 0\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := instance.ParseString(tc.src)
			require.ErrorIs(t, err, instance.ErrMalformed)
			var pe *instance.ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			require.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestNew_InvariantViolations(t *testing.T) {
	regions := []instance.Region{{ID: 1}}
	cases := []struct {
		name string
		ps   []instance.Producer
		rs   []instance.Region
		qs   []instance.Requester
	}{
		{"producer id out of range", []instance.Producer{{ID: 2, Region: 1}}, regions, nil},
		{"duplicate producer", []instance.Producer{{ID: 1, Region: 1}, {ID: 1, Region: 1}}, regions, nil},
		{"undeclared producer region", []instance.Producer{{ID: 1, Region: 7}}, regions, nil},
		{"negative quota", nil, []instance.Region{{ID: 1, ExportQuota: -1}}, nil},
		{"duplicate region", nil, []instance.Region{{ID: 1}, {ID: 1}}, nil},
		{"undeclared requester region", nil, regions, []instance.Requester{{ID: 1, Region: 2}}},
		{"undeclared wanted producer", nil, regions, []instance.Requester{{ID: 1, Region: 1, Wants: []int{1}}}},
		{"requester id zero", nil, regions, []instance.Requester{{ID: 0, Region: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := instance.New(tc.ps, tc.rs, tc.qs)
			require.ErrorIs(t, err, instance.ErrMalformed)
		})
	}
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	wants := []int{1}
	in := instance.MustNew(
		[]instance.Producer{{ID: 1, Region: 1, Capacity: 1}},
		[]instance.Region{{ID: 1}},
		[]instance.Requester{{ID: 1, Region: 1, Wants: wants}},
	)
	wants[0] = 99
	require.Equal(t, []int{1}, in.Requester(1).Wants)

	cp := in.Requesters()
	cp[0].Wants[0] = 42
	require.Equal(t, []int{1}, in.Requester(1).Wants)
}

func TestWriteText_RoundTrip(t *testing.T) {
	src := `3 2 3
1 1 2
2 2 0
3 2 4
1 1 0
2 3 1
1 1 1 3
2 2
3 2 2 3
`
	in, err := instance.ParseString(src)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, in.WriteText(&buf))
	require.Equal(t, src, buf.String())

	again, err := instance.Parse(&buf)
	require.NoError(t, err)
	require.Equal(t, in, again)
}

func TestYAML_RoundTrip(t *testing.T) {
	in, err := instance.ParseString("2 2 2\n1 1 1\n2 2 3\n1 0 1\n2 4 0\n1 1 1 2\n2 2\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, in.EncodeYAML(&buf))
	require.Contains(t, buf.String(), "exportQuota: 4")

	back, err := instance.DecodeYAML(&buf)
	require.NoError(t, err)
	require.Equal(t, in, back)
}

func TestDecodeYAML_Errors(t *testing.T) {
	_, err := instance.DecodeYAML(strings.NewReader("producers: [{id: 1, region: 1, capacity: 1, colour: red}]\n"))
	require.ErrorIs(t, err, instance.ErrMalformed, "unknown fields are rejected")

	_, err = instance.DecodeYAML(strings.NewReader("regions: [{id: 1, exportQuota: -2}]\n"))
	require.ErrorIs(t, err, instance.ErrMalformed)

	in, err := instance.DecodeYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Zero(t, in.NumProducers())
}
