package allot_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/allot"
	"github.com/katalvlaran/allot/instance"
	"github.com/katalvlaran/allot/internal/testgen"
	"github.com/katalvlaran/allot/lp"
	"github.com/katalvlaran/allot/model"
	"github.com/katalvlaran/allot/precheck"
)

func solveString(t *testing.T, src string) allot.Result {
	t.Helper()

	return allot.SolveReader(context.Background(), strings.NewReader(src), allot.DefaultOptions())
}

func solve(t *testing.T, in *instance.Instance) allot.Result {
	t.Helper()
	res, err := allot.Solve(context.Background(), in, allot.DefaultOptions())
	require.NoError(t, err)

	return res
}

// requireAssignmentValid checks pairs directly against the instance records.
func requireAssignmentValid(t *testing.T, in *instance.Instance, pairs []model.Pair) {
	t.Helper()
	var (
		perRequester = make(map[int]int)
		perProducer  = make(map[int]int)
		exported     = make(map[int]int)
		received     = make(map[int]int)
	)
	for _, p := range pairs {
		req, prod := in.Requester(p.Requester), in.Producer(p.Producer)
		require.Contains(t, req.Wants, p.Producer)
		perRequester[p.Requester]++
		perProducer[p.Producer]++
		if prod.Region != req.Region {
			exported[prod.Region]++
		}
		received[req.Region]++
	}
	for rid, n := range perRequester {
		require.LessOrEqual(t, n, 1, "requester %d", rid)
	}
	for pid, n := range perProducer {
		require.LessOrEqual(t, n, in.Producer(pid).Capacity, "producer %d", pid)
	}
	for reg := 1; reg <= in.NumRegions(); reg++ {
		require.LessOrEqual(t, exported[reg], in.Region(reg).ExportQuota, "export of region %d", reg)
		require.GreaterOrEqual(t, received[reg], in.Region(reg).MinFulfillment, "minimum of region %d", reg)
	}
}

func TestSolveReader_Scenarios(t *testing.T) {
	// A
	res := solveString(t, "1 1 1\n1 1 1\n1 0 1\n1 1 1\n")
	require.Equal(t, 1, res.Value)
	require.Equal(t, allot.StatusOptimal, res.Status)
	require.Equal(t, []model.Pair{{Requester: 1, Producer: 1}}, res.Assignment)

	// B: rejected before any model is built.
	res = solveString(t, "1 1 1\n1 1 1\n1 0 2\n1 1 1\n")
	require.Equal(t, allot.Infeasible, res.Value)
	require.Equal(t, allot.StatusInfeasible, res.Status)
	require.False(t, res.Precheck.Feasible())
	require.Zero(t, res.Model.Vars)

	// C: stock exists but may not leave region 1.
	res = solveString(t, "2 2 1\n1 1 1\n2 1 1\n1 0 0\n2 0 0\n1 2 1 2\n")
	require.Equal(t, 0, res.Value)
	require.Empty(t, res.Assignment)

	// D: one unit, two takers, minimum met.
	res = solveString(t, "1 1 2\n1 1 1\n1 0 1\n1 1 1\n2 1 1\n")
	require.Equal(t, 1, res.Value)
	require.Len(t, res.Assignment, 1)
}

func TestSolveReader_Malformed(t *testing.T) {
	for name, src := range map[string]string{
		"empty":            "",
		"short header":     "1 1\n",
		"truncated":        "1 1 1\n1 1 1\n",
		"non-integer":      "1 1 1\n1 one 1\n1 0 0\n1 1 1\n",
		"negative":         "1 1 1\n1 1 -1\n1 0 0\n1 1 1\n",
		"unknown producer": "1 1 1\n1 1 1\n1 0 0\n1 1 2\n",
		"huge header":      "1000000000000000000 0 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			res := solveString(t, src)
			require.Equal(t, allot.Infeasible, res.Value)
			require.Equal(t, allot.StatusMalformed, res.Status)
			require.ErrorIs(t, res.Err, instance.ErrMalformed)
		})
	}
}

func TestSolveReader_YAML(t *testing.T) {
	const doc = `
producers:
  - {id: 1, region: 1, capacity: 1}
regions:
  - {id: 1, exportQuota: 0, minFulfillment: 1}
requesters:
  - {id: 1, region: 1, wants: [1]}
  - {id: 2, region: 1, wants: [1]}
`
	opts := allot.DefaultOptions()
	opts.Decode = instance.DecodeYAML
	res := allot.SolveReader(context.Background(), strings.NewReader(doc), opts)
	require.NoError(t, res.Err)
	require.Equal(t, 1, res.Value)
}

func TestSolve_ZeroProducersOrRequesters(t *testing.T) {
	cases := map[string]int{
		"no requesters, no minimum":   0,
		"no requesters, minimum":      allot.Infeasible,
		"no producers, no minimum":    0,
		"no producers, minimum":       allot.Infeasible,
		"no producers, no requesters": 0,
	}
	srcs := map[string]string{
		"no requesters, no minimum":   "1 1 0\n1 1 3\n1 0 0\n",
		"no requesters, minimum":      "1 1 0\n1 1 3\n1 0 1\n",
		"no producers, no minimum":    "0 1 1\n1 0 0\n1 1\n",
		"no producers, minimum":       "0 1 1\n1 0 1\n1 1\n",
		"no producers, no requesters": "0 2 0\n1 0 0\n2 5 0\n",
	}
	for name, want := range cases {
		require.Equal(t, want, solveString(t, srcs[name]).Value, name)
	}
}

func TestSolveReader_HugeValues(t *testing.T) {
	// Capacities whose sum overflows int are still legal, and never bind.
	res := solveString(t, "2 1 1\n1 1 4611686018427387904\n2 1 4611686018427387904\n1 0 0\n1 1 1\n")
	require.Equal(t, 1, res.Value)
	require.Equal(t, allot.StatusOptimal, res.Status)
	require.True(t, res.Precheck.Feasible(), res.Precheck.String())

	res = solveString(t, "1 1 1\n1 1 9223372036854775807\n1 9223372036854775807 0\n1 1 1\n")
	require.Equal(t, 1, res.Value)
}

func TestSolve_NoStockAtAll(t *testing.T) {
	// Producers and requesters exist but nothing is in stock.
	res := solveString(t, "1 1 1\n1 1 0\n1 0 0\n1 1 1\n")
	require.Equal(t, allot.Infeasible, res.Value)
	require.Equal(t, allot.StatusInfeasible, res.Status)
	require.Equal(t, precheck.ReasonNoStock, res.Precheck.Reason)

	// The same holds with the flow check disabled.
	in, err := instance.ParseString("2 1 2\n1 1 0\n2 1 0\n1 0 0\n1 1 1 2\n2 1\n")
	require.NoError(t, err)
	opts := allot.DefaultOptions()
	opts.RegionFlow = false
	res, err = allot.Solve(context.Background(), in, opts)
	require.NoError(t, err)
	require.Equal(t, allot.Infeasible, res.Value)
}

func TestSolve_PropertiesOnRandomInstances(t *testing.T) {
	rng := testgen.Rand(31337)
	for i := 0; i < 200; i++ {
		in := testgen.Random(rng, testgen.Small())
		res := solve(t, in)

		// Exact, bounded, reproducible.
		require.Equal(t, testgen.Enumerate(in), res.Value, "instance %d", i)
		require.GreaterOrEqual(t, res.Value, allot.Infeasible)
		require.LessOrEqual(t, res.Value, in.NumRequesters())
		require.LessOrEqual(t, res.Value, in.TotalCapacity())
		if res.Precheck.Feasible() {
			require.LessOrEqual(t, res.Value, res.Model.Vars)
		}
		again := solve(t, in)
		require.Equal(t, res.Value, again.Value)
		require.Equal(t, res.Assignment, again.Assignment)

		if res.Value >= 0 {
			require.Len(t, res.Assignment, res.Value)
			requireAssignmentValid(t, in, res.Assignment)
		}
	}
}

func TestSolve_Monotonicity(t *testing.T) {
	rng := testgen.Rand(8)
	for i := 0; i < 150; i++ {
		in := testgen.Random(rng, testgen.Small())
		base := solve(t, in).Value

		// More stock never hurts.
		producers := in.Producers()
		producers[rng.IntN(len(producers))].Capacity++
		more := instance.MustNew(producers, in.Regions(), in.Requesters())
		require.GreaterOrEqual(t, solve(t, more).Value, base, "instance %d: capacity", i)

		// A stricter minimum never turns an infeasible instance feasible,
		// and never raises the optimum.
		regions := in.Regions()
		regions[rng.IntN(len(regions))].MinFulfillment++
		stricter := solve(t, instance.MustNew(in.Producers(), regions, in.Requesters())).Value
		require.LessOrEqual(t, stricter, base, "instance %d: minimum", i)
		if base == allot.Infeasible {
			require.Equal(t, allot.Infeasible, stricter)
		}
	}
}

func TestSolve_ParallelAgrees(t *testing.T) {
	rng := testgen.Rand(5)
	opts := allot.DefaultOptions()
	opts.Search.Workers = 4
	for i := 0; i < 60; i++ {
		in := testgen.Random(rng, testgen.Small())
		par, err := allot.Solve(context.Background(), in, opts)
		require.NoError(t, err)
		require.Equal(t, solve(t, in).Value, par.Value, "instance %d", i)
	}
}

func TestSolve_RegionFlowIsOnlyAnOptimization(t *testing.T) {
	rng := testgen.Rand(77)
	off := allot.DefaultOptions()
	off.RegionFlow = false
	for i := 0; i < 100; i++ {
		in := testgen.Random(rng, testgen.Small())
		res, err := allot.Solve(context.Background(), in, off)
		require.NoError(t, err)
		require.Equal(t, solve(t, in).Value, res.Value, "instance %d", i)
	}

	// The flow check rejects this one; without it the search proves it.
	in, err := instance.ParseString("1 2 1\n1 1 1\n1 0 0\n2 0 1\n1 2 1\n")
	require.NoError(t, err)
	res := solve(t, in)
	require.Equal(t, precheck.ReasonRegionFlow, res.Precheck.Reason)
	res, err = allot.Solve(context.Background(), in, off)
	require.NoError(t, err)
	require.True(t, res.Precheck.Feasible())
	require.Equal(t, allot.Infeasible, res.Value)
	require.Equal(t, allot.StatusInfeasible, res.Status)
}

type recorder struct{ results []allot.Result }

func (r *recorder) Observe(res allot.Result) { r.results = append(r.results, res) }

func TestObserver(t *testing.T) {
	rec := &recorder{}
	opts := allot.DefaultOptions()
	opts.Observer = rec

	allot.SolveReader(context.Background(), strings.NewReader("1 1 1\n1 1 1\n1 0 1\n1 1 1\n"), opts)
	allot.SolveReader(context.Background(), strings.NewReader("garbage"), opts)
	allot.SolveReader(context.Background(), strings.NewReader("1 1 1\n1 1 1\n1 0 2\n1 1 1\n"), opts)

	require.Len(t, rec.results, 3)
	require.Equal(t, allot.StatusOptimal, rec.results[0].Status)
	require.Equal(t, allot.StatusMalformed, rec.results[1].Status)
	require.Equal(t, allot.StatusInfeasible, rec.results[2].Status)
}

func TestSolve_Errors(t *testing.T) {
	_, err := allot.Solve(context.Background(), nil, allot.DefaultOptions())
	require.ErrorIs(t, err, allot.ErrNilInstance)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in, err := instance.ParseString("1 1 1\n1 1 1\n1 0 1\n1 1 1\n")
	require.NoError(t, err)
	res, err := allot.Solve(ctx, in, allot.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, allot.StatusCancelled, res.Status)
	require.Equal(t, allot.Infeasible, res.Value)
}

// exhausted never finishes a relaxation.
type exhausted struct{}

func (exhausted) Relax(*model.Model, *model.Bounds) (lp.Relaxation, error) {
	return lp.Relaxation{}, lp.ErrIterationLimit
}

func TestSolve_IterationLimitIsAResult(t *testing.T) {
	opts := allot.DefaultOptions()
	opts.Search.Relaxer = exhausted{}
	res := allot.SolveReader(context.Background(), strings.NewReader("1 1 1\n1 1 1\n1 0 0\n1 1 1\n"), opts)
	require.NoError(t, res.Err)
	require.Equal(t, allot.StatusIterationLimit, res.Status)
	require.Equal(t, allot.Infeasible, res.Value)
	require.Equal(t, 1, res.Search.Unresolved)
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "malformed", allot.StatusMalformed.String())
	require.Equal(t, "iteration-limit", allot.StatusIterationLimit.String())
	require.Equal(t, "status(42)", allot.Status(42).String())
}
