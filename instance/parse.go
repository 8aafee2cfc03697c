package instance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single record line; requester lines grow with the
// length of their wish list.
const maxLineBytes = 64 << 20

// maxPrealloc caps slice capacity taken from the header counts, which are
// untrusted until the records behind them have been read.
const maxPrealloc = 1024

// Decoder turns a byte stream into a validated Instance.
// Parse and DecodeYAML both satisfy it.
type Decoder func(r io.Reader) (*Instance, error)

// lineReader yields non-blank lines with their 1-based line numbers.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &lineReader{sc: sc}
}

// next returns the integer fields of the next non-blank line.
// ok=false means end of input (err is nil) or a read failure (err != nil).
func (lr *lineReader) next() (fields []int, ok bool, err error) {
	for lr.sc.Scan() {
		lr.line++
		text := strings.TrimSpace(lr.sc.Text())
		if text == "" {
			continue
		}
		tokens := strings.Fields(text)
		fields = make([]int, len(tokens))
		for i, tok := range tokens {
			v, convErr := strconv.Atoi(tok)
			if convErr != nil {
				return nil, false, &ParseError{Line: lr.line, Reason: fmt.Sprintf("field %d (%q) is not an integer", i+1, tok)}
			}
			if v < 0 {
				return nil, false, &ParseError{Line: lr.line, Reason: fmt.Sprintf("field %d (%d) is negative", i+1, v)}
			}
			fields[i] = v
		}

		return fields, true, nil
	}
	if err = lr.sc.Err(); err != nil {
		return nil, false, &ParseError{Line: lr.line + 1, Reason: err.Error()}
	}

	return nil, false, nil
}

// expect reads the next record of the given kind with exactly n fields
// (or at least n when exact is false).
func (lr *lineReader) expect(kind string, n int, exact bool) ([]int, error) {
	fields, ok, err := lr.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ParseError{Line: lr.line + 1, Reason: "unexpected end of input, want a " + kind + " line"}
	}
	if exact && len(fields) != n {
		return nil, &ParseError{Line: lr.line, Reason: fmt.Sprintf("%s line has %d fields, want %d", kind, len(fields), n)}
	}
	if !exact && len(fields) < n {
		return nil, &ParseError{Line: lr.line, Reason: fmt.Sprintf("%s line has %d fields, want at least %d", kind, len(fields), n)}
	}

	return fields, nil
}

// Parse reads the line-oriented record stream described in the package
// documentation and validates it with New.
//
// Errors: *ParseError (unwraps to ErrMalformed) for grammar violations,
// ErrMalformed wrapped for invariant violations.
//
// Complexity: O(total input size).
func Parse(r io.Reader) (*Instance, error) {
	lr := newLineReader(r)

	header, err := lr.expect("header", 3, true)
	if err != nil {
		return nil, err
	}
	n, m, t := header[0], header[1], header[2]

	producers := make([]Producer, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		f, err := lr.expect("producer", 3, true)
		if err != nil {
			return nil, err
		}
		producers = append(producers, Producer{ID: f[0], Region: f[1], Capacity: f[2]})
	}

	regions := make([]Region, 0, min(m, maxPrealloc))
	for i := 0; i < m; i++ {
		f, err := lr.expect("region", 3, true)
		if err != nil {
			return nil, err
		}
		regions = append(regions, Region{ID: f[0], ExportQuota: f[1], MinFulfillment: f[2]})
	}

	requesters := make([]Requester, 0, min(t, maxPrealloc))
	for i := 0; i < t; i++ {
		f, err := lr.expect("requester", 2, false)
		if err != nil {
			return nil, err
		}
		requesters = append(requesters, Requester{ID: f[0], Region: f[1], Wants: f[2:]})
	}

	return New(producers, regions, requesters)
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*Instance, error) { return Parse(strings.NewReader(s)) }

// WriteText renders the instance in the canonical line format accepted by Parse.
func (in *Instance) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", len(in.producers), len(in.regions), len(in.requesters))
	for _, p := range in.producers {
		fmt.Fprintf(bw, "%d %d %d\n", p.ID, p.Region, p.Capacity)
	}
	for _, r := range in.regions {
		fmt.Fprintf(bw, "%d %d %d\n", r.ID, r.ExportQuota, r.MinFulfillment)
	}
	for _, r := range in.requesters {
		bw.WriteString(strconv.Itoa(r.ID))
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(r.Region))
		for _, p := range r.Wants {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(p))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
