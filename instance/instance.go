package instance

import (
	"fmt"
	"slices"
)

// New validates typed records and returns an ID-indexed Instance.
// Records may arrive in any order; Wants are copied, sorted and de-duplicated.
//
// Errors: ErrMalformed wrapped with the first violated invariant.
//
// Complexity: O(N + M + Σ|Wants|·log|Wants|).
func New(producers []Producer, regions []Region, requesters []Requester) (*Instance, error) {
	in := &Instance{
		producers:  make([]Producer, len(producers)),
		regions:    make([]Region, len(regions)),
		requesters: make([]Requester, len(requesters)),
	}

	var (
		seen []bool
		i    int
	)

	// Regions first: producers and requesters reference them.
	seen = make([]bool, len(regions))
	for i = range regions {
		r := regions[i]
		if r.ID < 1 || r.ID > len(regions) {
			return nil, fmt.Errorf("%w: region id %d outside 1..%d", ErrMalformed, r.ID, len(regions))
		}
		if seen[r.ID-1] {
			return nil, fmt.Errorf("%w: duplicate region id %d", ErrMalformed, r.ID)
		}
		if r.ExportQuota < 0 || r.MinFulfillment < 0 {
			return nil, fmt.Errorf("%w: region %d has a negative quota or minimum", ErrMalformed, r.ID)
		}
		seen[r.ID-1] = true
		in.regions[r.ID-1] = r
	}

	seen = make([]bool, len(producers))
	for i = range producers {
		p := producers[i]
		if p.ID < 1 || p.ID > len(producers) {
			return nil, fmt.Errorf("%w: producer id %d outside 1..%d", ErrMalformed, p.ID, len(producers))
		}
		if seen[p.ID-1] {
			return nil, fmt.Errorf("%w: duplicate producer id %d", ErrMalformed, p.ID)
		}
		if p.Capacity < 0 {
			return nil, fmt.Errorf("%w: producer %d has negative capacity %d", ErrMalformed, p.ID, p.Capacity)
		}
		if p.Region < 1 || p.Region > len(regions) {
			return nil, fmt.Errorf("%w: producer %d references undeclared region %d", ErrMalformed, p.ID, p.Region)
		}
		seen[p.ID-1] = true
		in.producers[p.ID-1] = p
	}

	seen = make([]bool, len(requesters))
	for i = range requesters {
		r := requesters[i]
		if r.ID < 1 || r.ID > len(requesters) {
			return nil, fmt.Errorf("%w: requester id %d outside 1..%d", ErrMalformed, r.ID, len(requesters))
		}
		if seen[r.ID-1] {
			return nil, fmt.Errorf("%w: duplicate requester id %d", ErrMalformed, r.ID)
		}
		if r.Region < 1 || r.Region > len(regions) {
			return nil, fmt.Errorf("%w: requester %d references undeclared region %d", ErrMalformed, r.ID, r.Region)
		}
		wants := slices.Clone(r.Wants)
		slices.Sort(wants)
		wants = slices.Compact(wants)
		if len(wants) == 0 {
			wants = nil
		}
		for _, p := range wants {
			if p < 1 || p > len(producers) {
				return nil, fmt.Errorf("%w: requester %d wants undeclared producer %d", ErrMalformed, r.ID, p)
			}
		}
		seen[r.ID-1] = true
		in.requesters[r.ID-1] = Requester{ID: r.ID, Region: r.Region, Wants: wants}
	}

	return in, nil
}

// MustNew is New for fixtures known to be valid; it panics on error.
func MustNew(producers []Producer, regions []Region, requesters []Requester) *Instance {
	in, err := New(producers, regions, requesters)
	if err != nil {
		panic(err)
	}

	return in
}
