package instance

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformed is returned (possibly wrapped) for any input that violates the
// record grammar or the data-model invariants.
var ErrMalformed = errors.New("instance: malformed input")

// ParseError pinpoints a grammar violation in the line-oriented stream.
// It unwraps to ErrMalformed.
type ParseError struct {
	Line   int    // 1-based line number; one past the last line on truncation
	Reason string // human-readable cause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("instance: line %d: %s", e.Line, e.Reason)
}

// Unwrap lets errors.Is(err, ErrMalformed) match.
func (e *ParseError) Unwrap() error { return ErrMalformed }

// Producer is a capacity-bounded source of units.
type Producer struct {
	ID       int `yaml:"id"`
	Region   int `yaml:"region"`
	Capacity int `yaml:"capacity"`
}

// Region is simultaneously an export-quota scope (when supplying) and a
// minimum-fulfillment scope (when receiving).
type Region struct {
	ID             int `yaml:"id"`
	ExportQuota    int `yaml:"exportQuota"`
	MinFulfillment int `yaml:"minFulfillment"`
}

// Requester demands a single unit from any producer listed in Wants.
type Requester struct {
	ID     int   `yaml:"id"`
	Region int   `yaml:"region"`
	Wants  []int `yaml:"wants,flow"`
}

// Instance is the validated, ID-indexed problem description.
// Slot i of each slice holds the record with ID i+1.
type Instance struct {
	producers  []Producer
	regions    []Region
	requesters []Requester
}

// NumProducers returns N.
func (in *Instance) NumProducers() int { return len(in.producers) }

// NumRegions returns M.
func (in *Instance) NumRegions() int { return len(in.regions) }

// NumRequesters returns T.
func (in *Instance) NumRequesters() int { return len(in.requesters) }

// Producer returns the producer with the given ID (1-based).
// It panics on an out-of-range ID, like a slice index would.
func (in *Instance) Producer(id int) Producer { return in.producers[id-1] }

// Region returns the region with the given ID (1-based).
func (in *Instance) Region(id int) Region { return in.regions[id-1] }

// Requester returns the requester with the given ID (1-based).
// The returned Wants slice is shared and must not be modified.
func (in *Instance) Requester(id int) Requester { return in.requesters[id-1] }

// Producers returns a copy of all producers ordered by ID.
func (in *Instance) Producers() []Producer {
	out := make([]Producer, len(in.producers))
	copy(out, in.producers)

	return out
}

// Regions returns a copy of all regions ordered by ID.
func (in *Instance) Regions() []Region {
	out := make([]Region, len(in.regions))
	copy(out, in.regions)

	return out
}

// Requesters returns a deep copy of all requesters ordered by ID.
func (in *Instance) Requesters() []Requester {
	out := make([]Requester, len(in.requesters))
	for i, r := range in.requesters {
		out[i] = Requester{ID: r.ID, Region: r.Region, Wants: append([]int(nil), r.Wants...)}
	}

	return out
}

// TotalCapacity sums the capacity of every producer, saturating at math.MaxInt.
func (in *Instance) TotalCapacity() int {
	var total int
	for _, p := range in.producers {
		total = saturatingAdd(total, p.Capacity)
	}

	return total
}

// TotalMinimum sums the minimum-fulfillment requirement of every region,
// saturating at math.MaxInt.
func (in *Instance) TotalMinimum() int {
	var total int
	for _, r := range in.regions {
		total = saturatingAdd(total, r.MinFulfillment)
	}

	return total
}

// saturatingAdd adds two non-negative ints without wrapping.
func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}

	return a + b
}

// EligibleRequesters counts, per region, the requesters living there that
// want at least one producer. Index 0 is unused; index r is region r.
func (in *Instance) EligibleRequesters() []int {
	counts := make([]int, len(in.regions)+1)
	for _, r := range in.requesters {
		if len(r.Wants) > 0 {
			counts[r.Region]++
		}
	}

	return counts
}

// HasStock reports whether at least one producer has positive capacity.
func (in *Instance) HasStock() bool {
	for _, p := range in.producers {
		if p.Capacity > 0 {
			return true
		}
	}

	return false
}
