package testgen

import "github.com/katalvlaran/allot/instance"

// Enumerate returns the value the solver must report for in: -1 when
// producers and requesters exist but no producer has any stock, Best(in)
// otherwise.
func Enumerate(in *instance.Instance) int {
	if in.NumProducers() > 0 && in.NumRequesters() > 0 && !in.HasStock() {
		return -1
	}

	return Best(in)
}

// Best returns the optimum over assignments of in by trying every way of
// giving each requester nothing or one of its wanted producers, or -1 if no
// choice meets every regional minimum. It works from the instance directly,
// not from a built model, so it can serve as an independent oracle for the
// search alone.
//
// Complexity: O(∏ (|Wants_r| + 1)).
func Best(in *instance.Instance) int {
	e := &enumerator{
		in:       in,
		used:     make([]int, in.NumProducers()+1),
		exported: make([]int, in.NumRegions()+1),
		received: make([]int, in.NumRegions()+1),
		best:     -1,
	}
	e.walk(1, 0)

	return e.best
}

type enumerator struct {
	in       *instance.Instance
	used     []int // per producer
	exported []int // per supplying region
	received []int // per receiving region
	best     int
}

func (e *enumerator) walk(rid, served int) {
	if rid > e.in.NumRequesters() {
		for reg := 1; reg <= e.in.NumRegions(); reg++ {
			if e.received[reg] < e.in.Region(reg).MinFulfillment {
				return
			}
		}
		if served > e.best {
			e.best = served
		}
		return
	}

	e.walk(rid+1, served)

	req := e.in.Requester(rid)
	for _, pid := range req.Wants {
		p := e.in.Producer(pid)
		if e.used[pid] >= p.Capacity {
			continue
		}
		foreign := p.Region != req.Region
		if foreign && e.exported[p.Region] >= e.in.Region(p.Region).ExportQuota {
			continue
		}

		e.used[pid]++
		e.received[req.Region]++
		if foreign {
			e.exported[p.Region]++
		}
		e.walk(rid+1, served+1)
		if foreign {
			e.exported[p.Region]--
		}
		e.received[req.Region]--
		e.used[pid]--
	}
}
