package model

import "github.com/katalvlaran/allot/instance"

// Build derives the candidate-pair variables and the four constraint groups
// from in. The instance is only read.
//
// Complexity: O(N + M + T + Σ|Wants|).
func Build(in *instance.Instance) *Model {
	nP, nR, nT := in.NumProducers(), in.NumRegions(), in.NumRequesters()
	m := &Model{Requesters: nT}

	var (
		byRequester = make([][]int, nT+1)
		byProducer  = make([][]int, nP+1)
		byExporter  = make([][]int, nR+1)
		byReceiver  = make([][]int, nR+1)
	)

	// Variables in (requester, producer) order; Wants is already sorted.
	for rid := 1; rid <= nT; rid++ {
		req := in.Requester(rid)
		for _, pid := range req.Wants {
			prod := in.Producer(pid)
			if prod.Capacity <= 0 {
				continue
			}
			j := len(m.Pairs)
			m.Pairs = append(m.Pairs, Pair{Requester: rid, Producer: pid})
			byRequester[rid] = append(byRequester[rid], j)
			byProducer[pid] = append(byProducer[pid], j)
			if prod.Region != req.Region {
				byExporter[prod.Region] = append(byExporter[prod.Region], j)
			}
			byReceiver[req.Region] = append(byReceiver[req.Region], j)
		}
	}

	for rid := 1; rid <= nT; rid++ {
		if len(byRequester[rid]) == 0 {
			continue
		}
		m.Constraints = append(m.Constraints, Constraint{
			Group: RequesterGroup, Key: rid, Sense: LE, RHS: 1, Vars: byRequester[rid],
		})
	}
	for pid := 1; pid <= nP; pid++ {
		if len(byProducer[pid]) == 0 {
			continue
		}
		m.Constraints = append(m.Constraints, Constraint{
			Group: ProducerGroup, Key: pid, Sense: LE, RHS: in.Producer(pid).Capacity, Vars: byProducer[pid],
		})
	}
	for reg := 1; reg <= nR; reg++ {
		if len(byExporter[reg]) == 0 {
			continue
		}
		m.Constraints = append(m.Constraints, Constraint{
			Group: ExportGroup, Key: reg, Sense: LE, RHS: in.Region(reg).ExportQuota, Vars: byExporter[reg],
		})
	}
	for reg := 1; reg <= nR; reg++ {
		minimum := in.Region(reg).MinFulfillment
		if len(byReceiver[reg]) == 0 && minimum == 0 {
			continue
		}
		m.Constraints = append(m.Constraints, Constraint{
			Group: MinimumGroup, Key: reg, Sense: GE, RHS: minimum, Vars: byReceiver[reg],
		})
	}

	return m
}
