package precheck

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/allot/flow"
	"github.com/katalvlaran/allot/instance"
	"github.com/katalvlaran/allot/internal/logging"
)

// Check runs the necessary conditions against in.
// The returned error is non-nil only for a nil instance or a cancelled
// context during the flow check; an infeasible instance is a Report, not an error.
func Check(in *instance.Instance, opts Options) (Report, error) {
	if in == nil {
		return Report{}, ErrNilInstance
	}
	opts.normalize()
	log := logr.FromContextOrDiscard(opts.Ctx).WithName("precheck")

	rep := basic(in)
	if rep.Feasible() && opts.RegionFlow {
		var err error
		if rep, err = regionFlow(in, opts); err != nil {
			return Report{}, err
		}
	}
	if !rep.Feasible() {
		log.V(logging.DEBUG).Info("instance rejected",
			"reason", rep.Reason.String(), "region", rep.Region, "need", rep.Need, "have", rep.Have)
	}

	return rep, nil
}

// basic runs checks 1 to 3.
func basic(in *instance.Instance) Report {
	// With no producers or no requesters at all, only the minimums decide.
	need := in.TotalMinimum()
	empty := in.NumProducers() == 0 || in.NumRequesters() == 0
	if (need > 0 || !empty) && !in.HasStock() {
		return Report{Verdict: Infeasible, Reason: ReasonNoStock, Need: need}
	}
	if have := in.TotalCapacity(); have < need {
		return Report{Verdict: Infeasible, Reason: ReasonCapacity, Need: need, Have: have}
	}

	eligible := in.EligibleRequesters()
	for reg := 1; reg <= in.NumRegions(); reg++ {
		if minimum := in.Region(reg).MinFulfillment; eligible[reg] < minimum {
			return Report{Verdict: Infeasible, Reason: ReasonEligible, Region: reg, Need: minimum, Have: eligible[reg]}
		}
	}

	return Report{Verdict: PossiblyFeasible}
}

// regionFlow runs check 4 for every region with a positive minimum.
func regionFlow(in *instance.Instance, opts Options) (Report, error) {
	fo := flow.DefaultOptions()
	fo.Ctx = opts.Ctx

	for reg := 1; reg <= in.NumRegions(); reg++ {
		minimum := in.Region(reg).MinFulfillment
		if minimum == 0 {
			continue
		}
		g, source, sink, err := regionNetwork(in, reg)
		if err != nil {
			return Report{}, err
		}
		have, err := flow.Dinic(g, source, sink, fo)
		if err != nil {
			return Report{}, fmt.Errorf("precheck: region %d: %w", reg, err)
		}
		if have < int64(minimum) {
			return Report{Verdict: Infeasible, Reason: ReasonRegionFlow, Region: reg, Need: minimum, Have: int(have)}, nil
		}
	}

	return Report{Verdict: PossiblyFeasible}, nil
}

// regionNetwork lays out nodes as
// [source, sink, hub_1..hub_M, producer_1..producer_N, requesters of reg...].
func regionNetwork(in *instance.Instance, reg int) (*flow.Network, int, int, error) {
	const source, sink = 0, 1
	var (
		nR, nP  = in.NumRegions(), in.NumProducers()
		hub     = func(s int) int { return 1 + s }
		prodOf  = func(p int) int { return 1 + nR + p }
		members []instance.Requester
	)
	for rid := 1; rid <= in.NumRequesters(); rid++ {
		if r := in.Requester(rid); r.Region == reg && len(r.Wants) > 0 {
			members = append(members, r)
		}
	}
	g := flow.NewNetwork(2 + nR + nP + len(members))

	add := func(u, v, c int) error {
		_, err := g.AddEdge(u, v, int64(c))
		return err
	}

	for s := 1; s <= nR; s++ {
		if q := in.Region(s).ExportQuota; s != reg && q > 0 {
			if err := add(source, hub(s), q); err != nil {
				return nil, 0, 0, err
			}
		}
	}
	for pid := 1; pid <= nP; pid++ {
		p := in.Producer(pid)
		if p.Capacity == 0 {
			continue
		}
		from := source
		if p.Region != reg {
			from = hub(p.Region)
		}
		if err := add(from, prodOf(pid), p.Capacity); err != nil {
			return nil, 0, 0, err
		}
	}
	for i, r := range members {
		node := 2 + nR + nP + i
		for _, pid := range r.Wants {
			if in.Producer(pid).Capacity == 0 {
				continue
			}
			if err := add(prodOf(pid), node, 1); err != nil {
				return nil, 0, 0, err
			}
		}
		if err := add(node, sink, 1); err != nil {
			return nil, 0, 0, err
		}
	}

	return g, source, sink, nil
}
