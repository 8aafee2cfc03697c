package bnb

import (
	"context"
	"sync/atomic"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/allot/internal/logging"
	"github.com/katalvlaran/allot/lp"
	"github.com/katalvlaran/allot/model"
)

// node is an open frontier node: the decisions leading to it and its relaxation.
type node struct {
	fix   []model.Fixing
	rel   lp.Relaxation
	depth int
}

// Search maximizes the number of variables set to 1 in m.
//
// Steps:
//  1. Normalize options; apply TimeLimit to ctx.
//  2. Relax the root. Infeasible root → Value −1, StatusInfeasible.
//  3. Workers == 1: depth-first search from the root.
//     Workers > 1: open a breadth-first frontier, then let the workers drain it.
//  4. Classify: interrupted → StatusCancelled, a skipped subtree →
//     StatusIterationLimit, no incumbent → StatusInfeasible, otherwise
//     StatusOptimal.
//
// Errors: ErrNilModel, or a wrapped relaxer error. Cancellation is not an error.
//
// Complexity: O(2^n) nodes in the worst case, each costing one or two relaxations.
func Search(ctx context.Context, m *model.Model, opts Options) (Outcome, error) {
	if m == nil {
		return Outcome{}, ErrNilModel
	}
	opts.normalize()
	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}
	log := logr.FromContextOrDiscard(ctx).WithName("bnb")

	inc := newIncumbent()
	if ctx.Err() != nil {
		return finish(inc, Stats{Workers: opts.Workers}, true), nil
	}

	root := newWorker(ctx, m, inc, opts, log)
	rel, ok := root.solve()
	if root.err != nil {
		return Outcome{}, root.err
	}
	if !ok {
		root.stats.Nodes = 1
		root.stats.Workers = opts.Workers
		log.V(logging.DEBUG).Info("root relaxation not solved", "unresolved", root.stats.Unresolved)
		return finish(inc, root.stats, false), nil
	}

	var (
		stats       Stats
		interrupted bool
		err         error
	)
	if opts.Workers == 1 {
		root.explore(rel, 0)
		stats, interrupted, err = root.stats, root.stopped, root.err
	} else {
		stats, interrupted, err = parallel(ctx, m, inc, opts, log, root, rel)
	}
	if err != nil {
		return Outcome{}, err
	}
	stats.Workers = opts.Workers

	out := finish(inc, stats, interrupted)
	log.V(logging.DEBUG).Info("search finished",
		"status", out.Status.String(), "value", out.Value, "nodes", stats.Nodes,
		"relaxations", stats.Relaxations, "maxDepth", stats.MaxDepth)

	return out, nil
}

func finish(inc *incumbent, stats Stats, interrupted bool) Outcome {
	value, x := inc.snapshot()
	out := Outcome{Value: value, X: x, Stats: stats}
	switch {
	case interrupted:
		out.Status = StatusCancelled
	case stats.Unresolved > 0:
		out.Status = StatusIterationLimit
	case value < 0:
		out.Status = StatusInfeasible
	default:
		out.Status = StatusOptimal
	}

	return out
}

// parallel opens the frontier with the root worker and hands the open nodes
// to opts.Workers goroutines.
func parallel(ctx context.Context, m *model.Model, inc *incumbent, opts Options, log logr.Logger,
	root *worker, rel lp.Relaxation) (Stats, bool, error) {
	pending := frontier(root, rel, opts.Workers*opts.FrontierFactor)
	if root.err != nil {
		return Stats{}, false, root.err
	}
	stats := root.stats
	stats.Subtrees = len(pending)
	if root.stopped {
		return stats, true, nil
	}
	log.V(logging.DEBUG).Info("frontier opened", "subtrees", len(pending), "workers", opts.Workers)

	var (
		g, gctx = errgroup.WithContext(ctx)
		next    atomic.Int64
		dead    atomic.Int64
		workers = make([]*worker, opts.Workers)
	)
	for k := range workers {
		w := newWorker(gctx, m, inc, opts, log.WithValues("worker", k))
		workers[k] = w
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= len(pending) {
					return nil
				}
				nd := pending[i]
				w.b.Apply(nd.fix)
				w.explore(nd.rel, nd.depth)
				w.b.Rewind(0)
				if w.err != nil {
					return w.err
				}
				if w.stopped {
					return nil
				}
				dead.Add(1)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, false, err
	}

	for _, w := range workers {
		stats.merge(w.stats)
	}

	return stats, dead.Load() < int64(len(pending)), nil
}

// frontier expands nodes breadth-first until at least target are open or the
// tree is exhausted. Closed nodes are accounted in w.stats; the open ones are
// returned unevaluated, best child first within each pair.
func frontier(w *worker, rel lp.Relaxation, target int) []node {
	queue := []node{{rel: rel}}
	head := 0
	for head < len(queue) && len(queue)-head < target {
		if w.halt() {
			break
		}
		nd := queue[head]
		head++

		w.b.Apply(nd.fix)
		if j := w.evaluate(nd.rel, nd.depth); j >= 0 {
			for _, kid := range w.children(j) {
				fix := make([]model.Fixing, len(nd.fix), len(nd.fix)+1)
				copy(fix, nd.fix)
				queue = append(queue, node{
					fix:   append(fix, model.Fixing{Var: j, Value: kid.v}),
					rel:   kid.rel,
					depth: nd.depth + 1,
				})
			}
		}
		w.b.Rewind(0)
		if w.err != nil {
			return nil
		}
	}

	return queue[head:]
}
