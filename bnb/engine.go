package bnb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/allot/internal/logging"
	"github.com/katalvlaran/allot/lp"
	"github.com/katalvlaran/allot/model"
)

// incumbent is the best integral solution shared by all workers.
// Reads go through the atomic; raising it takes the mutex so value and x
// always describe the same assignment.
type incumbent struct {
	value atomic.Int64

	mu sync.Mutex
	x  []int
}

func newIncumbent() *incumbent {
	inc := &incumbent{}
	inc.value.Store(-1)

	return inc
}

func (inc *incumbent) load() int { return int(inc.value.Load()) }

// offer raises the incumbent to v if v is larger and reports whether it did.
func (inc *incumbent) offer(v int, x []float64) bool {
	if int64(v) <= inc.value.Load() {
		return false
	}
	inc.mu.Lock()
	defer inc.mu.Unlock()
	if int64(v) <= inc.value.Load() {
		return false
	}
	if inc.x == nil {
		inc.x = make([]int, len(x))
	}
	for j, xj := range x {
		inc.x[j] = int(math.Round(xj))
	}
	inc.value.Store(int64(v))

	return true
}

func (inc *incumbent) snapshot() (int, []int) {
	inc.mu.Lock()
	defer inc.mu.Unlock()
	if inc.x == nil {
		return -1, nil
	}

	return int(inc.value.Load()), append([]int(nil), inc.x...)
}

// child is a relaxed branch: variable fixed to v.
type child struct {
	v   int8
	rel lp.Relaxation
}

// worker holds one search thread's state. Only inc is shared.
type worker struct {
	// Configuration / policy
	m     *model.Model
	relax lp.Relaxer
	eps   float64
	ctx   context.Context
	log   logr.Logger

	// Private search state
	b     *model.Bounds
	steps int

	// Shared incumbent
	inc *incumbent

	stats   Stats
	stopped bool  // context ended
	err     error // relaxer failure
}

func newWorker(ctx context.Context, m *model.Model, inc *incumbent, opts Options, log logr.Logger) *worker {
	return &worker{
		m:     m,
		relax: opts.Relaxer,
		eps:   opts.Eps,
		ctx:   ctx,
		log:   log,
		b:     model.NewBounds(m.NumVars()),
		inc:   inc,
	}
}

// halt reports whether the worker must unwind. The context is polled every
// 64 calls.
func (w *worker) halt() bool {
	if w.stopped || w.err != nil {
		return true
	}
	w.steps++
	if w.steps&63 == 0 && w.ctx.Err() != nil {
		w.stopped = true
	}

	return w.stopped
}

// solve relaxes the current overlay. ok is false for an infeasible node and
// for a node whose relaxation ran out of pivots; the latter is left
// unexplored and counted in Stats.Unresolved.
func (w *worker) solve() (lp.Relaxation, bool) {
	w.stats.Relaxations++
	rel, err := w.relax.Relax(w.m, w.b)
	if errors.Is(err, lp.ErrInfeasible) {
		w.stats.PrunedInfeasible++
		return lp.Relaxation{}, false
	}
	if errors.Is(err, lp.ErrIterationLimit) {
		w.stats.Unresolved++
		w.log.V(logging.DEBUG).Info("relaxation hit the pivot budget", "depth", w.b.Depth())
		return lp.Relaxation{}, false
	}
	if err != nil {
		w.err = fmt.Errorf("bnb: relaxation at depth %d: %w", w.b.Depth(), err)
		return lp.Relaxation{}, false
	}

	return rel, true
}

// evaluate applies the integral and bound rules to an already relaxed node.
// It returns the branching variable, or -1 when the node is closed.
func (w *worker) evaluate(rel lp.Relaxation, depth int) int {
	w.stats.Nodes++
	if depth > w.stats.MaxDepth {
		w.stats.MaxDepth = depth
	}

	j := w.branchVar(rel.X)
	if j < 0 {
		w.stats.IntegralLeaves++
		v := int(math.Round(rel.Objective))
		if w.inc.offer(v, rel.X) {
			w.log.V(logging.TRACE).Info("incumbent raised", "value", v, "depth", depth)
		}
		return -1
	}
	if int(math.Floor(rel.Objective+w.eps)) <= w.inc.load() {
		w.stats.PrunedBound++
		return -1
	}
	w.stats.Branched++

	return j
}

// branchVar picks the fractional variable closest to 0.5, lowest index on
// ties, or -1 if x is integral.
func (w *worker) branchVar(x []float64) int {
	var (
		best  = -1
		score = math.Inf(1)
	)
	for j, v := range x {
		if math.Abs(v-math.Round(v)) <= w.eps {
			continue
		}
		if s := math.Abs(v - 0.5); s < score {
			best, score = j, s
		}
	}

	return best
}

// children relaxes both branches of j and orders them best bound first
// (the 1-branch wins ties). Infeasible branches are left out.
func (w *worker) children(j int) []child {
	var kids []child
	for _, v := range [...]int8{1, 0} {
		w.b.Fix(j, v)
		rel, ok := w.solve()
		w.b.Undo()
		if w.err != nil {
			return nil
		}
		if ok {
			kids = append(kids, child{v: v, rel: rel})
		}
	}
	if len(kids) == 2 && kids[1].rel.Objective > kids[0].rel.Objective {
		kids[0], kids[1] = kids[1], kids[0]
	}

	return kids
}

// explore runs the depth-first search below the current overlay, whose
// relaxation is rel.
func (w *worker) explore(rel lp.Relaxation, depth int) {
	if w.halt() {
		return
	}
	j := w.evaluate(rel, depth)
	if j < 0 {
		return
	}
	for _, kid := range w.children(j) {
		w.b.Fix(j, kid.v)
		w.explore(kid.rel, depth+1)
		w.b.Undo()
		if w.stopped || w.err != nil {
			return
		}
	}
}
