package lp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/allot/model"
)

var (
	// ErrInfeasible reports an empty feasible region.
	ErrInfeasible = errors.New("lp: relaxation infeasible")

	// ErrUnbounded reports an unbounded objective.
	ErrUnbounded = errors.New("lp: relaxation unbounded")

	// ErrIterationLimit reports that the pivot budget was exhausted.
	ErrIterationLimit = errors.New("lp: iteration limit reached")

	// ErrUnknownEngine is returned by New for an unrecognised engine name.
	ErrUnknownEngine = errors.New("lp: unknown engine")
)

// Engine names accepted by New.
const (
	EngineNative = "native"
	EngineGonum  = "gonum"
)

// Relaxation is the optimum of one relaxed subproblem.
type Relaxation struct {
	// Objective includes the variables fixed to 1.
	Objective float64

	// X has one entry per model variable; fixed variables carry their fixed value.
	X []float64
}

// Relaxer solves the relaxation of m under the fixings in b.
// Implementations must not retain m, b or the returned slice between calls.
type Relaxer interface {
	Relax(m *model.Model, b *model.Bounds) (Relaxation, error)
}

// Options tunes the engines.
//   - Eps: numeric tolerance for pivots, reduced costs and feasibility.
//   - MaxIter: pivot budget per phase for the native engine (0 = derived from size).
//   - BlandAfter: consecutive degenerate pivots before switching to Bland's rule.
type Options struct {
	Eps        float64
	MaxIter    int
	BlandAfter int
}

// DefaultOptions returns the tolerances used by the search.
func DefaultOptions() Options {
	return Options{
		Eps:        1e-9,
		MaxIter:    0,
		BlandAfter: 50,
	}
}

func (o *Options) normalize() {
	if o.Eps <= 0 {
		o.Eps = 1e-9
	}
	if o.MaxIter < 0 {
		o.MaxIter = 0
	}
	if o.BlandAfter <= 0 {
		o.BlandAfter = 50
	}
}

// New returns the engine registered under name.
func New(name string, opts Options) (Relaxer, error) {
	switch name {
	case EngineNative, "":
		return NewSimplex(opts), nil
	case EngineGonum:
		return NewGonum(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}
