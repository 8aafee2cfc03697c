package bnb

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/allot/lp"
)

// ErrNilModel is returned when Search is called without a model.
var ErrNilModel = errors.New("bnb: nil model")

// Status classifies an Outcome.
type Status int

const (
	// StatusOptimal: the tree was exhausted and Value is the optimum.
	StatusOptimal Status = iota
	// StatusInfeasible: the tree was exhausted without an integral node.
	StatusInfeasible
	// StatusCancelled: the context ended first; Value is the best incumbent (or -1).
	StatusCancelled
	// StatusIterationLimit: the tree was exhausted but some relaxations hit
	// their pivot budget, so those subtrees were skipped. Value is the best
	// incumbent (or -1) and is not proven optimal.
	StatusIterationLimit
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusCancelled:
		return "cancelled"
	case StatusIterationLimit:
		return "iteration-limit"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Stats counts search events.
type Stats struct {
	Nodes            int // evaluated nodes
	Relaxations      int // relaxer calls
	PrunedInfeasible int
	PrunedBound      int
	Unresolved       int // relaxations that hit lp.ErrIterationLimit
	IntegralLeaves   int
	Branched         int
	MaxDepth         int
	Workers          int
	Subtrees         int // frontier nodes handed to workers (parallel mode)
}

func (s *Stats) merge(o Stats) {
	s.Nodes += o.Nodes
	s.Relaxations += o.Relaxations
	s.PrunedInfeasible += o.PrunedInfeasible
	s.PrunedBound += o.PrunedBound
	s.Unresolved += o.Unresolved
	s.IntegralLeaves += o.IntegralLeaves
	s.Branched += o.Branched
	if o.MaxDepth > s.MaxDepth {
		s.MaxDepth = o.MaxDepth
	}
}

// Outcome is the result of Search.
type Outcome struct {
	// Value is the best objective found, or -1 when no integral node was reached.
	Value int

	// X is the assignment realizing Value (nil when Value is -1).
	X []int

	Status Status
	Stats  Stats
}

// Options configures Search.
//   - Workers: number of search goroutines (≤ 1 means sequential).
//   - Relaxer: relaxation engine; nil means the native simplex.
//   - Eps: integrality and bound tolerance.
//   - FrontierFactor: open nodes per worker before the parallel split.
//   - TimeLimit: optional budget on top of the context (0 = none).
type Options struct {
	Workers        int
	Relaxer        lp.Relaxer
	Eps            float64
	FrontierFactor int
	TimeLimit      time.Duration
}

// DefaultOptions returns a sequential native-simplex search.
func DefaultOptions() Options {
	return Options{
		Workers:        1,
		Relaxer:        nil,
		Eps:            1e-6,
		FrontierFactor: 4,
		TimeLimit:      0,
	}
}

func (o *Options) normalize() {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Relaxer == nil {
		o.Relaxer = lp.NewSimplex(lp.DefaultOptions())
	}
	if o.Eps <= 0 {
		o.Eps = 1e-6
	}
	if o.FrontierFactor < 1 {
		o.FrontierFactor = 4
	}
	if o.TimeLimit < 0 {
		o.TimeLimit = 0
	}
}
