package allot

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/allot/bnb"
	"github.com/katalvlaran/allot/instance"
	"github.com/katalvlaran/allot/model"
	"github.com/katalvlaran/allot/precheck"
)

// Infeasible is the value reported for infeasible or malformed instances.
const Infeasible = -1

var (
	// ErrNilInstance is returned by Solve without an instance.
	ErrNilInstance = errors.New("allot: nil instance")

	// ErrInvalidSolution is returned if the search produced an assignment
	// that breaks a constraint. It indicates a solver defect.
	ErrInvalidSolution = errors.New("allot: solver produced an invalid assignment")
)

// Status classifies a Result.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusMalformed
	StatusCancelled
	StatusError
	StatusIterationLimit
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusMalformed:
		return "malformed"
	case StatusCancelled:
		return "cancelled"
	case StatusError:
		return "error"
	case StatusIterationLimit:
		return "iteration-limit"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of one solve.
type Result struct {
	// Value is the number of satisfied requesters, or Infeasible.
	Value  int
	Status Status

	// Assignment lists the (requester, producer) pairs realizing Value.
	Assignment []model.Pair

	Precheck precheck.Report
	Model    model.Stats
	Search   bnb.Stats
	Elapsed  time.Duration

	// Err is set by SolveReader when Status is StatusMalformed or StatusError.
	Err error
}

// Observer receives every Result produced by Solve or SolveReader.
type Observer interface {
	Observe(Result)
}

// Options configures the pipeline.
//   - RegionFlow: enable the per-region max-flow precheck.
//   - Search: branch-and-bound settings (workers, relaxer, time limit).
//   - Decode: stream decoder for SolveReader; nil means instance.Parse.
//   - Observer: optional sink for results.
type Options struct {
	RegionFlow bool
	Search     bnb.Options
	Decode     instance.Decoder
	Observer   Observer
}

// DefaultOptions runs every precheck and a sequential native search.
func DefaultOptions() Options {
	return Options{
		RegionFlow: true,
		Search:     bnb.DefaultOptions(),
		Decode:     instance.Parse,
	}
}

func (o *Options) normalize() {
	if o.Decode == nil {
		o.Decode = instance.Parse
	}
}
