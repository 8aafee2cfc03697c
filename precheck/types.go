package precheck

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilInstance is returned when Check is called without an instance.
var ErrNilInstance = errors.New("precheck: nil instance")

// Verdict is the outcome of Check.
type Verdict int

const (
	// PossiblyFeasible means every check passed.
	PossiblyFeasible Verdict = iota
	// Infeasible means no assignment can satisfy the instance.
	Infeasible
)

func (v Verdict) String() string {
	if v == Infeasible {
		return "infeasible"
	}

	return "possibly-feasible"
}

// Reason names the check that failed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoStock
	ReasonCapacity
	ReasonEligible
	ReasonRegionFlow
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoStock:
		return "no-stock"
	case ReasonCapacity:
		return "capacity"
	case ReasonEligible:
		return "eligible-requesters"
	case ReasonRegionFlow:
		return "region-flow"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Report explains a verdict. Region is 0 for instance-wide checks; Need and
// Have are the compared quantities.
type Report struct {
	Verdict Verdict
	Reason  Reason
	Region  int
	Need    int
	Have    int
}

// Feasible reports whether every check passed.
func (r Report) Feasible() bool { return r.Verdict == PossiblyFeasible }

func (r Report) String() string {
	if r.Feasible() {
		return r.Verdict.String()
	}
	if r.Region > 0 {
		return fmt.Sprintf("%s: %s in region %d (need %d, have %d)", r.Verdict, r.Reason, r.Region, r.Need, r.Have)
	}

	return fmt.Sprintf("%s: %s (need %d, have %d)", r.Verdict, r.Reason, r.Need, r.Have)
}

// Options configures Check.
//   - Ctx: cancellation for the flow check and the source of the logger
//     (logr.FromContextOrDiscard); nil means context.Background().
//   - RegionFlow: run check 4.
type Options struct {
	Ctx        context.Context
	RegionFlow bool
}

// DefaultOptions enables every check.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		RegionFlow: true,
	}
}

func (o *Options) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
}
