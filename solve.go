package allot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/allot/bnb"
	"github.com/katalvlaran/allot/instance"
	"github.com/katalvlaran/allot/internal/logging"
	"github.com/katalvlaran/allot/model"
	"github.com/katalvlaran/allot/precheck"
)

// Solve computes the optimal allocation for in.
//
// Steps:
//  1. precheck.Check; a rejected instance returns StatusInfeasible at once.
//  2. model.Build.
//  3. bnb.Search with opts.Search.
//  4. Verify the incumbent and map it back to (requester, producer) pairs.
//
// Errors: ErrNilInstance, ErrInvalidSolution, or a wrapped precheck/search
// error. Infeasibility, cancellation and an exhausted pivot budget are
// Results, not errors.
func Solve(ctx context.Context, in *instance.Instance, opts Options) (Result, error) {
	start := time.Now()
	if in == nil {
		return Result{Value: Infeasible, Status: StatusError}, ErrNilInstance
	}
	opts.normalize()
	log := logr.FromContextOrDiscard(ctx).WithName("allot")

	rep, err := precheck.Check(in, precheck.Options{Ctx: ctx, RegionFlow: opts.RegionFlow})
	if err != nil {
		if ctx.Err() != nil {
			res := Result{Value: Infeasible, Status: StatusCancelled, Elapsed: time.Since(start)}
			opts.observe(res)
			return res, nil
		}
		return Result{Value: Infeasible, Status: StatusError}, fmt.Errorf("allot: precheck: %w", err)
	}
	if !rep.Feasible() {
		res := Result{Value: Infeasible, Status: StatusInfeasible, Precheck: rep, Elapsed: time.Since(start)}
		opts.observe(res)
		return res, nil
	}

	m := model.Build(in)
	st := m.Stats()
	log.V(logging.DEBUG).Info("model built",
		"vars", st.Vars, "constraints", st.Constraints, "nonzeros", st.Nonzeros)

	out, err := bnb.Search(ctx, m, opts.Search)
	if err != nil {
		return Result{Value: Infeasible, Status: StatusError, Precheck: rep, Model: st}, fmt.Errorf("allot: %w", err)
	}

	res := Result{
		Value:    out.Value,
		Precheck: rep,
		Model:    st,
		Search:   out.Stats,
	}
	switch out.Status {
	case bnb.StatusOptimal:
		res.Status = StatusOptimal
	case bnb.StatusCancelled:
		res.Status = StatusCancelled
	case bnb.StatusIterationLimit:
		res.Status = StatusIterationLimit
	default:
		res.Status = StatusInfeasible
	}
	if out.Value >= 0 {
		if err = m.Verify(out.X); err != nil {
			return Result{Value: Infeasible, Status: StatusError, Precheck: rep, Model: st},
				fmt.Errorf("%w: %w", ErrInvalidSolution, err)
		}
		res.Assignment = m.Assignment(out.X)
	}
	res.Elapsed = time.Since(start)
	opts.observe(res)

	return res, nil
}

// SolveReader decodes r with opts.Decode and solves it. It never returns an
// error: failures become Value = Infeasible with Status and Err set.
func SolveReader(ctx context.Context, r io.Reader, opts Options) Result {
	start := time.Now()
	opts.normalize()
	log := logr.FromContextOrDiscard(ctx).WithName("allot")

	in, err := opts.Decode(r)
	if err != nil {
		log.V(logging.DEBUG).Info("input rejected", "error", err.Error())
		res := Result{Value: Infeasible, Status: StatusMalformed, Err: err, Elapsed: time.Since(start)}
		opts.observe(res)
		return res
	}

	// Solve reports to the observer itself on success.
	res, err := Solve(ctx, in, opts)
	if err != nil {
		status := StatusError
		if errors.Is(err, instance.ErrMalformed) {
			status = StatusMalformed
		}
		log.Error(err, "solve failed")
		res = Result{Value: Infeasible, Status: status, Err: err, Precheck: res.Precheck, Model: res.Model,
			Elapsed: time.Since(start)}
		opts.observe(res)
	}

	return res
}

func (o *Options) observe(res Result) {
	if o.Observer != nil {
		o.Observer.Observe(res)
	}
}
