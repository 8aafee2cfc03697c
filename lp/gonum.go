package lp

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	golp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/allot/model"
)

// Gonum solves the reduced relaxation with gonum's simplex.
// Degenerate optima may differ from the native engine in X but never in
// Objective.
type Gonum struct {
	opts Options
}

// NewGonum returns a gonum-backed engine.
func NewGonum(opts Options) *Gonum {
	opts.normalize()

	return &Gonum{opts: opts}
}

// Relax implements Relaxer.
//
// The reduced problem max Σx, A_le·x ≤ b_le, A_ge·x ≥ b_ge, x ≥ 0 becomes
//
//	minimize −1ᵀx  s.t.  [A_le  I  0] [x s t]ᵀ = b_le
//	                     [A_ge  0 −I]          = b_ge,  x, s, t ≥ 0
//
// which always has full row rank thanks to the logical block.
func (g *Gonum) Relax(m *model.Model, b *model.Bounds) (Relaxation, error) {
	r, err := reduce(m, b)
	if err != nil {
		return Relaxation{}, err
	}
	if len(r.vars) == 0 {
		return r.expand(b, nil), nil
	}

	var (
		nx   = len(r.vars)
		rows = len(r.rows)
		c    = make([]float64, nx+rows)
		A    = mat.NewDense(rows, nx+rows, nil)
		rhs  = make([]float64, rows)
	)
	for j := 0; j < nx; j++ {
		c[j] = -1
	}
	for i, rw := range r.rows {
		for _, col := range rw.cols {
			A.Set(i, col, 1)
		}
		if rw.sense == model.LE {
			A.Set(i, nx+i, 1)
		} else {
			A.Set(i, nx+i, -1)
		}
		rhs[i] = rw.rhs
	}

	_, x, err := golp.Simplex(c, A, rhs, 0, nil)
	switch {
	case errors.Is(err, golp.ErrInfeasible):
		return Relaxation{}, ErrInfeasible
	case errors.Is(err, golp.ErrUnbounded):
		return Relaxation{}, ErrUnbounded
	case err != nil:
		return Relaxation{}, fmt.Errorf("lp: gonum simplex: %w", err)
	}

	return r.expand(b, x[:nx]), nil
}
