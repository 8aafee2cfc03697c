package lp

import "github.com/katalvlaran/allot/model"

// row is one surviving constraint over reduced columns.
type row struct {
	sense model.Sense
	rhs   float64
	cols  []int
}

// reduced is the linear program left after substituting fixed variables.
type reduced struct {
	base int   // variables fixed to 1
	vars []int // vars[c] is the model variable behind reduced column c
	rows []row
}

// reduce substitutes the fixings of b into m. It returns ErrInfeasible when
// a row is violated by the fixings alone or cannot be met by its free columns.
//
// Complexity: O(nonzeros).
func reduce(m *model.Model, b *model.Bounds) (*reduced, error) {
	var (
		n     = m.NumVars()
		colOf = make([]int, n)
		r     = &reduced{}
	)
	for j := 0; j < n; j++ {
		switch b.Value(j) {
		case model.Free:
			colOf[j] = len(r.vars)
			r.vars = append(r.vars, j)
		case 1:
			colOf[j] = -1
			r.base++
		default:
			colOf[j] = -1
		}
	}

	for _, c := range m.Constraints {
		rhs := c.RHS
		var cols []int
		for _, j := range c.Vars {
			switch b.Value(j) {
			case model.Free:
				cols = append(cols, colOf[j])
			case 1:
				rhs--
			}
		}

		if c.Sense == model.LE {
			if rhs < 0 {
				return nil, ErrInfeasible
			}
			if len(cols) == 0 {
				continue
			}
			if c.Group != model.RequesterGroup && rhs >= len(cols) {
				continue
			}
		} else {
			if rhs <= 0 {
				continue
			}
			if len(cols) < rhs {
				return nil, ErrInfeasible
			}
		}
		r.rows = append(r.rows, row{sense: c.Sense, rhs: float64(rhs), cols: cols})
	}

	return r, nil
}

// expand maps reduced column values back onto every model variable.
func (r *reduced) expand(b *model.Bounds, xr []float64) Relaxation {
	x := make([]float64, b.Len())
	for j := range x {
		if b.Value(j) == 1 {
			x[j] = 1
		}
	}
	obj := float64(r.base)
	for c, j := range r.vars {
		v := xr[c]
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		x[j] = v
		obj += v
	}

	return Relaxation{Objective: obj, X: x}
}
