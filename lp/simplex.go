package lp

import "github.com/katalvlaran/allot/model"

// Simplex is the native dense two-phase primal simplex engine.
type Simplex struct {
	opts Options
}

// NewSimplex returns a native engine with normalized options.
func NewSimplex(opts Options) *Simplex {
	opts.normalize()

	return &Simplex{opts: opts}
}

// Relax implements Relaxer.
//
// Steps:
//  1. Substitute fixings (reduce); an obviously violated row is ErrInfeasible.
//  2. Build the tableau: one logical column per row (slack for ≤, surplus
//     for ≥) and one artificial column per ≥ row.
//  3. Phase 1 maximizes −Σ artificials; a negative optimum is ErrInfeasible.
//     Artificials still basic at zero are pivoted out where possible.
//  4. Phase 2 maximizes Σ x with artificial columns barred from entering.
//
// Complexity: O(pivots · rows · columns) time, O(rows · columns) memory.
func (s *Simplex) Relax(m *model.Model, b *model.Bounds) (Relaxation, error) {
	r, err := reduce(m, b)
	if err != nil {
		return Relaxation{}, err
	}
	if len(r.vars) == 0 {
		return r.expand(b, nil), nil
	}

	t := newTableau(r, s.opts)
	if err = t.phase1(); err != nil {
		return Relaxation{}, err
	}
	if err = t.phase2(); err != nil {
		return Relaxation{}, err
	}

	return r.expand(b, t.primal()), nil
}

// tableau stores the constraint rows densely, row-major, with the
// right-hand side in the last cell of each row. Columns are laid out as
// [x | logical (one per row) | artificial (one per ≥ row)].
type tableau struct {
	m, nx, ncols, w int
	nArt            int

	a     []float64 // m × w
	d     []float64 // reduced costs; d[ncols] holds the objective value
	basis []int     // basis[i] is the column basic in row i

	eps        float64
	limit      int
	blandAfter int
}

func newTableau(r *reduced, opts Options) *tableau {
	t := &tableau{m: len(r.rows), nx: len(r.vars), eps: opts.Eps, blandAfter: opts.BlandAfter}
	for _, rw := range r.rows {
		if rw.sense == model.GE {
			t.nArt++
		}
	}
	t.ncols = t.nx + t.m + t.nArt
	t.w = t.ncols + 1
	t.a = make([]float64, t.m*t.w)
	t.d = make([]float64, t.w)
	t.basis = make([]int, t.m)

	t.limit = opts.MaxIter
	if t.limit == 0 {
		t.limit = 20*(t.m+t.ncols) + 1000
	}

	k := 0
	for i, rw := range r.rows {
		row := t.a[i*t.w : (i+1)*t.w]
		for _, c := range rw.cols {
			row[c] = 1
		}
		row[t.ncols] = rw.rhs
		if rw.sense == model.LE {
			row[t.nx+i] = 1
			t.basis[i] = t.nx + i
			continue
		}
		art := t.nx + t.m + k
		row[t.nx+i] = -1
		row[art] = 1
		t.basis[i] = art
		k++
	}

	return t
}

func (t *tableau) isArtificial(col int) bool { return col >= t.nx+t.m }

func (t *tableau) phase1() error {
	if t.nArt == 0 {
		return nil
	}
	// c = −1 on artificials: d_j = Σ_i c_B(i)·a_ij − c_j.
	for i := 0; i < t.m; i++ {
		if !t.isArtificial(t.basis[i]) {
			continue
		}
		row := t.a[i*t.w : (i+1)*t.w]
		for j, v := range row {
			t.d[j] -= v
		}
	}
	for j := t.nx + t.m; j < t.ncols; j++ {
		t.d[j] += 1
	}

	if err := t.iterate(); err != nil {
		return err
	}
	if t.d[t.ncols] < -t.eps*float64(t.m+1) {
		return ErrInfeasible
	}

	// Degenerate artificials leave for the first usable column; a row with
	// no such column is redundant and keeps its zero artificial.
	for i := 0; i < t.m; i++ {
		if !t.isArtificial(t.basis[i]) {
			continue
		}
		for j := 0; j < t.nx+t.m; j++ {
			if abs(t.a[i*t.w+j]) > t.eps {
				t.pivot(i, j)
				break
			}
		}
	}

	return nil
}

func (t *tableau) phase2() error {
	for j := range t.d {
		t.d[j] = 0
	}
	for i := 0; i < t.m; i++ {
		if t.basis[i] >= t.nx {
			continue
		}
		row := t.a[i*t.w : (i+1)*t.w]
		for j, v := range row {
			t.d[j] += v
		}
	}
	for j := 0; j < t.nx; j++ {
		t.d[j] -= 1
	}

	return t.iterate()
}

// iterate pivots until no non-artificial column has a negative reduced cost.
func (t *tableau) iterate() error {
	var (
		hi         = t.nx + t.m
		degenerate int
	)
	for it := 0; ; it++ {
		if it >= t.limit {
			return ErrIterationLimit
		}

		e := -1
		if degenerate >= t.blandAfter {
			for j := 0; j < hi; j++ {
				if t.d[j] < -t.eps {
					e = j
					break
				}
			}
		} else {
			best := -t.eps
			for j := 0; j < hi; j++ {
				if t.d[j] < best {
					best, e = t.d[j], j
				}
			}
		}
		if e < 0 {
			return nil
		}

		r, ratio := t.leaving(e)
		if r < 0 {
			return ErrUnbounded
		}
		if ratio <= t.eps {
			degenerate++
		} else {
			degenerate = 0
		}
		t.pivot(r, e)
	}
}

// leaving runs the ratio test for entering column e. Ties leave on the row
// whose basic column index is lowest.
func (t *tableau) leaving(e int) (int, float64) {
	var (
		r    = -1
		best float64
	)
	for i := 0; i < t.m; i++ {
		aie := t.a[i*t.w+e]
		if aie <= t.eps {
			continue
		}
		ratio := t.a[i*t.w+t.ncols] / aie
		switch {
		case r < 0, ratio < best-t.eps:
			r, best = i, ratio
		case ratio <= best+t.eps && t.basis[i] < t.basis[r]:
			r = i
			if ratio < best {
				best = ratio
			}
		}
	}

	return r, best
}

func (t *tableau) pivot(r, e int) {
	pr := t.a[r*t.w : (r+1)*t.w]
	inv := 1 / pr[e]
	for j := range pr {
		pr[j] *= inv
	}
	pr[e] = 1
	if rhs := pr[t.ncols]; rhs < 0 && rhs > -t.eps*float64(t.m+1) {
		pr[t.ncols] = 0
	}

	for i := 0; i < t.m; i++ {
		if i == r {
			continue
		}
		row := t.a[i*t.w : (i+1)*t.w]
		f := row[e]
		if f == 0 {
			continue
		}
		for j, v := range pr {
			row[j] -= f * v
		}
		row[e] = 0
		if rhs := row[t.ncols]; rhs < 0 && rhs > -t.eps {
			row[t.ncols] = 0
		}
	}

	if f := t.d[e]; f != 0 {
		for j, v := range pr {
			t.d[j] -= f * v
		}
		t.d[e] = 0
	}
	t.basis[r] = e
}

// primal reads the basic x values.
func (t *tableau) primal() []float64 {
	x := make([]float64, t.nx)
	for i, c := range t.basis {
		if c < t.nx {
			x[c] = t.a[i*t.w+t.ncols]
		}
	}

	return x
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
