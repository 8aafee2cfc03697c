package model

// Free marks a variable that is not fixed by branching: it ranges over [0,1].
const Free int8 = -1

// Fixing records one branching decision.
type Fixing struct {
	Var   int
	Value int8 // 0 or 1
}

// Bounds is a branching overlay over a Model: an index-keyed override plus
// an undo trail. Fix pushes a decision and Undo pops the most recent one, so
// a depth-first search holds memory proportional to its depth.
// A Bounds value is owned by one search worker and is not safe for
// concurrent use.
type Bounds struct {
	fix   []int8
	trail []int
}

// NewBounds returns an overlay with all n variables free.
func NewBounds(n int) *Bounds {
	b := &Bounds{fix: make([]int8, n)}
	for i := range b.fix {
		b.fix[i] = Free
	}

	return b
}

// Len returns the number of variables covered.
func (b *Bounds) Len() int { return len(b.fix) }

// Value returns Free, 0 or 1 for variable j.
func (b *Bounds) Value(j int) int8 { return b.fix[j] }

// Depth returns the number of active fixings.
func (b *Bounds) Depth() int { return len(b.trail) }

// Fix pins free variable j to v (0 or 1). Fixing an already fixed variable
// panics: every branch must strictly shrink the search space.
func (b *Bounds) Fix(j int, v int8) {
	if b.fix[j] != Free {
		panic("model: variable already fixed")
	}
	b.fix[j] = v
	b.trail = append(b.trail, j)
}

// Undo releases the most recent fixing. It is a no-op on an empty trail.
func (b *Bounds) Undo() {
	if len(b.trail) == 0 {
		return
	}
	last := len(b.trail) - 1
	b.fix[b.trail[last]] = Free
	b.trail = b.trail[:last]
}

// Apply pushes a list of fixings in order.
func (b *Bounds) Apply(fs []Fixing) {
	for _, f := range fs {
		b.Fix(f.Var, f.Value)
	}
}

// Rewind undoes fixings until Depth() == depth.
func (b *Bounds) Rewind(depth int) {
	for len(b.trail) > depth {
		b.Undo()
	}
}

// Fixings returns the active decisions in the order they were made.
func (b *Bounds) Fixings() []Fixing {
	out := make([]Fixing, len(b.trail))
	for i, j := range b.trail {
		out[i] = Fixing{Var: j, Value: b.fix[j]}
	}

	return out
}
