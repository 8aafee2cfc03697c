package model

// Verify checks a 0/1 assignment (one entry per variable) against every
// constraint and returns the first violation as a *ViolationError.
//
// Complexity: O(nonzeros).
func (m *Model) Verify(x []int) error {
	if len(x) != len(m.Pairs) {
		return ErrAssignmentLength
	}
	for _, v := range x {
		if v != 0 && v != 1 {
			return ErrNotBinary
		}
	}
	for _, c := range m.Constraints {
		lhs := 0
		for _, j := range c.Vars {
			lhs += x[j]
		}
		if (c.Sense == LE && lhs > c.RHS) || (c.Sense == GE && lhs < c.RHS) {
			return &ViolationError{Constraint: c, LHS: lhs}
		}
	}

	return nil
}

// Value returns the objective of an assignment (the number of ones).
func (m *Model) Value(x []int) int {
	total := 0
	for _, v := range x {
		total += v
	}

	return total
}

// Assignment maps an assignment back to the candidate pairs set to 1,
// in variable order.
func (m *Model) Assignment(x []int) []Pair {
	var out []Pair
	for j, v := range x {
		if v == 1 {
			out = append(out, m.Pairs[j])
		}
	}

	return out
}
