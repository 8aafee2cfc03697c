package model

import (
	"errors"
	"fmt"
)

// ErrViolation is returned (wrapped in *ViolationError) when an assignment
// breaks a constraint.
var ErrViolation = errors.New("model: constraint violated")

// ErrAssignmentLength is returned when an assignment does not have one entry
// per variable.
var ErrAssignmentLength = errors.New("model: assignment length mismatch")

// ErrNotBinary is returned when an assignment entry is neither 0 nor 1.
var ErrNotBinary = errors.New("model: assignment is not binary")

// Sense is the direction of a constraint.
type Sense int

const (
	// LE is Σ x ≤ RHS.
	LE Sense = iota
	// GE is Σ x ≥ RHS.
	GE
)

func (s Sense) String() string {
	if s == GE {
		return ">="
	}

	return "<="
}

// Group identifies which family a constraint belongs to.
type Group int

const (
	RequesterGroup Group = iota // one unit per requester
	ProducerGroup               // producer capacity
	ExportGroup                 // supplying region export quota
	MinimumGroup                // receiving region minimum fulfillment
)

func (g Group) String() string {
	switch g {
	case RequesterGroup:
		return "requester"
	case ProducerGroup:
		return "producer"
	case ExportGroup:
		return "export"
	case MinimumGroup:
		return "minimum"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// Pair is a candidate (requester, producer) combination; one per variable.
type Pair struct {
	Requester int
	Producer  int
}

// Constraint is Σ_{j ∈ Vars} x_j Sense RHS.
type Constraint struct {
	Group Group
	Key   int // requester, producer or region ID, depending on Group
	Sense Sense
	RHS   int
	Vars  []int // ascending variable indices
}

// Model is the immutable relaxation-ready description of an instance.
// It is safe for concurrent reads.
type Model struct {
	// Pairs[j] is the candidate pair behind variable j.
	Pairs []Pair

	// Constraints lists requester rows, then producer, export and minimum rows,
	// each group ordered by Key.
	Constraints []Constraint

	// Requesters is T, the upper bound on any objective value.
	Requesters int
}

// NumVars returns the number of decision variables.
func (m *Model) NumVars() int { return len(m.Pairs) }

// Stats summarizes the model size.
type Stats struct {
	Vars        int
	Constraints int
	ByGroup     map[Group]int
	Nonzeros    int
}

// Stats reports model dimensions.
func (m *Model) Stats() Stats {
	st := Stats{Vars: len(m.Pairs), Constraints: len(m.Constraints), ByGroup: make(map[Group]int, 4)}
	for _, c := range m.Constraints {
		st.ByGroup[c.Group]++
		st.Nonzeros += len(c.Vars)
	}

	return st
}

// ViolationError names the first constraint an assignment breaks.
type ViolationError struct {
	Constraint Constraint
	LHS        int
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("model: %s constraint %d violated: %d %s %d does not hold",
		e.Constraint.Group, e.Constraint.Key, e.LHS, e.Constraint.Sense, e.Constraint.RHS)
}

// Unwrap lets errors.Is(err, ErrViolation) match.
func (e *ViolationError) Unwrap() error { return ErrViolation }
