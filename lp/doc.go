// Package lp solves the linear relaxation of an allocation model under a set
// of branching decisions.
//
// Every binary variable of a model.Model is relaxed to the interval [0,1]
// unless it is fixed by the model.Bounds overlay, in which case it is
// substituted out before the linear program is formed:
//
//	fixed 0 → the column is removed
//	fixed 1 → the column is removed and every row it appears in loses one
//	          unit of right-hand side; the objective gains one
//
// After substitution a row that can no longer bind is dropped (a ≥ row whose
// requirement is met, a capacity/quota row whose budget exceeds the number of
// its free columns). Requester rows are always kept: each free variable occurs
// in exactly one of them with right-hand side at most 1, which is what bounds
// the variable from above, so no explicit x ≤ 1 rows are needed.
//
// # Engines
//
//	Simplex  dense two-phase primal simplex (default). Dantzig pricing with
//	         lowest-index ties, switching to Bland's rule after a run of
//	         degenerate pivots; ratio-test ties leave on the lowest basic
//	         column. Identical inputs give bit-identical outputs.
//	Gonum    the same reduced problem in standard form, solved by
//	         gonum.org/v1/gonum/optimize/convex/lp.Simplex.
//
// Both implement Relaxer, hold no per-call state and are safe for concurrent
// use by several search workers.
//
// # Errors
//
//	ErrInfeasible       the relaxed subproblem has no solution; so has every
//	                    integer refinement of it
//	ErrUnbounded        cannot happen for a well-formed model; reported rather
//	                    than hidden
//	ErrIterationLimit   the native engine hit Options.MaxIter
//	ErrUnknownEngine    New was given an engine name it does not know
package lp
