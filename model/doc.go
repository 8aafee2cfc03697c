// Package model derives the 0/1 linear program of an allocation instance.
//
// Variables exist only for candidate pairs (requester, producer) where the
// producer is wanted by the requester and has positive capacity, so the model
// grows with the total length of the wish lists rather than with N×T.
// Variable indices are assigned in (requester ID, producer ID) order, which
// makes every downstream tie-break reproducible.
//
// Objective: maximize the number of variables set to 1.
//
// Constraint groups (all coefficients are 1):
//
//	Requester  Σ x[r,·]                      ≤ 1
//	Producer   Σ x[·,p]                      ≤ capacity(p)
//	Export     Σ x[r,p], region(p)=R≠region(r) ≤ quota(R)
//	Minimum    Σ x[r,·], region(r)=R          ≥ minimum(R)
//
// Rows that can never bind are omitted: empty requester, producer and export
// rows, and empty minimum rows whose requirement is zero. An empty minimum row
// with a positive requirement is kept; it makes the model infeasible, which is
// the correct answer.
//
// Bounds is the per-search-node overlay that fixes variables to 0 or 1 with
// an undo trail, so the Model itself is never copied or mutated by a search.
package model
