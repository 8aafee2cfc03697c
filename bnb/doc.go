// Package bnb finds an optimal 0/1 assignment for a model.Model by
// depth-first branch-and-bound over its linear relaxation.
//
// # Node evaluation
//
// Each node is the root model plus the branching decisions on a
// model.Bounds overlay; the overlay is pushed on the way down and popped on
// the way back, so a worker's memory grows with depth, never with tree size.
//
//  1. The relaxation is infeasible: prune.
//  2. The relaxed optimum is integral: it is a candidate; the shared
//     incumbent is raised if the candidate is better. Terminal leaf.
//  3. ⌊z + ε⌋ ≤ incumbent: prune by bound (the objective is a count, so
//     no integer refinement can beat the floor of the relaxed bound).
//  4. Otherwise branch on the fractional variable closest to 0.5, lowest
//     index on ties. Both children are relaxed first, and the one with the
//     higher bound is explored first; on equal bounds the child fixed to 1
//     goes first.
//
// The traversal is fully determined by those rules, so a sequential search
// visits the same nodes in the same order on every run.
//
// # Parallel search
//
// With Options.Workers > 1 the tree is opened breadth-first until the
// frontier holds about Workers × FrontierFactor open nodes. Workers
// (golang.org/x/sync/errgroup) claim frontier nodes through an atomic
// cursor, replay the node's fixings into a private overlay and run the
// depth-first search below it. The only shared mutable state is the
// incumbent (atomic read, mutex-guarded "raise if larger") and a dead-node
// counter of exhausted subtrees, which tells a finished search from an
// interrupted one. The optimum value is the same as the sequential search;
// the assignment realizing it may differ.
//
// # Cancellation
//
// The context (and Options.TimeLimit) is polled every 64 nodes. An
// interrupted search is not an error: it returns StatusCancelled with the
// best incumbent found so far.
//
// A relaxation that returns lp.ErrIterationLimit leaves its subtree
// unexplored (Stats.Unresolved). The search goes on and, once the tree is
// exhausted, reports StatusIterationLimit with the best incumbent, which is
// then feasible but not proven optimal.
//
// # Errors
//
// Any other relaxer error besides lp.ErrInfeasible (lp.ErrUnbounded, an
// engine failure) aborts the search and is returned wrapped.
package bnb
