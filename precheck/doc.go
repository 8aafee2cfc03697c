// Package precheck rejects allocation instances that cannot have a feasible
// assignment, before any model is built.
//
// Checks 2 to 4 are necessary conditions. Passing does not mean an assignment
// exists; failing means none does, so the caller may report infeasibility
// and skip the search entirely. Check 1 is part of the input contract: an
// instance that declares producers and requesters but has no stock at all is
// infeasible even when every minimum is 0.
//
// # Checks (in order, stopping at the first failure)
//
//  1. NoStock:    no producer has stock, and either some region has a positive
//     minimum or the instance has both producers and requesters.
//  2. Capacity:   total stock is below the sum of all regional minimums.
//  3. Eligible:   a region has fewer requesters with a non-empty wish list
//     than its minimum.
//  4. RegionFlow: considered alone, a region cannot receive its minimum.
//     For region R the network is
//
//     source ──quota_S──▶ hub_S ──cap_p──▶ p   (p in S ≠ R)
//     source ──────────────cap_p────────▶ p   (p in R)
//     p ──1──▶ r (r in R wants p) ──1──▶ sink
//
//     and its max-flow (flow.Dinic) is the most units R could ever get.
//     Other regions' demands only shrink that, so a max-flow below min_R
//     proves infeasibility. Enabled by Options.RegionFlow.
//
// Checks 1 to 3 are O(N + M + T); check 4 is one Dinic run per region with a
// positive minimum, on a network of O(N + M + T_R) nodes and O(Σ|Wants|) arcs.
package precheck
