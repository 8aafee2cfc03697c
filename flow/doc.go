// Package flow implements Dinic's maximum-flow algorithm on a compact,
// integer-capacity network addressed by dense node indices.
//
// The allocation engine uses it to bound how many requesters of one region
// can possibly be served when that region is considered in isolation
// (see package precheck), so the network is built once per question and
// thrown away; there is no string-keyed graph layer in between.
//
// # API
//
//	g := flow.NewNetwork(n)               // nodes 0..n-1
//	e, err := g.AddEdge(u, v, capacity)   // returns an edge handle
//	max, err := flow.Dinic(g, s, t, flow.DefaultOptions())
//	g.Flow(e)                             // flow routed over edge e
//	g.Reset()                             // zero all flows, keep topology
//
// # Algorithm
//
//   - Method: BFS level graph + blocking flow via DFS with per-node edge
//     iterators (current-arc optimization).
//   - Time:   O(V²·E) in general; O(E·√V) on unit-capacity networks, which is
//     what the bipartite requester side of the precheck network is.
//   - Memory: O(V + E).
//
// # Errors
//
//	ErrSourceNotFound / ErrSinkNotFound  - endpoint index outside 0..n-1
//	ErrSameEndpoints                     - source equals sink
//	EdgeError                            - negative capacity or bad endpoint in AddEdge
//	context.Canceled / DeadlineExceeded  - if Options.Ctx is cancelled
package flow
