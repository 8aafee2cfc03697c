package flow

import "math"

// Dinic computes the maximum flow from source to sink in g using Dinic's
// algorithm (level graph + blocking flows). Flows are left on g, so the
// caller can inspect them with Flow; call Reset before reusing g.
//
// Steps:
//  1. Normalize options and validate endpoints (O(1)).
//  2. Repeat until the sink is unreachable in the residual network:
//     a. Check for cancellation.
//     b. BFS from the source to assign levels (O(V + E)).
//     c. DFS pushes along level-increasing arcs, advancing a per-node arc
//     iterator so every arc is discarded at most once per phase,
//     optionally rebuilding levels every LevelRebuildInterval augmentations.
//
// Complexity:
//
//	Time:   O(V²·E); O(E·√V) on unit-capacity networks.
//	Memory: O(V) for levels and iterators on top of the network itself.
func Dinic(g *Network, source, sink int, opts Options) (maxFlow int64, err error) {
	// 1) Normalize options and validate endpoints
	opts.normalize()
	ctx := opts.Ctx

	n := g.Nodes()
	if source < 0 || source >= n {
		return 0, ErrSourceNotFound
	}
	if sink < 0 || sink >= n {
		return 0, ErrSinkNotFound
	}
	if source == sink {
		return 0, ErrSameEndpoints
	}

	level := make([]int, n)
	iter := make([]int, n)
	queue := make([]int, 0, n)

	augmentCount := 0
	for {
		// 2a) Cancellation check before BFS
		if err = ctx.Err(); err != nil {
			return maxFlow, err
		}

		// 2b) BFS to compute levels
		for i := range level {
			level[i] = -1
		}
		queue = append(queue[:0], source)
		level[source] = 0
		for i := 0; i < len(queue); i++ {
			u := queue[i]
			for _, a := range g.adj[u] {
				v := g.arcs[a].to
				if level[v] < 0 && g.residual(a) > 0 {
					level[v] = level[u] + 1
					queue = append(queue, v)
				}
			}
		}
		if level[sink] < 0 {
			break
		}

		// 2c) Blocking flow
		for i := range iter {
			iter[i] = 0
		}
		for {
			if err = ctx.Err(); err != nil {
				return maxFlow, err
			}
			pushed := g.dfsPush(level, iter, source, sink, math.MaxInt64)
			if pushed == 0 {
				break
			}
			maxFlow += pushed
			augmentCount++
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	return maxFlow, nil
}

// dfsPush sends up to available units from u towards sink along the level
// graph and returns the amount actually sent.
func (g *Network) dfsPush(level, iter []int, u, sink int, available int64) int64 {
	if u == sink {
		return available
	}
	for ; iter[u] < len(g.adj[u]); iter[u]++ {
		a := g.adj[u][iter[u]]
		v := g.arcs[a].to
		res := g.residual(a)
		if res <= 0 || level[v] != level[u]+1 {
			continue
		}
		send := available
		if res < send {
			send = res
		}
		if pushed := g.dfsPush(level, iter, v, sink, send); pushed > 0 {
			g.push(a, pushed)

			return pushed
		}
	}

	return 0
}
