package flow

// arc is one direction of a residual pair; arcs[i^1] is its reverse.
type arc struct {
	to   int
	cap  int64 // original capacity (0 for reverse arcs)
	flow int64 // current flow; may be negative on reverse arcs
}

// Network is a directed flow network over nodes 0..n-1.
// It is not safe for concurrent mutation.
type Network struct {
	adj  [][]int // adj[u] = indices into arcs leaving u
	arcs []arc
}

// NewNetwork returns an empty network with n nodes.
func NewNetwork(n int) *Network {
	return &Network{adj: make([][]int, n)}
}

// Nodes returns the number of nodes.
func (g *Network) Nodes() int { return len(g.adj) }

// AddEdge adds u→v with the given capacity and returns its handle.
// Parallel edges are allowed and behave as their sum; self-loops are
// accepted but never carry flow.
func (g *Network) AddEdge(u, v int, capacity int64) (int, error) {
	if capacity < 0 || u < 0 || v < 0 || u >= len(g.adj) || v >= len(g.adj) {
		return -1, EdgeError{From: u, To: v, Cap: capacity}
	}
	id := len(g.arcs)
	g.arcs = append(g.arcs, arc{to: v, cap: capacity}, arc{to: u})
	g.adj[u] = append(g.adj[u], id)
	g.adj[v] = append(g.adj[v], id+1)

	return id, nil
}

// Flow returns the flow currently routed over the edge handle e.
func (g *Network) Flow(e int) int64 { return g.arcs[e].flow }

// Reset zeroes all flows while keeping the topology.
func (g *Network) Reset() {
	for i := range g.arcs {
		g.arcs[i].flow = 0
	}
}

// residual is the remaining capacity of arc i.
func (g *Network) residual(i int) int64 { return g.arcs[i].cap - g.arcs[i].flow }

// push routes f units over arc i and cancels them on its reverse.
func (g *Network) push(i int, f int64) {
	g.arcs[i].flow += f
	g.arcs[i^1].flow -= f
}
