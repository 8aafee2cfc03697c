package flow_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/allot/flow"
)

// buildBipartite constructs s→L(capacity 1..maxCap)→R(1)→t with roughly p
// probability of an edge between a left and a right node.
func buildBipartite(left, right int, p float64, maxCap int64, seed int64) *flow.Network {
	r := rand.New(rand.NewSource(seed)) // deterministic seed for reproducibility
	s, t := 0, 1
	g := flow.NewNetwork(2 + left + right)
	for i := 0; i < left; i++ {
		_, _ = g.AddEdge(s, 2+i, 1+r.Int63n(maxCap))
	}
	for j := 0; j < right; j++ {
		_, _ = g.AddEdge(2+left+j, t, 1)
	}
	for i := 0; i < left; i++ {
		for j := 0; j < right; j++ {
			if r.Float64() < p {
				_, _ = g.AddEdge(2+i, 2+left+j, 1)
			}
		}
	}

	return g
}

// BenchmarkDinicBipartite measures Dinic on allocation-shaped networks.
func BenchmarkDinicBipartite(b *testing.B) {
	cases := []struct {
		name        string
		left, right int
		p           float64
	}{
		{"Small", 20, 200, 0.05},
		{"Medium", 100, 2000, 0.01},
	}
	for _, tc := range cases {
		g := buildBipartite(tc.left, tc.right, tc.p, 10, 42)
		b.Run(tc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				g.Reset()
				if _, err := flow.Dinic(g, 0, 1, flow.DefaultOptions()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
