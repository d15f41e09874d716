// Package centrality scores the structural importance of every node in a
// graph: degree (local connectivity), closeness (inverse distance to the
// reachable component) and betweenness (share of shortest paths through
// the node). Every function is a pure read of the graph.
package centrality

import (
	"github.com/papapumpkin/graphstat/internal/graph"
	"github.com/papapumpkin/graphstat/internal/paths"
)

// Degree returns the neighbor count of every node.
func Degree(g *graph.Graph) map[int]int {
	scores := make(map[int]int, g.NodeCount())
	for _, id := range g.Nodes() {
		scores[id] = g.Degree(id)
	}
	return scores
}

// Closeness returns the closeness centrality of every node that can reach
// at least one other node:
//
//	C(s) = (r - 1) / D
//
// where r is the number of nodes reached from s (s included) and D is
// the sum of their distances from s. Normalization uses the size of the
// component reached from s, not the size of the whole graph. Isolated
// nodes (D = 0) have no entry.
func Closeness(g *graph.Graph) map[int]float64 {
	scores := make(map[int]float64, g.NodeCount())
	for _, s := range g.Nodes() {
		dist := paths.Distances(g, s)
		sum := 0
		for _, d := range dist {
			sum += d
		}
		if sum == 0 {
			continue
		}
		scores[s] = float64(len(dist)-1) / float64(sum)
	}
	return scores
}
