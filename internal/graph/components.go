package graph

import (
	"slices"
	"sort"
)

// Components partitions the graph into connected components using
// Union-Find. Members of each component are sorted ascending. Components
// are ordered by size descending, with the smallest member ID as
// tiebreaker so the result is deterministic.
func (g *Graph) Components() [][]int {
	if len(g.nodes) == 0 {
		return nil
	}

	uf := NewUnionFind()
	for _, id := range g.nodes {
		uf.Add(id)
	}
	for u, nbrs := range g.adjacency {
		for _, v := range nbrs {
			if u < v {
				uf.Union(u, v)
			}
		}
	}

	groups := uf.Groups()
	comps := make([][]int, 0, len(groups))
	for _, members := range groups {
		slices.Sort(members)
		comps = append(comps, members)
	}
	sort.Slice(comps, func(i, j int) bool {
		if len(comps[i]) != len(comps[j]) {
			return len(comps[i]) > len(comps[j])
		}
		return comps[i][0] < comps[j][0]
	})
	return comps
}

// IsolatedNodes returns the nodes that have no neighbors, ascending.
func (g *Graph) IsolatedNodes() []int {
	var isolated []int
	for _, id := range g.nodes {
		if len(g.adjacency[id]) == 0 {
			isolated = append(isolated, id)
		}
	}
	return isolated
}

// MostConnected returns the node with the highest degree. Ties go to the
// lowest node ID. ok is false for an empty graph.
func (g *Graph) MostConnected() (node, degree int, ok bool) {
	for _, id := range g.nodes {
		d := len(g.adjacency[id])
		if !ok || d > degree {
			node, degree, ok = id, d, true
		}
	}
	return node, degree, ok
}

// AverageDegree returns the mean number of neighbors per node, or 0 for
// an empty graph.
func (g *Graph) AverageDegree() float64 {
	if len(g.nodes) == 0 {
		return 0
	}
	return float64(2*g.edges) / float64(len(g.nodes))
}
