// Package graph provides the immutable undirected graph that every
// analysis pass reads from. A Graph is built once from an edge list and
// never mutated afterward, so it is safe to share across goroutines.
package graph

import (
	"slices"
)

// Edge is an undirected edge between two node identifiers.
type Edge struct {
	U, V int
}

// Graph is an undirected, unweighted graph stored as an adjacency list.
// Node identifiers are non-negative integers. Neighbor lists are kept
// sorted ascending so traversal order is deterministic.
type Graph struct {
	// adjacency maps node ID → sorted neighbor IDs. The relation is
	// symmetric: v appears in adjacency[u] iff u appears in adjacency[v].
	adjacency map[int][]int
	nodes     []int
	edges     int
}

// New builds a Graph from the given edges. Each edge is inserted in both
// directions; duplicate edges collapse because neighbors form a set. A
// self-loop registers its node but contributes no edge.
func New(edges []Edge) *Graph {
	sets := make(map[int]map[int]struct{})
	ensure := func(id int) map[int]struct{} {
		s, ok := sets[id]
		if !ok {
			s = make(map[int]struct{})
			sets[id] = s
		}
		return s
	}
	for _, e := range edges {
		su := ensure(e.U)
		sv := ensure(e.V)
		if e.U == e.V {
			continue
		}
		su[e.V] = struct{}{}
		sv[e.U] = struct{}{}
	}
	return freeze(sets)
}

// freeze converts the mutable set representation into sorted slices.
func freeze(sets map[int]map[int]struct{}) *Graph {
	g := &Graph{
		adjacency: make(map[int][]int, len(sets)),
		nodes:     make([]int, 0, len(sets)),
	}
	degreeSum := 0
	for id, set := range sets {
		nbrs := make([]int, 0, len(set))
		for n := range set {
			nbrs = append(nbrs, n)
		}
		slices.Sort(nbrs)
		g.adjacency[id] = nbrs
		g.nodes = append(g.nodes, id)
		degreeSum += len(nbrs)
	}
	slices.Sort(g.nodes)
	g.edges = degreeSum / 2
	return g
}

// Neighbors returns the neighbors of node in ascending order. An absent
// node has no neighbors and yields nil. The returned slice is shared with
// the graph and must not be modified.
func (g *Graph) Neighbors(node int) []int {
	return g.adjacency[node]
}

// HasNode reports whether node is part of the graph.
func (g *Graph) HasNode(node int) bool {
	_, ok := g.adjacency[node]
	return ok
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	_, found := slices.BinarySearch(g.adjacency[u], v)
	return found
}

// Degree returns the number of neighbors of node, or 0 if it is absent.
func (g *Graph) Degree(node int) int {
	return len(g.adjacency[node])
}

// Nodes returns all node IDs in ascending order. The caller owns the
// returned slice.
func (g *Graph) Nodes() []int {
	return slices.Clone(g.nodes)
}

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}
