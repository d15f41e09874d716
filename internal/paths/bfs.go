// Package paths answers unweighted shortest-path queries over a graph:
// point-to-point breadth-first distance, full single-source distance
// maps, and a sampled estimate of the average shortest-path length.
package paths

import "github.com/papapumpkin/graphstat/internal/graph"

// Distance returns the geodesic distance from start to goal using
// breadth-first search. ok is false when goal is unreachable from start.
// Distance(g, x, x) is (0, true) and adjacent nodes are (1, true), both
// without a search.
func Distance(g *graph.Graph, start, goal int) (dist int, ok bool) {
	if start == goal {
		return 0, true
	}
	if g.HasEdge(start, goal) {
		return 1, true
	}

	visited := map[int]int{start: 0}
	queue := []int{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		d := visited[node]
		if node == goal {
			return d, true
		}
		for _, n := range g.Neighbors(node) {
			if _, seen := visited[n]; !seen {
				visited[n] = d + 1
				queue = append(queue, n)
			}
		}
	}
	return 0, false
}

// Distances runs a full breadth-first search from start and returns the
// distance to every node it reaches, including start itself at 0.
func Distances(g *graph.Graph, start int) map[int]int {
	dist := map[int]int{start: 0}
	queue := []int{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		d := dist[node]
		for _, n := range g.Neighbors(node) {
			if _, seen := dist[n]; !seen {
				dist[n] = d + 1
				queue = append(queue, n)
			}
		}
	}
	return dist
}
