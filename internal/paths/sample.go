package paths

import "github.com/papapumpkin/graphstat/internal/graph"

// Rand is the random source used to draw node pairs. *math/rand/v2.Rand
// satisfies it; inject a seeded one for reproducible samples.
type Rand interface {
	IntN(n int) int
}

// Sample summarizes a batch of sampled shortest-path queries.
type Sample struct {
	Drawn     int // pairs drawn
	Reachable int // pairs with a path between them
	Total     int // sum of distances over reachable pairs
}

// Mean returns the average distance over reachable pairs, or 0 when no
// pair was reachable.
func (s Sample) Mean() float64 {
	if s.Reachable == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Reachable)
}

// Unreachable returns the number of drawn pairs with no path.
func (s Sample) Unreachable() int {
	return s.Drawn - s.Reachable
}

// SamplePaths draws n independent pairs of distinct nodes and measures
// the BFS distance of each. Pairs in different draws may repeat. A graph
// with fewer than two nodes yields an empty Sample.
func SamplePaths(g *graph.Graph, n int, rnd Rand) Sample {
	var s Sample
	nodes := g.Nodes()
	if n <= 0 || len(nodes) < 2 {
		return s
	}

	for range n {
		u, v := drawPair(nodes, rnd)
		s.Drawn++
		if d, ok := Distance(g, u, v); ok {
			s.Reachable++
			s.Total += d
		}
	}
	return s
}

// AveragePathLength estimates the average shortest-path length from n
// sampled pairs. Unreachable pairs are ignored. Returns 0 when n is zero
// or no sampled pair was reachable.
func AveragePathLength(g *graph.Graph, n int, rnd Rand) float64 {
	return SamplePaths(g, n, rnd).Mean()
}

// drawPair picks two distinct nodes uniformly without replacement.
func drawPair(nodes []int, rnd Rand) (int, int) {
	i := rnd.IntN(len(nodes))
	j := rnd.IntN(len(nodes) - 1)
	if j >= i {
		j++
	}
	return nodes[i], nodes[j]
}
