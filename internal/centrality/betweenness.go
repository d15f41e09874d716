package centrality

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/graphstat/internal/graph"
)

// Betweenness computes betweenness centrality for all nodes using
// Brandes' algorithm. Each source contributes the dependency of every
// other node it reaches; because the graph is undirected every unordered
// pair {s, t} is counted once from s and once from t, so the accumulated
// totals are halved. Every node of the graph has an entry.
func Betweenness(g *graph.Graph) map[int]float64 {
	cb := zeroScores(g)
	for _, s := range g.Nodes() {
		brandesBFS(g, s).accumulate(func(w int, delta float64) {
			cb[w] += delta
		})
	}
	halve(cb)
	return cb
}

// BetweennessParallel computes the same scores as Betweenness with the
// source loop spread over workers goroutines. Each worker sums into a
// private accumulator; accumulators are merged once all workers finish.
// The context is checked between sources. workers <= 1 runs sequentially.
func BetweennessParallel(ctx context.Context, g *graph.Graph, workers int) (map[int]float64, error) {
	nodes := g.Nodes()
	if workers <= 1 || len(nodes) < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Betweenness(g), nil
	}
	if workers > len(nodes) {
		workers = len(nodes)
	}

	partials := make([]map[int]float64, workers)
	eg, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		eg.Go(func() error {
			local := make(map[int]float64)
			for i := w; i < len(nodes); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				brandesBFS(g, nodes[i]).accumulate(func(v int, delta float64) {
					local[v] += delta
				})
			}
			partials[w] = local
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	cb := zeroScores(g)
	for _, local := range partials {
		for id, v := range local {
			cb[id] += v
		}
	}
	halve(cb)
	return cb, nil
}

// SourceDependencies returns the raw dependency of source s on every
// other node it reaches, before any halving. Summed over all sources
// these equal twice the values reported by Betweenness.
func SourceDependencies(g *graph.Graph, s int) map[int]float64 {
	deps := make(map[int]float64)
	brandesBFS(g, s).accumulate(func(w int, delta float64) {
		deps[w] = delta
	})
	return deps
}

// sourceState is the working set for one Brandes source. It is allocated
// per source and never shared, so sources can be processed concurrently.
type sourceState struct {
	source int
	stack  []int           // nodes in BFS discovery order
	dist   map[int]int     // hop distance from source
	sigma  map[int]float64 // number of shortest paths from source
	pred   map[int][]int   // predecessors on shortest paths
}

// brandesBFS performs the path-counting phase of Brandes' algorithm from
// source s.
func brandesBFS(g *graph.Graph, s int) *sourceState {
	st := &sourceState{
		source: s,
		dist:   map[int]int{s: 0},
		sigma:  map[int]float64{s: 1},
		pred:   make(map[int][]int),
	}

	queue := []int{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		st.stack = append(st.stack, v)

		dv := st.dist[v]
		for _, w := range g.Neighbors(v) {
			dw, seen := st.dist[w]
			if !seen {
				dw = dv + 1
				st.dist[w] = dw
				queue = append(queue, w)
			}
			if dw == dv+1 {
				st.sigma[w] += st.sigma[v]
				st.pred[w] = append(st.pred[w], v)
			}
		}
	}
	return st
}

// accumulate performs the back-propagation phase, popping nodes in
// reverse discovery order so every successor of w is final before w. emit
// receives the dependency of the source on each reached node w != source.
func (st *sourceState) accumulate(emit func(w int, delta float64)) {
	delta := make(map[int]float64, len(st.stack))
	for i := len(st.stack) - 1; i >= 0; i-- {
		w := st.stack[i]
		for _, v := range st.pred[w] {
			delta[v] += (st.sigma[v] / st.sigma[w]) * (1 + delta[w])
		}
		if w != st.source {
			emit(w, delta[w])
		}
	}
}

func zeroScores(g *graph.Graph) map[int]float64 {
	cb := make(map[int]float64, g.NodeCount())
	for _, id := range g.Nodes() {
		cb[id] = 0
	}
	return cb
}

func halve(cb map[int]float64) {
	for id := range cb {
		cb[id] /= 2
	}
}
