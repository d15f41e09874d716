// Package rank orders centrality score maps into top-N lists.
package rank

import (
	"cmp"
	"slices"
)

// Entry is one node's score in a ranking.
type Entry[T cmp.Ordered] struct {
	Node  int `json:"node" toml:"node"`
	Score T   `json:"score" toml:"score"`
}

// Top returns the n highest-scoring entries, sorted by score descending
// with ascending node ID as tiebreaker. n <= 0 yields an empty slice; n
// larger than the map returns every entry.
func Top[T cmp.Ordered](scores map[int]T, n int) []Entry[T] {
	if n <= 0 {
		return []Entry[T]{}
	}
	entries := make([]Entry[T], 0, len(scores))
	for node, score := range scores {
		entries = append(entries, Entry[T]{Node: node, Score: score})
	}
	slices.SortFunc(entries, func(a, b Entry[T]) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Node, b.Node)
	})
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
