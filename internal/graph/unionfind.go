package graph

// UnionFind implements a disjoint-set (union-find) data structure with
// path compression and union by rank over integer node IDs.
type UnionFind struct {
	parent map[int]int
	rank   map[int]int
}

// NewUnionFind creates an empty UnionFind.
func NewUnionFind() *UnionFind {
	return &UnionFind{
		parent: make(map[int]int),
		rank:   make(map[int]int),
	}
}

// Add inserts x as its own singleton set. Adding an existing element is
// a no-op.
func (uf *UnionFind) Add(x int) {
	if _, ok := uf.parent[x]; ok {
		return
	}
	uf.parent[x] = x
	uf.rank[x] = 0
}

// Find returns the representative of the set containing x, auto-adding x
// as a singleton if it is unknown.
func (uf *UnionFind) Find(x int) int {
	if _, ok := uf.parent[x]; !ok {
		uf.Add(x)
		return x
	}
	if uf.parent[x] != x {
		uf.parent[x] = uf.Find(uf.parent[x]) // path compression
	}
	return uf.parent[x]
}

// Union merges the sets containing x and y.
func (uf *UnionFind) Union(x, y int) {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
}

// Groups returns the disjoint sets keyed by representative. Member order
// is not guaranteed.
func (uf *UnionFind) Groups() map[int][]int {
	groups := make(map[int][]int)
	for x := range uf.parent {
		root := uf.Find(x)
		groups[root] = append(groups[root], x)
	}
	return groups
}
