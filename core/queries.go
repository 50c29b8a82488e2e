// This file implements read-only structural queries: counts, degrees,
// adjacency lookups and the deterministic link walk.

package core

import "sort"

// NodeCount returns the number of nodes.
// Complexity: O(1).
func (g *Graph) NodeCount() int {
	return len(g.adj)
}

// LinkCount returns the number of undirected links.
// Complexity: O(1).
func (g *Graph) LinkCount() int {
	return g.linkCount
}

// HasNode reports whether id is a valid node id.
// Complexity: O(1).
func (g *Graph) HasNode(id NodeID) bool {
	return int(id) < len(g.adj)
}

// Degree returns the number of links touching id.
// Complexity: O(1).
func (g *Graph) Degree(id NodeID) (int, error) {
	if !g.HasNode(id) {
		return 0, ErrNodeNotFound
	}

	return len(g.adj[id]), nil
}

// AvgNodeDegree returns the mean node degree, 0 for an empty graph.
// Complexity: O(1).
func (g *Graph) AvgNodeDegree() float64 {
	if len(g.adj) == 0 {
		return 0
	}

	return float64(2*g.linkCount) / float64(len(g.adj))
}

// Neighbors returns the ascending neighbor list of id. The returned
// slice is the graph's own storage: callers must not mutate it and must
// not hold it across topology edits.
// Complexity: O(1).
func (g *Graph) Neighbors(id NodeID) []NodeID {
	if !g.HasNode(id) {
		return nil
	}

	return g.adj[id]
}

// HasLink reports whether the undirected link a—b exists.
// Complexity: O(log degree).
func (g *Graph) HasLink(a, b NodeID) bool {
	return g.HasNode(a) && g.HasNode(b) && g.hasNeighbor(a, b)
}

// EachLink calls fn once per undirected link with a < b, in ascending
// (a, b) order. The deterministic order is what MST tie-breaking and
// reproducible tests rely on.
// Complexity: O(V + E).
func (g *Graph) EachLink(fn func(a, b NodeID)) {
	for id, nbrs := range g.adj {
		a := NodeID(id)
		for _, b := range nbrs {
			if a < b {
				fn(a, b)
			}
		}
	}
}

// hasNeighbor reports whether b occurs in a's sorted neighbor list.
func (g *Graph) hasNeighbor(a, b NodeID) bool {
	s := g.adj[a]
	i := sort.Search(len(s), func(i int) bool { return s[i] >= b })

	return i < len(s) && s[i] == b
}
