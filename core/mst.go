// This file computes the minimum spanning tree forest of the graph
// using Kruskal's algorithm with a union-find over dense node ids
// (path compression plus union by rank).

package core

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// mstEdge is a candidate link with its resolved weight.
type mstEdge struct {
	a, b NodeID
	w    float64
}

// MinimumSpanningTree returns a new Graph containing every node of g
// but only the links of a minimum spanning forest: because the graph
// may be disconnected, one tree is produced per connected component
// (isolated nodes form trivial components). Edge weight is the
// Euclidean distance between endpoints when positions are enabled,
// else unit hop weight. Positions are copied into the result.
//
// Determinism: candidate links are ordered by (weight, lower id,
// higher id), so equal-weight ties always resolve the same way and the
// forest is reproducible.
//
// The resulting forest always satisfies
// LinkCount == NodeCount - (number of connected components).
//
// Complexity: O(E log E) for the sort, near-O(E) for the union-find.
func (g *Graph) MinimumSpanningTree() *Graph {
	n := len(g.adj)
	edges := make([]mstEdge, 0, g.linkCount)
	g.EachLink(func(a, b NodeID) {
		edges = append(edges, mstEdge{a: a, b: b, w: g.LinkWeight(a, b)})
	})

	// EachLink already yields ascending (a, b); the stable sort keeps
	// that order for equal weights, giving the lowest-id tie-break.
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].w < edges[j].w
	})

	// Union-find over dense ids.
	parent := make([]NodeID, n)
	rank := make([]uint8, n)
	for i := range parent {
		parent[i] = NodeID(i)
	}
	find := func(u NodeID) NodeID {
		for parent[u] != u {
			parent[u] = parent[parent[u]] // path compression
			u = parent[u]
		}

		return u
	}
	union := func(u, v NodeID) bool {
		ru, rv := find(u), find(v)
		if ru == rv {
			return false
		}
		if rank[ru] < rank[rv] {
			ru, rv = rv, ru
		}
		parent[rv] = ru
		if rank[ru] == rank[rv] {
			rank[ru]++
		}

		return true
	}

	out := NewGraph()
	out.AddNodes(n)
	if g.pos != nil {
		out.pos = append([]r3.Vec(nil), g.pos...)
	}

	for _, e := range edges {
		if union(e.a, e.b) {
			// Endpoints were in different components; the link joins them.
			_ = out.AddLink(e.a, e.b)
		}
	}

	return out
}
