// This file implements all topology mutations: node addition/removal,
// pairwise link primitives, chain connect/disconnect, pruning of
// isolated nodes, and Clear.

package core

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// AddNodes appends count new isolated nodes and returns their ids.
// New nodes start at the origin when positions are enabled.
// Complexity: O(count).
func (g *Graph) AddNodes(count int) []NodeID {
	ids := make([]NodeID, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, NodeID(len(g.adj)))
		g.adj = append(g.adj, nil)
		if g.pos != nil {
			g.pos = append(g.pos, r3.Vec{})
		}
	}

	return ids
}

// AddLink creates the undirected link a—b. Adding an existing link is a
// no-op. Returns ErrSelfLoop for a == b and ErrNodeNotFound when either
// endpoint does not exist.
// Complexity: O(degree) per endpoint (sorted insertion).
func (g *Graph) AddLink(a, b NodeID) error {
	if a == b {
		return fmt.Errorf("core: link %d—%d: %w", a, b, ErrSelfLoop)
	}
	if !g.HasNode(a) || !g.HasNode(b) {
		return fmt.Errorf("core: link %d—%d: %w", a, b, ErrNodeNotFound)
	}
	if g.hasNeighbor(a, b) {
		// Already linked; at most one link per pair.
		return nil
	}
	g.adj[a] = insertSorted(g.adj[a], b)
	g.adj[b] = insertSorted(g.adj[b], a)
	g.linkCount++

	return nil
}

// RemoveLink deletes the undirected link a—b. Removing a missing link is
// a no-op. Returns ErrNodeNotFound when either endpoint does not exist.
// Complexity: O(degree) per endpoint.
func (g *Graph) RemoveLink(a, b NodeID) error {
	if !g.HasNode(a) || !g.HasNode(b) {
		return fmt.Errorf("core: unlink %d—%d: %w", a, b, ErrNodeNotFound)
	}
	if !g.hasNeighbor(a, b) {
		return nil
	}
	g.adj[a] = removeSorted(g.adj[a], b)
	g.adj[b] = removeSorted(g.adj[b], a)
	g.linkCount--

	return nil
}

// ConnectNodes links consecutive pairs of ids: ids[0]—ids[1],
// ids[1]—ids[2], and so on (a chain, not a complete subgraph — this is
// the documented contract for multi-id connects). Invalid references are
// skipped and reported; all valid pairs are still connected.
// Complexity: O(len(ids) · degree).
func (g *Graph) ConnectNodes(ids []NodeID) error {
	return g.eachChainPair(ids, g.AddLink)
}

// DisconnectNodes unlinks consecutive pairs of ids, mirroring the chain
// contract of ConnectNodes. Invalid references are skipped and reported.
// Complexity: O(len(ids) · degree).
func (g *Graph) DisconnectNodes(ids []NodeID) error {
	return g.eachChainPair(ids, g.RemoveLink)
}

// eachChainPair applies op to every consecutive id pair, collecting
// per-pair errors without stopping.
func (g *Graph) eachChainPair(ids []NodeID, op func(a, b NodeID) error) error {
	var firstErr error
	for i := 1; i < len(ids); i++ {
		if err := op(ids[i-1], ids[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// RemoveNodes deletes the given nodes, cascading to every link touching
// them, and compacts the surviving ids in ascending order. Unknown ids
// are skipped and reported via ErrNodeNotFound; valid ids are still
// removed. Any per-node state held outside the graph is invalid after
// this call.
// Complexity: O(V + E).
func (g *Graph) RemoveNodes(ids []NodeID) error {
	n := len(g.adj)
	doomed := make([]bool, n)
	var missing []NodeID
	removals := 0
	for _, id := range ids {
		if int(id) >= n {
			missing = append(missing, id)
			continue
		}
		if !doomed[id] {
			doomed[id] = true
			removals++
		}
	}

	if removals > 0 {
		g.compact(doomed, n-removals)
	}
	if len(missing) > 0 {
		return fmt.Errorf("core: remove nodes %v: %w", missing, ErrNodeNotFound)
	}

	return nil
}

// RemoveUnconnectedNodes deletes every node with no links and returns
// how many were removed. Surviving ids are compacted.
// Complexity: O(V + E).
func (g *Graph) RemoveUnconnectedNodes() int {
	n := len(g.adj)
	doomed := make([]bool, n)
	removals := 0
	for id, nbrs := range g.adj {
		if len(nbrs) == 0 {
			doomed[id] = true
			removals++
		}
	}
	if removals > 0 {
		g.compact(doomed, n-removals)
	}

	return removals
}

// compact rebuilds adjacency (and positions) without the doomed nodes,
// renumbering survivors in ascending order. The remap is monotonic, so
// the sorted-neighbor invariant survives without re-sorting.
func (g *Graph) compact(doomed []bool, survivors int) {
	remap := make([]NodeID, len(g.adj))
	next := NodeID(0)
	for id := range g.adj {
		if doomed[id] {
			continue
		}
		remap[id] = next
		next++
	}

	newAdj := make([][]NodeID, 0, survivors)
	links := 0
	for id, nbrs := range g.adj {
		if doomed[id] {
			continue
		}
		keep := make([]NodeID, 0, len(nbrs))
		for _, nb := range nbrs {
			if !doomed[nb] {
				keep = append(keep, remap[nb])
			}
		}
		links += len(keep)
		newAdj = append(newAdj, keep)
	}
	g.adj = newAdj
	g.linkCount = links / 2

	if g.pos != nil {
		newPos := make([]r3.Vec, 0, survivors)
		for id, p := range g.pos {
			if !doomed[id] {
				newPos = append(newPos, p)
			}
		}
		g.pos = newPos
	}
}

// Clear removes all nodes, links and positions.
// Complexity: O(1).
func (g *Graph) Clear() {
	g.adj = nil
	g.linkCount = 0
	g.pos = nil
}

// insertSorted inserts v into the ascending slice s, keeping it sorted.
func insertSorted(s []NodeID, v NodeID) []NodeID {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v

	return s
}

// removeSorted deletes v from the ascending slice s, if present.
func removeSorted(s []NodeID, v NodeID) []NodeID {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	if i < len(s) && s[i] == v {
		s = append(s[:i], s[i+1:]...)
	}

	return s
}
