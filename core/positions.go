// This file implements optional 3-D geographic positions: one r3.Vec
// per node (kilometers), kept parallel to the adjacency storage.

package core

import "gonum.org/v1/gonum/spatial/r3"

// HasPositions reports whether positions are enabled.
func (g *Graph) HasPositions() bool {
	return g.pos != nil
}

// EnablePositions allocates a zero position for every node. Nodes that
// already have positions keep them; calling twice is a no-op.
// Complexity: O(V).
func (g *Graph) EnablePositions() {
	if g.pos == nil {
		g.pos = make([]r3.Vec, len(g.adj))
	}
}

// DisablePositions drops all position data.
func (g *Graph) DisablePositions() {
	g.pos = nil
}

// Position returns the position of id. Returns ErrNoPositions when
// positions are disabled and ErrNodeNotFound for an invalid id.
func (g *Graph) Position(id NodeID) (r3.Vec, error) {
	if g.pos == nil {
		return r3.Vec{}, ErrNoPositions
	}
	if !g.HasNode(id) {
		return r3.Vec{}, ErrNodeNotFound
	}

	return g.pos[id], nil
}

// SetPosition places id at p (kilometers).
func (g *Graph) SetPosition(id NodeID, p r3.Vec) error {
	if g.pos == nil {
		return ErrNoPositions
	}
	if !g.HasNode(id) {
		return ErrNodeNotFound
	}
	g.pos[id] = p

	return nil
}

// MoveNode shifts id by delta (kilometers).
func (g *Graph) MoveNode(id NodeID, delta r3.Vec) error {
	if g.pos == nil {
		return ErrNoPositions
	}
	if !g.HasNode(id) {
		return ErrNodeNotFound
	}
	g.pos[id] = r3.Add(g.pos[id], delta)

	return nil
}

// MoveNodes shifts every node by delta (kilometers).
// Complexity: O(V).
func (g *Graph) MoveNodes(delta r3.Vec) error {
	if g.pos == nil {
		return ErrNoPositions
	}
	for i := range g.pos {
		g.pos[i] = r3.Add(g.pos[i], delta)
	}

	return nil
}

// MoveAllTo translates the whole graph so its center lands on target
// (kilometers). Relative node placement is preserved.
// Complexity: O(V).
func (g *Graph) MoveAllTo(target r3.Vec) error {
	if g.pos == nil {
		return ErrNoPositions
	}

	return g.MoveNodes(r3.Sub(target, g.GraphCenter()))
}

// GraphCenter returns the mean of all node positions, the zero vector
// for an empty or position-less graph.
// Complexity: O(V).
func (g *Graph) GraphCenter() r3.Vec {
	if len(g.pos) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, p := range g.pos {
		sum = r3.Add(sum, p)
	}

	return r3.Scale(1/float64(len(g.pos)), sum)
}

// Positions exposes the raw position slice for the movement collaborator,
// which advances node positions in place once per simulation step. The
// slice is invalidated by any topology edit. Nil when positions are
// disabled.
func (g *Graph) Positions() []r3.Vec {
	return g.pos
}

// LinkWeight returns the weight of link a—b: the Euclidean distance
// between the endpoints when positions are enabled, else unit hop
// weight. The link itself is not checked for existence; callers iterate
// real links via EachLink or Neighbors.
func (g *Graph) LinkWeight(a, b NodeID) float64 {
	if g.pos == nil || !g.HasNode(a) || !g.HasNode(b) {
		return 1
	}

	return r3.Norm(r3.Sub(g.pos[a], g.pos[b]))
}
