// This file defines View, the restricted read-only handle passed to
// routing algorithms. A View exposes topology and position data but no
// mutation surface, so Step and Route cannot edit the graph.

package core

import "gonum.org/v1/gonum/spatial/r3"

// View is a read-only window onto a Graph, handed to
// routing.Algorithm.Step and Route. It shares the graph's storage:
// a View is only valid while the owning lock is held and must not be
// retained across topology edits.
type View struct {
	g *Graph
}

// View returns a read-only view of g.
func (g *Graph) View() View {
	return View{g: g}
}

// NodeCount returns the number of nodes.
func (v View) NodeCount() int {
	return v.g.NodeCount()
}

// Neighbors returns the ascending neighbor list of id. Read-only by
// contract.
func (v View) Neighbors(id NodeID) []NodeID {
	return v.g.Neighbors(id)
}

// HasPositions reports whether position data is available.
func (v View) HasPositions() bool {
	return v.g.HasPositions()
}

// Position returns the position of id, the zero vector when positions
// are disabled.
func (v View) Position(id NodeID) r3.Vec {
	p, err := v.g.Position(id)
	if err != nil {
		return r3.Vec{}
	}

	return p
}

// LinkWeight returns the weight of link a—b: Euclidean distance when
// positions are enabled, else 1.
func (v View) LinkWeight(a, b NodeID) float64 {
	return v.g.LinkWeight(a, b)
}

// EachLink calls fn once per undirected link with a < b, in ascending
// (a, b) order.
func (v View) EachLink(fn func(a, b NodeID)) {
	v.g.EachLink(fn)
}
