// This file declares NodeID, Graph, sentinel errors, and the NewGraph
// constructor. Mutations live in methods.go, queries in queries.go,
// position handling in positions.go, MST in mst.go, views in view.go.

package core

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for core graph operations.
var (
	// ErrNodeNotFound indicates an operation referenced a nonexistent node id.
	// The operation is a no-op for that id and proceeds for all valid ids.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrSelfLoop indicates a link from a node to itself was requested.
	ErrSelfLoop = errors.New("core: self-loops not allowed")

	// ErrNoPositions indicates a position query on a graph whose positions
	// are disabled. Call EnablePositions first.
	ErrNoPositions = errors.New("core: positions not enabled")
)

// NodeID identifies a node. Ids are dense: the valid range is always
// 0..NodeCount()-1, and removal renumbers the survivors.
type NodeID uint32

// DegToKm converts geographic degrees to kilometers (mean earth arc
// length of one degree). Used by position helpers that accept degrees.
const DegToKm = 111.32

// Graph is an undirected simple graph over dense node ids.
//
// adj[id] holds the neighbor ids of id in ascending order. The sorted
// invariant makes every link walk deterministic and keeps lookups
// O(log degree). pos is nil while positions are disabled; otherwise
// len(pos) == len(adj) at all times.
//
// Graph is not safe for concurrent use; the sim package serializes all
// access behind a single lock.
type Graph struct {
	adj       [][]NodeID
	linkCount int
	pos       []r3.Vec
}

// NewGraph creates an empty graph with no nodes, no links and positions
// disabled.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{}
}
