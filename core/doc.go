// Package core defines the central Graph type of the routing testbed:
// an undirected simple graph over dense integer node ids with optional
// 3-D geographic positions.
//
// Node ids are always the contiguous range 0..NodeCount()-1. Removing
// nodes compacts the surviving ids in ascending order, which is why any
// per-node algorithm state must be re-sized (routing.Algorithm.Reset)
// after every topology edit — the sim package enforces that contract.
//
// Links are unordered pairs of distinct existing ids; at most one link
// per pair, no self-loops. Adjacency is stored as sorted neighbor lists,
// giving O(1) iteration per neighbor and deterministic ordering for all
// link walks.
//
// Algorithms never receive a *Graph; they are handed a read-only View
// (topology and positions, no mutation surface).
//
// Errors:
//
//	ErrNodeNotFound — an operation referenced a nonexistent node id.
//	ErrSelfLoop     — a link from a node to itself was requested.
//	ErrNoPositions  — a position query on a graph without positions.
package core
