// Package bfs provides breadth-first search over a core.View, returning
// unweighted shortest-path hop distances and parent links.
//
// It is the ground truth of the testbed: the evaluation harness divides
// a routing algorithm's hop count by the BFS distance to obtain path
// stretch, and spanning-tree routing derives its next-hop tables from
// BFS parent links.
package bfs
