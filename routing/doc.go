// Package routing defines the Algorithm contract of the testbed and its
// five variants, selectable by name through New:
//
//	random  — unbiased random walk; the worst-case baseline
//	vivaldi — network-coordinate embedding by pairwise relaxation,
//	          greedy geometric forwarding
//	spring  — force-directed embedding (simultaneous update), same
//	          greedy forwarding
//	genetic — evolutionary search over next-hop tables
//	tree    — deterministic routing along a BFS spanning tree
//
// Contract highlights (enforced by every variant):
//
//   - Reset(nodeCount) sizes all per-node state; it is mandatory after
//     every topology change and after swapping the active algorithm.
//   - Step(view) performs one unit of background work and may mutate
//     internal state; it never touches the graph.
//   - Route(view, req) computes a path from current internal state and
//     never mutates persistent state, so routing is repeatable.
//   - Get/Set expose named string parameters; unknown keys report
//     ErrUnknownParameter.
//
// Calling Step or Route with state sized differently from the view's
// node count is a contract violation (a missed Reset) and panics; the
// sim package makes that unreachable by resetting on every mutating
// path.
//
// Determinism: every random draw flows from a seeded *rand.Rand (the
// "seed" parameter), so a fixed seed reproduces routes, embeddings and
// populations exactly.
package routing
