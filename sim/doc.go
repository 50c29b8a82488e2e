// Package sim owns the simulator state: the graph, the active routing
// algorithm, the evaluation harness, the path tracer, and the mobility
// model, all guarded by a single mutex so command sources (interactive
// prompt, scripts, TCP clients) can drive one simulation concurrently.
//
// Consistency rule: every topology edit goes through Edit, which resets
// the algorithm's per-node state and clears accumulated evaluation
// results afterwards. Routing state is sized to the node count and ids
// are renumbered on removal, so stale state is never allowed to
// survive an edit.
package sim
