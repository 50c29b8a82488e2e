// Package routesim is a testbed for decentralized network routing
// algorithms. It holds an abstract graph of nodes and links, runs
// pluggable routing algorithms that must discover multi-hop paths using
// only local neighbor information, and measures their effectiveness
// (delivery success, path stretch versus shortest path) under topology
// edits and node movement.
//
// The module is organized into one package per concern:
//
//	core/      — graph topology: dense node ids, undirected links,
//	             optional 3-D positions, MST forest, read-only views
//	builder/   — topology constructors: line, star, tree, lattice4/8,
//	             geographic helpers (randomize positions, connect-in-range)
//	bfs/       — unweighted shortest-path ground truth
//	routing/   — the Algorithm interface and its five variants:
//	             random, vivaldi, spring, genetic, tree
//	eval/      — sampled evaluation: arrived fraction and mean stretch
//	sim/       — the lock-owning simulator state and stepping loop
//	debugpath/ — single-hop interactive replay of routing decisions
//	movement/  — node mobility models applied once per simulation step
//	graphio/   — JSON import/export of topology and positions
//	config/    — TOML simulator configuration
//	command/   — the text command interpreter driving all of the above
//
// The cmd/routesim binary wires everything into an interactive simulator
// with a stdin REPL, script execution and an optional TCP command socket.
package routesim
