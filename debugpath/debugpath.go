// Package debugpath replays a single route one hop at a time. The
// tracer re-asks the active algorithm for a fresh path from its current
// node on every step and advances along the first hop, which surfaces
// exactly where and why a route degrades: the algorithm's full proposal
// is printed next to the hop actually taken.
//
// Tracing is strictly read-only with respect to the graph and the
// algorithm; it only consumes Route, which must not mutate state.
package debugpath

import (
	"errors"
	"fmt"
	"io"

	"github.com/graphnet/routesim/core"
	"github.com/graphnet/routesim/routing"
)

// Sentinel errors reported by the tracer.
var (
	// ErrNotInitialized indicates Step before Init.
	ErrNotInitialized = errors.New("debugpath: tracer not initialized")

	// ErrFinished indicates Step after the trace arrived or got stuck.
	ErrFinished = errors.New("debugpath: trace already finished")
)

// RouteFunc routes one request; a closure over the active algorithm.
type RouteFunc func(routing.PathRequest) routing.PathResult

// Tracer holds the replay cursor of one traced route.
type Tracer struct {
	src, dst core.NodeID
	cur      core.NodeID
	hops     int
	active   bool
	done     bool
}

// New returns an idle tracer; call Init before stepping.
func New() *Tracer { return &Tracer{} }

// Init starts a new trace from src to dst, discarding any prior trace.
func (tr *Tracer) Init(src, dst core.NodeID) {
	tr.src = src
	tr.dst = dst
	tr.cur = src
	tr.hops = 0
	tr.active = true
	tr.done = false
}

// Cancel discards the active trace. Topology edits renumber node ids,
// so the simulator cancels any trace whose cursor could now point past
// the graph; stepping again requires a fresh Init.
func (tr *Tracer) Cancel() {
	tr.active = false
	tr.done = false
}

// Active reports whether a trace is in progress and not yet finished.
func (tr *Tracer) Active() bool { return tr.active && !tr.done }

// Step advances the trace by one hop and writes a diagnostic line to w:
// the current node, its neighborhood, and the full path the algorithm
// proposes from here. The trace finishes on arrival, on a failed
// proposal, or when the proposal does not move.
func (tr *Tracer) Step(w io.Writer, v core.View, route RouteFunc) error {
	if !tr.active {
		return ErrNotInitialized
	}
	if tr.done {
		return ErrFinished
	}

	if tr.cur == tr.dst {
		tr.done = true
		fmt.Fprintf(w, "arrived at %d after %d hops\n", tr.dst, tr.hops)

		return nil
	}

	res := route(routing.PathRequest{Source: tr.cur, Dest: tr.dst})
	fmt.Fprintf(w, "hop %d: at %d (neighbors %v), proposal %v arrived=%v\n",
		tr.hops, tr.cur, v.Neighbors(tr.cur), res.Path, res.Arrived)

	if !res.Arrived || len(res.Path) < 2 {
		tr.done = true
		fmt.Fprintf(w, "stuck at %d after %d hops\n", tr.cur, tr.hops)

		return nil
	}

	tr.cur = res.Path[1]
	tr.hops++
	if tr.cur == tr.dst {
		tr.done = true
		fmt.Fprintf(w, "arrived at %d after %d hops\n", tr.dst, tr.hops)
	}

	return nil
}
