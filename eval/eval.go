package eval

import (
	"math/rand"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/graphnet/routesim/bfs"
	"github.com/graphnet/routesim/core"
	"github.com/graphnet/routesim/routing"
)

// DefaultSeed seeds the pair sampler until overridden.
const DefaultSeed = 42

// progressTicks is how many progress callbacks a full run issues.
const progressTicks = 100

// RouteFunc routes one request; usually a closure over the active
// algorithm and a graph view.
type RouteFunc func(routing.PathRequest) routing.PathResult

// ProgressFunc receives periodic (done, total) sampling progress.
type ProgressFunc func(done, total int)

// Paths accumulates routing statistics across sampled requests. Create
// with NewPaths, run with RunSamples, reset with Clear before reuse.
// Not safe for concurrent use; the sim package serializes access.
type Paths struct {
	seed     int64
	progress ProgressFunc
	abort    *atomic.Bool

	samples      int
	arrivedCount int
	stretches    []float64
	duration     time.Duration
}

// NewPaths returns an empty harness with the default sampling seed.
func NewPaths() *Paths {
	return &Paths{seed: DefaultSeed}
}

// SetSeed changes the sampling seed for subsequent runs.
func (p *Paths) SetSeed(seed int64) { p.seed = seed }

// SetProgress installs a periodic progress callback; nil disables it.
func (p *Paths) SetProgress(fn ProgressFunc) { p.progress = fn }

// SetAbort installs a cooperative abort flag checked between samples.
func (p *Paths) SetAbort(flag *atomic.Bool) { p.abort = flag }

// Clear resets all accumulators to their zero state. Configuration
// (seed, progress, abort) is kept.
func (p *Paths) Clear() {
	p.samples = 0
	p.arrivedCount = 0
	p.stretches = nil
	p.duration = 0
}

// RunSamples draws sampleCount uniformly random source≠destination
// pairs, routes each, and accumulates arrival and stretch statistics.
// Results add onto whatever the harness already holds; call Clear for
// a fresh run. Graphs with fewer than two nodes yield no samples.
// Complexity: O(sampleCount · (V + E)) from the BFS ground truth.
func (p *Paths) RunSamples(g *core.Graph, route RouteFunc, sampleCount int) {
	n := g.NodeCount()
	if n < 2 || sampleCount <= 0 {
		return
	}

	rng := rand.New(rand.NewSource(p.seed))
	view := g.View()
	start := time.Now()

	// Ground-truth distances per source, cached across samples of the
	// same run (the topology cannot change mid-run).
	distCache := make(map[core.NodeID][]int)

	tick := sampleCount / progressTicks
	if tick < 1 {
		tick = 1
	}

	done := 0
	for ; done < sampleCount; done++ {
		if p.abort != nil && p.abort.Load() {
			break
		}
		if p.progress != nil && done%tick == 0 {
			p.progress(done, sampleCount)
		}

		src := core.NodeID(rng.Intn(n))
		dst := core.NodeID(rng.Intn(n - 1))
		if dst >= src {
			dst++
		}

		res := route(routing.PathRequest{Source: src, Dest: dst})
		p.samples++
		if !res.Arrived {
			continue
		}
		p.arrivedCount++

		dist, ok := distCache[src]
		if !ok {
			dist = bfs.Distances(view, src)
			distCache[src] = dist
		}
		if dist[dst] > 0 {
			p.stretches = append(p.stretches, float64(res.Hops)/float64(dist[dst]))
		}
	}
	p.duration += time.Since(start)

	// The final callback reports this run's count only; p.samples may
	// carry totals accumulated from earlier runs.
	if p.progress != nil {
		p.progress(done, sampleCount)
	}
}

// Samples returns the number of routed samples.
func (p *Paths) Samples() int { return p.samples }

// ArrivedFraction returns the share of samples that reached their
// destination, 0 before any run.
func (p *Paths) ArrivedFraction() float64 {
	if p.samples == 0 {
		return 0
	}

	return float64(p.arrivedCount) / float64(p.samples)
}

// MeanStretch returns the average stretch over arrived samples only,
// 0 when nothing arrived yet.
func (p *Paths) MeanStretch() float64 {
	if len(p.stretches) == 0 {
		return 0
	}

	return stat.Mean(p.stretches, nil)
}

// Duration returns the accumulated wall-clock sampling time.
func (p *Paths) Duration() time.Duration { return p.duration }
