package sim

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/graphnet/routesim/core"
	"github.com/graphnet/routesim/debugpath"
	"github.com/graphnet/routesim/eval"
	"github.com/graphnet/routesim/movement"
	"github.com/graphnet/routesim/routing"
)

// Info is a read-only snapshot of the simulator.
type Info struct {
	Algorithm       string
	Steps           int
	Nodes           int
	Links           int
	AvgDegree       float64
	Samples         int
	ArrivedFraction float64
	MeanStretch     float64
	EvalDuration    time.Duration
}

// State is the shared simulator state. All methods are safe for
// concurrent use; long operations (Advance, RunEval) hold the state
// lock for their full duration and honor the cooperative abort flag.
type State struct {
	mu     sync.Mutex
	graph  *core.Graph
	algo   routing.Algorithm
	paths  *eval.Paths
	tracer *debugpath.Tracer
	mover  movement.Model
	steps  int
	abort  atomic.Bool
	log    *logrus.Entry
}

// NewState returns a simulator with an empty graph and the random
// routing algorithm active.
func NewState(log *logrus.Logger) *State {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	algo, _ := routing.New("random")
	algo.Reset(0)

	st := &State{
		graph:  core.NewGraph(),
		algo:   algo,
		paths:  eval.NewPaths(),
		tracer: debugpath.New(),
		mover:  movement.Static(),
		log:    log.WithField("component", "sim"),
	}
	st.paths.SetAbort(&st.abort)

	return st
}

// Abort exposes the cooperative abort flag. Setting it makes a running
// Advance or RunEval return early; callers clear it before reuse.
func (st *State) Abort() *atomic.Bool { return &st.abort }

// SetProgress installs the evaluation progress callback.
func (st *State) SetProgress(fn eval.ProgressFunc) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.paths.SetProgress(fn)
}

// SetSeed reseeds the evaluation sampler and the active algorithm.
func (st *State) SetSeed(seed int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.paths.SetSeed(seed)
	_ = st.algo.Set("seed", fmt.Sprintf("%d", seed))
}

// SetMovement installs the mobility model applied on every step.
func (st *State) SetMovement(m movement.Model) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if m == nil {
		m = movement.Static()
	}
	st.mover = m
}

// Edit runs fn against the graph under the state lock. Afterwards the
// algorithm is reset to the (possibly changed) node count, all
// evaluation results are cleared, and any active debug trace is
// canceled (its node ids may not survive renumbering), whether or not
// fn reported an error. All topology mutations go through here.
func (st *State) Edit(fn func(g *core.Graph) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	err := fn(st.graph)
	st.algo.Reset(st.graph.NodeCount())
	st.paths.Clear()
	st.tracer.Cancel()

	return err
}

// Reposition runs fn against the graph under the state lock without
// resetting algorithm or evaluation state. Only for position changes;
// topology edits must go through Edit so stale routing state cannot
// survive.
func (st *State) Reposition(fn func(g *core.Graph) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	return fn(st.graph)
}

// Inspect runs fn against the graph under the state lock without
// touching algorithm or evaluation state. fn must not mutate.
func (st *State) Inspect(fn func(g *core.Graph)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn(st.graph)
}

// SetAlgorithm activates the named routing variant, freshly reset to
// the current node count. Evaluation results are cleared.
func (st *State) SetAlgorithm(name string) error {
	algo, err := routing.New(name)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	algo.Reset(st.graph.NodeCount())
	st.algo = algo
	st.paths.Clear()
	st.log.WithField("algorithm", name).Info("algorithm activated")

	return nil
}

// AlgorithmName returns the active variant's factory name.
func (st *State) AlgorithmName() string {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.algo.Name()
}

// GetParam reads a parameter of the active algorithm.
func (st *State) GetParam(key string) (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.algo.Get(key)
}

// SetParam updates a parameter of the active algorithm.
func (st *State) SetParam(key, value string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.algo.Set(key, value)
}

// Advance runs count simulation steps: one algorithm Step plus one
// mobility advance each. Returns the steps actually performed (fewer
// when aborted) and the elapsed wall-clock time.
func (st *State) Advance(count int) (int, time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()

	start := time.Now()
	done := 0
	for ; done < count; done++ {
		if st.abort.Load() {
			break
		}
		st.algo.Step(st.graph.View())
		st.mover.Advance(st.graph.Positions())
		st.steps++
	}
	elapsed := time.Since(start)
	st.log.WithFields(logrus.Fields{
		"steps":   done,
		"elapsed": elapsed,
	}).Debug("advanced simulation")

	return done, elapsed
}

// ResetSim reinitializes algorithm state, evaluation results, and the
// step counter. The topology is kept.
func (st *State) ResetSim() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.algo.Reset(st.graph.NodeCount())
	st.paths.Clear()
	st.steps = 0
	st.log.Info("simulation reset")
}

// RunEval samples sampleCount random routing requests against the
// active algorithm, accumulating onto earlier results.
func (st *State) RunEval(sampleCount int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.paths.RunSamples(st.graph, st.route(), sampleCount)
}

// ClearEval drops accumulated evaluation results, keeping everything
// else.
func (st *State) ClearEval() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.paths.Clear()
}

// CropMST replaces the graph with its minimum spanning forest. Like any
// topology edit this resets algorithm state and evaluation results.
func (st *State) CropMST() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.graph = st.graph.MinimumSpanningTree()
	st.algo.Reset(st.graph.NodeCount())
	st.paths.Clear()
	st.tracer.Cancel()
	st.log.WithField("links", st.graph.LinkCount()).Info("cropped graph to spanning forest")
}

// DebugInit starts a hop-by-hop trace between two existing nodes.
func (st *State) DebugInit(src, dst core.NodeID) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.graph.HasNode(src) || !st.graph.HasNode(dst) {
		return core.ErrNodeNotFound
	}
	st.tracer.Init(src, dst)

	return nil
}

// DebugStep advances the trace one hop, writing diagnostics to w.
func (st *State) DebugStep(w io.Writer) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.tracer.Step(w, st.graph.View(), debugpath.RouteFunc(st.route()))
}

// Info snapshots the simulator counters and evaluation results.
func (st *State) Info() Info {
	st.mu.Lock()
	defer st.mu.Unlock()

	return Info{
		Algorithm:       st.algo.Name(),
		Steps:           st.steps,
		Nodes:           st.graph.NodeCount(),
		Links:           st.graph.LinkCount(),
		AvgDegree:       st.graph.AvgNodeDegree(),
		Samples:         st.paths.Samples(),
		ArrivedFraction: st.paths.ArrivedFraction(),
		MeanStretch:     st.paths.MeanStretch(),
		EvalDuration:    st.paths.Duration(),
	}
}

// route builds the routing closure over the current algorithm and
// graph. Callers hold st.mu.
func (st *State) route() eval.RouteFunc {
	algo, view := st.algo, st.graph.View()

	return func(req routing.PathRequest) routing.PathResult {
		return algo.Route(view, req)
	}
}
