package routing

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/graphnet/routesim/core"
)

// Spring layout tuning defaults. The attraction constant pulls linked
// nodes toward their link weight as rest length; repulsion pushes all
// node pairs apart with an inverse-square falloff; the timestep damps
// each simultaneous update.
const (
	defaultSpringK   = 0.1
	defaultRepulsion = 0.05
	defaultTimestep  = 0.25

	// maxDisplacement clamps a single update so an unlucky force spike
	// cannot fling a node out of the layout.
	maxDisplacement = 10.0
)

// SpringRouting embeds the graph by force-directed layout: every Step
// updates all node coordinates simultaneously from spring attraction
// along links and pairwise repulsion. Route forwards greedily through
// the embedding, exactly like vivaldi.
//
// The force pass is spread over the ants default pool, which is shared
// process-wide so algorithm swaps never strand workers. Each task
// writes only its own nodes' force slots against a frozen coordinate
// snapshot, so results are identical to the serial pass.
type SpringRouting struct {
	coord []r3.Vec
	force []r3.Vec

	springK   float64
	repulsion float64
	timestep  float64
	hopLimit  int
	seed      int64
}

// NewSpringRouting returns an unconfigured spring router.
func NewSpringRouting() *SpringRouting {
	return &SpringRouting{
		springK:   defaultSpringK,
		repulsion: defaultRepulsion,
		timestep:  defaultTimestep,
		hopLimit:  DefaultHopLimit,
		seed:      DefaultSeed,
	}
}

// Name implements Algorithm.
func (sr *SpringRouting) Name() string { return "spring" }

// Reset implements Algorithm: fresh random coordinates for every node,
// reproducible for a fixed seed.
func (sr *SpringRouting) Reset(nodeCount int) {
	rng := rand.New(rand.NewSource(sr.seed))
	sr.coord = make([]r3.Vec, nodeCount)
	sr.force = make([]r3.Vec, nodeCount)
	for i := range sr.coord {
		sr.coord[i] = randomVec(rng, initialSpread)
	}
}

// Step implements Algorithm: one simultaneous force-directed update of
// all coordinates.
func (sr *SpringRouting) Step(v core.View) {
	n := v.NodeCount()
	assertSized("spring", len(sr.coord), n)
	if n == 0 {
		return
	}

	sr.forcePass(v, n)

	// Apply displacements after the full pass so the update is truly
	// simultaneous.
	for i := range sr.coord {
		d := r3.Scale(sr.timestep, sr.force[i])
		if norm := r3.Norm(d); norm > maxDisplacement {
			d = r3.Scale(maxDisplacement/norm, d)
		}
		sr.coord[i] = r3.Add(sr.coord[i], d)
	}
}

// forcePass fills sr.force for every node, spread in chunks over the
// shared worker pool. Tasks only read sr.coord and write disjoint
// force slots.
func (sr *SpringRouting) forcePass(v core.View, n int) {
	workers := runtime.NumCPU()
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		wg.Add(1)
		if err := ants.Submit(func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				sr.force[i] = sr.nodeForce(v, core.NodeID(i), n)
			}
		}); err != nil {
			// Pool rejected the task (released or saturated): run inline.
			for i := lo; i < hi; i++ {
				sr.force[i] = sr.nodeForce(v, core.NodeID(i), n)
			}
			wg.Done()
		}
	}
	wg.Wait()
}

// nodeForce sums spring attraction along i's links and inverse-square
// repulsion against every other node.
func (sr *SpringRouting) nodeForce(v core.View, i core.NodeID, n int) r3.Vec {
	var f r3.Vec
	pi := sr.coord[i]

	for _, nb := range v.Neighbors(i) {
		diff := r3.Sub(sr.coord[nb], pi)
		dist := r3.Norm(diff)
		if dist <= 0 {
			continue
		}
		rest := v.LinkWeight(i, nb)
		f = r3.Add(f, r3.Scale(sr.springK*(dist-rest)/dist, diff))
	}

	for j := 0; j < n; j++ {
		if core.NodeID(j) == i {
			continue
		}
		diff := r3.Sub(pi, sr.coord[j])
		dist := r3.Norm(diff)
		if dist <= 0 {
			continue
		}
		f = r3.Add(f, r3.Scale(sr.repulsion/(dist*dist*dist), diff))
	}

	return f
}

// Route implements Algorithm: greedy descent through the embedding,
// lowest id on ties. Mutates no persistent state.
func (sr *SpringRouting) Route(v core.View, req PathRequest) PathResult {
	assertSized("spring", len(sr.coord), v.NodeCount())

	return greedyRoute(v, req, sr.coord, sr.hopLimit)
}

// Get implements Algorithm.
func (sr *SpringRouting) Get(key string) (string, error) {
	switch key {
	case "name":
		return sr.Name(), nil
	case "hop_limit":
		return formatInt(sr.hopLimit), nil
	case "spring":
		return formatFloat(sr.springK), nil
	case "repulsion":
		return formatFloat(sr.repulsion), nil
	case "timestep":
		return formatFloat(sr.timestep), nil
	case "seed":
		return formatInt(int(sr.seed)), nil
	default:
		return "", ErrUnknownParameter
	}
}

// Set implements Algorithm. Seed changes take effect at the next Reset.
func (sr *SpringRouting) Set(key, value string) error {
	switch key {
	case "hop_limit":
		n, err := parseIntParam(key, value)
		if err != nil {
			return err
		}
		sr.hopLimit = n
	case "spring":
		f, err := parseFloatParam(key, value)
		if err != nil {
			return err
		}
		sr.springK = f
	case "repulsion":
		f, err := parseFloatParam(key, value)
		if err != nil {
			return err
		}
		sr.repulsion = f
	case "timestep":
		f, err := parseFloatParam(key, value)
		if err != nil {
			return err
		}
		sr.timestep = f
	case "seed":
		s, err := parseSeedParam(value)
		if err != nil {
			return err
		}
		sr.seed = s
	default:
		return ErrUnknownParameter
	}

	return nil
}
