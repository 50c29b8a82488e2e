package routing

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/graphnet/routesim/core"
)

// Vivaldi tuning constants, from the classic network-coordinate paper:
// cc damps coordinate movement, ce damps the error estimate.
const (
	defaultVivaldiCC = 0.25
	defaultVivaldiCE = 0.25

	// initialSpread is the side of the cube fresh coordinates are
	// scattered in. Any small non-zero spread works; coincident starts
	// would leave the relaxation without a direction.
	initialSpread = 1.0
)

// VivaldiRouting maintains a 3-D network coordinate plus a confidence
// (error) scalar per node. Each Step replays every link as a distance
// measurement and nudges both endpoints by a damped update weighted by
// relative confidence. Route forwards greedily through the embedding.
type VivaldiRouting struct {
	coord  []r3.Vec
	errEst []float64

	cc       float64
	ce       float64
	hopLimit int
	seed     int64
	rng      *rand.Rand
}

// NewVivaldiRouting returns an unconfigured vivaldi router.
func NewVivaldiRouting() *VivaldiRouting {
	return &VivaldiRouting{
		cc:       defaultVivaldiCC,
		ce:       defaultVivaldiCE,
		hopLimit: DefaultHopLimit,
		seed:     DefaultSeed,
	}
}

// Name implements Algorithm.
func (vr *VivaldiRouting) Name() string { return "vivaldi" }

// Reset implements Algorithm: fresh random coordinates and full error
// for every node, reproducible for a fixed seed.
func (vr *VivaldiRouting) Reset(nodeCount int) {
	vr.rng = rand.New(rand.NewSource(vr.seed))
	vr.coord = make([]r3.Vec, nodeCount)
	vr.errEst = make([]float64, nodeCount)
	for i := range vr.coord {
		vr.coord[i] = randomVec(vr.rng, initialSpread)
		vr.errEst[i] = 1
	}
}

// Step implements Algorithm: one relaxation pass over every link, in
// the graph's deterministic link order. Both endpoints of each link are
// updated symmetrically.
func (vr *VivaldiRouting) Step(v core.View) {
	assertSized("vivaldi", len(vr.coord), v.NodeCount())

	v.EachLink(func(a, b core.NodeID) {
		measured := v.LinkWeight(a, b)
		if measured <= 0 {
			return
		}
		vr.relax(a, b, measured)
		vr.relax(b, a, measured)
	})
}

// relax applies one observation of the true link weight to node i
// against peer j: the classic damped Vivaldi update.
func (vr *VivaldiRouting) relax(i, j core.NodeID, measured float64) {
	diff := r3.Sub(vr.coord[i], vr.coord[j])
	dist := r3.Norm(diff)

	// Confidence weight: how much node i trusts its own estimate
	// relative to the peer's.
	w := vr.errEst[i] / (vr.errEst[i] + vr.errEst[j])

	// Relative sample error updates the confidence scalar.
	sampleErr := dist - measured
	if sampleErr < 0 {
		sampleErr = -sampleErr
	}
	relErr := sampleErr / measured
	vr.errEst[i] = relErr*vr.ce*w + vr.errEst[i]*(1-vr.ce*w)

	// Damped coordinate nudge along the measurement direction.
	var dir r3.Vec
	if dist > 0 {
		dir = r3.Scale(1/dist, diff)
	} else {
		dir = randomUnitVec(vr.rng)
	}
	vr.coord[i] = r3.Add(vr.coord[i], r3.Scale(vr.cc*w*(measured-dist), dir))
}

// Route implements Algorithm: greedy descent through the embedding,
// lowest id on ties. Mutates no persistent state.
func (vr *VivaldiRouting) Route(v core.View, req PathRequest) PathResult {
	assertSized("vivaldi", len(vr.coord), v.NodeCount())

	return greedyRoute(v, req, vr.coord, vr.hopLimit)
}

// Get implements Algorithm.
func (vr *VivaldiRouting) Get(key string) (string, error) {
	switch key {
	case "name":
		return vr.Name(), nil
	case "hop_limit":
		return formatInt(vr.hopLimit), nil
	case "cc":
		return formatFloat(vr.cc), nil
	case "ce":
		return formatFloat(vr.ce), nil
	case "seed":
		return formatInt(int(vr.seed)), nil
	default:
		return "", ErrUnknownParameter
	}
}

// Set implements Algorithm. Seed changes take effect at the next Reset.
func (vr *VivaldiRouting) Set(key, value string) error {
	switch key {
	case "hop_limit":
		n, err := parseIntParam(key, value)
		if err != nil {
			return err
		}
		vr.hopLimit = n
	case "cc":
		f, err := parseFloatParam(key, value)
		if err != nil {
			return err
		}
		vr.cc = f
	case "ce":
		f, err := parseFloatParam(key, value)
		if err != nil {
			return err
		}
		vr.ce = f
	case "seed":
		s, err := parseSeedParam(value)
		if err != nil {
			return err
		}
		vr.seed = s
	default:
		return ErrUnknownParameter
	}

	return nil
}

// randomVec draws a vector uniformly from a cube of the given side
// centered on the origin.
func randomVec(rng *rand.Rand, side float64) r3.Vec {
	return r3.Vec{
		X: (rng.Float64() - 0.5) * side,
		Y: (rng.Float64() - 0.5) * side,
		Z: (rng.Float64() - 0.5) * side,
	}
}

// randomUnitVec draws a direction for coincident coordinates.
func randomUnitVec(rng *rand.Rand) r3.Vec {
	for {
		v := randomVec(rng, 2)
		if n := r3.Norm(v); n > 1e-9 {
			return r3.Scale(1/n, v)
		}
	}
}
