package routing

import (
	"math/rand"

	"github.com/graphnet/routesim/core"
)

// RandomRouting forwards packets by unbiased random walk: at each hop a
// uniformly chosen neighbor, except that a directly adjacent destination
// is always taken. It needs no background work and serves as the
// worst-case baseline every other variant is measured against.
type RandomRouting struct {
	size     int
	seed     int64
	hopLimit int
}

// NewRandomRouting returns an unconfigured random-walk router.
func NewRandomRouting() *RandomRouting {
	return &RandomRouting{
		seed:     DefaultSeed,
		hopLimit: DefaultHopLimit,
	}
}

// Name implements Algorithm.
func (r *RandomRouting) Name() string { return "random" }

// Reset implements Algorithm. The walk keeps no per-node state beyond
// the size used for contract checking.
func (r *RandomRouting) Reset(nodeCount int) {
	r.size = nodeCount
}

// Step implements Algorithm; the random walk has no background work.
func (r *RandomRouting) Step(v core.View) {
	assertSized("random", r.size, v.NodeCount())
}

// Route implements Algorithm. The walk's RNG is derived from the seed
// and the request pair, so Route mutates no persistent state and the
// same request always walks the same path for a fixed seed.
func (r *RandomRouting) Route(v core.View, req PathRequest) PathResult {
	assertSized("random", r.size, v.NodeCount())

	rng := rand.New(rand.NewSource(r.seed ^ int64(req.Source)<<32 ^ int64(req.Dest)))
	path := make([]core.NodeID, 0, r.hopLimit+1)
	cur := req.Source
	path = append(path, cur)

	for hops := 0; hops < r.hopLimit; hops++ {
		if cur == req.Dest {
			return arrived(path)
		}
		nbrs := v.Neighbors(cur)
		if len(nbrs) == 0 {
			return notArrived(path)
		}
		// An adjacent destination is always taken; everything else is an
		// unbiased draw.
		next := req.Dest
		if !contains(nbrs, req.Dest) {
			next = nbrs[rng.Intn(len(nbrs))]
		}
		cur = next
		path = append(path, cur)
	}
	if cur == req.Dest {
		return arrived(path)
	}

	return notArrived(path)
}

// Get implements Algorithm.
func (r *RandomRouting) Get(key string) (string, error) {
	switch key {
	case "name":
		return r.Name(), nil
	case "hop_limit":
		return formatInt(r.hopLimit), nil
	case "seed":
		return formatInt(int(r.seed)), nil
	default:
		return "", ErrUnknownParameter
	}
}

// Set implements Algorithm.
func (r *RandomRouting) Set(key, value string) error {
	switch key {
	case "hop_limit":
		n, err := parseIntParam(key, value)
		if err != nil {
			return err
		}
		r.hopLimit = n
	case "seed":
		s, err := parseSeedParam(value)
		if err != nil {
			return err
		}
		r.seed = s
	default:
		return ErrUnknownParameter
	}

	return nil
}

// contains reports whether the ascending neighbor list holds id.
func contains(nbrs []core.NodeID, id core.NodeID) bool {
	for _, nb := range nbrs {
		if nb == id {
			return true
		}
		if nb > id {
			return false
		}
	}

	return false
}
