package builder

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/graphnet/routesim/core"
)

// RandomizePositions scatters every node uniformly over a square of
// width rangeKm in the x/y plane around center; z is left at the center
// height. Positions are enabled on the graph if they were not already.
//
// Determinism: fully determined by rng's seed.
// Complexity: O(V).
func RandomizePositions(g *core.Graph, center r3.Vec, rangeKm float64, rng *rand.Rand) error {
	if rangeKm <= 0 {
		return ErrBadRange
	}

	g.EnablePositions()
	half := rangeKm / 2
	for id := core.NodeID(0); int(id) < g.NodeCount(); id++ {
		p := r3.Vec{
			X: center.X + (rng.Float64()-0.5)*2*half,
			Y: center.Y + (rng.Float64()-0.5)*2*half,
			Z: center.Z,
		}
		if err := g.SetPosition(id, p); err != nil {
			return err
		}
	}

	return nil
}

// ConnectInRange links every node pair whose Euclidean distance is
// below rangeKm. Existing links are kept. Returns the number of links
// added.
//
// Complexity: O(V²) pair scan; acceptable for testbed-sized graphs.
func ConnectInRange(g *core.Graph, rangeKm float64) (int, error) {
	if rangeKm <= 0 {
		return 0, ErrBadRange
	}
	if !g.HasPositions() {
		return 0, ErrNoPositions
	}

	n := g.NodeCount()
	added := 0
	for a := core.NodeID(0); int(a) < n; a++ {
		pa, _ := g.Position(a)
		for b := a + 1; int(b) < n; b++ {
			pb, _ := g.Position(b)
			if r3.Norm(r3.Sub(pa, pb)) >= rangeKm {
				continue
			}
			if g.HasLink(a, b) {
				continue
			}
			if err := g.AddLink(a, b); err != nil {
				return added, err
			}
			added++
		}
	}

	return added, nil
}
