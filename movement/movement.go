// Package movement provides the node-mobility collaborator of the
// simulator: a Model advances all node positions in place once per
// simulation step. Models never touch topology; connectivity updates
// (e.g. connect-in-range) are a separate, explicit command.
package movement

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Model advances node positions by one simulation step. pos is the
// graph's live position slice (possibly nil when positions are
// disabled); implementations mutate it in place.
type Model interface {
	Advance(pos []r3.Vec)
}

// static is the no-op model used while no mobility is configured.
type static struct{}

// Static returns a model that leaves all positions untouched.
func Static() Model { return static{} }

func (static) Advance([]r3.Vec) {}

// RandomWalk jitters every node independently: each step draws a
// uniform displacement of at most speedKm per axis. Deterministic for
// a fixed seed.
type RandomWalk struct {
	rng     *rand.Rand
	speedKm float64
}

// NewRandomWalk returns a random-walk model with the given per-step
// speed bound in kilometers.
func NewRandomWalk(seed int64, speedKm float64) *RandomWalk {
	return &RandomWalk{
		rng:     rand.New(rand.NewSource(seed)),
		speedKm: speedKm,
	}
}

// Advance implements Model.
func (rw *RandomWalk) Advance(pos []r3.Vec) {
	for i := range pos {
		pos[i] = r3.Add(pos[i], r3.Vec{
			X: (rw.rng.Float64() - 0.5) * 2 * rw.speedKm,
			Y: (rw.rng.Float64() - 0.5) * 2 * rw.speedKm,
		})
	}
}
