package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/graphnet/routesim/movement"
)

func TestStatic_NoOp(t *testing.T) {
	pos := []r3.Vec{{X: 1}, {Y: 2}}
	movement.Static().Advance(pos)
	assert.Equal(t, []r3.Vec{{X: 1}, {Y: 2}}, pos)
}

func TestRandomWalk_BoundedStep(t *testing.T) {
	pos := make([]r3.Vec, 50)
	rw := movement.NewRandomWalk(1, 0.5)
	rw.Advance(pos)

	moved := false
	for _, p := range pos {
		assert.LessOrEqual(t, p.X, 0.5)
		assert.GreaterOrEqual(t, p.X, -0.5)
		assert.LessOrEqual(t, p.Y, 0.5)
		assert.GreaterOrEqual(t, p.Y, -0.5)
		assert.Zero(t, p.Z, "walk stays in the x/y plane")
		if p != (r3.Vec{}) {
			moved = true
		}
	}
	assert.True(t, moved)
}

func TestRandomWalk_Deterministic(t *testing.T) {
	a := make([]r3.Vec, 10)
	b := make([]r3.Vec, 10)
	movement.NewRandomWalk(7, 2).Advance(a)
	movement.NewRandomWalk(7, 2).Advance(b)
	assert.Equal(t, a, b)
}

func TestRandomWalk_NilPositions(t *testing.T) {
	// Positions disabled: nothing to move, nothing to panic on.
	movement.NewRandomWalk(1, 1).Advance(nil)
}
