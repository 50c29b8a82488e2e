package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/graphnet/routesim/builder"
	"github.com/graphnet/routesim/core"
)

func TestLine(t *testing.T) {
	g := core.NewGraph()
	ids, err := builder.Line(g, 5, false)
	require.NoError(t, err)
	assert.Len(t, ids, 5)
	assert.Equal(t, 4, g.LinkCount())
	assert.True(t, g.HasLink(0, 1))
	assert.False(t, g.HasLink(0, 4))

	// Closing the line adds the wrap-around link.
	g2 := core.NewGraph()
	_, err = builder.Line(g2, 5, true)
	require.NoError(t, err)
	assert.Equal(t, 5, g2.LinkCount())
	assert.True(t, g2.HasLink(0, 4))
}

func TestLine_TooFew(t *testing.T) {
	_, err := builder.Line(core.NewGraph(), 1, false)
	assert.ErrorIs(t, err, builder.ErrTooFewNodes)
}

func TestLine_AppendsToExisting(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Line(g, 3, false)
	require.NoError(t, err)
	ids, err := builder.Line(g, 2, false)
	require.NoError(t, err)

	// The second line starts after the first one's ids.
	assert.Equal(t, []core.NodeID{3, 4}, ids)
	assert.Equal(t, 5, g.NodeCount())
	assert.False(t, g.HasLink(2, 3), "separate lines stay disconnected")
}

func TestStar(t *testing.T) {
	g := core.NewGraph()
	ids, err := builder.Star(g, 5)
	require.NoError(t, err)
	require.Len(t, ids, 6)
	assert.Equal(t, 5, g.LinkCount())

	hub := ids[0]
	deg, err := g.Degree(hub)
	require.NoError(t, err)
	assert.Equal(t, 5, deg)
	for _, leaf := range ids[1:] {
		deg, err = g.Degree(leaf)
		require.NoError(t, err)
		assert.Equal(t, 1, deg)
	}
}

func TestTree_ConnectedAcyclicPlusShortcuts(t *testing.T) {
	g := core.NewGraph()
	rng := rand.New(rand.NewSource(42))
	ids, err := builder.Tree(g, 20, 0, rng)
	require.NoError(t, err)
	assert.Len(t, ids, 20)
	// A tree has exactly n-1 links.
	assert.Equal(t, 19, g.LinkCount())

	// Same seed reproduces the same topology.
	g2 := core.NewGraph()
	_, err = builder.Tree(g2, 20, 0, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	equal := true
	g.EachLink(func(a, b core.NodeID) {
		if !g2.HasLink(a, b) {
			equal = false
		}
	})
	assert.True(t, equal)

	// Interconnections add links on top of the tree.
	g3 := core.NewGraph()
	_, err = builder.Tree(g3, 20, 5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, 24, g3.LinkCount())
}

func TestLattice4(t *testing.T) {
	g := core.NewGraph()
	ids, err := builder.Lattice4(g, 3, 2)
	require.NoError(t, err)
	assert.Len(t, ids, 6)
	// Horizontal: 2 per row × 2 rows; vertical: 3 columns × 1.
	assert.Equal(t, 7, g.LinkCount())
	assert.True(t, g.HasLink(0, 1))
	assert.True(t, g.HasLink(0, 3))
	assert.False(t, g.HasLink(0, 4), "no diagonals in lattice4")
}

func TestLattice8(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Lattice8(g, 3, 2)
	require.NoError(t, err)
	// 7 orthogonal + 4 diagonal links for a 3×2 grid.
	assert.Equal(t, 11, g.LinkCount())
	assert.True(t, g.HasLink(0, 4))
	assert.True(t, g.HasLink(1, 3))
}

func TestLattice_BadDimensions(t *testing.T) {
	_, err := builder.Lattice4(core.NewGraph(), 0, 3)
	assert.ErrorIs(t, err, builder.ErrBadDimensions)
}

func TestRandomizePositions(t *testing.T) {
	g := core.NewGraph()
	g.AddNodes(10)
	rng := rand.New(rand.NewSource(7))
	require.NoError(t, builder.RandomizePositions(g, r3.Vec{}, 100, rng))
	require.True(t, g.HasPositions())

	for id := core.NodeID(0); int(id) < g.NodeCount(); id++ {
		p, err := g.Position(id)
		require.NoError(t, err)
		assert.LessOrEqual(t, p.X, 50.0)
		assert.GreaterOrEqual(t, p.X, -50.0)
		assert.Zero(t, p.Z)
	}
}

func TestConnectInRange(t *testing.T) {
	g := core.NewGraph()
	g.AddNodes(3)
	g.EnablePositions()
	require.NoError(t, g.SetPosition(1, r3.Vec{X: 1}))
	require.NoError(t, g.SetPosition(2, r3.Vec{X: 10}))

	added, err := builder.ConnectInRange(g, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.True(t, g.HasLink(0, 1))
	assert.False(t, g.HasLink(1, 2))

	// Idempotent: nothing new inside the same range.
	added, err = builder.ConnectInRange(g, 2)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestConnectInRange_NoPositions(t *testing.T) {
	g := core.NewGraph()
	g.AddNodes(2)
	_, err := builder.ConnectInRange(g, 2)
	assert.ErrorIs(t, err, builder.ErrNoPositions)
}
