package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/graphnet/routesim/core"
)

// countComponents walks the graph and counts connected components.
func countComponents(g *core.Graph) int {
	n := g.NodeCount()
	seen := make([]bool, n)
	components := 0
	for start := 0; start < n; start++ {
		if seen[start] {
			continue
		}
		components++
		queue := []core.NodeID{core.NodeID(start)}
		seen[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range g.Neighbors(cur) {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}

	return components
}

func TestMST_ForestProperty(t *testing.T) {
	// Two components: a 4-cycle 0-1-2-3 and a triangle 4-5-6, plus an
	// isolated node 7.
	g := core.NewGraph()
	g.AddNodes(8)
	require.NoError(t, g.ConnectNodes([]core.NodeID{0, 1, 2, 3, 0}))
	require.NoError(t, g.ConnectNodes([]core.NodeID{4, 5, 6, 4}))

	mst := g.MinimumSpanningTree()

	// link_count = node_count - components, per component a tree.
	comps := countComponents(g)
	assert.Equal(t, 3, comps)
	assert.Equal(t, g.NodeCount(), mst.NodeCount())
	assert.Equal(t, mst.NodeCount()-comps, mst.LinkCount())

	// No cycles: the MST has the same component structure as the input.
	assert.Equal(t, comps, countComponents(mst))

	// Every MST link exists in the source graph.
	mst.EachLink(func(a, b core.NodeID) {
		assert.True(t, g.HasLink(a, b), "MST link %d—%d not in source", a, b)
	})
}

func TestMST_DeterministicTieBreak(t *testing.T) {
	// All unit weights (no positions): ties resolve by lowest id pair,
	// so repeated runs yield the identical forest.
	g := core.NewGraph()
	g.AddNodes(4)
	require.NoError(t, g.ConnectNodes([]core.NodeID{0, 1, 2, 3, 0}))

	first := g.MinimumSpanningTree()
	second := g.MinimumSpanningTree()

	var a, b [][2]core.NodeID
	first.EachLink(func(x, y core.NodeID) { a = append(a, [2]core.NodeID{x, y}) })
	second.EachLink(func(x, y core.NodeID) { b = append(b, [2]core.NodeID{x, y}) })
	assert.Equal(t, a, b)

	// With ascending-order tie-breaks the 4-cycle drops its highest pair.
	assert.True(t, first.HasLink(0, 1))
	assert.True(t, first.HasLink(1, 2))
	assert.True(t, first.HasLink(0, 3))
	assert.False(t, first.HasLink(2, 3))
}

func TestMST_UsesEuclideanWeights(t *testing.T) {
	// Triangle with positions: 0 at origin, 1 near, 2 far. The longest
	// edge 0—2 must be excluded.
	g := core.NewGraph()
	g.AddNodes(3)
	g.EnablePositions()
	require.NoError(t, g.SetPosition(1, r3.Vec{X: 1}))
	require.NoError(t, g.SetPosition(2, r3.Vec{X: 10}))
	require.NoError(t, g.ConnectNodes([]core.NodeID{0, 1, 2, 0}))

	mst := g.MinimumSpanningTree()
	assert.Equal(t, 2, mst.LinkCount())
	assert.True(t, mst.HasLink(0, 1))  // weight 1
	assert.True(t, mst.HasLink(1, 2))  // weight 9
	assert.False(t, mst.HasLink(0, 2)) // weight 10, dropped

	// Positions are carried into the forest.
	assert.True(t, mst.HasPositions())
	p, err := mst.Position(2)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 10}, p)
}

func TestMST_EmptyGraph(t *testing.T) {
	g := core.NewGraph()
	mst := g.MinimumSpanningTree()
	assert.Zero(t, mst.NodeCount())
	assert.Zero(t, mst.LinkCount())
}
