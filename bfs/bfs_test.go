package bfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphnet/routesim/bfs"
	"github.com/graphnet/routesim/core"
)

func TestDistances_Line(t *testing.T) {
	g := core.NewGraph()
	g.AddNodes(5)
	require.NoError(t, g.ConnectNodes([]core.NodeID{0, 1, 2, 3, 4}))

	dist := bfs.Distances(g.View(), 0)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, dist)
}

func TestDistances_Disconnected(t *testing.T) {
	g := core.NewGraph()
	g.AddNodes(4)
	require.NoError(t, g.ConnectNodes([]core.NodeID{0, 1}))
	require.NoError(t, g.ConnectNodes([]core.NodeID{2, 3}))

	dist := bfs.Distances(g.View(), 0)
	assert.Equal(t, []int{0, 1, bfs.Unreachable, bfs.Unreachable}, dist)
}

func TestDistances_InvalidSource(t *testing.T) {
	g := core.NewGraph()
	g.AddNodes(2)
	assert.Nil(t, bfs.Distances(g.View(), 9))
}

func TestParents_TreePath(t *testing.T) {
	// Star with center 0: every leaf's parent is the center.
	g := core.NewGraph()
	g.AddNodes(4)
	for leaf := core.NodeID(1); leaf <= 3; leaf++ {
		require.NoError(t, g.AddLink(0, leaf))
	}

	par := bfs.Parents(g.View(), 0)
	assert.Equal(t, bfs.NoParent, par[0])
	for leaf := core.NodeID(1); leaf <= 3; leaf++ {
		assert.Equal(t, core.NodeID(0), par[leaf])
	}
}

func TestParents_ShortestRoute(t *testing.T) {
	// Square 0-1-2-3-0: node 2 is reached via the lowest-id neighbor
	// of the two equal-length routes.
	g := core.NewGraph()
	g.AddNodes(4)
	require.NoError(t, g.ConnectNodes([]core.NodeID{0, 1, 2, 3, 0}))

	par := bfs.Parents(g.View(), 0)
	assert.Equal(t, core.NodeID(1), par[2])
	assert.Equal(t, core.NodeID(0), par[3])
}
