package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphnet/routesim/bfs"
	"github.com/graphnet/routesim/builder"
	"github.com/graphnet/routesim/core"
	"github.com/graphnet/routesim/routing"
)

// grown returns a tree router with its forest built.
func grown(t *testing.T, g *core.Graph) routing.Algorithm {
	t.Helper()
	algo, err := routing.New("tree")
	require.NoError(t, err)
	algo.Reset(g.NodeCount())
	algo.Step(g.View())

	return algo
}

// 5-node line 0—1—2—3—4: the unique tree path end to end is the line
// itself, stretch exactly 1.
func TestTree_LineEndToEnd(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Line(g, 5, false)
	require.NoError(t, err)

	algo := grown(t, g)
	res := algo.Route(g.View(), routing.PathRequest{Source: 0, Dest: 4})
	require.True(t, res.Arrived)
	assert.Equal(t, []core.NodeID{0, 1, 2, 3, 4}, res.Path)
	assert.Equal(t, 4, res.Hops)
}

// On any connected graph every pair arrives, and the tree-path length
// is independently verifiable against BFS ground truth.
func TestTree_AlwaysArrivesWhenConnected(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Lattice8(g, 3, 3)
	require.NoError(t, err)

	algo := grown(t, g)
	for src := core.NodeID(0); src < 9; src++ {
		dist := bfs.Distances(g.View(), src)
		for dst := core.NodeID(0); dst < 9; dst++ {
			if src == dst {
				continue
			}
			res := algo.Route(g.View(), routing.PathRequest{Source: src, Dest: dst})
			require.True(t, res.Arrived, "%d→%d", src, dst)
			// Tree paths are never shorter than the true shortest path.
			assert.GreaterOrEqual(t, res.Hops, dist[dst])
		}
	}
}

// Both endpoints on one branch: routing descends/climbs without
// touching the root.
func TestTree_SameBranch(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Star(g, 3) // hub 0, leaves 1..3
	require.NoError(t, err)

	algo := grown(t, g)
	res := algo.Route(g.View(), routing.PathRequest{Source: 1, Dest: 3})
	require.True(t, res.Arrived)
	assert.Equal(t, []core.NodeID{1, 0, 3}, res.Path)
}

func TestTree_SourceEqualsDest(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Line(g, 3, false)
	require.NoError(t, err)

	algo := grown(t, g)
	res := algo.Route(g.View(), routing.PathRequest{Source: 1, Dest: 1})
	require.True(t, res.Arrived)
	assert.Zero(t, res.Hops)
}

// Disconnected components report non-arrived; a route before the first
// Step (no forest yet) does too.
func TestTree_Unreachable(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Line(g, 2, false)
	require.NoError(t, err)
	_, err = builder.Line(g, 2, false)
	require.NoError(t, err)

	algo, err := routing.New("tree")
	require.NoError(t, err)
	algo.Reset(g.NodeCount())

	res := algo.Route(g.View(), routing.PathRequest{Source: 0, Dest: 1})
	assert.False(t, res.Arrived, "no forest before the first Step")

	algo.Step(g.View())
	res = algo.Route(g.View(), routing.PathRequest{Source: 0, Dest: 3})
	assert.False(t, res.Arrived, "cross-component route")
	res = algo.Route(g.View(), routing.PathRequest{Source: 0, Dest: 1})
	assert.True(t, res.Arrived)
}

// The forest is rebuilt after Reset, tracking topology changes.
func TestTree_RebuildAfterReset(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Line(g, 2, false)
	require.NoError(t, err)
	_, err = builder.Line(g, 2, false)
	require.NoError(t, err)

	algo := grown(t, g)
	require.False(t, algo.Route(g.View(), routing.PathRequest{Source: 1, Dest: 2}).Arrived)

	// Bridge the components, reset, rebuild.
	require.NoError(t, g.AddLink(1, 2))
	algo.Reset(g.NodeCount())
	algo.Step(g.View())
	assert.True(t, algo.Route(g.View(), routing.PathRequest{Source: 0, Dest: 3}).Arrived)
}
