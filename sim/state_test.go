package sim_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphnet/routesim/builder"
	"github.com/graphnet/routesim/core"
	"github.com/graphnet/routesim/debugpath"
	"github.com/graphnet/routesim/sim"
)

func lineState(t *testing.T, n int) *sim.State {
	t.Helper()
	st := sim.NewState(nil)
	require.NoError(t, st.Edit(func(g *core.Graph) error {
		_, err := builder.Line(g, n, false)

		return err
	}))

	return st
}

func TestNewState_Defaults(t *testing.T) {
	st := sim.NewState(nil)
	info := st.Info()
	assert.Equal(t, "random", info.Algorithm)
	assert.Zero(t, info.Nodes)
	assert.Zero(t, info.Steps)
}

func TestSetAlgorithm(t *testing.T) {
	st := lineState(t, 4)
	require.NoError(t, st.SetAlgorithm("tree"))
	assert.Equal(t, "tree", st.AlgorithmName())

	err := st.SetAlgorithm("nonsense")
	assert.Error(t, err)
	assert.Equal(t, "tree", st.AlgorithmName(), "failed switch keeps the old algorithm")
}

func TestAdvance_CountsSteps(t *testing.T) {
	st := lineState(t, 4)
	done, elapsed := st.Advance(5)
	assert.Equal(t, 5, done)
	assert.Positive(t, elapsed)
	assert.Equal(t, 5, st.Info().Steps)
}

func TestAdvance_Abort(t *testing.T) {
	st := lineState(t, 4)
	st.Abort().Store(true)
	done, _ := st.Advance(100)
	assert.Zero(t, done)

	st.Abort().Store(false)
	done, _ = st.Advance(3)
	assert.Equal(t, 3, done)
}

// The tree algorithm routes after stepping; an Edit invalidates its
// forest and evaluation results, and keeping routing consistent again
// only needs new steps, not manual resets.
func TestEdit_ResetsAlgorithmAndEval(t *testing.T) {
	st := lineState(t, 5)
	require.NoError(t, st.SetAlgorithm("tree"))
	st.Advance(1)
	st.RunEval(20)
	require.Equal(t, 20, st.Info().Samples)
	require.Equal(t, 1.0, st.Info().ArrivedFraction)

	require.NoError(t, st.Edit(func(g *core.Graph) error {
		g.AddNodes(1)

		return nil
	}))
	info := st.Info()
	assert.Zero(t, info.Samples, "eval results cleared by the edit")

	// The forest was discarded; before a new Step nothing arrives.
	st.RunEval(10)
	assert.Zero(t, st.Info().ArrivedFraction)

	st.Advance(1)
	st.RunEval(10)
	assert.Positive(t, st.Info().ArrivedFraction)
}

func TestResetSim(t *testing.T) {
	st := lineState(t, 4)
	st.Advance(7)
	st.RunEval(10)

	st.ResetSim()
	info := st.Info()
	assert.Zero(t, info.Steps)
	assert.Zero(t, info.Samples)
	assert.Equal(t, 4, info.Nodes, "topology survives a sim reset")
}

func TestParams(t *testing.T) {
	st := lineState(t, 4)
	require.NoError(t, st.SetParam("hop_limit", "5"))
	v, err := st.GetParam("hop_limit")
	require.NoError(t, err)
	assert.Equal(t, "5", v)

	_, err = st.GetParam("nonsense")
	assert.Error(t, err)
}

func TestDebugTrace(t *testing.T) {
	st := lineState(t, 4)
	require.NoError(t, st.SetAlgorithm("tree"))
	st.Advance(1)

	assert.Error(t, st.DebugInit(0, 99), "unknown node rejected")
	require.NoError(t, st.DebugInit(0, 3))

	var out strings.Builder
	for i := 0; i < 3; i++ {
		require.NoError(t, st.DebugStep(&out))
	}
	assert.Contains(t, out.String(), "arrived at 3")
}

// A trace started before a topology edit holds node ids that the edit
// may renumber or remove; stepping it afterwards must report a clean
// error instead of indexing stale per-node state.
func TestDebugTrace_CanceledByEdit(t *testing.T) {
	st := lineState(t, 6)
	require.NoError(t, st.SetAlgorithm("vivaldi"))
	st.Advance(1)
	require.NoError(t, st.DebugInit(1, 5))

	require.NoError(t, st.Edit(func(g *core.Graph) error {
		return g.RemoveNodes([]core.NodeID{5})
	}))

	var out strings.Builder
	err := st.DebugStep(&out)
	assert.ErrorIs(t, err, debugpath.ErrNotInitialized)

	// A fresh trace against the edited graph works again.
	require.NoError(t, st.DebugInit(0, 4))
	st.Advance(1)
	assert.NoError(t, st.DebugStep(&out))
}

func TestDebugTrace_CanceledByCropMST(t *testing.T) {
	st := sim.NewState(nil)
	require.NoError(t, st.Edit(func(g *core.Graph) error {
		_, err := builder.Lattice4(g, 3, 3)

		return err
	}))
	require.NoError(t, st.DebugInit(0, 8))

	st.CropMST()
	var out strings.Builder
	err := st.DebugStep(&out)
	assert.ErrorIs(t, err, debugpath.ErrNotInitialized)
}

func TestInfo_GraphCounters(t *testing.T) {
	st := sim.NewState(nil)
	require.NoError(t, st.Edit(func(g *core.Graph) error {
		_, err := builder.Star(g, 3)

		return err
	}))

	info := st.Info()
	assert.Equal(t, 4, info.Nodes)
	assert.Equal(t, 3, info.Links)
	assert.InDelta(t, 1.5, info.AvgDegree, 1e-12)
}
