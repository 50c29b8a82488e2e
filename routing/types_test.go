package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphnet/routesim/builder"
	"github.com/graphnet/routesim/core"
	"github.com/graphnet/routesim/routing"
)

func TestNew_AllNames(t *testing.T) {
	for _, name := range routing.Names() {
		algo, err := routing.New(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, algo.Name())

		// Every variant answers Get("name").
		got, err := algo.Get("name")
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}
}

func TestNew_UnknownName(t *testing.T) {
	_, err := routing.New("ospf")
	assert.ErrorIs(t, err, routing.ErrUnknownAlgorithm)
}

func TestGetSet_UnknownParameter(t *testing.T) {
	for _, name := range routing.Names() {
		algo, err := routing.New(name)
		require.NoError(t, err)

		_, err = algo.Get("no_such_key")
		assert.ErrorIs(t, err, routing.ErrUnknownParameter, name)
		err = algo.Set("no_such_key", "1")
		assert.ErrorIs(t, err, routing.ErrUnknownParameter, name)
	}
}

func TestSet_BadValue(t *testing.T) {
	algo, err := routing.New("random")
	require.NoError(t, err)
	assert.ErrorIs(t, algo.Set("hop_limit", "many"), routing.ErrBadValue)
	assert.ErrorIs(t, algo.Set("hop_limit", "-3"), routing.ErrBadValue)
}

// Routing between two isolated components reports non-arrived for every
// variant, never an error or a panic.
func TestRoute_DisconnectedComponents(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Line(g, 3, false) // 0—1—2
	require.NoError(t, err)
	_, err = builder.Line(g, 3, false) // 3—4—5
	require.NoError(t, err)

	for _, name := range routing.Names() {
		algo, err := routing.New(name)
		require.NoError(t, err)
		algo.Reset(g.NodeCount())
		for i := 0; i < 5; i++ {
			algo.Step(g.View())
		}

		res := algo.Route(g.View(), routing.PathRequest{Source: 0, Dest: 5})
		assert.False(t, res.Arrived, "%s must not cross components", name)
	}
}

// A missed Reset after a topology change is a contract violation and
// panics instead of silently desynchronizing.
func TestRoute_MissedResetPanics(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.Line(g, 3, false)
	require.NoError(t, err)

	algo, err := routing.New("random")
	require.NoError(t, err)
	algo.Reset(g.NodeCount())

	g.AddNodes(2) // topology change without Reset
	assert.Panics(t, func() {
		algo.Route(g.View(), routing.PathRequest{Source: 0, Dest: 1})
	})
	assert.Panics(t, func() {
		algo.Step(g.View())
	})
}
