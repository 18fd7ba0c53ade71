package snapper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/snapper"
)

// buildStarGraph builds a small network with one well-connected hub node (1)
// and one degree-1 dead-end spur (3) closer to the query point than the hub,
// to exercise the degree-aware tiebreak.
func buildStarGraph(t *testing.T) *core.CsrGraph {
	t.Helper()
	lon := []float32{0.000, 0.0005, 0.001, 0.0002}
	lat := []float32{0.000, 0.0000, 0.000, 0.0001}
	b := core.NewBuilder(core.Walk, lon, lat)
	require.NoError(t, b.AddEdge(0, 1, 10))
	require.NoError(t, b.AddEdge(1, 0, 10))
	require.NoError(t, b.AddEdge(1, 2, 10))
	require.NoError(t, b.AddEdge(2, 1, 10))
	require.NoError(t, b.AddEdge(1, 3, 5))
	require.NoError(t, b.AddEdge(3, 1, 5))
	g, err := b.Freeze()
	require.NoError(t, err)
	return g
}

func TestSnap_PrefersWellConnectedOverNearerDeadEnd(t *testing.T) {
	g := buildStarGraph(t)
	s, err := snapper.New(g, core.Walk, snapper.WithSnapRadius(1000))
	require.NoError(t, err)

	res := s.Snap(0.0003, 0.0)
	require.True(t, res.Snapped)
	require.EqualValues(t, 1, res.NodeID, "should skip degree-1 node 3 for well-connected hub node 1")
}

func TestSnap_UsesNearestWhenNoOtherCandidateSurvives(t *testing.T) {
	g := buildStarGraph(t)
	s, err := snapper.New(g, core.Walk, snapper.WithSnapRadius(1000))
	require.NoError(t, err)

	res := s.Snap(0.0, 0.0)
	require.True(t, res.Snapped)
	require.EqualValues(t, 0, res.NodeID)
}

func TestSnap_UnsnappedBeyondRadius(t *testing.T) {
	g := buildStarGraph(t)
	s, err := snapper.New(g, core.Walk, snapper.WithSnapRadius(1))
	require.NoError(t, err)

	res := s.Snap(1.0, 1.0)
	require.False(t, res.Snapped)
}

func TestNew_RejectsEmptyGraph(t *testing.T) {
	s, err := snapper.New(&core.CsrGraph{}, core.Drive)
	require.ErrorIs(t, err, snapper.ErrEmptyGraph)
	require.Nil(t, s)
}
