package kbest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexterra/reachcore/config"
	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/kbest"
)

// buildLineGraph builds a 4-node directed path 0->1->2->3 with weights
// 10, 10, 10, plus a bidirectional companion, matching the line-topology
// fixture used elsewhere in this module's tests.
func buildLineGraph(t *testing.T) *core.CsrGraph {
	t.Helper()
	lon := []float32{0, 1, 2, 3}
	lat := []float32{0, 0, 0, 0}
	b := core.NewBuilder(core.Drive, lon, lat)
	require.NoError(t, b.AddEdge(0, 1, 10))
	require.NoError(t, b.AddEdge(1, 0, 10))
	require.NoError(t, b.AddEdge(1, 2, 10))
	require.NoError(t, b.AddEdge(2, 1, 10))
	require.NoError(t, b.AddEdge(2, 3, 10))
	require.NoError(t, b.AddEdge(3, 2, 10))
	g, err := b.Freeze()
	require.NoError(t, err)
	return g
}

func TestRun_SourceNodeFirstResultIsZeroSeconds(t *testing.T) {
	g := buildLineGraph(t)
	cfg := config.NewRunConfig(core.Drive)
	cfg.K = 2

	results, err := kbest.Run(context.Background(), g, []kbest.Source{{NodeID: 0, AnchorID: 7}}, cfg)
	require.NoError(t, err)
	require.EqualValues(t, 7, results[0].Row[0].AnchorID)
	require.EqualValues(t, 0, results[0].Row[0].Seconds)
}

func TestRun_DistancesIncreaseAlongThePath(t *testing.T) {
	g := buildLineGraph(t)
	cfg := config.NewRunConfig(core.Drive)
	cfg.K = 1

	results, err := kbest.Run(context.Background(), g, []kbest.Source{{NodeID: 0, AnchorID: 0}}, cfg)
	require.NoError(t, err)
	require.EqualValues(t, 0, results[0].Row[0].Seconds)
	require.EqualValues(t, 10, results[1].Row[0].Seconds)
	require.EqualValues(t, 20, results[2].Row[0].Seconds)
	require.EqualValues(t, 30, results[3].Row[0].Seconds)
}

func TestRun_KeepsKDistinctAnchorsOrderedAscending(t *testing.T) {
	g := buildLineGraph(t)
	cfg := config.NewRunConfig(core.Drive)
	cfg.K = 2

	sources := []kbest.Source{
		{NodeID: 0, AnchorID: 1},
		{NodeID: 3, AnchorID: 2},
	}
	results, err := kbest.Run(context.Background(), g, sources, cfg)
	require.NoError(t, err)

	mid := results[1] // node 1: 10s from anchor1, 20s from anchor2
	require.Len(t, mid.Row, 2)
	require.EqualValues(t, 1, mid.Row[0].AnchorID)
	require.EqualValues(t, 10, mid.Row[0].Seconds)
	require.EqualValues(t, 2, mid.Row[1].AnchorID)
	require.EqualValues(t, 20, mid.Row[1].Seconds)
}

func TestRun_PadsWithSentinelWhenFewerThanKAnchorsReachable(t *testing.T) {
	g := buildLineGraph(t)
	cfg := config.NewRunConfig(core.Drive)
	cfg.K = 3

	results, err := kbest.Run(context.Background(), g, []kbest.Source{{NodeID: 0, AnchorID: 5}}, cfg)
	require.NoError(t, err)
	last := results[3].Row[2]
	require.Equal(t, kbest.SentinelAnchorID, last.AnchorID)
	require.Equal(t, cfg.SentinelSeconds, last.Seconds)
	require.True(t, results[3].Overflow)
}

func TestRun_TieOnSecondsPrefersSmallerAnchorID(t *testing.T) {
	// Anchors at nodes 0 and 2, both 100s away from the middle node 1: the
	// middle node must report anchor 0 before anchor 1 despite equal seconds.
	lon := []float32{0, 1, 2}
	lat := []float32{0, 0, 0}
	b := core.NewBuilder(core.Drive, lon, lat)
	require.NoError(t, b.AddEdge(0, 1, 100))
	require.NoError(t, b.AddEdge(2, 1, 100))
	g, err := b.Freeze()
	require.NoError(t, err)

	cfg := config.NewRunConfig(core.Drive)
	cfg.K = 2
	sources := []kbest.Source{
		{NodeID: 0, AnchorID: 0},
		{NodeID: 2, AnchorID: 1},
	}
	results, err := kbest.Run(context.Background(), g, sources, cfg)
	require.NoError(t, err)

	mid := results[1].Row
	require.EqualValues(t, 0, mid[0].AnchorID)
	require.EqualValues(t, 100, mid[0].Seconds)
	require.EqualValues(t, 1, mid[1].AnchorID)
	require.EqualValues(t, 100, mid[1].Seconds)
}

func TestRun_DisconnectedComponentStaysUnreached(t *testing.T) {
	// {0,1} and {2,3} with no cross edges; anchor at 0. Nodes 2 and 3 must
	// end with nothing but sentinel padding.
	lon := []float32{0, 1, 10, 11}
	lat := []float32{0, 0, 0, 0}
	b := core.NewBuilder(core.Drive, lon, lat)
	require.NoError(t, b.AddEdge(0, 1, 30))
	require.NoError(t, b.AddEdge(1, 0, 30))
	require.NoError(t, b.AddEdge(2, 3, 30))
	require.NoError(t, b.AddEdge(3, 2, 30))
	g, err := b.Freeze()
	require.NoError(t, err)

	cfg := config.NewRunConfig(core.Drive)
	cfg.K = 2
	results, err := kbest.Run(context.Background(), g, []kbest.Source{{NodeID: 0, AnchorID: 0}}, cfg)
	require.NoError(t, err)

	for _, node := range []int{2, 3} {
		for _, l := range results[node].Row {
			require.Equal(t, kbest.SentinelAnchorID, l.AnchorID)
			require.Equal(t, cfg.SentinelSeconds, l.Seconds)
		}
		require.True(t, results[node].Overflow)
	}
}

func TestRun_CancelledContextAbortsScan(t *testing.T) {
	g := buildLineGraph(t)
	cfg := config.NewRunConfig(core.Drive)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := kbest.Run(ctx, g, []kbest.Source{{NodeID: 0, AnchorID: 0}}, cfg)
	require.ErrorIs(t, err, kbest.ErrCancelled)
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	g := buildLineGraph(t)
	cfg := config.NewRunConfig(core.Drive)
	cfg.K = 0
	_, err := kbest.Run(context.Background(), g, nil, cfg)
	require.ErrorIs(t, err, kbest.ErrInvalidK)

	cfg = config.NewRunConfig(core.Drive)
	cfg.CutoffPrimary = 100
	cfg.CutoffOverflow = 50
	_, err = kbest.Run(context.Background(), g, nil, cfg)
	require.ErrorIs(t, err, kbest.ErrCutoffOrder)
}

func TestRun_SkipsOutOfRangeSource(t *testing.T) {
	g := buildLineGraph(t)
	cfg := config.NewRunConfig(core.Drive)
	results, err := kbest.Run(context.Background(), g, []kbest.Source{{NodeID: 999, AnchorID: 1}}, cfg)
	require.NoError(t, err)
	for _, r := range results {
		require.True(t, r.Overflow)
	}
}
