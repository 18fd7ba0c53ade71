package danchor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexterra/reachcore/anchor"
	"github.com/hexterra/reachcore/config"
	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/danchor"
)

// buildTransposedLineGraph builds a 4-node bidirectional path 0-1-2-3 with 10s edges,
// matching the fixture shared by kbest's tests, then returns its transpose
// since danchor runs on the reverse graph.
func buildTransposedLineGraph(t *testing.T) *core.CsrGraph {
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
	return g.Transpose()
}

func poi(b byte) anchor.POIID {
	var id anchor.POIID
	id[0] = b
	return id
}

func anchorsAt(nodeIDs ...uint32) *anchor.Table {
	sites := make([]anchor.Site, len(nodeIDs))
	for i, n := range nodeIDs {
		sites[i] = anchor.Site{AnchorID: int32(i), NodeID: n}
	}
	return &anchor.Table{Mode: core.Drive, Sites: sites}
}

func TestRunLabel_NearestPOIRankedFirst(t *testing.T) {
	gT := buildTransposedLineGraph(t)
	anchors := anchorsAt(3) // anchor site at node 3
	cfg := config.NewRunConfig(core.Drive)

	sources := []danchor.Source{
		{NodeID: 0, POIID: poi(1)},
		{NodeID: 2, POIID: poi(2)},
	}
	label := danchor.Label{ID: 42, MaxSeconds: 3600, TopK: 2}

	rows, err := danchor.RunLabel(context.Background(), gT, sources, label, anchors, cfg)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.EqualValues(t, 0, rows[0].Rank)
	require.Equal(t, poi(2), rows[0].POIID) // node 2 is 10s from node 3
	require.EqualValues(t, 10, rows[0].Seconds)
	require.EqualValues(t, 1, rows[1].Rank)
	require.Equal(t, poi(1), rows[1].POIID) // node 0 is 30s from node 3
	require.EqualValues(t, 30, rows[1].Seconds)
}

func TestRunLabel_CapsAtTopK(t *testing.T) {
	gT := buildTransposedLineGraph(t)
	anchors := anchorsAt(0)
	cfg := config.NewRunConfig(core.Drive)

	sources := []danchor.Source{
		{NodeID: 1, POIID: poi(1)},
		{NodeID: 2, POIID: poi(2)},
		{NodeID: 3, POIID: poi(3)},
	}
	label := danchor.Label{ID: 1, MaxSeconds: 3600, TopK: 1}

	rows, err := danchor.RunLabel(context.Background(), gT, sources, label, anchors, cfg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, poi(1), rows[0].POIID) // node 1 is nearest to node 0
}

func TestRunLabel_OmitsAnchorsWithNoReachablePOIUnderCutoff(t *testing.T) {
	gT := buildTransposedLineGraph(t)
	anchors := anchorsAt(3)
	cfg := config.NewRunConfig(core.Drive)

	sources := []danchor.Source{{NodeID: 0, POIID: poi(1)}}
	label := danchor.Label{ID: 1, MaxSeconds: 20, TopK: 5} // node 0 is 30s from node 3

	rows, err := danchor.RunLabel(context.Background(), gT, sources, label, anchors, cfg)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestRunLabel_RejectsEmptySources(t *testing.T) {
	gT := buildTransposedLineGraph(t)
	anchors := anchorsAt(0)
	cfg := config.NewRunConfig(core.Drive)
	label := danchor.Label{ID: 1, MaxSeconds: 60, TopK: 1}

	_, err := danchor.RunLabel(context.Background(), gT, nil, label, anchors, cfg)
	require.ErrorIs(t, err, danchor.ErrNoSources)
}

func TestRunLabel_RejectsInvalidTopK(t *testing.T) {
	gT := buildTransposedLineGraph(t)
	anchors := anchorsAt(0)
	cfg := config.NewRunConfig(core.Drive)
	sources := []danchor.Source{{NodeID: 1, POIID: poi(1)}}

	_, err := danchor.RunLabel(context.Background(), gT, sources, danchor.Label{ID: 1, MaxSeconds: 60, TopK: 0}, anchors, cfg)
	require.ErrorIs(t, err, danchor.ErrInvalidTopK)
}

func TestRunLabel_FlagsImplausibleSpeed(t *testing.T) {
	// Two nodes one second of edge weight apart but placed
	// many degrees of longitude apart in real coordinates: the implied
	// great-circle speed vastly exceeds 200 km/h.
	lon := []float32{0, 90}
	lat := []float32{0, 0}
	b := core.NewBuilder(core.Drive, lon, lat)
	require.NoError(t, b.AddEdge(0, 1, 1))
	g, err := b.Freeze()
	require.NoError(t, err)
	gT := g.Transpose()

	anchors := &anchor.Table{Mode: core.Drive, Sites: []anchor.Site{{AnchorID: 0, NodeID: 0, Lon: 0, Lat: 0}}}
	cfg := config.NewRunConfig(core.Drive)
	sources := []danchor.Source{{NodeID: 1, POIID: poi(1), Lon: 90, Lat: 0}}
	label := danchor.Label{ID: 1, MaxSeconds: 60, TopK: 1}

	_, err = danchor.RunLabel(context.Background(), gT, sources, label, anchors, cfg)
	require.ErrorIs(t, err, danchor.ErrImplausibleSpeed)
}
