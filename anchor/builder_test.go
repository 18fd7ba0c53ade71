package anchor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexterra/reachcore/anchor"
	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/snapper"
)

func buildGraph(t *testing.T) *core.CsrGraph {
	t.Helper()
	lon := []float32{0.0, 0.001, 0.002}
	lat := []float32{0.0, 0.000, 0.000}
	b := core.NewBuilder(core.Walk, lon, lat)
	require.NoError(t, b.AddEdge(0, 1, 10))
	require.NoError(t, b.AddEdge(1, 0, 10))
	require.NoError(t, b.AddEdge(1, 2, 10))
	require.NoError(t, b.AddEdge(2, 1, 10))
	g, err := b.Freeze()
	require.NoError(t, err)
	return g
}

func brandPtr(v int32) *int32 { return &v }

func TestBuild_GroupsByNodeAndAssignsDenseAnchorIDs(t *testing.T) {
	g := buildGraph(t)
	snap, err := snapper.New(g, core.Walk, snapper.WithSnapRadius(1000))
	require.NoError(t, err)

	pois := []anchor.POI{
		{ID: anchor.POIID{1}, Lon: 0.0009, Lat: 0.0, CategoryID: 5, BrandID: brandPtr(9), Anchorable: true},
		{ID: anchor.POIID{2}, Lon: 0.001, Lat: 0.0, CategoryID: 6, Anchorable: true},
		{ID: anchor.POIID{3}, Lon: 0.0, Lat: 0.0, CategoryID: 5, Anchorable: true},
		{ID: anchor.POIID{4}, Lon: 0.0005, Lat: 0.0, CategoryID: 7, Anchorable: false},
	}

	table, stats, err := anchor.Build(pois, snap, core.Walk)
	require.NoError(t, err)
	require.Equal(t, 4, stats.TotalPOIs)
	require.Equal(t, 1, stats.FilteredOut, "the non-anchorable POI is excluded")
	require.Equal(t, 2, table.NumAnchors(), "nodes 0 and 1 each get a site")

	for i, s := range table.Sites {
		require.EqualValues(t, i, s.AnchorID)
	}
	require.Less(t, table.Sites[0].NodeID, table.Sites[1].NodeID, "anchor_int_id follows node_id ascending")
}

func TestBuild_NoEligiblePOIsReturnsErrNoPOIs(t *testing.T) {
	g := buildGraph(t)
	snap, err := snapper.New(g, core.Walk, snapper.WithSnapRadius(1000))
	require.NoError(t, err)

	_, _, err = anchor.Build([]anchor.POI{{ID: anchor.POIID{1}, Anchorable: false}}, snap, core.Walk)
	require.ErrorIs(t, err, anchor.ErrNoPOIs)
}

func TestBuild_AllowlistExcludesUnlistedCategory(t *testing.T) {
	g := buildGraph(t)
	snap, err := snapper.New(g, core.Walk, snapper.WithSnapRadius(1000))
	require.NoError(t, err)

	pois := []anchor.POI{{ID: anchor.POIID{1}, Lon: 0.0, Lat: 0.0, CategoryID: 99, Anchorable: true}}
	_, stats, err := anchor.Build(pois, snap, core.Walk, anchor.WithAllowlists([]int32{1, 2, 3}, nil))
	require.ErrorIs(t, err, anchor.ErrNoPOIs)
	require.Equal(t, 1, stats.FilteredOut)
}

func TestBuild_SiteIDIsDeterministic(t *testing.T) {
	g := buildGraph(t)
	snap, err := snapper.New(g, core.Walk, snapper.WithSnapRadius(1000))
	require.NoError(t, err)
	pois := []anchor.POI{{ID: anchor.POIID{1}, Lon: 0.0, Lat: 0.0, CategoryID: 1, Anchorable: true}}

	t1, _, err := anchor.Build(pois, snap, core.Walk)
	require.NoError(t, err)
	t2, _, err := anchor.Build(pois, snap, core.Walk)
	require.NoError(t, err)
	require.Equal(t, t1.Sites[0].SiteID, t2.Sites[0].SiteID)
}
