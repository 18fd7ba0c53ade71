package hexagg_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uber/h3-go/v4"

	"github.com/hexterra/reachcore/h3index"
	"github.com/hexterra/reachcore/hexagg"
	"github.com/hexterra/reachcore/kbest"
)

func TestAggregate_RejectsMatrixWithNoResolutions(t *testing.T) {
	_, err := hexagg.Aggregate(&h3index.Matrix{}, nil, 4)
	require.ErrorIs(t, err, hexagg.ErrNoResolutions)
}

func TestAggregate_DropsSentinelLabelsAndProducesEveryResolution(t *testing.T) {
	lon := []float32{-122.4194, -122.4190, -122.27}
	lat := []float32{37.7749, 37.7750, 37.80}
	matrix, err := h3index.Index(lon, lat, []int{7, 9})
	require.NoError(t, err)

	results := []kbest.NodeResult{
		{Row: kbest.Row{{AnchorID: 1, Seconds: 120}, {AnchorID: kbest.SentinelAnchorID, Seconds: 65535}}},
		{Row: kbest.Row{{AnchorID: 1, Seconds: 90}, {AnchorID: 2, Seconds: 200}}},
		{Row: kbest.Row{{AnchorID: 3, Seconds: 50}}},
	}

	rows, err := hexagg.Aggregate(matrix, results, 2)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	for _, r := range rows {
		require.NotEqual(t, kbest.SentinelAnchorID, r.AnchorID, "sentinel labels must never reach output")
	}

	sawRes := map[uint8]bool{}
	for _, r := range rows {
		sawRes[r.Res] = true
	}
	require.True(t, sawRes[7])
	require.True(t, sawRes[9])
}

func TestAggregate_ParentNeverSlowerThanAnyChild(t *testing.T) {
	// A spread of nodes across several res-8 cells under a few res-7
	// parents, with varied per-node labels: for every (parent, anchor)
	// pair present at res 7, its seconds must be <= the minimum across
	// children carrying that anchor at res 8.
	lon := []float32{-122.4194, -122.4190, -122.4100, -122.4000, -122.3900}
	lat := []float32{37.7749, 37.7755, 37.7800, 37.7850, 37.7900}
	matrix, err := h3index.Index(lon, lat, []int{7, 8})
	require.NoError(t, err)

	results := []kbest.NodeResult{
		{Row: kbest.Row{{AnchorID: 1, Seconds: 120}, {AnchorID: 2, Seconds: 400}}},
		{Row: kbest.Row{{AnchorID: 1, Seconds: 90}}},
		{Row: kbest.Row{{AnchorID: 2, Seconds: 300}, {AnchorID: 3, Seconds: 10}}},
		{Row: kbest.Row{{AnchorID: 1, Seconds: 700}}},
		{Row: kbest.Row{{AnchorID: 3, Seconds: 20}, {AnchorID: 1, Seconds: 50}}},
	}

	rows, err := hexagg.Aggregate(matrix, results, 3)
	require.NoError(t, err)

	type key struct {
		h3id   uint64
		anchor int32
	}
	parentSeconds := make(map[key]uint16)
	for _, r := range rows {
		if r.Res == 7 {
			parentSeconds[key{r.H3ID, r.AnchorID}] = r.Seconds
		}
	}
	for _, r := range rows {
		if r.Res != 8 {
			continue
		}
		parent, err := h3.Cell(r.H3ID).Parent(7)
		require.NoError(t, err)
		if ps, ok := parentSeconds[key{uint64(parent), r.AnchorID}]; ok {
			require.LessOrEqual(t, ps, r.Seconds,
				"parent cell must never be slower than a child carrying the same anchor")
		}
	}
}

func TestAggregate_KeepsAtMostKDistinctAnchorsPerHex(t *testing.T) {
	lon := []float32{-122.4194, -122.4193}
	lat := []float32{37.7749, 37.77495}
	matrix, err := h3index.Index(lon, lat, []int{9})
	require.NoError(t, err)

	results := []kbest.NodeResult{
		{Row: kbest.Row{{AnchorID: 1, Seconds: 10}, {AnchorID: 2, Seconds: 20}, {AnchorID: 3, Seconds: 30}}},
		{Row: kbest.Row{{AnchorID: 4, Seconds: 5}}},
	}

	rows, err := hexagg.Aggregate(matrix, results, 2)
	require.NoError(t, err)

	byHex := map[uint64]int{}
	for _, r := range rows {
		byHex[r.H3ID]++
	}
	for hex, count := range byHex {
		require.LessOrEqualf(t, count, 2, "hex %d exceeded K", hex)
	}
}
