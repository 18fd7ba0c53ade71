package danchor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexterra/reachcore/config"
	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/danchor"
)

func TestRunAll_MixesStatusesWithoutAbortingOtherLabels(t *testing.T) {
	gT := buildTransposedLineGraph(t)
	anchors := anchorsAt(3)
	cfg := config.NewRunConfig(core.Drive)
	cfg.Workers = 2

	sourcesByLabel := map[int32][]danchor.Source{
		1: {{NodeID: 0, POIID: poi(1)}},
		// label 2 has no sources at all
	}
	labels := []danchor.Label{
		{ID: 1, MaxSeconds: 3600, TopK: 2},
		{ID: 2, MaxSeconds: 3600, TopK: 2},
	}

	results := danchor.RunAll(context.Background(), gT, anchors, sourcesByLabel, labels, cfg)
	require.Len(t, results, 2)

	byID := make(map[int32]danchor.LabelResult, len(results))
	for _, r := range results {
		byID[r.LabelID] = r
	}
	require.Equal(t, danchor.StatusOK, byID[1].Status)
	require.Len(t, byID[1].Rows, 1)
	require.Equal(t, danchor.StatusNoSources, byID[2].Status)
	require.Empty(t, byID[2].Rows)
}

func TestRunAll_CancelledContextMarksEveryLabelCancelled(t *testing.T) {
	gT := buildTransposedLineGraph(t)
	anchors := anchorsAt(3)
	cfg := config.NewRunConfig(core.Drive)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sourcesByLabel := map[int32][]danchor.Source{1: {{NodeID: 0, POIID: poi(1)}}}
	labels := []danchor.Label{{ID: 1, MaxSeconds: 3600, TopK: 2}}

	results := danchor.RunAll(ctx, gT, anchors, sourcesByLabel, labels, cfg)
	require.Len(t, results, 1)
	require.Equal(t, danchor.StatusCancelled, results[0].Status)
	require.Empty(t, results[0].Rows)
}

func TestRunAll_EmptyLabelsReturnsEmptyResults(t *testing.T) {
	gT := buildTransposedLineGraph(t)
	anchors := anchorsAt(3)
	cfg := config.NewRunConfig(core.Drive)

	results := danchor.RunAll(context.Background(), gT, anchors, map[int32][]danchor.Source{}, nil, cfg)
	require.Empty(t, results)
}
