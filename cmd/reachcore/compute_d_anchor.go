package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hexterra/reachcore/anchor"
	"github.com/hexterra/reachcore/config"
	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/danchor"
	"github.com/hexterra/reachcore/graphcache"
	"github.com/hexterra/reachcore/parquetio"
	"github.com/hexterra/reachcore/runmanifest"
	"github.com/hexterra/reachcore/snapper"
)

var daFlags struct {
	source       string
	anchors      string
	pois         string
	labels       string
	labelsConfig string
	mode         string
	out          string
}

func registerComputeDAnchorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&daFlags.source, "source", "", "road-network source file (for the graph cache)")
	cmd.Flags().StringVar(&daFlags.anchors, "anchors", "", "anchor table path")
	cmd.Flags().StringVar(&daFlags.pois, "pois", "", "POI table CSV")
	cmd.Flags().StringVar(&daFlags.labels, "labels", "", "comma-separated label ids to compute")
	cmd.Flags().StringVar(&daFlags.labelsConfig, "labels-config", "", "label runtime-limits YAML file")
	cmd.Flags().StringVar(&daFlags.mode, "mode", "drive", "drive or walk")
	cmd.Flags().StringVar(&daFlags.out, "out", "", "D_anchor output root directory")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("anchors")
	cmd.MarkFlagRequired("pois")
	cmd.MarkFlagRequired("labels")
	cmd.MarkFlagRequired("labels-config")
	cmd.MarkFlagRequired("out")
}

func runComputeDAnchor(cmd *cobra.Command, args []string) error {
	mode, err := core.ParseMode(daFlags.mode)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	labelIDs, err := parseLabelIDs(daFlags.labels)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	limits, err := config.LoadLabelLimits(daFlags.labelsConfig)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	cfg := buildRunConfig(mode)
	if err := cfg.Validate(); err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	cache := graphcache.New(cfg.CacheDir, graphcacheOptions()...)
	g, err := cache.LoadOrBuild(daFlags.source, mode)
	if err != nil {
		if errors.Is(err, graphcache.ErrCacheCorrupt) {
			return wrapExit(exitCacheCorrupt, err)
		}
		return wrapExit(exitInvalidInput, err)
	}
	transposed := g.Transpose()

	anchors, err := parquetio.ReadAnchorTable(daFlags.anchors, mode)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	pois, err := loadPOIs(daFlags.pois)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	snap, err := snapper.New(g, mode)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	sourcesByLabel := buildSourcesByLabel(pois, snap, labelIDs)

	labels := make([]danchor.Label, len(labelIDs))
	for i, id := range labelIDs {
		lim := limits.For(strconv.FormatInt(int64(id), 10))
		labels[i] = danchor.Label{ID: id, MaxSeconds: lim.MaxSeconds(), TopK: lim.TopK}
	}

	ctx, cancel := runContext(cmd, cfg)
	defer cancel()

	results := danchor.RunAll(ctx, transposed, anchors, sourcesByLabel, labels, cfg, danchor.WithLogger(logger))

	entries := make([]runmanifest.Entry, len(results))
	for i, r := range results {
		entries[i] = runmanifest.Entry{
			LabelID:     r.LabelID,
			Status:      string(r.Status),
			RowsWritten: len(r.Rows),
			SSSPSeconds: r.Duration.Seconds(),
			Reason:      r.Reason,
		}
		if r.Status != danchor.StatusOK {
			continue
		}
		if err := parquetio.WriteDAnchorShard(daFlags.out, mode, r.LabelID, r.Rows); err != nil {
			return wrapExit(exitKernelFailure, err)
		}
	}

	manifestPath := filepath.Join(daFlags.out, "manifest.json")
	manifest := runmanifest.Manifest{Mode: mode.String(), Entries: entries}
	if err := runmanifest.Write(manifestPath, manifest); err != nil {
		return wrapExit(exitKernelFailure, err)
	}

	if ctx.Err() != nil {
		logger.Warn("compute-d-anchor: run cancelled, manifest records abandoned labels")
		return wrapExit(exitKernelFailure, danchor.ErrCancelled)
	}

	logger.Info("compute-d-anchor: run complete", zap.Int("labels", len(labels)))
	fmt.Printf("labels=%d manifest=%s\n", len(labels), manifestPath)
	return nil
}

func parseLabelIDs(csv string) ([]int32, error) {
	parts := strings.Split(csv, ",")
	ids := make([]int32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("label id %q: %w", p, err)
		}
		ids = append(ids, int32(v))
	}
	return ids, nil
}

// buildSourcesByLabel snaps every POI onto the graph once, then fans each
// snapped POI out to every label it contributes to: a POI's category id
// and, if present, its brand id.
func buildSourcesByLabel(pois []anchor.POI, snap *snapper.Snapper, wantedLabels []int32) map[int32][]danchor.Source {
	wanted := make(map[int32]struct{}, len(wantedLabels))
	for _, id := range wantedLabels {
		wanted[id] = struct{}{}
	}

	out := make(map[int32][]danchor.Source)
	for _, p := range pois {
		res := snap.Snap(float64(p.Lon), float64(p.Lat))
		if !res.Snapped {
			continue
		}
		src := danchor.Source{NodeID: res.NodeID, POIID: p.ID, Lon: p.Lon, Lat: p.Lat}
		for _, labelID := range p.Labels() {
			if _, ok := wanted[labelID]; !ok {
				continue
			}
			out[labelID] = append(out[labelID], src)
		}
	}
	return out
}
