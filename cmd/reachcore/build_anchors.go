package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hexterra/reachcore/anchor"
	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/graphcache"
	"github.com/hexterra/reachcore/parquetio"
	"github.com/hexterra/reachcore/snapper"
)

var baFlags struct {
	source string
	pois   string
	mode   string
	out    string
}

func registerBuildAnchorsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&baFlags.source, "source", "", "road-network source file (for the graph cache)")
	cmd.Flags().StringVar(&baFlags.pois, "pois", "", "POI table CSV")
	cmd.Flags().StringVar(&baFlags.mode, "mode", "drive", "drive or walk")
	cmd.Flags().StringVar(&baFlags.out, "out", "", "anchor table output path")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("pois")
	cmd.MarkFlagRequired("out")
}

func runBuildAnchors(cmd *cobra.Command, args []string) error {
	mode, err := core.ParseMode(baFlags.mode)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	cfg := buildRunConfig(mode)
	cache := graphcache.New(cfg.CacheDir, graphcacheOptions()...)
	g, err := cache.LoadOrBuild(baFlags.source, mode)
	if err != nil {
		if errors.Is(err, graphcache.ErrCacheCorrupt) {
			return wrapExit(exitCacheCorrupt, err)
		}
		return wrapExit(exitInvalidInput, err)
	}

	pois, err := loadPOIs(baFlags.pois)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	snap, err := snapper.New(g, mode)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	table, stats, err := anchor.Build(pois, snap, mode, anchor.WithLogger(logger))
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	if err := parquetio.WriteAnchorTable(baFlags.out, table); err != nil {
		return wrapExit(exitKernelFailure, err)
	}

	logger.Info("build-anchors: wrote anchor table",
		zap.Int("total_pois", stats.TotalPOIs),
		zap.Int("filtered_out", stats.FilteredOut),
		zap.Int("unsnapped", stats.Unsnapped),
		zap.Int("anchor_sites", stats.AnchorSitesOut),
	)
	fmt.Printf("anchors=%d unsnapped=%d filtered=%d\n", stats.AnchorSitesOut, stats.Unsnapped, stats.FilteredOut)
	return nil
}
