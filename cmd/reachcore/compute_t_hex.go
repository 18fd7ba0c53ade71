package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/graphcache"
	"github.com/hexterra/reachcore/h3index"
	"github.com/hexterra/reachcore/hexagg"
	"github.com/hexterra/reachcore/kbest"
	"github.com/hexterra/reachcore/parquetio"
)

var thFlags struct {
	source         string
	anchors        string
	mode           string
	k              int
	cutoffMinutes  int
	overflowMinute int
	res            []int
	out            string
}

func registerComputeTHexFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&thFlags.source, "source", "", "road-network source file (for the graph cache)")
	cmd.Flags().StringVar(&thFlags.anchors, "anchors", "", "anchor table path")
	cmd.Flags().StringVar(&thFlags.mode, "mode", "drive", "drive or walk")
	cmd.Flags().IntVar(&thFlags.k, "k", 0, "K nearest anchors kept per node/hex, 0 uses the config default")
	cmd.Flags().IntVar(&thFlags.cutoffMinutes, "cutoff", 0, "primary cutoff in minutes, 0 uses the config default")
	cmd.Flags().IntVar(&thFlags.overflowMinute, "overflow-cutoff", 0, "overflow cutoff in minutes, 0 uses the config default")
	cmd.Flags().IntSliceVar(&thFlags.res, "res", nil, "H3 resolutions to produce, empty uses the config default")
	cmd.Flags().StringVar(&thFlags.out, "out", "", "T_hex output parquet path")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("anchors")
	cmd.MarkFlagRequired("out")
}

func runComputeTHex(cmd *cobra.Command, args []string) error {
	mode, err := core.ParseMode(thFlags.mode)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	cfg := buildRunConfig(mode)
	if thFlags.k > 0 {
		cfg.K = thFlags.k
	}
	if thFlags.cutoffMinutes > 0 {
		cfg.CutoffPrimary = thFlags.cutoffMinutes * 60
	}
	if thFlags.overflowMinute > 0 {
		cfg.CutoffOverflow = thFlags.overflowMinute * 60
	}
	if len(thFlags.res) > 0 {
		cfg.Resolutions = thFlags.res
	}
	if err := cfg.Validate(); err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	cache := graphcache.New(cfg.CacheDir, graphcacheOptions()...)
	g, err := cache.LoadOrBuild(thFlags.source, mode)
	if err != nil {
		if errors.Is(err, graphcache.ErrCacheCorrupt) {
			return wrapExit(exitCacheCorrupt, err)
		}
		return wrapExit(exitInvalidInput, err)
	}

	anchors, err := parquetio.ReadAnchorTable(thFlags.anchors, mode)
	if err != nil {
		return wrapExit(exitInvalidInput, err)
	}

	sources := make([]kbest.Source, len(anchors.Sites))
	for i, s := range anchors.Sites {
		sources[i] = kbest.Source{NodeID: s.NodeID, AnchorID: s.AnchorID}
	}

	ctx, cancel := runContext(cmd, cfg)
	defer cancel()

	nodeResults, err := kbest.Run(ctx, g, sources, cfg, kbest.WithLogger(logger))
	if err != nil {
		return wrapExit(exitKernelFailure, err)
	}

	matrix, err := h3index.Index(g.NodeLon, g.NodeLat, cfg.Resolutions)
	if err != nil {
		return wrapExit(exitKernelFailure, err)
	}

	rows, err := hexagg.Aggregate(matrix, nodeResults, cfg.K)
	if err != nil {
		return wrapExit(exitKernelFailure, err)
	}

	if err := parquetio.WriteHexRows(thFlags.out, rows); err != nil {
		return wrapExit(exitKernelFailure, err)
	}

	logger.Info("compute-t-hex: wrote T_hex table",
		zap.Int("rows", len(rows)),
		zap.Ints("resolutions", cfg.Resolutions),
	)
	fmt.Printf("rows=%d resolutions=%v\n", len(rows), cfg.Resolutions)
	return nil
}
