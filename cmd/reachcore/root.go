package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// --- Global command variables ---
var (
	flagCacheDir    string
	flagWorkers     int
	flagThreads     int
	flagVerbose     bool
	flagMetricsAddr string
	flagMaxDuration time.Duration

	logger *zap.Logger

	rootCmd = &cobra.Command{
		Use:   "reachcore",
		Short: "Offline travel-time precomputation engine",
		Long: `reachcore turns a road network and a POI table into per-hex
top-K travel-time vectors and per-anchor nearest-POI tables, consumed by a
downstream tile server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(flagVerbose)
			if err != nil {
				return err
			}
			if flagMetricsAddr != "" {
				startMetricsServer(flagMetricsAddr)
			}
			return nil
		},
	}

	buildGraphCmd = &cobra.Command{
		Use:   "build-graph",
		Short: "Parse a road-network extract into the graph cache",
		RunE:  runBuildGraph,
	}

	buildAnchorsCmd = &cobra.Command{
		Use:   "build-anchors",
		Short: "Snap POIs onto the graph and write the anchor table",
		RunE:  runBuildAnchors,
	}

	computeTHexCmd = &cobra.Command{
		Use:   "compute-t-hex",
		Short: "Run the K-best kernel and aggregate it into T_hex",
		RunE:  runComputeTHex,
	}

	computeDAnchorCmd = &cobra.Command{
		Use:   "compute-d-anchor",
		Short: "Run the reverse per-label kernel and write D_anchor shards",
		RunE:  runComputeDAnchor,
	}

	verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Check a T_hex table against the testable properties",
		RunE:  runVerify,
	}
)

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	return cfg.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "graph cache directory, overrides env GRAPH_CACHE_DIR (default ./.reachcore-cache)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "inter-label worker count, 0 uses the config default (env WORKERS)")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "intra-kernel thread count, 0 uses the config default (env THREADS)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable development-mode logging")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "serve graph-cache Prometheus metrics at this address (e.g. :9090); empty disables metrics")
	rootCmd.PersistentFlags().DurationVar(&flagMaxDuration, "max-duration", 0, "run-level timeout (e.g. 90m); in-flight labels are abandoned on expiry, 0 disables")

	registerBuildGraphFlags(buildGraphCmd)
	registerBuildAnchorsFlags(buildAnchorsCmd)
	registerComputeTHexFlags(computeTHexCmd)
	registerComputeDAnchorFlags(computeDAnchorCmd)
	registerVerifyFlags(verifyCmd)

	rootCmd.AddCommand(buildGraphCmd, buildAnchorsCmd, computeTHexCmd, computeDAnchorCmd, verifyCmd)
}
