package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hexterra/reachcore/config"
	"github.com/hexterra/reachcore/core"
)

// buildRunConfig applies the recognized environment variables over config
// defaults, then lets an explicit CLI flag (non-zero) win over both.
func buildRunConfig(mode core.Mode) config.RunConfig {
	cfg := config.NewRunConfig(mode)

	if dir := os.Getenv("GRAPH_CACHE_DIR"); dir != "" {
		cfg.CacheDir = dir
	}
	if v := envInt("WORKERS"); v > 0 {
		cfg.Workers = v
	}
	if v := envInt("THREADS"); v > 0 {
		cfg.Threads = v
	}
	if v := envInt("BUCKET_WIDTH_SECONDS"); v > 0 {
		cfg.BucketWidthSeconds = v
	}
	if v := envInt("SENTINEL_U16"); v > 0 {
		cfg.SentinelSeconds = uint16(v)
	}

	if flagCacheDir != "" {
		cfg.CacheDir = flagCacheDir
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if flagThreads > 0 {
		cfg.Threads = flagThreads
	}
	if flagMaxDuration > 0 {
		cfg.MaxDuration = flagMaxDuration
	}

	return cfg
}

// runContext derives the kernel context for one subcommand invocation:
// cobra's own command context, stop-signal aware, bounded by the run-level
// max duration when one is configured. In-flight labels see the expiry via
// the kernels' cooperative per-bucket check; shards for those labels are
// never written.
func runContext(cmd *cobra.Command, cfg config.RunConfig) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	if cfg.MaxDuration <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.MaxDuration)
	return ctx, func() {
		cancel()
		stop()
	}
}

func envInt(name string) int {
	raw := os.Getenv(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
