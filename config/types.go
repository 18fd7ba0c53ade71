package config

import (
	"time"

	"github.com/hexterra/reachcore/core"
)

// RunConfig is the single value threaded through every constructor in
// reachcore, rather than module-level mutable state. Build one with
// NewRunConfig, override fields from flags or environment, validate it once
// with Validate, and pass it by value from there.
type RunConfig struct {
	Mode core.Mode

	// K is the number of distinct nearest anchors KBestKernel/HexAggregator
	// keep per node/hex. Defaults to 24; dense urban regions need at least
	// ~20 before filter quality degrades (see DESIGN.md).
	K int

	// CutoffPrimary and CutoffOverflow are the primary and overflow SSSP
	// cutoffs, already converted to seconds. CutoffPrimary <= CutoffOverflow.
	CutoffPrimary  int
	CutoffOverflow int

	// BucketWidthSeconds is the bucket-queue granularity (default 4s),
	// overridable via BUCKET_WIDTH_SECONDS.
	BucketWidthSeconds int

	// Resolutions are the H3 resolutions HexAggregator produces, finest
	// last (e.g. []int{7, 8, 9}).
	Resolutions []int

	// Workers is the D_anchor inter-label worker-pool size, overridable via
	// env WORKERS.
	Workers int

	// Threads is the intra-kernel thread count, typically 1, overridable via
	// env THREADS.
	Threads int

	// SentinelSeconds is normally core.SentinelSeconds (0xFFFF) and should
	// not be changed in production; SENTINEL_U16 exists for test doubles.
	SentinelSeconds uint16

	// CacheDir is the graph cache root (env GRAPH_CACHE_DIR).
	CacheDir string

	// MaxDuration is the run-level cancellation timeout; zero means no
	// limit.
	MaxDuration time.Duration
}

// Default minute-denominated cutoffs.
const (
	DefaultCutoffPrimaryMinutes  = 30
	DefaultCutoffOverflowMinutes = 60
	DefaultK                     = 24
	DefaultBucketWidthSeconds    = 4
	DefaultWorkers               = 4
	DefaultThreads               = 1
)

// NewRunConfig returns a RunConfig populated with reachcore's defaults for
// the given mode; callers override fields before calling Validate.
func NewRunConfig(mode core.Mode) RunConfig {
	return RunConfig{
		Mode:               mode,
		K:                  DefaultK,
		CutoffPrimary:      DefaultCutoffPrimaryMinutes * 60,
		CutoffOverflow:     DefaultCutoffOverflowMinutes * 60,
		BucketWidthSeconds: DefaultBucketWidthSeconds,
		Resolutions:        []int{7, 8, 9},
		Workers:            DefaultWorkers,
		Threads:            DefaultThreads,
		SentinelSeconds:    core.SentinelSeconds,
		CacheDir:           "./.reachcore-cache",
	}
}
