package danchor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hexterra/reachcore/anchor"
	"github.com/hexterra/reachcore/config"
	"github.com/hexterra/reachcore/core"
)

// RunAll fans labels out across a worker pool of cfg.Workers goroutines;
// inside each worker the kernel itself stays single-threaded. The results
// slice is preallocated and indexed by position so each goroutine writes its
// own slot without contention, and a per-label failure is recorded in that
// slot rather than propagated, so one bad label never aborts the run.
//
// RunAll returns one LabelResult per entry in labels, in the same order.
// When ctx expires (the run-level max_duration, or an external stop signal),
// in-flight labels finish their current bucket and report StatusCancelled;
// labels not yet started report StatusCancelled without running at all.
func RunAll(ctx context.Context, transposed *core.CsrGraph, anchors *anchor.Table, sourcesByLabel map[int32][]Source, labels []Label, cfg config.RunConfig, opts ...Option) []LabelResult {
	rc := &runConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(rc)
	}

	results := make([]LabelResult, len(labels))

	var g errgroup.Group
	limit := cfg.Workers
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, label := range labels {
		i, label := i, label
		g.Go(func() error {
			results[i] = runOneLabel(ctx, transposed, anchors, sourcesByLabel[label.ID], label, cfg, rc)
			return nil
		})
	}
	_ = g.Wait() // runOneLabel never returns a non-nil error to the group

	return results
}

func runOneLabel(ctx context.Context, transposed *core.CsrGraph, anchors *anchor.Table, sources []Source, label Label, cfg config.RunConfig, rc *runConfig) LabelResult {
	if ctx.Err() != nil {
		return LabelResult{LabelID: label.ID, Status: StatusCancelled, Reason: ErrCancelled.Error()}
	}

	start := time.Now()
	rows, err := RunLabel(ctx, transposed, sources, label, anchors, cfg, WithLogger(rc.logger))
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, ErrCancelled):
		rc.logger.Warn("danchor: label cancelled mid-run, shard not written", zap.Int32("label_id", label.ID))
		return LabelResult{LabelID: label.ID, Status: StatusCancelled, Reason: err.Error(), Duration: elapsed}
	case errors.Is(err, ErrNoSources):
		rc.logger.Warn("danchor: label has no sources, skipping shard", zap.Int32("label_id", label.ID))
		return LabelResult{LabelID: label.ID, Status: StatusNoSources, Reason: err.Error(), Duration: elapsed}
	case errors.Is(err, ErrImplausibleSpeed):
		rc.logger.Warn("danchor: label failed plausibility guardrail, shard discarded", zap.Int32("label_id", label.ID))
		return LabelResult{LabelID: label.ID, Status: StatusImplausibleSpeed, Reason: err.Error(), Duration: elapsed}
	case err != nil:
		rc.logger.Error("danchor: label kernel failed", zap.Int32("label_id", label.ID), zap.Error(err))
		return LabelResult{LabelID: label.ID, Status: StatusFailed, Reason: err.Error(), Duration: elapsed}
	default:
		rc.logger.Info("danchor: label complete",
			zap.Int32("label_id", label.ID),
			zap.Int("rows", len(rows)),
			zap.Duration("sssp_duration", elapsed))
		return LabelResult{LabelID: label.ID, Status: StatusOK, Rows: rows, Duration: elapsed}
	}
}
