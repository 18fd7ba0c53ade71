package kbest

import (
	"context"

	"go.uber.org/zap"

	"github.com/hexterra/reachcore/config"
	"github.com/hexterra/reachcore/core"
)

type bucketEntry struct {
	node  uint32
	label Label
}

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	logger *zap.Logger
}

// WithLogger attaches a zap logger that receives one warning per skipped
// out-of-range source.
func WithLogger(l *zap.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// Run executes the bucketed multi-source K-best kernel over g, seeded from
// sources, and returns one NodeResult per node of g in node id order.
//
// Cancellation is cooperative: ctx is checked once per bucket between edge
// relaxations, so a cancelled run aborts within one bucket's worth of work
// and returns ErrCancelled with no partial results.
func Run(ctx context.Context, g *core.CsrGraph, sources []Source, cfg config.RunConfig, opts ...Option) ([]NodeResult, error) {
	if cfg.K < 1 {
		return nil, ErrInvalidK
	}
	if cfg.CutoffPrimary < 0 || cfg.CutoffOverflow < 0 {
		return nil, ErrInvalidCutoff
	}
	if cfg.CutoffPrimary > cfg.CutoffOverflow {
		return nil, ErrCutoffOrder
	}

	rc := &runConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(rc)
	}

	n := g.NumNodes()
	heaps := make([]kHeap, n)
	for i := range heaps {
		heaps[i] = kHeap{k: cfg.K}
	}

	width := cfg.BucketWidthSeconds
	if width < 1 {
		width = 1
	}
	numBuckets := cfg.CutoffOverflow/width + 2
	buckets := make([][]bucketEntry, numBuckets)

	push := func(node uint32, label Label) {
		idx := int(label.Seconds) / width
		if idx >= len(buckets) {
			return
		}
		buckets[idx] = append(buckets[idx], bucketEntry{node: node, label: label})
	}

	for _, src := range sources {
		if int(src.NodeID) >= n {
			rc.logger.Warn("kbest: source node id out of range, skipping", zap.Uint32("node_id", src.NodeID))
			continue
		}
		label := Label{AnchorID: src.AnchorID, Seconds: 0}
		if heaps[src.NodeID].tryInsert(label) {
			push(src.NodeID, label)
		}
	}

	for idx := 0; idx < len(buckets); idx++ {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		for cursor := 0; cursor < len(buckets[idx]); cursor++ {
			entry := buckets[idx][cursor]
			u, label := entry.node, entry.label

			if !heaps[u].contains(label.AnchorID, label.Seconds) {
				continue
			}
			if int(label.Seconds) > cfg.CutoffOverflow {
				continue
			}

			start, end := g.EdgesFrom(u)
			for e := start; e < end; e++ {
				v := g.Indices[e]
				w := g.Weights[e]
				s64 := int(label.Seconds) + int(w)
				if s64 > cfg.CutoffOverflow {
					continue
				}
				cand := Label{AnchorID: label.AnchorID, Seconds: uint16(s64)}
				if heaps[v].tryInsert(cand) {
					push(v, cand)
				}
			}
		}
		buckets[idx] = nil
	}

	results := make([]NodeResult, n)
	for i := range heaps {
		row := heaps[i].finalize(cfg.K, cfg.SentinelSeconds)
		overflow := len(row) < cfg.K
		if !overflow {
			last := row[cfg.K-1]
			overflow = last.AnchorID == SentinelAnchorID || int(last.Seconds) > cfg.CutoffPrimary
		}
		results[i] = NodeResult{Row: row, Overflow: overflow}
	}
	return results, nil
}
