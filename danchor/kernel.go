package danchor

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/hexterra/reachcore/anchor"
	"github.com/hexterra/reachcore/config"
	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/geo"
)

// maxPlausibleMPS is 200 km/h expressed in meters/second, the guardrail
// threshold below which an implied anchor-to-POI speed is plausible.
const maxPlausibleMPS = 200 * 1000.0 / 3600.0

// plausibilitySampleSize caps how many rows the guardrail checks per label;
// below this size every row is checked.
const plausibilitySampleSize = 100

type bucketEntry struct {
	node  uint32
	label poiLabel
}

// Option configures RunLabel and RunAll.
type Option func(*runConfig)

type runConfig struct {
	logger *zap.Logger
}

// WithLogger attaches a zap logger that receives one warning per skipped
// out-of-range source.
func WithLogger(l *zap.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// RunLabel executes the bucketed multi-source SSSP for one label over
// transposed (the reverse graph, so a single multi-source pass suffices),
// seeded from sources, and returns one Row per
// (anchor, retained POI) pair across every site in anchors — ranked
// ascending by (anchor_int_id, seconds, poi_id), capped to label.TopK rows
// per anchor, and bounded by label.MaxSeconds.
//
// RunLabel returns ErrNoSources if sources is empty, ErrInvalidTopK if
// label.TopK < 1, ErrInvalidMaxSeconds if label.MaxSeconds < 0, and
// ErrImplausibleSpeed if the post-run guardrail sample implies a speed
// above 200 km/h for any sampled (anchor, poi) pair — in which case the
// caller must discard the label's shard entirely.
//
// Cancellation is cooperative: ctx is checked once per bucket between edge
// relaxations, so a cancelled run abandons this label within one bucket's
// worth of work and returns ErrCancelled without producing rows.
func RunLabel(ctx context.Context, transposed *core.CsrGraph, sources []Source, label Label, anchors *anchor.Table, cfg config.RunConfig, opts ...Option) ([]Row, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if label.TopK < 1 {
		return nil, ErrInvalidTopK
	}
	if label.MaxSeconds < 0 {
		return nil, ErrInvalidMaxSeconds
	}

	rc := &runConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(rc)
	}

	n := transposed.NumNodes()
	heaps := make([]poiHeap, n)
	for i := range heaps {
		heaps[i] = poiHeap{k: label.TopK}
	}

	width := cfg.BucketWidthSeconds
	if width < 1 {
		width = 1
	}
	numBuckets := label.MaxSeconds/width + 2
	buckets := make([][]bucketEntry, numBuckets)

	push := func(node uint32, lbl poiLabel) {
		idx := int(lbl.Seconds) / width
		if idx >= len(buckets) {
			return
		}
		buckets[idx] = append(buckets[idx], bucketEntry{node: node, label: lbl})
	}

	poiCoord := make(map[anchor.POIID][2]float32, len(sources))
	for _, src := range sources {
		poiCoord[src.POIID] = [2]float32{src.Lon, src.Lat}
		if int(src.NodeID) >= n {
			rc.logger.Warn("danchor: source node id out of range, skipping")
			continue
		}
		lbl := poiLabel{POIID: src.POIID, Seconds: 0}
		if heaps[src.NodeID].tryInsert(lbl) {
			push(src.NodeID, lbl)
		}
	}

	for idx := 0; idx < len(buckets); idx++ {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		for cursor := 0; cursor < len(buckets[idx]); cursor++ {
			entry := buckets[idx][cursor]
			u, lbl := entry.node, entry.label

			if !heaps[u].contains(lbl.POIID, lbl.Seconds) {
				continue
			}
			if int(lbl.Seconds) > label.MaxSeconds {
				continue
			}

			start, end := transposed.EdgesFrom(u)
			for e := start; e < end; e++ {
				v := transposed.Indices[e]
				w := transposed.Weights[e]
				s64 := int(lbl.Seconds) + int(w)
				if s64 > label.MaxSeconds {
					continue
				}
				cand := poiLabel{POIID: lbl.POIID, Seconds: uint16(s64)}
				if heaps[v].tryInsert(cand) {
					push(v, cand)
				}
			}
		}
		buckets[idx] = nil
	}

	var rows []Row
	for _, site := range anchors.Sites {
		if int(site.NodeID) >= n {
			continue
		}
		for rank, lbl := range heaps[site.NodeID].finalize() {
			rows = append(rows, Row{
				AnchorID: site.AnchorID,
				LabelID:  label.ID,
				Rank:     uint8(rank),
				POIID:    lbl.POIID,
				Seconds:  lbl.Seconds,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AnchorID != rows[j].AnchorID {
			return rows[i].AnchorID < rows[j].AnchorID
		}
		if rows[i].Seconds != rows[j].Seconds {
			return rows[i].Seconds < rows[j].Seconds
		}
		return lessPOIID(rows[i].POIID, rows[j].POIID)
	})

	if err := checkPlausibility(rows, anchors, poiCoord); err != nil {
		return nil, err
	}
	return rows, nil
}

// checkPlausibility samples up to plausibilitySampleSize rows (spread
// evenly across rows, not just the first rows, so a systematic error
// confined to one anchor range is not missed) and raises ErrImplausibleSpeed
// if any sampled pair's implied speed exceeds maxPlausibleMPS.
func checkPlausibility(rows []Row, anchors *anchor.Table, poiCoord map[anchor.POIID][2]float32) error {
	if len(rows) == 0 {
		return nil
	}
	anchorByID := make(map[int32]anchor.Site, len(anchors.Sites))
	for _, s := range anchors.Sites {
		anchorByID[s.AnchorID] = s
	}

	stride := 1
	if len(rows) > plausibilitySampleSize {
		stride = (len(rows) + plausibilitySampleSize - 1) / plausibilitySampleSize
	}
	for i := 0; i < len(rows); i += stride {
		r := rows[i]
		site, ok := anchorByID[r.AnchorID]
		if !ok {
			continue
		}
		coord, ok := poiCoord[r.POIID]
		if !ok {
			continue
		}
		meters := geo.HaversineM(float64(site.Lon), float64(site.Lat), float64(coord[0]), float64(coord[1]))
		seconds := math.Max(float64(r.Seconds), 1)
		if meters/seconds > maxPlausibleMPS {
			return ErrImplausibleSpeed
		}
	}
	return nil
}
