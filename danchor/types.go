package danchor

import (
	"time"

	"github.com/hexterra/reachcore/anchor"
)

// Row is one D_anchor output row: one retained nearest-POI entry for one
// anchor under one label.
type Row struct {
	AnchorID int32
	LabelID  int32
	Rank     uint8
	POIID    anchor.POIID
	Seconds  uint16
}

// Source is one multi-source seed on the transpose graph: a label POI's
// snapped node and coordinates. Lon/Lat are carried here rather than
// re-resolved from a separate table, since the ImplausibleSpeed guardrail
// needs them right after the kernel run.
type Source struct {
	NodeID   uint32
	POIID    anchor.POIID
	Lon, Lat float32
}

// Label is one label's resolved runtime configuration for RunLabel: the
// per-label max_minutes/top_k table, already converted to seconds by the
// caller (config.LabelLimit.MaxSeconds).
type Label struct {
	ID         int32
	MaxSeconds int
	TopK       int
}

// Status is the per-label outcome recorded in the run manifest, alongside
// rows written and SSSP wall time.
type Status string

const (
	// StatusOK means the label's kernel run succeeded and passed the
	// plausibility guardrail; Rows holds the shard to write.
	StatusOK Status = "ok"

	// StatusNoSources means the label had zero POI sources; the shard is
	// skipped, not an error.
	StatusNoSources Status = "no_sources"

	// StatusImplausibleSpeed means the guardrail sampled a pair implying
	// > 200 km/h; the shard is discarded.
	StatusImplausibleSpeed Status = "implausible_speed"

	// StatusFailed means the kernel itself errored (e.g. invalid config);
	// only this label's shard is affected, not the rest of the run.
	StatusFailed Status = "failed"

	// StatusCancelled means the run's deadline or stop signal arrived while
	// this label was queued or in flight; its shard was not written.
	StatusCancelled Status = "cancelled"
)

// LabelResult is the outcome of running one label through RunAll. Rows is
// nil unless Status is StatusOK.
type LabelResult struct {
	LabelID  int32
	Status   Status
	Rows     []Row
	Reason   string
	Duration time.Duration
}
