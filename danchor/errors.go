package danchor

import "errors"

var (
	// ErrNoSources indicates a label had zero POI sources; the caller
	// should skip that label's shard rather than treat this as fatal.
	ErrNoSources = errors.New("danchor: label has no POI sources")

	// ErrInvalidTopK indicates TopK < 1 for a label.
	ErrInvalidTopK = errors.New("danchor: top_k must be >= 1")

	// ErrInvalidMaxSeconds indicates MaxSeconds < 0 for a label.
	ErrInvalidMaxSeconds = errors.New("danchor: max_seconds must be >= 0")

	// ErrImplausibleSpeed indicates the post-shard sanity guardrail found an
	// anchor/POI pair implying > 200 km/h; the shard for that label is
	// discarded.
	ErrImplausibleSpeed = errors.New("danchor: implied speed exceeds plausibility threshold")

	// ErrCancelled indicates the run's context expired or was cancelled while
	// this label was in flight; its shard is not written. Already-completed
	// shards remain valid.
	ErrCancelled = errors.New("danchor: run cancelled")
)
