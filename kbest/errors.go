package kbest

import "errors"

var (
	// ErrInvalidK indicates K < 1.
	ErrInvalidK = errors.New("kbest: K must be >= 1")

	// ErrInvalidCutoff indicates a negative cutoff.
	ErrInvalidCutoff = errors.New("kbest: cutoffs must be >= 0")

	// ErrCutoffOrder indicates CutoffPrimary > CutoffOverflow.
	ErrCutoffOrder = errors.New("kbest: CutoffPrimary must be <= CutoffOverflow")

	// ErrSourceOutOfRange is reported (not returned) for an individual source
	// whose NodeID is outside the graph; that source is skipped and the scan
	// continues.
	ErrSourceOutOfRange = errors.New("kbest: source node id out of range")

	// ErrCancelled indicates the run's context expired or was cancelled
	// mid-scan; no partial results are returned.
	ErrCancelled = errors.New("kbest: run cancelled")
)
