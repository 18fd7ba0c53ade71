package config

import "errors"

// Sentinel errors returned while validating a RunConfig or loading a label
// limits file. Callers should branch on these with errors.Is, never on the
// formatted message.
var (
	// ErrInvalidK indicates K < 1.
	ErrInvalidK = errors.New("config: K must be >= 1")

	// ErrInvalidCutoff indicates a negative cutoff was supplied.
	ErrInvalidCutoff = errors.New("config: cutoff must be >= 0")

	// ErrCutoffOrder indicates C_primary > C_overflow.
	ErrCutoffOrder = errors.New("config: primary cutoff must be <= overflow cutoff")

	// ErrInvalidBucketWidth indicates BucketWidthSeconds <= 0.
	ErrInvalidBucketWidth = errors.New("config: bucket width must be > 0")

	// ErrInvalidWorkers indicates Workers < 1.
	ErrInvalidWorkers = errors.New("config: workers must be >= 1")

	// ErrNoResolutions indicates an empty resolution list was supplied to a
	// command that requires at least one.
	ErrNoResolutions = errors.New("config: at least one resolution is required")

	// ErrUnknownMode indicates a mode string that is neither "drive" nor "walk".
	ErrUnknownMode = errors.New("config: unknown mode")

	// ErrLabelLimitsMissingDefault indicates a label-limits file with no
	// "default" entry, which the loader requires as a fallback for any label
	// not explicitly listed.
	ErrLabelLimitsMissingDefault = errors.New("config: label limits file has no default entry")
)
