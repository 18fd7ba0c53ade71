package graphio

import "errors"

// Sentinel errors for graphio. SourceMissing and SourceUnreadable are fatal
// to the run; ProfileMissing is a user error.
var (
	// ErrSourceMissing indicates the PBF source file does not exist.
	ErrSourceMissing = errors.New("graphio: source file not found")

	// ErrSourceUnreadable indicates the PBF source file exists but could not
	// be parsed (corrupt blob, truncated file, bad protobuf).
	ErrSourceUnreadable = errors.New("graphio: source file unreadable")

	// ErrProfileMissing indicates an unrecognized core.Mode was requested.
	ErrProfileMissing = errors.New("graphio: unknown mode profile")
)
