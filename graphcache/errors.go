package graphcache

import "errors"

// Sentinel errors for graphcache.
var (
	// ErrCacheCorrupt indicates a cache entry could not be read back: a
	// binary file was short or not a whole number of elements, meta.json
	// did not parse, or the arrays' lengths disagree. No checksum of the
	// binaries is stored or verified. A single automatic rebuild is
	// attempted before this surfaces to the caller.
	ErrCacheCorrupt = errors.New("graphcache: cache corrupt")

	// ErrProfileMissing indicates an unknown mode was requested.
	ErrProfileMissing = errors.New("graphcache: unknown mode profile")

	// ErrLockHeld indicates another process is already rebuilding this
	// cache directory.
	ErrLockHeld = errors.New("graphcache: rebuild lock held by another process")
)
