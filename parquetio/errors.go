package parquetio

import "errors"

var (
	// ErrEmptyRows indicates a write call was given zero rows; the shard
	// writer omits anchors with no data rather than writing an empty file,
	// so callers should check for this before invoking a writer.
	ErrEmptyRows = errors.New("parquetio: no rows to write")
)
