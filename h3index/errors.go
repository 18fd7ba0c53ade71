package h3index

import "errors"

var (
	// ErrNoResolutions indicates Index was called with an empty resolution set.
	ErrNoResolutions = errors.New("h3index: no resolutions requested")

	// ErrInvalidCoordinate indicates a node's (lon, lat) could not be
	// resolved to an H3 cell at the finest resolution.
	ErrInvalidCoordinate = errors.New("h3index: invalid coordinate for H3 cell lookup")

	// ErrResolutionOutOfRange indicates a requested resolution outside H3's
	// valid [0,15] range.
	ErrResolutionOutOfRange = errors.New("h3index: resolution out of range")
)
