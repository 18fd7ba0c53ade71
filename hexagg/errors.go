package hexagg

import "errors"

var (
	// ErrNoResolutions indicates Aggregate was given a matrix with no
	// resolutions.
	ErrNoResolutions = errors.New("hexagg: matrix has no resolutions")

	// ErrInvalidCell indicates an H3 parent lookup failed for a cell
	// produced at the finer resolution — an internal consistency bug, since
	// node-derived cells should always have valid parents above them.
	ErrInvalidCell = errors.New("hexagg: failed to derive parent cell")
)
