package snapper

import "github.com/hexterra/reachcore/core"

// SnapRadiusM is the per-mode maximum distance (meters) a POI may be snapped
// across. Density-adaptive overrides are applied by callers via
// WithSnapRadius before constructing a Snapper.
var SnapRadiusM = map[core.Mode]float64{
	core.Drive: 1609.34, // 1 mile
	core.Walk:  402.336, // 0.25 mile
}

// candidatesPerQuery bounds how many nearest nodes are pulled from the
// k-d tree per POI before the degree-aware tiebreak is applied.
const candidatesPerQuery = 10

// Result is the outcome of snapping one POI to the road network.
type Result struct {
	NodeID  uint32
	Snapped bool
	DistM   float64
}
