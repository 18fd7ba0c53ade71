// Package geo provides the small set of geographic math reachcore needs:
// great-circle distance for edge-length estimation (graphio), snap-radius
// checks (snapper), and the D_anchor speed-plausibility guardrail (danchor).
//
// Haversine is ~15 lines of well-known trigonometry; the geometry libraries
// this project otherwise leans on operate on Euclidean coordinates rather
// than geographic lon/lat, so wrapping a dependency around it would not
// reduce risk or code size.
package geo
