// Package anchor implements AnchorBuilder: it aggregates snapped,
// anchorable POIs into deterministic anchor sites keyed by (mode, node_id),
// assigning each a dense, stable anchor_int_id.
package anchor
