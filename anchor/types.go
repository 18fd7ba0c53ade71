package anchor

import "github.com/hexterra/reachcore/core"

// POIID is a 128-bit point-of-interest identifier, carried opaquely through
// the pipeline and surfaced again in danchor output rows.
type POIID [16]byte

// POI is one row of the ingested point-of-interest table: a location
// tagged with a category, an optional brand, and a flag marking whether it
// should ever seed an anchor site.
type POI struct {
	ID         POIID
	Lon, Lat   float32
	CategoryID int32
	BrandID    *int32 // nil means "no brand"
	Anchorable bool
}

// Labels returns every label this POI contributes to the D_anchor shard
// namespace: its category, and its brand if present.
func (p POI) Labels() []int32 {
	if p.BrandID == nil {
		return []int32{p.CategoryID}
	}
	return []int32{p.CategoryID, *p.BrandID}
}

// Site is one anchor site: a road-graph node aggregating one or more
// anchorable POIs for a given travel mode.
type Site struct {
	SiteID     [16]byte // UUIDv5 over "{mode}|{node_id}"
	AnchorID   int32    // dense, 0..A-1 within a mode
	NodeID     uint32
	Lon, Lat   float32 // centroid of contributing POIs
	POIIDs     []POIID
	Brands     []int32
	Categories []int32
}

// Table is the complete set of anchor sites for one (region, mode), sorted
// by AnchorID ascending: anchor_int_id is a contiguous 0..A-1 permutation
// within a mode.
type Table struct {
	Mode  core.Mode
	Sites []Site
}

// NumAnchors returns the number of anchor sites in the table.
func (t *Table) NumAnchors() int {
	return len(t.Sites)
}
