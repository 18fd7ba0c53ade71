package core

// Mode enumerates the travel-mode profiles recognized by reachcore.
//
// Mode determines which highway classes graphio keeps from the raw road
// network and which speed table it uses to turn edge length into seconds.
type Mode uint8

const (
	// Drive keeps motorway/trunk/primary/secondary/tertiary/residential/
	// unclassified/service ways, respects one-way restrictions, and weights
	// edges by length_m / class_speed_mps.
	Drive Mode = iota

	// Walk keeps pedestrian-accessible ways and weights edges at a constant
	// walking speed, ignoring one-way restrictions.
	Walk
)

// String returns the canonical lowercase name used in cache meta.json,
// parquet partition paths, and CLI flags.
func (m Mode) String() string {
	switch m {
	case Drive:
		return "drive"
	case Walk:
		return "walk"
	default:
		return "unknown"
	}
}

// ParseMode parses the CLI/config string form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "drive":
		return Drive, nil
	case "walk":
		return Walk, nil
	default:
		return 0, ErrUnknownMode
	}
}

// Profile holds the speed table and highway-class allowlist for a Mode.
// graphio consults this while filtering ways out of the raw extract.
type Profile struct {
	// Mode this profile belongs to.
	Mode Mode

	// HighwayClasses is the set of OSM highway=* values kept for this mode.
	// A nil/empty set for Walk means "pedestrian-accessible", resolved by
	// graphio's own allowlist rather than this map.
	HighwayClasses map[string]struct{}

	// SpeedMPS maps a highway class to its free-flow speed in meters/second.
	// Walk uses a single constant speed regardless of class.
	SpeedMPS map[string]float64

	// RespectOneWay is true for Drive, false for Walk.
	RespectOneWay bool
}

// DriveHighwayClasses is the fixed allowlist of routable highway classes:
// motorway, trunk, primary, secondary, tertiary, residential, unclassified,
// service.
var DriveHighwayClasses = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary",
	"residential", "unclassified", "service",
}

// DriveSpeedMPS are class-indexed free-flow speeds, in meters/second,
// approximating typical US posted speed limits for each class.
var DriveSpeedMPS = map[string]float64{
	"motorway":     31.3, // ~70 mph
	"trunk":        24.6, // ~55 mph
	"primary":      20.1, // ~45 mph
	"secondary":    15.6, // ~35 mph
	"tertiary":     13.4, // ~30 mph
	"residential":  8.9,  // ~20 mph
	"unclassified": 11.2, // ~25 mph
	"service":      4.5,  // ~10 mph
}

// WalkSpeedMPS is the constant walking speed used by the Walk profile.
const WalkSpeedMPS = 1.34 // ~3 mph

// NewProfile builds the Profile for the given Mode.
func NewProfile(mode Mode) Profile {
	switch mode {
	case Walk:
		return Profile{
			Mode:          Walk,
			SpeedMPS:      map[string]float64{"*": WalkSpeedMPS},
			RespectOneWay: false,
		}
	default:
		classes := make(map[string]struct{}, len(DriveHighwayClasses))
		for _, c := range DriveHighwayClasses {
			classes[c] = struct{}{}
		}
		return Profile{
			Mode:           Drive,
			HighwayClasses: classes,
			SpeedMPS:       DriveSpeedMPS,
			RespectOneWay:  true,
		}
	}
}

// SentinelSeconds is the reserved uint16 value meaning "unreachable, or
// beyond cutoff". Downstream kernels use this exact value; it is configurable
// only for test doubles via RunConfig (the SENTINEL_U16 env var), never in
// the wire formats.
const SentinelSeconds uint16 = 0xFFFF

// CsrGraph is an immutable, forward-direction, Compressed Sparse Row weighted
// digraph. Indptr[v+1]-Indptr[v] is the out-degree of node v; Indices/Weights
// hold the neighbor id and edge weight (seconds) for edges
// Indptr[v]..Indptr[v+1].
//
// CsrGraph is safe for unsynchronized concurrent reads: nothing about it
// changes after Builder.Freeze returns it.
type CsrGraph struct {
	Indptr  []uint32
	Indices []uint32
	Weights []uint32

	NodeLon []float32
	NodeLat []float32

	Mode Mode
}

// NumNodes returns the number of nodes N.
func (g *CsrGraph) NumNodes() int {
	if g == nil || len(g.Indptr) == 0 {
		return 0
	}
	return len(g.Indptr) - 1
}

// NumEdges returns the number of directed edges M.
func (g *CsrGraph) NumEdges() int {
	return len(g.Indices)
}

// OutDegree returns the out-degree of node v.
func (g *CsrGraph) OutDegree(v uint32) int {
	return int(g.Indptr[v+1] - g.Indptr[v])
}

// EdgesFrom returns the half-open [start, end) slice bounds into Indices and
// Weights for the outgoing edges of node v.
func (g *CsrGraph) EdgesFrom(v uint32) (start, end uint32) {
	return g.Indptr[v], g.Indptr[v+1]
}

// LonLat returns the coordinates of node v.
func (g *CsrGraph) LonLat(v uint32) (lon, lat float32) {
	return g.NodeLon[v], g.NodeLat[v]
}
