package snapper

import (
	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/geo"
)

// Snapper maps POI coordinates onto graph nodes. It is built once per
// graph and reused concurrently across POI batches; all methods are
// read-only after construction.
type Snapper struct {
	tree    *kdTree
	degree  []int
	radiusM float64
}

// Option configures a Snapper at construction time.
type Option func(*Snapper)

// WithSnapRadius overrides the default per-mode snap radius, e.g. for
// density-adaptive tuning in sparse rural extracts.
func WithSnapRadius(meters float64) Option {
	return func(s *Snapper) { s.radiusM = meters }
}

// New builds a Snapper over every node in g. Degree is precomputed once so
// the degree-aware tiebreak is O(1) per candidate.
func New(g *core.CsrGraph, mode core.Mode, opts ...Option) (*Snapper, error) {
	n := g.NumNodes()
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	points := make([]kdPoint, n)
	degree := make([]int, n)
	for i := 0; i < n; i++ {
		lon, lat := g.LonLat(uint32(i))
		points[i] = kdPoint{lon: float64(lon), lat: float64(lat), node: uint32(i)}
		degree[i] = g.OutDegree(uint32(i))
	}
	s := &Snapper{
		tree:    buildKDTree(points),
		degree:  degree,
		radiusM: SnapRadiusM[mode],
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Snap finds the best graph node for a POI at (lon, lat).
//
// It queries the candidatesPerQuery nearest nodes, keeps those within both
// 2x the nearest candidate's true distance and the configured snap radius,
// then picks among the survivors: prefer a node of degree >= 2 over the
// absolute nearest if the nearest is a degree-1 dead end, breaking ties by
// smaller distance then smaller node id for determinism. If no candidate is
// within the snap radius, the POI is left unsnapped.
func (s *Snapper) Snap(lon, lat float64) Result {
	raw := s.tree.kNearest(lon, lat, candidatesPerQuery)
	if len(raw) == 0 {
		return Result{Snapped: false}
	}

	type survivor struct {
		node   uint32
		distM  float64
		distMM int64
	}
	survivors := make([]survivor, 0, len(raw))
	nearestDistM := geo.HaversineM(lon, lat, raw[0].lon, raw[0].lat)

	for _, c := range raw {
		d := geo.HaversineM(lon, lat, c.lon, c.lat)
		if d > 2*nearestDistM {
			continue
		}
		if d > s.radiusM {
			continue
		}
		survivors = append(survivors, survivor{
			node:   c.node,
			distM:  d,
			distMM: geo.PlanarMillimeterRound(d),
		})
	}
	if len(survivors) == 0 {
		return Result{Snapped: false}
	}

	nearest := survivors[0]
	if s.degree[nearest.node] >= 2 {
		return Result{NodeID: nearest.node, Snapped: true, DistM: nearest.distM}
	}

	best := nearest
	bestDegree := s.degree[nearest.node]
	hasWellConnected := false
	for _, cand := range survivors {
		deg := s.degree[cand.node]
		if deg < 2 {
			continue
		}
		switch {
		case !hasWellConnected:
			best, bestDegree = cand, deg
			hasWellConnected = true
		case deg > bestDegree:
			best, bestDegree = cand, deg
		case deg == bestDegree && cand.distMM < best.distMM:
			best = cand
		case deg == bestDegree && cand.distMM == best.distMM && cand.node < best.node:
			best = cand
		}
	}
	return Result{NodeID: best.node, Snapped: true, DistM: best.distM}
}
