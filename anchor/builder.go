package anchor

import (
	"sort"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/snapper"
)

// siteIDNamespace is a fixed namespace UUID used to derive deterministic
// site_id values via UUIDv5 over the string '{mode}|{node_id}'. Any fixed
// namespace works; this one is private to reachcore.
var siteIDNamespace = uuid.MustParse("8f14e45f-ceea-467e-bd2b-1a9f5e2ad137")

// BuildStats summarizes a Build call for logging and the run manifest.
type BuildStats struct {
	TotalPOIs      int
	FilteredOut    int // not anchorable, or label not allowlisted
	Unsnapped      int // passed filtering but snapper rejected them
	AnchorSitesOut int
}

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	logger     *zap.Logger
	allowedCat map[int32]struct{}
	allowedBr  map[int32]struct{}
}

// WithLogger attaches a zap logger that receives one Info line per build and
// one Debug line per unsnapped POI.
func WithLogger(l *zap.Logger) Option {
	return func(c *buildConfig) { c.logger = l }
}

// WithAllowlists restricts anchor-eligible POIs to the given category and
// brand id sets. A nil set means "no restriction on that dimension".
func WithAllowlists(categories, brands []int32) Option {
	return func(c *buildConfig) {
		if categories != nil {
			c.allowedCat = toSet(categories)
		}
		if brands != nil {
			c.allowedBr = toSet(brands)
		}
	}
}

func toSet(ids []int32) map[int32]struct{} {
	s := make(map[int32]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Build aggregates pois into anchor sites for mode, snapping each candidate
// via snap and grouping survivors by node_id. The output is byte-identical
// across runs given the same pois, snap radii, and graph.
func Build(pois []POI, snap *snapper.Snapper, mode core.Mode, opts ...Option) (*Table, BuildStats, error) {
	cfg := &buildConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	stats := BuildStats{TotalPOIs: len(pois)}
	type group struct {
		nodeID     uint32
		lonSum     float64
		latSum     float64
		n          int
		poiIDs     []POIID
		categories map[int32]struct{}
		brands     map[int32]struct{}
	}
	groups := make(map[uint32]*group)

	for _, p := range pois {
		if !p.Anchorable || !eligible(p, cfg) {
			stats.FilteredOut++
			continue
		}
		res := snap.Snap(float64(p.Lon), float64(p.Lat))
		if !res.Snapped {
			stats.Unsnapped++
			cfg.logger.Debug("anchor: POI unsnapped, excluding", zap.Float32("lon", p.Lon), zap.Float32("lat", p.Lat))
			continue
		}
		g, ok := groups[res.NodeID]
		if !ok {
			g = &group{nodeID: res.NodeID, categories: map[int32]struct{}{}, brands: map[int32]struct{}{}}
			groups[res.NodeID] = g
		}
		g.lonSum += float64(p.Lon)
		g.latSum += float64(p.Lat)
		g.n++
		g.poiIDs = append(g.poiIDs, p.ID)
		g.categories[p.CategoryID] = struct{}{}
		if p.BrandID != nil {
			g.brands[*p.BrandID] = struct{}{}
		}
	}

	if len(groups) == 0 {
		return nil, stats, ErrNoPOIs
	}

	nodeIDs := make([]uint32, 0, len(groups))
	for id := range groups {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })

	sites := make([]Site, 0, len(nodeIDs))
	for i, nodeID := range nodeIDs {
		g := groups[nodeID]
		sort.Slice(g.poiIDs, func(a, b int) bool {
			return string(g.poiIDs[a][:]) < string(g.poiIDs[b][:])
		})
		sites = append(sites, Site{
			SiteID:     siteID(mode, nodeID),
			AnchorID:   int32(i),
			NodeID:     nodeID,
			Lon:        float32(g.lonSum / float64(g.n)),
			Lat:        float32(g.latSum / float64(g.n)),
			POIIDs:     g.poiIDs,
			Brands:     sortedKeys(g.brands),
			Categories: sortedKeys(g.categories),
		})
	}

	stats.AnchorSitesOut = len(sites)
	cfg.logger.Info("anchor: build complete",
		zap.Int("total_pois", stats.TotalPOIs),
		zap.Int("filtered_out", stats.FilteredOut),
		zap.Int("unsnapped", stats.Unsnapped),
		zap.Int("anchor_sites", stats.AnchorSitesOut),
	)
	return &Table{Mode: mode, Sites: sites}, stats, nil
}

func eligible(p POI, cfg *buildConfig) bool {
	if cfg.allowedCat != nil {
		if _, ok := cfg.allowedCat[p.CategoryID]; !ok {
			return false
		}
	}
	if cfg.allowedBr != nil && p.BrandID != nil {
		if _, ok := cfg.allowedBr[*p.BrandID]; !ok {
			return false
		}
	}
	return true
}

func sortedKeys(m map[int32]struct{}) []int32 {
	out := make([]int32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func siteID(mode core.Mode, nodeID uint32) [16]byte {
	name := mode.String() + "|" + strconv.FormatUint(uint64(nodeID), 10)
	return uuid.NewSHA1(siteIDNamespace, []byte(name))
}
