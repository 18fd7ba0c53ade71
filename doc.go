// Package reachcore is the offline travel-time precomputation engine: it
// turns a raw road network and a table of points of interest into two
// columnar artefacts — a per-hex top-K travel-time table (T_hex) and a
// per-anchor top-K nearby-POI table (D_anchor) — that a downstream tile
// server combines with per-category lookup tables at request time.
//
// The engine is a pipeline of single-purpose packages, each mirroring one
// stage of the pipeline:
//
//	core        — CsrGraph, Mode/Profile, the graph builder and transpose
//	graphio     — PBF extract -> CsrGraph (mode-profiled parser)
//	graphcache  — on-disk graph cache with mtime/hash validation
//	geo         — great-circle distance helpers
//	snapper     — POI -> graph node snapping (k-d tree + degree tiebreak)
//	anchor      — anchor site construction with stable anchor_int_id assignment
//	h3index     — per-node H3 cell assignment, parent-consistent across resolutions
//	kbest       — the bucketed multi-source K-best Dijkstra kernel
//	hexagg      — per-node results folded into per-hex top-K rows, all resolutions
//	danchor     — per-label reverse SSSP producing per-anchor nearest-POI rows
//	parquetio   — shared Arrow/Parquet writers (atomic temp-then-rename)
//	runmanifest — per-run JSON manifest of per-label outcomes
//	config      — RunConfig and the label runtime-limits loader
//	cmd/reachcore — the cobra CLI tying every stage together
//
// The library packages hold no module-level mutable state: every
// package is constructed with the values it needs (a config.RunConfig, a
// *zap.Logger, a prometheus.Registerer) and passed them explicitly. Only
// cmd/reachcore keeps its parsed flags, logger and metrics option in
// package variables. The only persistent mutable resource is the graph cache directory, and it guards
// itself with a lockfile (see package graphcache).
package reachcore
