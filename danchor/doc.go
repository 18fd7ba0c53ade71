// Package danchor implements DAnchorKernel: for every label (a category or
// brand id), a reverse multi-source SSSP from that label's POIs over the
// transpose graph, reporting each anchor's top-K nearest POIs under a
// per-label cutoff.
//
// Running the search on graph.Transpose() instead of forward from each
// anchor is what collapses "distance from every anchor to every POI" into a
// single multi-source pass per label; the kernel otherwise follows kbest's
// bucketed-Dijkstra shape, substituting poi_id for anchor_int_id as the
// per-node distinctness key.
//
// RunAll fans labels out across a worker pool via golang.org/x/sync/errgroup:
// each label's kernel run is single-threaded, but up to Workers labels run
// concurrently, each over its own read-only view of the same transpose graph.
package danchor
