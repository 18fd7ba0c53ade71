// Package kbest implements KBestKernel, the core-of-the-core: for every
// node in a CsrGraph, the K shortest travel times to the K distinct
// nearest anchor nodes.
//
// The algorithm is a bucketed multi-source Dijkstra (the "Dial's algorithm"
// family): because edge weights are small non-negative integer seconds, a
// coarse bucket queue indexed by seconds/bucketWidth is cache-friendlier at
// road-network scale than a binary heap. The per-node frontier is a bounded,
// distinct-anchor-id label set (kheap.go), not a single best distance; there
// is no decrease-key operation — an improved label is pushed as a fresh
// bucket entry and the stale one is skipped at pop time.
package kbest
