// Package core defines the central CsrGraph type and the travel mode
// profiles that every downstream component (graphio, graphcache, snapper,
// anchor, h3index, kbest, hexagg, danchor) reads from.
//
// A CsrGraph is an immutable, numerically-indexed weighted digraph stored as
// three flat arrays (Compressed Sparse Row): Indptr, Indices, Weights. It is
// built once, from a mutable Builder, and never mutated again — all
// downstream kernels are read-only borrowers, shared across goroutines
// without locking.
package core
