// Package graphcache implements GraphCache: it persists a core.CsrGraph
// built by graphio to disk as raw little-endian binaries plus a meta.json,
// and validates that cache against the source file's mtime and hash before
// reusing it.
//
// The cache directory is the only persistent mutable resource in reachcore:
// a single writer lock (a lockfile, flock-style) guards rebuilds, while
// readers mmap the binaries directly and never take the lock. Concurrent
// callers asking LoadOrBuild for the same (source, mode) collapse onto a
// single rebuild via golang.org/x/sync/singleflight.
package graphcache
