// Package config defines RunConfig, the single value threaded through every
// constructor in reachcore, and the label-limits file format consumed by the
// D_anchor kernel.
//
// There is no package-level mutable state here or anywhere downstream: a
// RunConfig is built once (by a CLI command or a test) and passed by value
// into every component. The graph cache directory is the only persistent
// mutable resource in the system, and it guards itself with a lockfile
// (see package graphcache).
package config
