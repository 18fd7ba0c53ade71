// Package graphio implements GraphLoader: it turns a raw OSM-like PBF
// road-network extract into an immutable core.CsrGraph under one of the
// mode profiles {drive, walk}.
//
// graphio never touches the cache directory itself — that is graphcache's
// job. graphio.Load is pure: same source file + mode in, same CsrGraph out,
// which is what lets graphcache use it as the rebuild function behind a
// singleflight-guarded cache miss.
package graphio
