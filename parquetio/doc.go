// Package parquetio holds reachcore's shared Arrow/Parquet writer helpers:
// the anchor table, T_hex per-hex rows (hexagg.Row), and D_anchor shards
// (danchor.Row) are all written through this package rather than each
// producer owning its own Arrow plumbing.
//
// Each writer builds an arrow.Schema once, accumulates typed column
// builders via array.NewRecordBuilder, and hands one arrow.Record to a
// pqarrow file writer. Writes are one-shot per call (a full T_hex table or
// D_anchor shard per invocation), so there is no flush-interval batching or
// long-lived builder goroutine here, just a single WriteXxx call per
// artefact.
//
// Every write in this package follows the same rebuild-shards-in-place
// discipline: write to a temp file in the target directory, fsync, then
// rename — consumers only ever see a complete file, never a partial one.
package parquetio
