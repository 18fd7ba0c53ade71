package parquetio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// defaultWriterProperties pins the format version and zstd compression for
// every artefact. No per-column bloom filters: reachcore's columns (h3_id,
// anchor_int_id, poi_id) are consumed by full scan downstream in the tile
// builder, not point lookup, so a bloom filter would cost write time
// without ever being read.
func defaultWriterProperties() *parquet.WriterProperties {
	return parquet.NewWriterProperties(
		parquet.WithVersion(parquet.V2_LATEST),
		parquet.WithCompression(compress.Codecs.Zstd),
	)
}

// atomicWriteParquet writes one Arrow record to path via a temp sibling
// file, fsync, then rename, so a reader never observes a partial shard.
// build is called once with a ready FileWriter; it must call WriteBuffered
// exactly once per record and must not call Close.
func atomicWriteParquet(path string, schema *arrow.Schema, build func(fw *pqarrow.FileWriter) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("parquetio: mkdir %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("parquetio: create temp file: %w", err)
	}

	fw, err := pqarrow.NewFileWriter(schema, f, defaultWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("parquetio: new file writer: %w", err)
	}

	if err := build(fw); err != nil {
		fw.Close()
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("parquetio: write record: %w", err)
	}

	if err := fw.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("parquetio: close writer: %w", err)
	}
	// fw.Close also closes f, so the temp file is reopened to fsync it.
	synced, err := os.OpenFile(tmp, os.O_RDWR, 0)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("parquetio: reopen temp file: %w", err)
	}
	if err := synced.Sync(); err != nil {
		synced.Close()
		os.Remove(tmp)
		return fmt.Errorf("parquetio: fsync: %w", err)
	}
	if err := synced.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("parquetio: close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("parquetio: rename into place: %w", err)
	}
	return nil
}
