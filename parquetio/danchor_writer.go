package parquetio

import (
	"fmt"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/danchor"
)

// danchorSchema carries danchor.Row's fields except LabelID, which the
// shard's label_id= directory records instead. poi_id is carried as a fixed-width
// 16-byte binary rather than a string, matching anchor.POIID's in-memory
// representation.
var danchorSchema = arrow.NewSchema([]arrow.Field{
	{Name: "anchor_int_id", Type: arrow.PrimitiveTypes.Int32},
	{Name: "seconds", Type: arrow.PrimitiveTypes.Uint16},
	{Name: "rank", Type: arrow.PrimitiveTypes.Uint8},
	{Name: "poi_id", Type: &arrow.FixedSizeBinaryType{ByteWidth: 16}},
}, nil)

// DAnchorShardPath returns the canonical shard location for one label:
// <root>/mode={drive|walk}/label_id=<id>/part-000.parquet. The verify
// subcommand uses it to locate shards a run manifest claims to have
// written.
func DAnchorShardPath(root string, mode core.Mode, labelID int32) string {
	return filepath.Join(root, fmt.Sprintf("mode=%s", mode), fmt.Sprintf("label_id=%d", labelID), "part-000.parquet")
}

// WriteDAnchorShard writes one label's D_anchor rows to DAnchorShardPath,
// the per-label shard layout. Callers must not invoke this for a label
// whose LabelResult.Status is not StatusOK: there is nothing useful to
// write for NoSources, ImplausibleSpeed, or Failed outcomes.
func WriteDAnchorShard(root string, mode core.Mode, labelID int32, rows []danchor.Row) error {
	if len(rows) == 0 {
		return ErrEmptyRows
	}

	path := DAnchorShardPath(root, mode, labelID)

	return atomicWriteParquet(path, danchorSchema, func(fw *pqarrow.FileWriter) error {
		rb := array.NewRecordBuilder(memory.DefaultAllocator, danchorSchema)
		defer rb.Release()

		anchorb := rb.Field(0).(*array.Int32Builder)
		secb := rb.Field(1).(*array.Uint16Builder)
		rankb := rb.Field(2).(*array.Uint8Builder)
		poib := rb.Field(3).(*array.FixedSizeBinaryBuilder)

		for _, r := range rows {
			anchorb.Append(r.AnchorID)
			secb.Append(r.Seconds)
			rankb.Append(r.Rank)
			poib.Append(r.POIID[:])
		}

		rec := rb.NewRecord()
		defer rec.Release()
		return fw.WriteBuffered(rec)
	})
}
