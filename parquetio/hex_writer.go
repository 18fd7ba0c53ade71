package parquetio

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/hexterra/reachcore/hexagg"
)

// hexSchema mirrors hexagg.Row field-for-field.
var hexSchema = arrow.NewSchema([]arrow.Field{
	{Name: "h3_id", Type: arrow.PrimitiveTypes.Uint64},
	{Name: "res", Type: arrow.PrimitiveTypes.Uint8},
	{Name: "anchor_int_id", Type: arrow.PrimitiveTypes.Int32},
	{Name: "seconds", Type: arrow.PrimitiveTypes.Uint16},
}, nil)

// WriteHexRows writes a complete T_hex table (every resolution, every hex
// cell) to path as a single parquet file. Rows must already be sorted the
// way hexagg.Aggregate returns them; this writer does not re-sort.
func WriteHexRows(path string, rows []hexagg.Row) error {
	if len(rows) == 0 {
		return ErrEmptyRows
	}

	return atomicWriteParquet(path, hexSchema, func(fw *pqarrow.FileWriter) error {
		rb := array.NewRecordBuilder(memory.DefaultAllocator, hexSchema)
		defer rb.Release()

		h3b := rb.Field(0).(*array.Uint64Builder)
		resb := rb.Field(1).(*array.Uint8Builder)
		anchorb := rb.Field(2).(*array.Int32Builder)
		secb := rb.Field(3).(*array.Uint16Builder)

		for _, r := range rows {
			h3b.Append(r.H3ID)
			resb.Append(r.Res)
			anchorb.Append(r.AnchorID)
			secb.Append(r.Seconds)
		}

		rec := rb.NewRecord()
		defer rec.Release()
		return fw.WriteBuffered(rec)
	})
}
