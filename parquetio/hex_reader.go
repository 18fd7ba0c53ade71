package parquetio

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/hexterra/reachcore/hexagg"
)

// CountRows returns the row count recorded in a parquet file's footer
// metadata, without materializing any column data. The verify subcommand
// uses it to cross-check a run manifest's rows_written against the shard
// actually on disk.
func CountRows(path string) (int64, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return 0, fmt.Errorf("parquetio: open %s: %w", path, err)
	}
	defer rdr.Close()
	return rdr.NumRows(), nil
}

// ReadHexRows reads a T_hex parquet file written by WriteHexRows, for the
// verify subcommand's testable-property checks.
func ReadHexRows(path string) ([]hexagg.Row, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("parquetio: open %s: %w", path, err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("parquetio: new arrow reader: %w", err)
	}

	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("parquetio: read table: %w", err)
	}
	defer tbl.Release()

	n := int(tbl.NumRows())
	rows := make([]hexagg.Row, n)

	h3Col := flattenUint64(tbl.Column(0))
	resCol := flattenUint8(tbl.Column(1))
	anchorCol := flattenInt32(tbl, 2)
	secCol := flattenUint16(tbl.Column(3))

	for i := 0; i < n; i++ {
		rows[i] = hexagg.Row{
			H3ID:     h3Col[i],
			Res:      resCol[i],
			AnchorID: anchorCol[i],
			Seconds:  secCol[i],
		}
	}
	return rows, nil
}

func flattenUint64(col *arrow.Column) []uint64 {
	var vals []uint64
	for _, chunk := range col.Data().Chunks() {
		a := chunk.(*array.Uint64)
		for i := 0; i < a.Len(); i++ {
			vals = append(vals, a.Value(i))
		}
	}
	return vals
}

func flattenUint8(col *arrow.Column) []uint8 {
	var vals []uint8
	for _, chunk := range col.Data().Chunks() {
		a := chunk.(*array.Uint8)
		for i := 0; i < a.Len(); i++ {
			vals = append(vals, a.Value(i))
		}
	}
	return vals
}

func flattenUint16(col *arrow.Column) []uint16 {
	var vals []uint16
	for _, chunk := range col.Data().Chunks() {
		a := chunk.(*array.Uint16)
		for i := 0; i < a.Len(); i++ {
			vals = append(vals, a.Value(i))
		}
	}
	return vals
}
