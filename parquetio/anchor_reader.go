package parquetio

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/hexterra/reachcore/anchor"
	"github.com/hexterra/reachcore/core"
)

// ReadAnchorTable reads a parquet file written by WriteAnchorTable back into
// an anchor.Table. compute-t-hex and compute-d-anchor both take an
// already-built anchor table as an input path, so this is the read half of
// anchor_writer.go's schema.
func ReadAnchorTable(path string, mode core.Mode) (*anchor.Table, error) {
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
	sites := make([]anchor.Site, n)

	anchorCol := columnInt32(tbl, 0)
	siteCol := columnFixedSizeBinary(tbl, 1)
	nodeCol := columnUint32(tbl, 2)
	lonCol := columnFloat32(tbl, 3)
	latCol := columnFloat32(tbl, 4)
	brandsCol := columnListInt32(tbl, 5)
	catsCol := columnListInt32(tbl, 6)

	for i := 0; i < n; i++ {
		var siteID [16]byte
		copy(siteID[:], siteCol(i))
		sites[i] = anchor.Site{
			SiteID:     siteID,
			AnchorID:   anchorCol(i),
			NodeID:     nodeCol(i),
			Lon:        lonCol(i),
			Lat:        latCol(i),
			Brands:     brandsCol(i),
			Categories: catsCol(i),
		}
	}

	return &anchor.Table{Mode: mode, Sites: sites}, nil
}

// The column* helpers below flatten a chunked arrow.Table column into a
// plain per-row accessor, since Arrow tables split a column across several
// chunks and reachcore's anchor tables are small enough that row-at-a-time
// access across chunks is simpler than threading chunk boundaries through
// every caller.

func columnInt32(tbl arrow.Table, idx int) func(int) int32 {
	vals := flattenInt32(tbl, idx)
	return func(i int) int32 { return vals[i] }
}

func columnUint32(tbl arrow.Table, idx int) func(int) uint32 {
	vals := flattenUint32(tbl, idx)
	return func(i int) uint32 { return vals[i] }
}

func columnFloat32(tbl arrow.Table, idx int) func(int) float32 {
	vals := flattenFloat32(tbl, idx)
	return func(i int) float32 { return vals[i] }
}

func columnFixedSizeBinary(tbl arrow.Table, idx int) func(int) []byte {
	var vals [][]byte
	col := tbl.Column(idx)
	for _, chunk := range col.Data().Chunks() {
		a := chunk.(*array.FixedSizeBinary)
		for i := 0; i < a.Len(); i++ {
			vals = append(vals, a.Value(i))
		}
	}
	return func(i int) []byte { return vals[i] }
}

func columnListInt32(tbl arrow.Table, idx int) func(int) []int32 {
	var vals [][]int32
	col := tbl.Column(idx)
	for _, chunk := range col.Data().Chunks() {
		a := chunk.(*array.List)
		values := a.ListValues().(*array.Int32)
		for i := 0; i < a.Len(); i++ {
			start, end := a.ValueOffsets(i)
			row := make([]int32, 0, end-start)
			for j := start; j < end; j++ {
				row = append(row, values.Value(int(j)))
			}
			vals = append(vals, row)
		}
	}
	return func(i int) []int32 { return vals[i] }
}

func flattenInt32(tbl arrow.Table, idx int) []int32 {
	var vals []int32
	for _, chunk := range tbl.Column(idx).Data().Chunks() {
		a := chunk.(*array.Int32)
		for i := 0; i < a.Len(); i++ {
			vals = append(vals, a.Value(i))
		}
	}
	return vals
}

func flattenUint32(tbl arrow.Table, idx int) []uint32 {
	var vals []uint32
	for _, chunk := range tbl.Column(idx).Data().Chunks() {
		a := chunk.(*array.Uint32)
		for i := 0; i < a.Len(); i++ {
			vals = append(vals, a.Value(i))
		}
	}
	return vals
}

func flattenFloat32(tbl arrow.Table, idx int) []float32 {
	var vals []float32
	for _, chunk := range tbl.Column(idx).Data().Chunks() {
		a := chunk.(*array.Float32)
		for i := 0; i < a.Len(); i++ {
			vals = append(vals, a.Value(i))
		}
	}
	return vals
}
