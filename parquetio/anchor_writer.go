package parquetio

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/hexterra/reachcore/anchor"
)

// anchorSchema carries anchor.Site's fields except POIIDs, which are not
// written. Brands and categories are
// variable-length lists since a site can aggregate POIs across several
// brands/categories.
var anchorSchema = arrow.NewSchema([]arrow.Field{
	{Name: "anchor_int_id", Type: arrow.PrimitiveTypes.Int32},
	{Name: "site_id", Type: &arrow.FixedSizeBinaryType{ByteWidth: 16}},
	{Name: "node_id", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "lon", Type: arrow.PrimitiveTypes.Float32},
	{Name: "lat", Type: arrow.PrimitiveTypes.Float32},
	{Name: "brands", Type: arrow.ListOf(arrow.PrimitiveTypes.Int32)},
	{Name: "categories", Type: arrow.ListOf(arrow.PrimitiveTypes.Int32)},
}, nil)

// WriteAnchorTable writes the complete anchor table for one (region, mode)
// to path as a single parquet file, sorted by AnchorID ascending (the order
// anchor.Build already returns them in).
func WriteAnchorTable(path string, table *anchor.Table) error {
	if table == nil || len(table.Sites) == 0 {
		return ErrEmptyRows
	}

	return atomicWriteParquet(path, anchorSchema, func(fw *pqarrow.FileWriter) error {
		rb := array.NewRecordBuilder(memory.DefaultAllocator, anchorSchema)
		defer rb.Release()

		anchorb := rb.Field(0).(*array.Int32Builder)
		siteb := rb.Field(1).(*array.FixedSizeBinaryBuilder)
		nodeb := rb.Field(2).(*array.Uint32Builder)
		lonb := rb.Field(3).(*array.Float32Builder)
		latb := rb.Field(4).(*array.Float32Builder)
		brandsb := rb.Field(5).(*array.ListBuilder)
		brandsValb := brandsb.ValueBuilder().(*array.Int32Builder)
		catsb := rb.Field(6).(*array.ListBuilder)
		catsValb := catsb.ValueBuilder().(*array.Int32Builder)

		for _, s := range table.Sites {
			anchorb.Append(s.AnchorID)
			siteb.Append(s.SiteID[:])
			nodeb.Append(s.NodeID)
			lonb.Append(s.Lon)
			latb.Append(s.Lat)

			brandsb.Append(true)
			for _, b := range s.Brands {
				brandsValb.Append(b)
			}

			catsb.Append(true)
			for _, c := range s.Categories {
				catsValb.Append(c)
			}
		}

		rec := rb.NewRecord()
		defer rec.Release()
		return fw.WriteBuffered(rec)
	})
}
