package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hexterra/reachcore/anchor"
)

// loadPOIs reads the POI table (columns poi_id, lon, lat, category_id,
// brand_id, anchorable) from a CSV file. POI ingestion and normalization
// are produced by an external pipeline, so reachcore's own CLI only needs
// to read the already-normalized table, not validate upstream provenance;
// the parquet artefacts (anchor table, T_hex, D_anchor) go through package
// parquetio instead.
//
// Expected header: poi_id,lon,lat,category_id,brand_id,anchorable
// poi_id is hex-encoded (32 hex chars); brand_id is empty for "no brand".
func loadPOIs(path string) ([]anchor.POI, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read POIs: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 6

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read POI header: %w", err)
	}
	if err := checkPOIHeader(header); err != nil {
		return nil, err
	}

	var out []anchor.POI
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read POI row: %w", err)
		}
		p, err := parsePOIRow(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func checkPOIHeader(header []string) error {
	want := []string{"poi_id", "lon", "lat", "category_id", "brand_id", "anchorable"}
	if len(header) != len(want) {
		return fmt.Errorf("POI header: expected %d columns, got %d", len(want), len(header))
	}
	for i, w := range want {
		if strings.TrimSpace(header[i]) != w {
			return fmt.Errorf("POI header: column %d must be %q, got %q", i, w, header[i])
		}
	}
	return nil
}

func parsePOIRow(rec []string) (anchor.POI, error) {
	var p anchor.POI

	id, err := parsePOIID(rec[0])
	if err != nil {
		return p, fmt.Errorf("poi_id %q: %w", rec[0], err)
	}
	p.ID = id

	lon, err := strconv.ParseFloat(rec[1], 32)
	if err != nil {
		return p, fmt.Errorf("lon %q: %w", rec[1], err)
	}
	p.Lon = float32(lon)

	lat, err := strconv.ParseFloat(rec[2], 32)
	if err != nil {
		return p, fmt.Errorf("lat %q: %w", rec[2], err)
	}
	p.Lat = float32(lat)

	cat, err := strconv.ParseInt(rec[3], 10, 32)
	if err != nil {
		return p, fmt.Errorf("category_id %q: %w", rec[3], err)
	}
	p.CategoryID = int32(cat)

	if brand := strings.TrimSpace(rec[4]); brand != "" {
		b, err := strconv.ParseInt(brand, 10, 32)
		if err != nil {
			return p, fmt.Errorf("brand_id %q: %w", rec[4], err)
		}
		b32 := int32(b)
		p.BrandID = &b32
	}

	anchorable, err := strconv.ParseBool(rec[5])
	if err != nil {
		return p, fmt.Errorf("anchorable %q: %w", rec[5], err)
	}
	p.Anchorable = anchorable

	return p, nil
}

// parsePOIID decodes a 32-character hex string into a 16-byte POIID.
func parsePOIID(s string) (anchor.POIID, error) {
	var id anchor.POIID
	s = strings.TrimSpace(s)
	if len(s) != 32 {
		return id, fmt.Errorf("expected 32 hex characters, got %d", len(s))
	}
	for i := 0; i < 16; i++ {
		b, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return id, err
		}
		id[i] = byte(b)
	}
	return id, nil
}
