package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPOIs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pois.csv")
	csv := "poi_id,lon,lat,category_id,brand_id,anchorable\n" +
		"00000000000000000000000000000001,-122.4,37.8,1,5,true\n" +
		"00000000000000000000000000000002,-122.5,37.9,2,,false\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	pois, err := loadPOIs(path)
	require.NoError(t, err)
	require.Len(t, pois, 2)

	require.EqualValues(t, 1, pois[0].ID[15])
	require.InDelta(t, float32(-122.4), pois[0].Lon, 1e-6)
	require.Equal(t, int32(1), pois[0].CategoryID)
	require.NotNil(t, pois[0].BrandID)
	require.Equal(t, int32(5), *pois[0].BrandID)
	require.True(t, pois[0].Anchorable)

	require.Nil(t, pois[1].BrandID)
	require.False(t, pois[1].Anchorable)
}

func TestLoadPOIs_RejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pois.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,lon,lat,category_id,brand_id,anchorable\n"), 0o644))

	_, err := loadPOIs(path)
	require.Error(t, err)
}
