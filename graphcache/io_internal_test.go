package graphcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexterra/reachcore/core"
)

func buildTestGraph(t *testing.T) *core.CsrGraph {
	t.Helper()
	b := core.NewBuilder(core.Drive, []float32{0, 1, 2}, []float32{0, 1, 2})
	require.NoError(t, b.AddEdge(0, 1, 10))
	require.NoError(t, b.AddEdge(1, 2, 20))
	g, err := b.Freeze()
	require.NoError(t, err)
	return g
}

func TestWriteReadGraphRoundTrip(t *testing.T) {
	g := buildTestGraph(t)
	dir := filepath.Join(t.TempDir(), "entry")
	m := Meta{
		SourceFileName: "region.pbf",
		SourceMtime:    100,
		SourceHash:     "deadbeef",
		Mode:           core.Drive.String(),
		ProfileVersion: ProfileVersion,
		GraphVersion:   GraphVersion,
		NumNodes:       g.NumNodes(),
		NumEdges:       g.NumEdges(),
	}
	require.NoError(t, writeGraph(dir, g, m))

	got, gotMeta, err := readGraph(dir, core.Drive)
	require.NoError(t, err)
	require.Equal(t, g.Indptr, got.Indptr)
	require.Equal(t, g.Indices, got.Indices)
	require.Equal(t, g.Weights, got.Weights)
	require.Equal(t, g.NodeLon, got.NodeLon)
	require.Equal(t, g.NodeLat, got.NodeLat)
	require.Equal(t, m.SourceHash, gotMeta.SourceHash)
}

func TestReadGraph_ShortBinaryIsCacheCorrupt(t *testing.T) {
	g := buildTestGraph(t)
	dir := filepath.Join(t.TempDir(), "entry")
	m := Meta{
		SourceFileName: "region.pbf",
		SourceHash:     "deadbeef",
		Mode:           core.Drive.String(),
		ProfileVersion: ProfileVersion,
		GraphVersion:   GraphVersion,
	}
	require.NoError(t, writeGraph(dir, g, m))

	// Truncate indptr.bin to a length that is not a multiple of 4.
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileIndptr), []byte{1, 2, 3}, 0o644))

	_, _, err := readGraph(dir, core.Drive)
	require.ErrorIs(t, err, ErrCacheCorrupt)
}

func TestMeta_ValidRejectsAnyMismatch(t *testing.T) {
	m := Meta{
		SourceMtime:    100,
		SourceHash:     "abc",
		Mode:           "drive",
		ProfileVersion: ProfileVersion,
		GraphVersion:   GraphVersion,
	}
	require.True(t, m.valid("src", core.Drive, 100, "abc"))
	require.False(t, m.valid("src", core.Drive, 101, "abc"), "newer source mtime invalidates")
	require.False(t, m.valid("src", core.Drive, 100, "xyz"), "hash mismatch invalidates")
	require.False(t, m.valid("src", core.Walk, 100, "abc"), "mode mismatch invalidates")

	noHash := m
	noHash.SourceHash = ""
	require.False(t, noHash.valid("src", core.Drive, 100, "abc"), "missing hash invalidates")
}

func TestRebuildLock_ExclusiveWithinSameDir(t *testing.T) {
	dir := t.TempDir()
	l1, err := acquireRebuildLock(dir)
	require.NoError(t, err)
	defer l1.release()

	_, err = acquireRebuildLock(dir)
	require.ErrorIs(t, err, ErrLockHeld)
}
