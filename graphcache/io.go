package graphcache

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/hexterra/reachcore/core"
)

const (
	fileIndptr  = "indptr.bin"
	fileIndices = "indices.bin"
	fileWeights = "weights.bin"
	fileLonLat  = "node_lonlat.bin"
	fileMeta    = "meta.json"
	fileLock    = ".lock"
)

// writeGraph serializes g into dir as raw little-endian binaries plus
// meta.json, writing to a temp sibling directory and renaming atomically
// into place so a reader never observes a partially written cache entry.
func writeGraph(dir string, g *core.CsrGraph, m Meta) error {
	tmp := dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return err
	}

	if err := writeUint32s(filepath.Join(tmp, fileIndptr), g.Indptr); err != nil {
		return err
	}
	if err := writeUint32s(filepath.Join(tmp, fileIndices), g.Indices); err != nil {
		return err
	}
	if err := writeUint32s(filepath.Join(tmp, fileWeights), g.Weights); err != nil {
		return err
	}
	if err := writeLonLat(filepath.Join(tmp, fileLonLat), g.NodeLon, g.NodeLat); err != nil {
		return err
	}
	if err := writeMeta(filepath.Join(tmp, fileMeta), m); err != nil {
		return err
	}

	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	if err := os.Rename(tmp, dir); err != nil {
		return fmt.Errorf("graphcache: rename cache into place: %w", err)
	}
	return nil
}

func writeUint32s(path string, data []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	_, err = f.Write(buf)
	return err
}

// writeLonLat interleaves the coordinate arrays as (lon, lat) float32 pairs,
// the node_lonlat.bin layout downstream consumers mmap.
func writeLonLat(path string, lon, lat []float32) error {
	buf := make([]uint32, 0, 2*len(lon))
	for i := range lon {
		buf = append(buf, math.Float32bits(lon[i]), math.Float32bits(lat[i]))
	}
	return writeUint32s(path, buf)
}

// mmapFile maps path read-only and returns its bytes along with a closer.
// Callers must call the returned closer when done; readers never take the
// cache's rebuild lock since an mmap'd read is safe against a concurrent
// rename-into-place.
func mmapFile(path string) (data []byte, closeFn func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, func() error { return nil }, nil
	}
	mapped, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("graphcache: mmap %s: %w", path, err)
	}
	return mapped, func() error {
		uerr := unix.Munmap(mapped)
		ferr := f.Close()
		if uerr != nil {
			return uerr
		}
		return ferr
	}, nil
}

func bytesToUint32(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, ErrCacheCorrupt
	}
	n := len(b) / 4
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out, nil
}

// bytesToLonLat de-interleaves node_lonlat.bin back into the two coordinate
// arrays CsrGraph carries.
func bytesToLonLat(b []byte) (lon, lat []float32, err error) {
	raw, err := bytesToUint32(b)
	if err != nil {
		return nil, nil, err
	}
	if len(raw)%2 != 0 {
		return nil, nil, ErrCacheCorrupt
	}
	n := len(raw) / 2
	lon = make([]float32, n)
	lat = make([]float32, n)
	for i := 0; i < n; i++ {
		lon[i] = math.Float32frombits(raw[2*i])
		lat[i] = math.Float32frombits(raw[2*i+1])
	}
	return lon, lat, nil
}

// readGraph loads a CsrGraph from dir via mmap, copying the mapped bytes into
// owned Go slices once (so the mapping can be released immediately) rather
// than keeping the process's address space pinned to every cache directory
// it has ever opened; the mmap step still avoids the double-buffering a
// plain read would need for multi-gigabyte continental extracts.
func readGraph(dir string, mode core.Mode) (*core.CsrGraph, Meta, error) {
	m, err := readMeta(filepath.Join(dir, fileMeta))
	if err != nil {
		return nil, Meta{}, err
	}

	indptr, err := readUint32File(filepath.Join(dir, fileIndptr))
	if err != nil {
		return nil, Meta{}, err
	}
	indices, err := readUint32File(filepath.Join(dir, fileIndices))
	if err != nil {
		return nil, Meta{}, err
	}
	weights, err := readUint32File(filepath.Join(dir, fileWeights))
	if err != nil {
		return nil, Meta{}, err
	}
	lon, lat, err := readLonLatFile(filepath.Join(dir, fileLonLat))
	if err != nil {
		return nil, Meta{}, err
	}

	if len(indptr) == 0 || len(indptr)-1 != len(lon) || len(lon) != len(lat) {
		return nil, Meta{}, ErrCacheCorrupt
	}

	return &core.CsrGraph{
		Indptr:  indptr,
		Indices: indices,
		Weights: weights,
		NodeLon: lon,
		NodeLat: lat,
		Mode:    mode,
	}, m, nil
}

func readUint32File(path string) ([]uint32, error) {
	data, closeFn, err := mmapFile(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return bytesToUint32(data)
}

func readLonLatFile(path string) (lon, lat []float32, err error) {
	data, closeFn, err := mmapFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer closeFn()
	return bytesToLonLat(data)
}
