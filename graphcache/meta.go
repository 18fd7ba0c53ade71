package graphcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/hexterra/reachcore/core"
)

// ProfileVersion is bumped whenever graphio's mode profiles (highway
// allowlist, speed tables, one-way handling) change in a way that would
// produce a different graph from the same source file.
const ProfileVersion = 1

// GraphVersion is bumped whenever the on-disk binary layout changes.
const GraphVersion = 1

// Meta is the cache directory's meta.json contract.
type Meta struct {
	SourceFileName string `json:"source_file_name"`
	SourceMtime    int64  `json:"source_mtime"`
	SourceHash     string `json:"source_hash"`
	Mode           string `json:"mode"`
	ProfileVersion int    `json:"profile_version"`
	GraphVersion   int    `json:"graph_version"`
	BuildTime      int64  `json:"build_time"`

	NumNodes int `json:"num_nodes"`
	NumEdges int `json:"num_edges"`
}

// statSource reads the mtime and sha256 hash of the source file.
func statSource(path string) (mtime int64, hash string, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, "", err
	}
	return fi.ModTime().Unix(), hex.EncodeToString(h.Sum(nil)), nil
}

// buildMeta constructs the Meta that will accompany a freshly built graph.
func buildMeta(sourcePath string, mode core.Mode, mtime int64, hash string, g *core.CsrGraph) Meta {
	return Meta{
		SourceFileName: sourcePath,
		SourceMtime:    mtime,
		SourceHash:     hash,
		Mode:           mode.String(),
		ProfileVersion: ProfileVersion,
		GraphVersion:   GraphVersion,
		BuildTime:      time.Now().Unix(),
		NumNodes:       g.NumNodes(),
		NumEdges:       g.NumEdges(),
	}
}

// valid reports whether m validates against the current source file and
// profile/graph versions: the stored hash must be present, the source mtime
// must not be newer than the stored one, and hash, mode, profile version
// and graph version must all match.
func (m Meta) valid(sourcePath string, mode core.Mode, mtime int64, hash string) bool {
	if m.SourceHash == "" {
		return false
	}
	if mtime > m.SourceMtime {
		return false
	}
	if hash != m.SourceHash {
		return false
	}
	if m.Mode != mode.String() {
		return false
	}
	if m.ProfileVersion != ProfileVersion {
		return false
	}
	if m.GraphVersion != GraphVersion {
		return false
	}
	return true
}

func readMeta(path string) (Meta, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Meta{}, err
	}
	var m Meta
	if err := json.Unmarshal(raw, &m); err != nil {
		return Meta{}, ErrCacheCorrupt
	}
	return m, nil
}

func writeMeta(path string, m Meta) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
