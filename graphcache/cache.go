package graphcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/graphio"
)

// Cache owns a directory tree of graph cache entries keyed by (source file,
// mode). It is constructed once per process and passed explicitly rather
// than kept as module-level state, and is safe for concurrent use:
// concurrent LoadOrBuild calls for the same key collapse onto a single
// rebuild via singleflight.
type Cache struct {
	root    string
	sf      singleflight.Group
	logger  *zap.Logger
	metrics metricsSink
}

// Option configures a Cache at construction time.
type Option func(*Cache)

// WithLogger attaches a zap.Logger; the default is zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// WithMetrics attaches a metricsSink (see metrics.go); the default records
// nothing.
func WithMetrics(m metricsSink) Option {
	return func(c *Cache) { c.metrics = m }
}

// New returns a Cache rooted at dir (the GRAPH_CACHE_DIR directory).
func New(dir string, opts ...Option) *Cache {
	c := &Cache{root: dir, logger: zap.NewNop(), metrics: noopMetrics{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) dirFor(sourcePath string, mode core.Mode) string {
	return filepath.Join(c.root, mode.String(), filepath.Base(sourcePath))
}

// LoadOrBuild returns the CsrGraph for (sourcePath, mode), rebuilding it via
// graphio.Load if no valid cache entry exists or the source has changed. On
// ErrCacheCorrupt, exactly one automatic rebuild is attempted before the
// error surfaces.
func (c *Cache) LoadOrBuild(sourcePath string, mode core.Mode) (*core.CsrGraph, error) {
	dir := c.dirFor(sourcePath, mode)
	key := dir

	v, err, _ := c.sf.Do(key, func() (any, error) {
		return c.loadOrBuildLocked(sourcePath, mode, dir)
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.CsrGraph), nil
}

func (c *Cache) loadOrBuildLocked(sourcePath string, mode core.Mode, dir string) (*core.CsrGraph, error) {
	mtime, hash, err := statSource(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("graphcache: stat source: %w", err)
	}

	g, readErr := c.tryRead(dir, mode, sourcePath, mtime, hash)
	if readErr == nil && g != nil {
		c.metrics.incHit()
		return g, nil
	}
	c.metrics.incMiss()

	if readErr == nil {
		// Absent or stale entry: a plain rebuild, nothing to recover from.
		return c.rebuild(sourcePath, mode, dir, mtime, hash)
	}

	// Corrupt entry: one automatic rebuild attempt; only if that rebuild
	// also fails does ErrCacheCorrupt surface to the caller.
	c.logger.Warn("graphcache: cache corrupt, rebuilding once",
		zap.String("dir", dir), zap.Error(readErr))
	g, rebuildErr := c.rebuild(sourcePath, mode, dir, mtime, hash)
	if rebuildErr != nil {
		return nil, fmt.Errorf("%w: rebuild after corrupt entry failed: %v", ErrCacheCorrupt, rebuildErr)
	}
	return g, nil
}

// tryRead attempts to read and validate an existing cache entry. A (nil,
// nil) return means there is nothing usable on disk (no entry, or a stale
// one) and the caller should rebuild; a non-nil error always wraps
// ErrCacheCorrupt and means an entry exists but is garbled — short-read
// binaries, unparseable meta, or bins missing under a valid meta.
func (c *Cache) tryRead(dir string, mode core.Mode, sourcePath string, mtime int64, hash string) (*core.CsrGraph, error) {
	m, err := readMeta(filepath.Join(dir, fileMeta))
	switch {
	case os.IsNotExist(err):
		return nil, nil
	case errors.Is(err, ErrCacheCorrupt):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%w: read meta: %v", ErrCacheCorrupt, err)
	}
	if !m.valid(sourcePath, mode, mtime, hash) {
		return nil, nil
	}
	g, _, err := readGraph(dir, mode)
	switch {
	case errors.Is(err, ErrCacheCorrupt):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("%w: read graph: %v", ErrCacheCorrupt, err)
	}
	return g, nil
}

func (c *Cache) rebuild(sourcePath string, mode core.Mode, dir string, mtime int64, hash string) (*core.CsrGraph, error) {
	lock, err := acquireRebuildLock(dir)
	if err != nil {
		return nil, err
	}
	defer lock.release()

	g, err := graphio.Load(sourcePath, mode)
	if err != nil {
		return nil, fmt.Errorf("graphcache: build: %w", err)
	}

	meta := buildMeta(sourcePath, mode, mtime, hash, g)
	if err := writeGraph(dir, g, meta); err != nil {
		return nil, fmt.Errorf("graphcache: persist: %w", err)
	}

	c.metrics.incRebuild()
	c.logger.Info("graphcache: rebuilt",
		zap.String("dir", dir),
		zap.Int("nodes", g.NumNodes()),
		zap.Int("edges", g.NumEdges()))
	return g, nil
}
