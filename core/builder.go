package core

import "sync"

// Builder accumulates edges for a graph under construction and compiles
// them into an immutable CsrGraph on Freeze. graphio is the only caller
// that mutates a Builder, but the lock lets it accumulate edges from
// multiple parser goroutines before the single-threaded Freeze step.
//
// Builder never validates global graph invariants (no self-loops, etc.) at
// add time beyond weight sign — self-loops are tolerated but ignored by
// relaxation, so rejecting them here would be incorrect.
type Builder struct {
	mu sync.Mutex

	mode Mode
	lon  []float32
	lat  []float32

	from []uint32
	to   []uint32
	w    []uint32
}

// NewBuilder creates a Builder for n nodes with the given coordinates. lon
// and lat must each have length n; ownership of the slices transfers to the
// Builder.
func NewBuilder(mode Mode, lon, lat []float32) *Builder {
	return &Builder{mode: mode, lon: lon, lat: lat}
}

// AddEdge records a directed edge u->v with weight seconds. AddEdge is
// thread-safe; graphio's parser may call it from multiple goroutines while
// accumulating ways.
//
// Returns ErrNodeOutOfRange if u or v is outside [0, NumNodes).
func (b *Builder) AddEdge(u, v uint32, weight uint32) error {
	if int(u) >= len(b.lon) || int(v) >= len(b.lon) {
		return ErrNodeOutOfRange
	}
	// weight is uint32: the non-negative-weight invariant is enforced at the
	// caller (graphio converts float seconds -> uint32 with a 1-second floor
	// before this point), so nothing further to validate here beyond bounds.
	b.mu.Lock()
	defer b.mu.Unlock()
	b.from = append(b.from, u)
	b.to = append(b.to, v)
	b.w = append(b.w, weight)
	return nil
}

// NumNodes returns the node count fixed at construction time.
func (b *Builder) NumNodes() int {
	return len(b.lon)
}

// LonLat returns the coordinates of node i, as fixed at construction time.
func (b *Builder) LonLat(i uint32) (lon, lat float32) {
	return b.lon[i], b.lat[i]
}

// Freeze compiles the accumulated edge list into an immutable forward CSR
// graph, sorted so that for each node, outgoing edges appear in ascending
// neighbor-id order (this total order is what gives KBestKernel's tie-break
// rule and HexAggregator's determinism a stable substrate to build on).
//
// Freeze is idempotent-safe to call once; calling it again recompiles from
// the same accumulated edges.
func (b *Builder) Freeze() (*CsrGraph, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.lon)
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	degree := make([]uint32, n+1)
	for _, u := range b.from {
		degree[u+1]++
	}
	for i := 0; i < n; i++ {
		degree[i+1] += degree[i]
	}
	indptr := degree

	m := len(b.from)
	indices := make([]uint32, m)
	weights := make([]uint32, m)
	cursor := make([]uint32, n)
	copy(cursor, indptr[:n])

	for i := 0; i < m; i++ {
		u := b.from[i]
		pos := cursor[u]
		indices[pos] = b.to[i]
		weights[pos] = b.w[i]
		cursor[u]++
	}

	sortAdjacency(indptr, indices, weights)

	return &CsrGraph{
		Indptr:  indptr,
		Indices: indices,
		Weights: weights,
		NodeLon: b.lon,
		NodeLat: b.lat,
		Mode:    b.mode,
	}, nil
}

// sortAdjacency sorts each node's [start,end) run of (Indices, Weights) pairs
// ascending by neighbor id, using insertion sort: real road-network
// out-degrees are small (almost always < 12), so this beats the overhead of
// sort.Sort's interface dispatch per node.
func sortAdjacency(indptr, indices, weights []uint32) {
	n := len(indptr) - 1
	for v := 0; v < n; v++ {
		start, end := indptr[v], indptr[v+1]
		for i := start + 1; i < end; i++ {
			ni, nw := indices[i], weights[i]
			j := i
			for j > start && indices[j-1] > ni {
				indices[j] = indices[j-1]
				weights[j] = weights[j-1]
				j--
			}
			indices[j] = ni
			weights[j] = nw
		}
	}
}
