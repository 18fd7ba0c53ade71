package h3index

// Matrix is a dense [N, R] table of H3 cell identifiers, node-aligned with
// the graph's node array and resolution-aligned with Resolutions (ascending
// numeric order; the last entry is the finest resolution).
type Matrix struct {
	Resolutions []int
	cells       [][]uint64 // cells[resIdx][node]
}

// NumNodes returns the number of nodes indexed.
func (m *Matrix) NumNodes() int {
	if len(m.cells) == 0 {
		return 0
	}
	return len(m.cells[0])
}

// FinestResolution returns the largest resolution in the matrix.
func (m *Matrix) FinestResolution() int {
	return m.Resolutions[len(m.Resolutions)-1]
}

// CellAt returns the H3 cell id for node at the given resolution. Panics if
// res is not one of the indexed resolutions; callers are expected to only
// query resolutions drawn from Resolutions.
func (m *Matrix) CellAt(node uint32, res int) uint64 {
	idx := m.resIndex(res)
	return m.cells[idx][node]
}

func (m *Matrix) resIndex(res int) int {
	for i, r := range m.Resolutions {
		if r == res {
			return i
		}
	}
	panic("h3index: resolution not present in matrix")
}
