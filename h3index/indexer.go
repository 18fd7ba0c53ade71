package h3index

import (
	"sort"

	"github.com/uber/h3-go/v4"
)

// Index assigns every node in nodeLon/nodeLat a cell at each of resolutions,
// enforcing the parent-consistency contract described in doc.go. resolutions
// need not be sorted by the caller; Index sorts a copy ascending and treats
// the largest value as the finest resolution.
func Index(nodeLon, nodeLat []float32, resolutions []int) (*Matrix, error) {
	if len(resolutions) == 0 {
		return nil, ErrNoResolutions
	}
	sorted := make([]int, len(resolutions))
	copy(sorted, resolutions)
	sort.Ints(sorted)
	for _, r := range sorted {
		if r < 0 || r > 15 {
			return nil, ErrResolutionOutOfRange
		}
	}

	n := len(nodeLon)
	fineRes := sorted[len(sorted)-1]
	cells := make([][]uint64, len(sorted))
	for i := range cells {
		cells[i] = make([]uint64, n)
	}
	fineIdx := len(sorted) - 1

	for node := 0; node < n; node++ {
		latLng := h3.NewLatLng(float64(nodeLat[node]), float64(nodeLon[node]))
		fineCell, err := h3.LatLngToCell(latLng, fineRes)
		if err != nil {
			return nil, ErrInvalidCoordinate
		}
		cells[fineIdx][node] = uint64(fineCell)

		for i, r := range sorted {
			if r == fineRes {
				continue
			}
			parent, err := fineCell.Parent(r)
			if err != nil {
				return nil, ErrInvalidCoordinate
			}
			cells[i][node] = uint64(parent)
		}
	}

	return &Matrix{Resolutions: sorted, cells: cells}, nil
}
