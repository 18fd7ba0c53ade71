package hexagg

import (
	"sort"

	"github.com/uber/h3-go/v4"

	"github.com/hexterra/reachcore/h3index"
	"github.com/hexterra/reachcore/kbest"
)

// Aggregate folds nodeResults (aligned by node id to matrix's node axis)
// into per-hex K-best rows at every resolution matrix carries, finest first
// then rolling up to each coarser resolution from the level just produced.
// Padding labels (AnchorID == kbest.SentinelAnchorID) are dropped before
// grouping, so no row carries the sentinel anchor.
func Aggregate(matrix *h3index.Matrix, nodeResults []kbest.NodeResult, k int) ([]Row, error) {
	if len(matrix.Resolutions) == 0 {
		return nil, ErrNoResolutions
	}
	resolutions := matrix.Resolutions
	fineRes := resolutions[len(resolutions)-1]

	fineGroups := make(map[uint64][]kbest.Label)
	for node, nr := range nodeResults {
		cell := matrix.CellAt(uint32(node), fineRes)
		for _, lbl := range nr.Row {
			if lbl.AnchorID == kbest.SentinelAnchorID {
				continue
			}
			fineGroups[cell] = append(fineGroups[cell], lbl)
		}
	}

	var out []Row
	currentLabels := mergeGroups(fineGroups, k)
	out = append(out, toRows(currentLabels, uint8(fineRes))...)

	for i := len(resolutions) - 2; i >= 0; i-- {
		res := resolutions[i]
		parentGroups := make(map[uint64][]kbest.Label)
		for hexID, labels := range currentLabels {
			parentCell, err := h3.Cell(hexID).Parent(res)
			if err != nil {
				return nil, ErrInvalidCell
			}
			parentGroups[uint64(parentCell)] = append(parentGroups[uint64(parentCell)], labels...)
		}
		currentLabels = mergeGroups(parentGroups, k)
		out = append(out, toRows(currentLabels, uint8(res))...)
	}

	return out, nil
}

func mergeGroups(groups map[uint64][]kbest.Label, k int) map[uint64][]kbest.Label {
	merged := make(map[uint64][]kbest.Label, len(groups))
	for hexID, labels := range groups {
		h := &groupHeap{k: k}
		for _, l := range labels {
			h.add(l)
		}
		merged[hexID] = h.sorted()
	}
	return merged
}

func toRows(groups map[uint64][]kbest.Label, res uint8) []Row {
	hexIDs := make([]uint64, 0, len(groups))
	for id := range groups {
		hexIDs = append(hexIDs, id)
	}
	sort.Slice(hexIDs, func(i, j int) bool { return hexIDs[i] < hexIDs[j] })

	rows := make([]Row, 0, len(groups))
	for _, hexID := range hexIDs {
		for _, l := range groups[hexID] {
			rows = append(rows, Row{H3ID: hexID, Res: res, AnchorID: l.AnchorID, Seconds: l.Seconds})
		}
	}
	return rows
}
