package hexagg

import "github.com/hexterra/reachcore/kbest"

// groupHeap accumulates labels for one hex group under the same
// distinct-anchor, K-smallest discipline as kbest's per-node frontier. It
// is a separate type from kbest's unexported kHeap because it folds whole
// label slices in bulk rather than relaxing edges one at a time, but the
// acceptance rule is identical.
type groupHeap struct {
	labels []kbest.Label
	k      int
}

func isBetter(a, b kbest.Label) bool {
	if a.Seconds != b.Seconds {
		return a.Seconds < b.Seconds
	}
	return a.AnchorID < b.AnchorID
}

func (h *groupHeap) add(cand kbest.Label) {
	for i, l := range h.labels {
		if l.AnchorID == cand.AnchorID {
			if isBetter(cand, l) {
				h.labels[i] = cand
			}
			return
		}
	}
	if len(h.labels) < h.k {
		h.labels = append(h.labels, cand)
		return
	}
	worst := 0
	for i := 1; i < len(h.labels); i++ {
		if isBetter(h.labels[worst], h.labels[i]) {
			worst = i
		}
	}
	if isBetter(cand, h.labels[worst]) {
		h.labels[worst] = cand
	}
}

// sorted returns the retained labels ascending by (seconds, anchor id).
func (h *groupHeap) sorted() []kbest.Label {
	out := make([]kbest.Label, len(h.labels))
	copy(out, h.labels)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && isBetter(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
