package kbest

// kHeap is a node's bounded, distinct-anchor-id label set: at most k
// entries, one per anchor, retaining only the k smallest by isBetter. K is
// small (tens, not thousands) so a linear scan per insert is simpler and
// faster in practice than a binary heap with decrease-key bookkeeping.
type kHeap struct {
	labels []Label
	k      int
}

// tryInsert attempts to admit cand: if the heap already has an entry for
// cand's anchor, cand replaces it only when better; otherwise cand is
// appended while the heap is not yet full, or replaces the worst entry
// when cand is better than it.
// Returns true iff the heap's contents changed (only then should cand
// propagate further along outgoing edges).
func (h *kHeap) tryInsert(cand Label) bool {
	for i, l := range h.labels {
		if l.AnchorID == cand.AnchorID {
			if isBetter(cand, l) {
				h.labels[i] = cand
				return true
			}
			return false
		}
	}
	if len(h.labels) < h.k {
		h.labels = append(h.labels, cand)
		return true
	}

	worst := 0
	for i := 1; i < len(h.labels); i++ {
		if isBetter(h.labels[worst], h.labels[i]) {
			worst = i
		}
	}
	if isBetter(cand, h.labels[worst]) {
		h.labels[worst] = cand
		return true
	}
	return false
}

// contains reports whether anchorID has an entry whose seconds equal
// seconds — used by the bucket-queue loop to discard stale pops:
// if a popped label is no longer among the node's top-K, it was already
// superseded and relaxing its edges further would be wasted work.
func (h *kHeap) contains(anchorID int32, seconds uint16) bool {
	for _, l := range h.labels {
		if l.AnchorID == anchorID {
			return l.Seconds == seconds
		}
	}
	return false
}

// finalize sorts the heap's labels ascending and pads to length k with
// (SentinelAnchorID, sentinelSeconds) entries.
func (h *kHeap) finalize(k int, sentinelSeconds uint16) Row {
	row := make(Row, len(h.labels))
	copy(row, h.labels)
	sortLabels(row)
	for len(row) < k {
		row = append(row, Label{AnchorID: SentinelAnchorID, Seconds: sentinelSeconds})
	}
	return row
}

func sortLabels(row Row) {
	for i := 1; i < len(row); i++ {
		for j := i; j > 0 && isBetter(row[j], row[j-1]); j-- {
			row[j], row[j-1] = row[j-1], row[j]
		}
	}
}
