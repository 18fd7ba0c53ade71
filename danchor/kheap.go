package danchor

import "github.com/hexterra/reachcore/anchor"

// poiLabel is one (POI, travel time) pair, the D_anchor analogue of kbest's
// Label — here the distinctness key is poi_id rather than anchor_int_id.
type poiLabel struct {
	POIID   anchor.POIID
	Seconds uint16
}

// isBetterPOI reports whether a is preferred over b: smaller seconds first,
// ties broken by smaller poi_id bytes, mirroring kbest's anchor-id tiebreak
// for the same determinism reason.
func isBetterPOI(a, b poiLabel) bool {
	if a.Seconds != b.Seconds {
		return a.Seconds < b.Seconds
	}
	return lessPOIID(a.POIID, b.POIID)
}

func lessPOIID(a, b anchor.POIID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// poiHeap is a node's bounded, distinct-POI label set: at most k entries,
// one per poi_id, retaining only the k smallest by isBetterPOI. Same linear-
// scan discipline as kbest.kHeap, for the same reason: k is small (single
// digits to low tens per label) so a scan beats heap bookkeeping.
type poiHeap struct {
	labels []poiLabel
	k      int
}

// tryInsert admits cand under the same acceptance rule as kbest.kHeap's,
// substituting poi_id for anchor_int_id. Returns true iff the heap's
// contents changed, the signal the bucket-queue loop uses to decide whether
// cand should propagate further.
func (h *poiHeap) tryInsert(cand poiLabel) bool {
	for i, l := range h.labels {
		if l.POIID == cand.POIID {
			if isBetterPOI(cand, l) {
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
		if isBetterPOI(h.labels[worst], h.labels[i]) {
			worst = i
		}
	}
	if isBetterPOI(cand, h.labels[worst]) {
		h.labels[worst] = cand
		return true
	}
	return false
}

// contains reports whether poiID has an entry whose seconds matches —
// used by the bucket-queue loop to discard stale pops, same as kbest.kHeap.
func (h *poiHeap) contains(poiID anchor.POIID, seconds uint16) bool {
	for _, l := range h.labels {
		if l.POIID == poiID {
			return l.Seconds == seconds
		}
	}
	return false
}

// finalize returns the heap's labels sorted ascending, unpadded: anchors
// with zero reachable POIs under the cap are omitted from the shard
// entirely, so D_anchor output has no sentinel row, unlike kbest's
// fixed-length per-node K-tuple.
func (h *poiHeap) finalize() []poiLabel {
	out := make([]poiLabel, len(h.labels))
	copy(out, h.labels)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && isBetterPOI(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
