package snapper

// kdMaxHeap is a bounded max-heap over kdCandidate keyed by distSq, used to
// keep the k closest points found so far during a kdTree search. The heap is
// small (size k) and rebuilt per query, so a plain slice with a hand-rolled
// sift is simpler than container/heap's interface plumbing at that size.
type kdMaxHeap []kdCandidate

func (h *kdMaxHeap) push(c kdCandidate) {
	*h = append(*h, c)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if (*h)[parent].distSq >= (*h)[i].distSq {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

// replaceMax swaps out the current maximum for c (assumed smaller) and
// re-sifts down, keeping the heap's size fixed at k.
func (h *kdMaxHeap) replaceMax(c kdCandidate) {
	(*h)[0] = c
	i := 0
	n := len(*h)
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < n && (*h)[left].distSq > (*h)[largest].distSq {
			largest = left
		}
		if right < n && (*h)[right].distSq > (*h)[largest].distSq {
			largest = right
		}
		if largest == i {
			break
		}
		(*h)[i], (*h)[largest] = (*h)[largest], (*h)[i]
		i = largest
	}
}
