package memsort

import "slices"

// run is a half-open index range [start, end) known to be sorted ascending.
// Runs produced by nextRun never overlap and tile the slice left to right.
type run struct {
	start, end int
}

func (r run) len() int { return r.end - r.start }

// nextRun finds the maximal run starting at lo and returns its end index.
// A weakly ascending prefix is taken as-is; a strictly descending prefix is
// reversed in place, which is safe for stability because a strictly
// descending run contains no equal neighbors. Runs shorter than minRun are
// extended to minRun (or the slice end) by binary insertion sort.
func nextRun[E any](a []E, lo, minRun int, cmp Comparator[E]) (int, error) {
	n := len(a)
	hi := lo + 1
	if hi < n {
		c, err := cmp(a[hi], a[hi-1])
		if err != nil {
			return 0, err
		}
		hi++
		if c < 0 {
			for hi < n {
				c, err = cmp(a[hi], a[hi-1])
				if err != nil {
					return 0, err
				}
				if c >= 0 {
					break
				}
				hi++
			}
			slices.Reverse(a[lo:hi])
		} else {
			for hi < n {
				c, err = cmp(a[hi], a[hi-1])
				if err != nil {
					return 0, err
				}
				if c < 0 {
					break
				}
				hi++
			}
		}
	}
	if hi-lo < minRun {
		end := lo + minRun
		if end > n {
			end = n
		}
		if err := binaryInsertionSort(a, lo, end, hi, cmp); err != nil {
			return 0, err
		}
		hi = end
	}
	return hi, nil
}

// binaryInsertionSort sorts a[lo:hi] given that a[lo:start] is already
// sorted. Each new element is inserted after any equal elements, which keeps
// the sort stable. The slice is a valid permutation after every step, so a
// comparator failure can surface at any point without cleanup.
func binaryInsertionSort[E any](a []E, lo, hi, start int, cmp Comparator[E]) error {
	if start <= lo {
		start = lo + 1
	}
	for ; start < hi; start++ {
		pivot := a[start]
		// locate the leftmost position whose element orders strictly after
		// pivot; equal elements stay in front
		left, right := lo, start
		for left < right {
			mid := int(uint(left+right) >> 1)
			c, err := cmp(pivot, a[mid])
			if err != nil {
				return err
			}
			if c < 0 {
				right = mid
			} else {
				left = mid + 1
			}
		}
		copy(a[left+1:start+1], a[left:start])
		a[left] = pivot
	}
	return nil
}
