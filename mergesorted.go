package memsort

import "github.com/memsort/memsort/queue"

// mergeSource is one input list in a k-way merge together with its original
// list index, which breaks ties to keep the merge stable.
type mergeSource[E any] struct {
	data []E
	idx  int
}

// MergeSorted merges already-sorted slices into one new sorted slice. Equal
// elements keep their order: by input list first, then by position within
// the list. The inputs are not modified. A comparator failure aborts the
// merge and returns the error with a nil result.
func MergeSorted[E any](cmp Comparator[E], lists ...[]E) ([]E, error) {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	out := make([]E, 0, total)

	// the heap ordering function cannot return an error, so a failed
	// comparison is recorded out of band and checked after every operation
	var cmpErr error
	pq := queue.NewPriorityQueue(func(x, y *mergeSource[E]) bool {
		c, err := cmp(x.data[0], y.data[0])
		if err != nil {
			if cmpErr == nil {
				cmpErr = err
			}
			return false
		}
		if c != 0 {
			return c < 0
		}
		return x.idx < y.idx
	})

	for i, l := range lists {
		if len(l) == 0 {
			continue
		}
		pq.Push(&mergeSource[E]{data: l, idx: i})
		if cmpErr != nil {
			return nil, cmpErr
		}
	}
	for pq.Len() > 0 {
		src := pq.Peek()
		out = append(out, src.data[0])
		src.data = src.data[1:]
		if len(src.data) > 0 {
			pq.PeekUpdate()
		} else {
			pq.Pop()
		}
		if cmpErr != nil {
			return nil, cmpErr
		}
	}
	return out, nil
}
