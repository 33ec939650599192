package memsort

// sort4 runs the 4-way powersort schedule. Powers are assigned per base-4
// digit, so up to three adjacent stack entries can share a power; a collapse
// merges such a group together with the current run in one step, cutting the
// merge tree depth roughly in half versus repeated 2-way merging.
func (s *stableSorter[E]) sort4(a []E) error {
	n := len(a)
	end, err := nextRun(a, 0, s.cfg.MinRunLen, s.cmp)
	if err != nil {
		return err
	}
	cur := run{0, end}
	for cur.end < n {
		end, err = nextRun(a, cur.end, s.cfg.MinRunLen, s.cmp)
		if err != nil {
			return err
		}
		next := run{cur.end, end}
		p := nodePower4(n, cur.start, next.start, next.end)
		for len(s.stack) > 0 && s.stack[len(s.stack)-1].power > p {
			cur, err = s.collapse4(a, cur)
			if err != nil {
				return err
			}
		}
		s.stack = append(s.stack, pendingRun{cur, p})
		cur = next
	}
	for len(s.stack) > 0 {
		cur, err = s.collapse4(a, cur)
		if err != nil {
			return err
		}
	}
	return nil
}

// collapse4 pops the topmost group of equal-power runs (at most three) and
// merges the group together with cur in a single multi-way step. Stack
// entries are adjacent left to right, so the group and cur tile one
// contiguous range.
func (s *stableSorter[E]) collapse4(a []E, cur run) (run, error) {
	top := len(s.stack) - 1
	lo := top
	for lo > 0 && top-lo < 2 && s.stack[lo-1].power == s.stack[top].power {
		lo--
	}
	var b [5]int
	k := 0
	for i := lo; i <= top; i++ {
		b[k] = s.stack[i].start
		k++
	}
	b[k] = cur.start
	b[k+1] = cur.end
	k++
	merged := run{s.stack[lo].start, cur.end}
	s.stack = s.stack[:lo]
	if err := s.mergeK(a, b[:k+1]); err != nil {
		return run{}, err
	}
	return merged, nil
}

// mergeK performs the staged general merge of the k adjacent runs bounded by
// b (k+1 boundaries, k between 2 and 4). All runs are staged through the
// scratch buffer and merged back with one read cursor per run; ties take the
// lowest run index, which preserves the original order of equal elements.
// The merge needs no sentinel values: whenever a run drains, the loop drops
// to the next narrower stage. On comparator failure every unconsumed scratch
// segment is flushed into the unwritten destination slots, keeping the slice
// a permutation of its input.
func (s *stableSorter[E]) mergeK(a []E, b []int) error {
	k := len(b) - 1
	lo, hi := b[0], b[k]
	if k == 2 {
		return s.merge2(a, lo, b[1], hi)
	}
	s.scratch = append(s.scratch[:0], a[lo:hi]...)
	var cur, end [4]int
	for i := 0; i < k; i++ {
		cur[i] = b[i] - lo
		end[i] = b[i+1] - lo
	}
	out := lo
	for k > 1 {
		best := 0
		for r := 1; r < k; r++ {
			c, err := s.cmp(s.scratch[cur[r]], s.scratch[cur[best]])
			if err != nil {
				for x := 0; x < k; x++ {
					out += copy(a[out:hi], s.scratch[cur[x]:end[x]])
				}
				return err
			}
			if c < 0 {
				best = r
			}
		}
		a[out] = s.scratch[cur[best]]
		out++
		cur[best]++
		if cur[best] == end[best] {
			copy(cur[best:k], cur[best+1:k])
			copy(end[best:k], end[best+1:k])
			k--
		}
	}
	copy(a[out:hi], s.scratch[cur[0]:end[0]])
	return nil
}
