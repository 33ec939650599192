package memsort

// pendingRun is a run on the merge stack together with the power of the
// boundary between it and the run that followed it.
type pendingRun struct {
	run
	power int
}

// stableSorter drives the stable path: run detection, powersort merge
// scheduling, and the configured merge strategy. The scratch buffer and the
// pending-run stack live only for the duration of one sort call.
type stableSorter[E any] struct {
	cmp     Comparator[E]
	cfg     *Config
	scratch []E
	stack   []pendingRun
}

// sort runs the 2-way powersort schedule over a. Each new run boundary gets
// a node power; stack entries whose boundary power exceeds it are collapsed
// by merging before the current run is pushed, which keeps powers strictly
// increasing from bottom to top and the total merge cost within a constant
// factor of the optimal merge tree.
func (s *stableSorter[E]) sort(a []E) error {
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
		p := nodePower(n, cur.start, next.start, next.end)
		for len(s.stack) > 0 && s.stack[len(s.stack)-1].power > p {
			top := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			if err = s.merge2(a, top.start, cur.start, cur.end); err != nil {
				return err
			}
			cur.start = top.start
		}
		s.stack = append(s.stack, pendingRun{cur, p})
		cur = next
	}
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if err = s.merge2(a, top.start, cur.start, cur.end); err != nil {
			return err
		}
		cur.start = top.start
	}
	return nil
}

// merge2 merges the adjacent sorted runs a[lo:mid] and a[mid:hi] using the
// configured strategy. The general-by-stages strategy copies only the
// smaller run out.
func (s *stableSorter[E]) merge2(a []E, lo, mid, hi int) error {
	if s.cfg.Merging == MergeCopyBoth {
		return s.mergeCopyBoth(a, lo, mid, hi)
	}
	if mid-lo <= hi-mid {
		return s.mergeLo(a, lo, mid, hi)
	}
	return s.mergeHi(a, lo, mid, hi)
}

// mergeCopyBoth materializes both runs into scratch and merges back into a.
// Ties take the left run's element, which preserves stability. On comparator
// failure the unconsumed scratch remainder is flushed into the unwritten
// destination slots so the slice stays a permutation of its input.
func (s *stableSorter[E]) mergeCopyBoth(a []E, lo, mid, hi int) error {
	s.scratch = append(s.scratch[:0], a[lo:hi]...)
	left, right := s.scratch[:mid-lo], s.scratch[mid-lo:hi-lo]
	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		c, err := s.cmp(right[j], left[i])
		if err != nil {
			k += copy(a[k:hi], left[i:])
			copy(a[k:hi], right[j:])
			return err
		}
		if c < 0 {
			a[k] = right[j]
			j++
		} else {
			a[k] = left[i]
			i++
		}
		k++
	}
	k += copy(a[k:hi], left[i:])
	copy(a[k:hi], right[j:])
	return nil
}

// mergeLo merges with only the left run copied to scratch; used when the
// left run is the smaller one. The write cursor can never overtake the read
// cursor of the right run, so the merge is safe in place.
func (s *stableSorter[E]) mergeLo(a []E, lo, mid, hi int) error {
	s.scratch = append(s.scratch[:0], a[lo:mid]...)
	left := s.scratch
	i, j, k := 0, mid, lo
	for i < len(left) && j < hi {
		c, err := s.cmp(a[j], left[i])
		if err != nil {
			// the gap a[k:j] holds exactly the unconsumed left elements
			copy(a[k:j], left[i:])
			return err
		}
		if c < 0 {
			a[k] = a[j]
			j++
		} else {
			a[k] = left[i]
			i++
		}
		k++
	}
	copy(a[k:hi], left[i:])
	return nil
}

// mergeHi is the mirror of mergeLo: the right run is copied to scratch and
// the merge runs backwards from the top. Ties place the right run's element
// at the higher position, keeping equal elements in original order.
func (s *stableSorter[E]) mergeHi(a []E, lo, mid, hi int) error {
	s.scratch = append(s.scratch[:0], a[mid:hi]...)
	right := s.scratch
	i, j, k := mid-1, len(right)-1, hi-1
	for i >= lo && j >= 0 {
		c, err := s.cmp(right[j], a[i])
		if err != nil {
			copy(a[i+1:k+1], right[:j+1])
			return err
		}
		if c < 0 {
			a[k] = a[i]
			i--
		} else {
			a[k] = right[j]
			j--
		}
		k--
	}
	if j >= 0 {
		copy(a[k-j:k+1], right[:j+1])
	}
	return nil
}
