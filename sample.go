package memsort

import (
	"context"
	"math/bits"

	"golang.org/x/sync/errgroup"
)

// unstableSorter drives the sample-sort path: oversampled splitter
// selection, bucket classification, and per-bucket recursion. It gives no
// stability guarantee. All scratch storage is allocated once per call and
// shared across the recursion by index range, so parallel bucket workers
// never touch overlapping memory.
type unstableSorter[E any] struct {
	cmp Comparator[E]
	cfg *Config
}

func (u *unstableSorter[E]) sort(a []E) error {
	n := len(a)
	if n <= u.cfg.BaseCaseSize {
		return binaryInsertionSort(a, 0, n, 1, u.cmp)
	}
	scratch := make([]E, n)
	oracle := make([]uint8, n)
	depth := bits.Len(uint(n)) + 4
	return u.sortRange(context.Background(), a, scratch, oracle, depth, u.cfg.NumWorkers > 1)
}

func (u *unstableSorter[E]) sortRange(ctx context.Context, a, scratch []E, oracle []uint8, depth int, parallel bool) error {
	// once a parallel sibling has failed, stop issuing comparisons
	if err := ctx.Err(); err != nil {
		return err
	}
	n := len(a)
	if n <= u.cfg.BaseCaseSize {
		return binaryInsertionSort(a, 0, n, 1, u.cmp)
	}
	if depth <= 0 {
		return u.fallback(a)
	}

	splitters, err := u.selectSplitters(a)
	if err != nil {
		return err
	}
	k := len(splitters) + 1

	// classification pass: record each element's bucket and the bucket sizes.
	// Only reads a, so a comparator failure here leaves the slice untouched.
	counts := make([]int, k)
	for i, e := range a {
		b, err := u.classify(splitters, e)
		if err != nil {
			return err
		}
		oracle[i] = uint8(b)
		counts[b]++
	}

	// if one bucket swallowed the range the splitters made no progress and
	// re-sampling the same data cannot help; the stable path finishes the job
	for _, c := range counts {
		if c == n {
			return u.fallback(a)
		}
	}

	// scatter through scratch and copy back; no comparisons happen here
	pos := make([]int, k)
	sum := 0
	for i, c := range counts {
		pos[i] = sum
		sum += c
	}
	bounds := make([]int, k+1)
	copy(bounds, pos)
	bounds[k] = n
	for i, e := range a {
		b := oracle[i]
		scratch[pos[b]] = e
		pos[b]++
	}
	copy(a, scratch[:n])

	if parallel {
		// bucket ranges are disjoint, so workers share no mutable state; the
		// comparator must be safe for concurrent calls in this mode
		g, gctx := errgroup.WithContext(context.Background())
		g.SetLimit(u.cfg.NumWorkers)
		for i := 0; i < k; i++ {
			lo, hi := bounds[i], bounds[i+1]
			if hi-lo < 2 {
				continue
			}
			g.Go(func() error {
				return u.sortRange(gctx, a[lo:hi], scratch[lo:hi], oracle[lo:hi], depth-1, false)
			})
		}
		return g.Wait()
	}
	for i := 0; i < k; i++ {
		lo, hi := bounds[i], bounds[i+1]
		if hi-lo < 2 {
			continue
		}
		if err := u.sortRange(ctx, a[lo:hi], scratch[lo:hi], oracle[lo:hi], depth-1, false); err != nil {
			return err
		}
	}
	return nil
}

// selectSplitters oversamples evenly spaced elements, sorts the sample, and
// picks evenly spaced splitter keys from it to minimize bucket imbalance.
// The sample holds copies, so the slice itself is never disturbed here.
func (u *unstableSorter[E]) selectSplitters(a []E) ([]E, error) {
	n := len(a)
	numSplitters := u.cfg.BucketCount - 1
	sampleSize := numSplitters * u.cfg.OversampleFactor
	if sampleSize > n/2 {
		sampleSize = n / 2
	}
	if numSplitters > sampleSize {
		numSplitters = sampleSize
	}
	sample := make([]E, sampleSize)
	step := n / sampleSize
	for i := range sample {
		sample[i] = a[i*step]
	}
	if err := binaryInsertionSort(sample, 0, len(sample), 1, u.cmp); err != nil {
		return nil, err
	}
	splitters := make([]E, numSplitters)
	for i := range splitters {
		splitters[i] = sample[(i+1)*sampleSize/(numSplitters+1)]
	}
	return splitters, nil
}

// classify returns the bucket index for e: the number of splitters that
// order strictly before it. Elements of bucket i therefore never order after
// elements of bucket i+1.
func (u *unstableSorter[E]) classify(splitters []E, e E) (int, error) {
	lo, hi := 0, len(splitters)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c, err := u.cmp(splitters[mid], e)
		if err != nil {
			return 0, err
		}
		if c < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, nil
}

// fallback sorts a range the partitioner cannot make progress on
// (duplicate-heavy or otherwise adversarial input) with the merge path,
// which is comparator-safe and O(n log n) on any input.
func (u *unstableSorter[E]) fallback(a []E) error {
	cfg := *u.cfg
	if cfg.MergeWays != 2 {
		cfg.MergeWays = 2
	}
	fb := &stableSorter[E]{cmp: u.cmp, cfg: &cfg}
	return fb.sort(a)
}
