// Package memsort implements in-place, in-memory sorting of slices with an
// ordering source that is allowed to fail.
//
// Two complementary algorithms are provided. The stable path detects the
// natural runs already present in the input, extends short ones by binary
// insertion sort, and merges them following the powersort schedule (2-way or
// 4-way), so mostly-sorted inputs cost close to one pass. The unstable path
// is a sample sort: it buckets elements between oversampled splitter keys
// and recurses per bucket, trading stability for throughput on large
// unordered inputs.
//
// Ordering comes from a Comparator, which may report failure instead of a
// decision (for example when it adapts a foreign callback that panicked). A
// failing comparator aborts the sort with an error; the slice is then an
// unspecified permutation of its input, and no element is ever duplicated or
// lost, on any path, on any outcome.
package memsort

import "cmp"

// Stable sorts a ascending in the natural order of T, preserving the
// relative order of equal elements. config may be nil for defaults.
func Stable[T cmp.Ordered](a []T, config *Config) error {
	return StableFunc(a, NaturalOrder[T](), config)
}

// StableFunc sorts a ascending under cmp, preserving the relative order of
// elements that compare equal. config may be nil for defaults.
func StableFunc[E any](a []E, cmp Comparator[E], config *Config) (err error) {
	cfg := mergeConfig(config)
	if err = cfg.validate(); err != nil {
		return err
	}
	if len(a) < 2 {
		return nil
	}
	defer convertPanic(&err, "stable sort")
	s := &stableSorter[E]{cmp: cmp, cfg: cfg}
	if cfg.MergeWays == 4 {
		return s.sort4(a)
	}
	return s.sort(a)
}

// Unstable sorts a ascending in the natural order of T without a stability
// guarantee. config may be nil for defaults.
func Unstable[T cmp.Ordered](a []T, config *Config) error {
	return UnstableFunc(a, NaturalOrder[T](), config)
}

// UnstableFunc sorts a ascending under cmp without a stability guarantee.
// Equal elements may be reordered. config may be nil for defaults.
func UnstableFunc[E any](a []E, cmp Comparator[E], config *Config) (err error) {
	cfg := mergeConfig(config)
	if err = cfg.validate(); err != nil {
		return err
	}
	if len(a) < 2 {
		return nil
	}
	defer convertPanic(&err, "unstable sort")
	u := &unstableSorter[E]{cmp: cmp, cfg: cfg}
	return u.sort(a)
}

// convertPanic is the single point where an unexpected engine panic becomes
// an error instead of aborting the caller. Comparator failures never arrive
// here; they travel as ordinary error returns.
func convertPanic(err *error, context string) {
	if r := recover(); r != nil {
		*err = NewInternalError(r, context)
	}
}
