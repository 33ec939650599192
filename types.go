package memsort

import "cmp"

// Comparator is the ordering source consulted on every decision the engine
// makes. It returns a negative value if a orders before b, zero if a and b
// are equal, and a positive value if a orders after b. A non-nil error means
// the comparator could not produce a decision; the engine stops issuing
// comparisons immediately and the sort call fails with that error, leaving
// the slice as an unspecified permutation of its input.
type Comparator[E any] func(a, b E) (int, error)

// NaturalOrder returns a Comparator for the built-in total order on T.
// It never fails.
func NaturalOrder[T cmp.Ordered]() Comparator[T] {
	return func(a, b T) (int, error) {
		return cmp.Compare(a, b), nil
	}
}

// ComparatorFunc adapts a plain comparison function with cmp.Compare
// semantics into a Comparator that never fails. The function must not panic;
// use GuardedComparator for callbacks that may.
func ComparatorFunc[E any](fn func(a, b E) int) Comparator[E] {
	return func(a, b E) (int, error) {
		return fn(a, b), nil
	}
}

// GuardedComparator adapts a comparison function that may panic, such as one
// bridging a foreign callback. A panic is recovered at the call site and
// converted into a *ComparisonError before it can unwind into the engine.
func GuardedComparator[E any](fn func(a, b E) int) Comparator[E] {
	return func(a, b E) (c int, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = NewComparisonError(r, "comparator callback")
			}
		}()
		return fn(a, b), nil
	}
}
