package memsort

import (
	"cmp"
	"testing"
)

func newTestSorter(merging MergingMethod) *stableSorter[rec] {
	cfg := mergeConfig(nil)
	cfg.Merging = merging
	return &stableSorter[rec]{cmp: recCompare, cfg: cfg}
}

// two adjacent runs with a duplicate key across the boundary
func mergeFixture() ([]rec, int) {
	a := []rec{{1, 0}, {3, 1}, {5, 2}, {2, 3}, {3, 4}, {6, 5}}
	return a, 3
}

func checkMerged(t *testing.T, a []rec) {
	t.Helper()
	wantKeys := []int{1, 2, 3, 3, 5, 6}
	for i, w := range wantKeys {
		if a[i].key != w {
			t.Fatalf("got key %d at %d; want %d", a[i].key, i, w)
		}
	}
	// the left run's 3 (order 1) must precede the right run's 3 (order 4)
	if a[2].order != 1 || a[3].order != 4 {
		t.Fatalf("equal keys reordered: orders %d, %d; want 1, 4", a[2].order, a[3].order)
	}
}

func TestMergeCopyBoth(t *testing.T) {
	s := newTestSorter(MergeCopyBoth)
	a, mid := mergeFixture()
	if err := s.mergeCopyBoth(a, 0, mid, len(a)); err != nil {
		t.Fatal(err)
	}
	checkMerged(t, a)
}

func TestMergeLo(t *testing.T) {
	s := newTestSorter(MergeGeneralByStages)
	a, mid := mergeFixture()
	if err := s.mergeLo(a, 0, mid, len(a)); err != nil {
		t.Fatal(err)
	}
	checkMerged(t, a)
}

func TestMergeHi(t *testing.T) {
	s := newTestSorter(MergeGeneralByStages)
	a, mid := mergeFixture()
	if err := s.mergeHi(a, 0, mid, len(a)); err != nil {
		t.Fatal(err)
	}
	checkMerged(t, a)
}

func TestMergeUnbalancedRuns(t *testing.T) {
	for _, merging := range []MergingMethod{MergeCopyBoth, MergeGeneralByStages} {
		s := newTestSorter(merging)
		a := make([]rec, 0, 40)
		for i := 0; i < 36; i++ {
			a = append(a, rec{key: i * 2, order: i})
		}
		mid := len(a)
		for i := 0; i < 4; i++ {
			a = append(a, rec{key: i*3 + 1, order: 100 + i})
		}
		if err := s.merge2(a, 0, mid, len(a)); err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(a); i++ {
			if a[i].key < a[i-1].key {
				t.Fatalf("merging=%d: not sorted at %d", merging, i)
			}
		}
	}
}

func TestMergeFailureKeepsPermutation(t *testing.T) {
	for _, merging := range []MergingMethod{MergeCopyBoth, MergeGeneralByStages} {
		for failAt := 1; failAt < 12; failAt++ {
			a, mid := mergeFixture()
			orig := make([]rec, len(a))
			copy(orig, a)
			calls := 0
			s := newTestSorter(merging)
			s.cmp = func(x, y rec) (int, error) {
				calls++
				if calls >= failAt {
					return 0, NewComparisonError("injected", "test")
				}
				return cmp.Compare(x.key, y.key), nil
			}
			err := s.merge2(a, 0, mid, len(a))
			if err == nil {
				continue // failAt beyond the merge's comparison count
			}
			counts := make(map[rec]int, len(a))
			for _, v := range orig {
				counts[v]++
			}
			for _, v := range a {
				counts[v]--
				if counts[v] < 0 {
					t.Fatalf("merging=%d failAt=%d: element %v duplicated", merging, failAt, v)
				}
			}
		}
	}
}
