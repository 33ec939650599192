package memsort

import "math/bits"

// nodePower computes the merge priority of the boundary between two adjacent
// runs [beginA, beginB) and [beginB, endB) in a slice of length n. The power
// is the position, counted from the most significant side, of the first bit
// at which the fixed-point normalized midpoints of the two runs differ.
// Boundaries deep in the notional optimal merge tree get larger powers and
// are collapsed first; the pending-run stack keeps powers strictly
// increasing from bottom to top.
func nodePower(n, beginA, beginB, endB int) int {
	twoN := uint64(n) << 1
	l := uint64(beginA) + uint64(beginB) // twice the midpoint of the left run
	r := uint64(beginB) + uint64(endB)  // twice the midpoint of the right run
	a := uint32((l << 30) / twoN)
	b := uint32((r << 30) / twoN)
	return bits.LeadingZeros32(a ^ b)
}

// nodePower4 is the base-4 analogue used by the 4-way scheduler. Powers are
// assigned per pair of bits, so up to three adjacent boundaries can share a
// power and be collapsed together into one multi-way merge.
func nodePower4(n, beginA, beginB, endB int) int {
	return (nodePower(n, beginA, beginB, endB) + 1) >> 1
}
