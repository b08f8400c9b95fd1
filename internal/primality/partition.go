package primality

import (
	"fmt"
	"math"
)

// maxRoot is floor(sqrt(math.MaxInt64)).
const maxRoot = 3037000499

// SearchRange is a half-open interval [Lo, Hi) of candidate divisors.
type SearchRange struct {
	Lo int64
	Hi int64
}

// String formats the range in interval notation.
func (r SearchRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Lo, r.Hi)
}

// Len returns the number of integers in the range, or 0 when empty.
func (r SearchRange) Len() int64 {
	if r.Hi <= r.Lo {
		return 0
	}
	return r.Hi - r.Lo
}

// Bound returns the exclusive upper divisor bound floor(sqrt(n)) + 1.
//
// The floating-point square root is corrected with integer arithmetic so the
// result satisfies (b-1)² <= n < b² even where float64 loses precision near
// the top of the int64 range. Negative n yields 1.
func Bound(n int64) int64 {
	if n < 0 {
		return 1
	}
	r := int64(math.Sqrt(float64(n)))
	if r > maxRoot {
		r = maxRoot
	}
	for r*r > n {
		r--
	}
	for r < maxRoot && (r+1)*(r+1) <= n {
		r++
	}
	return r + 1
}

// Partition splits [0, max) into parts contiguous ranges. The first parts-1
// ranges have size max/parts; the last one starts at (parts-1)*size and ends
// at max, absorbing the remainder of the integer division. parts below 1 is
// treated as 1.
func Partition(max int64, parts int) []SearchRange {
	if parts < 1 {
		parts = 1
	}
	size := max / int64(parts)
	ranges := make([]SearchRange, parts)
	for j := 0; j < parts-1; j++ {
		lo := int64(j) * size
		ranges[j] = SearchRange{Lo: lo, Hi: lo + size}
	}
	ranges[parts-1] = SearchRange{Lo: int64(parts-1) * size, Hi: max}
	return ranges
}

// IsPrimeRanges evaluates IsPrime over every range sequentially and reduces
// the results with logical AND, stopping at the first composite verdict.
func IsPrimeRanges(n int64, ranges []SearchRange) bool {
	for _, r := range ranges {
		if !IsPrime(n, r.Lo, r.Hi) {
			return false
		}
	}
	return true
}
