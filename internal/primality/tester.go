package primality

// IsPrime reports whether no odd divisor d in [lo, hi) evenly divides n.
//
// Values n <= 1 are never prime, 2 is always prime and every other even n is
// composite, regardless of the range. The lower bound is clamped to 3 and
// advanced to the next odd value so that only odd divisors are probed. An
// empty range yields true.
//
// IsPrime is pure: it may be called concurrently on the same n with
// different ranges. A true result only speaks for its own range, so callers
// combining several ranges must AND the results.
func IsPrime(n, lo, hi int64) bool {
	if n <= 1 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}

	if lo < 3 {
		lo = 3
	}
	if lo%2 == 0 {
		lo++
	}

	for d := lo; d < hi; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
