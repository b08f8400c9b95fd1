package primality

import "testing"

func TestIsPrime_Scenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		n      int64
		lo, hi int64
		want   bool
	}{
		{"17 has no factor in [3,5)", 17, 3, 5, true},
		{"3 divides 15", 15, 3, 5, false},
		{"2 is special-cased", 2, 3, 10, true},
		{"3 divides 9", 9, 3, 4, false},
		{"zero", 0, 3, 10, false},
		{"one", 1, 3, 10, false},
		{"negative", -7, 3, 10, false},
		{"min int64", -9223372036854775808, 0, 10, false},
		{"even composite", 100, 3, 11, false},
		{"three with empty range", 3, 3, 2, true},
		{"25 found at 5", 25, 3, 6, false},
		{"25 outside range is vacuously true", 25, 7, 9, true},
		{"range below 3 is clamped", 21, -100, 4, false},
		{"even lo is advanced", 21, 2, 4, false},
		{"even lo past factor", 21, 4, 7, true},
		{"large prime", 1000000007, 3, 31624, true},
		{"large semiprime", 999999999989 * 3, 3, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsPrime(tt.n, tt.lo, tt.hi); got != tt.want {
				t.Errorf("IsPrime(%d, %d, %d) = %v, want %v", tt.n, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

// TestIsPrime_MatchesNaiveOracle checks the full-range verdict against a
// straightforward divisor scan for every n up to 5000.
func TestIsPrime_MatchesNaiveOracle(t *testing.T) {
	t.Parallel()
	for n := int64(-5); n <= 5000; n++ {
		want := naivePrime(n)
		if got := IsPrime(n, 3, Bound(n)); got != want {
			t.Fatalf("IsPrime(%d, 3, %d) = %v, oracle says %v", n, Bound(n), got, want)
		}
	}
}

func TestIsPrime_Idempotent(t *testing.T) {
	t.Parallel()
	for _, n := range []int64{97, 99, 7919, 7921} {
		first := IsPrime(n, 3, Bound(n))
		for i := 0; i < 10; i++ {
			if IsPrime(n, 3, Bound(n)) != first {
				t.Fatalf("IsPrime(%d) changed between calls", n)
			}
		}
	}
}

func naivePrime(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
