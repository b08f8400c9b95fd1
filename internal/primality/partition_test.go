package primality

import (
	"math"
	"reflect"
	"testing"
)

func TestBound(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int64
		want int64
	}{
		{-1, 1},
		{0, 1},
		{1, 2},
		{3, 2},
		{4, 3},
		{17, 5},
		{97, 10},
		{100, 11},
		{math.MaxInt64, 3037000500},
		{3037000499 * 3037000499, 3037000500},
		{3037000499*3037000499 - 1, 3037000499},
	}
	for _, tt := range tests {
		if got := Bound(tt.n); got != tt.want {
			t.Errorf("Bound(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPartition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		max   int64
		parts int
		want  []SearchRange
	}{
		{
			name:  "97 on four threads",
			max:   10,
			parts: 4,
			want:  []SearchRange{{0, 2}, {2, 4}, {4, 6}, {6, 10}},
		},
		{
			name:  "single partition",
			max:   11,
			parts: 1,
			want:  []SearchRange{{0, 11}},
		},
		{
			name:  "zero parts treated as one",
			max:   5,
			parts: 0,
			want:  []SearchRange{{0, 5}},
		},
		{
			name:  "more parts than divisors",
			max:   2,
			parts: 3,
			want:  []SearchRange{{0, 0}, {0, 0}, {0, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Partition(tt.max, tt.parts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Partition(%d, %d) = %v, want %v", tt.max, tt.parts, got, tt.want)
			}
		})
	}
}

// TestPartition_CoversRangeOnce verifies the partitions are contiguous,
// disjoint and end exactly at max.
func TestPartition_CoversRangeOnce(t *testing.T) {
	t.Parallel()
	for max := int64(0); max <= 200; max++ {
		for parts := 1; parts <= 17; parts++ {
			ranges := Partition(max, parts)
			var next, total int64
			for i, r := range ranges {
				if r.Lo != next && r.Len() > 0 {
					t.Fatalf("Partition(%d, %d)[%d] = %v starts at %d, want %d", max, parts, i, r, r.Lo, next)
				}
				if r.Len() > 0 {
					next = r.Hi
				}
				total += r.Len()
			}
			if total != max {
				t.Fatalf("Partition(%d, %d) covers %d values, want %d", max, parts, total, max)
			}
		}
	}
}

func TestSearchRange_String(t *testing.T) {
	t.Parallel()
	if got := (SearchRange{Lo: 6, Hi: 10}).String(); got != "[6,10)" {
		t.Errorf("String() = %q, want %q", got, "[6,10)")
	}
}
