package primes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAllFactors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want []uint64
	}{
		{0, nil},
		{1, []uint64{1}},
		{2, []uint64{1, 2}},
		{12, []uint64{1, 2, 3, 4, 6, 12}},
		{20, []uint64{1, 2, 4, 5, 10, 20}},
		{36, []uint64{1, 2, 3, 4, 6, 9, 12, 18, 36}},
		{97, []uint64{1, 97}},
		{100, []uint64{1, 2, 4, 5, 10, 20, 25, 50, 100}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, AllFactors(tt.n)); diff != "" {
			t.Errorf("AllFactors(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestPrimeFactors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want []uint64
	}{
		{0, nil},
		{1, nil},
		{2, []uint64{2}},
		{12, []uint64{2, 2, 3}},
		{97, []uint64{97}},
		{100, []uint64{2, 2, 5, 5}},
		{1001, []uint64{7, 11, 13}},
		{1 << 20, []uint64{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}},
		{1_000_000_000_000, []uint64{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, PrimeFactors(tt.n)); diff != "" {
			t.Errorf("PrimeFactors(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestDistinctPrimeFactors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want []uint64
	}{
		{1, nil},
		{12, []uint64{2, 3}},
		{100, []uint64{2, 5}},
		{360, []uint64{2, 3, 5}},
		{97, []uint64{97}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, DistinctPrimeFactors(tt.n)); diff != "" {
			t.Errorf("DistinctPrimeFactors(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}
