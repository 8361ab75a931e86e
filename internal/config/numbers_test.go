package config

import (
	"errors"
	"testing"

	apperrors "github.com/agbru/primescan/internal/errors"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"1000", 1000},
		{" 42 ", 42},
		{"1_000_000_000_000", 1_000_000_000_000},
		{"1,000,000", 1_000_000},
		{"1e12", 1_000_000_000_000},
		{"1E3", 1000},
		{"2.5e6", 2_500_000},
		{"1.50e2", 150},
		{"2e12-1", 1_999_999_999_999},
		{"1e12+39", 1_000_000_000_039},
		{"1e+3", 1000},
		{"18446744073709551615", 18446744073709551615},
		{"18446744073709551614+1", 18446744073709551615},
		{"0e5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseNumber("start", tt.in)
			if err != nil {
				t.Fatalf("ParseNumber(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseNumber(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNumber_Overflow(t *testing.T) {
	t.Parallel()
	for _, in := range []string{
		"18446744073709551616",
		"99999999999999999999999",
		"1e20",
		"2e19",
		"18446744073709551615+1",
		"1e9223372036854775807",
		"1.5e9223372036854775807",
		"1e99999999999999999999",
		"7e9223372036854775807+1",
	} {
		_, err := ParseNumber("end", in)
		var overflow apperrors.OverflowError
		if !errors.As(err, &overflow) {
			t.Errorf("ParseNumber(%q) error = %v, want OverflowError", in, err)
			continue
		}
		if overflow.Input != in {
			t.Errorf("OverflowError.Input = %q, want %q", overflow.Input, in)
		}
	}
}

func TestParseNumber_Invalid(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "abc", "-5", "1.5", "1e-3", "1.25e1", "12x", "5-10", "e5", "1e"} {
		_, err := ParseNumber("start", in)
		var valErr apperrors.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("ParseNumber(%q) error = %v, want ValidationError", in, err)
			continue
		}
		if valErr.Field != "start" {
			t.Errorf("Field = %q, want start", valErr.Field)
		}
	}
}
