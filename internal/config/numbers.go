package config

import (
	"errors"
	"math"
	"math/bits"
	"strconv"
	"strings"

	apperrors "github.com/agbru/primescan/internal/errors"
)

// ParseNumber parses a non-negative integer argument. Accepted forms:
//
//	1000000000000       plain digits
//	1_000_000_000_000   underscores or commas as digit separators
//	1e12, 2.5e6         mantissa times a power of ten, integral result only
//	2e12-1, 1e12+39     any of the above followed by an integer offset
//
// Values beyond the maximum uint64 yield an apperrors.OverflowError; other
// malformed input yields an apperrors.ValidationError for field.
func ParseNumber(field, text string) (uint64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, apperrors.ValidationError{Field: field, Message: "value is empty"}
	}
	s = strings.NewReplacer("_", "", ",", "").Replace(s)

	base, offset, sign := s, "", byte(0)
	// An offset sign never appears at position 0 and never right after the
	// exponent marker.
	for i := len(s) - 1; i > 0; i-- {
		if (s[i] == '+' || s[i] == '-') && s[i-1] != 'e' && s[i-1] != 'E' {
			base, offset, sign = s[:i], s[i+1:], s[i]
			break
		}
	}

	v, err := parseScaled(field, text, base)
	if err != nil {
		return 0, err
	}
	if sign == 0 {
		return v, nil
	}

	off, err := parseDigits(field, text, offset)
	if err != nil {
		return 0, err
	}
	if sign == '+' {
		sum, carry := bits.Add64(v, off, 0)
		if carry != 0 {
			return 0, apperrors.OverflowError{Input: text, Limit: math.MaxUint64}
		}
		return sum, nil
	}
	if off > v {
		return 0, apperrors.ValidationError{Field: field, Message: "value " + text + " is negative"}
	}
	return v - off, nil
}

// parseScaled handles plain digits and the mantissa/exponent form.
func parseScaled(field, text, s string) (uint64, error) {
	mant, expText, hasExp := strings.Cut(strings.ToLower(s), "e")
	if !hasExp {
		return parseDigits(field, text, s)
	}
	exp, err := strconv.Atoi(strings.TrimPrefix(expText, "+"))
	if errors.Is(err, strconv.ErrRange) && exp > 0 {
		return 0, apperrors.OverflowError{Input: text, Limit: math.MaxUint64}
	}
	if err != nil || exp < 0 {
		return 0, apperrors.ValidationError{Field: field, Message: "invalid exponent in " + text}
	}

	intPart, fracPart, _ := strings.Cut(mant, ".")
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > exp {
		return 0, apperrors.ValidationError{Field: field, Message: text + " is not an integer"}
	}
	digits := intPart + fracPart
	if digits == "" {
		return 0, apperrors.ValidationError{Field: field, Message: "missing mantissa in " + text}
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 0, nil
	}
	// zeros is compared on its own first: len(digits)+zeros wraps for
	// exponents near math.MaxInt.
	zeros := exp - len(fracPart)
	if zeros > 20 || len(digits)+zeros > 20 {
		return 0, apperrors.OverflowError{Input: text, Limit: math.MaxUint64}
	}
	return parseDigits(field, text, digits+strings.Repeat("0", zeros))
}

func parseDigits(field, text, s string) (uint64, error) {
	if s == "" {
		return 0, apperrors.ValidationError{Field: field, Message: "missing digits in " + text}
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, apperrors.ValidationError{Field: field, Message: "invalid number " + text}
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apperrors.OverflowError{Input: text, Limit: math.MaxUint64}
	}
	return v, nil
}
