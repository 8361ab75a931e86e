package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatNumberString inserts thousands separators into a string of decimal
// digits with an optional leading minus sign.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + n + (n-1)/3)
	b.WriteString(sign)
	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatUint formats v with thousands separators.
func FormatUint(v uint64) string {
	return FormatNumberString(strconv.FormatUint(v, 10))
}

// FormatFloat formats v rounded to the given number of decimals with
// thousands separators in the integer part. NaN and infinities are rendered
// as "0".
func FormatFloat(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")
	out := FormatNumberString(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// FormatBytes renders a byte count using binary units.
func FormatBytes(b uint64) string {
	switch {
	case b >= 1<<40:
		return fmt.Sprintf("%.2f TB", float64(b)/(1<<40))
	case b >= 1<<30:
		return fmt.Sprintf("%.2f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
