package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration picks µs, ms or the default Duration form
// depending on magnitude.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatSeconds renders d as seconds with the given number of decimals.
func FormatSeconds(d time.Duration, decimals int) string {
	return fmt.Sprintf("%.*fs", decimals, d.Seconds())
}

// FormatHours renders d as fractional hours, e.g. "1.25h".
func FormatHours(d time.Duration) string {
	return fmt.Sprintf("%.2fh", d.Hours())
}

// FormatETA renders a remaining-time estimate at minute resolution once it
// exceeds an hour. Non-positive values mean the rate is not known yet.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h, m, s := int(eta.Hours()), int(eta.Minutes())%60, int(eta.Seconds())%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}
