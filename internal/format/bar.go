package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar renders length cells, the completed share as full blocks.
// progress is clamped to [0, 1].
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	full := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", full) + strings.Repeat("░", length-full)
}

// FormatProgressBarWithETA is the one-line status used by the spinner:
// "[bar]  42.00% ETA: 3m10s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	progress = clamp01(progress)
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
