// This file chooses what a calibration run measures.

package calibration

import "time"

// SampleMagnitudes returns the starting points measured by a calibration
// run. Trial division cost grows with √n, so one sample per three orders of
// magnitude is enough for the estimator to pick a close reference.
func SampleMagnitudes(quick bool) []uint64 {
	if quick {
		return []uint64{1_000_000_000_000}
	}
	return []uint64{
		1_000_000,
		1_000_000_000,
		1_000_000_000_000,
		1_000_000_000_000_000,
	}
}

// SampleBudget returns the wall time spent on each magnitude.
func SampleBudget(quick bool) time.Duration {
	if quick {
		return 250 * time.Millisecond
	}
	return time.Second
}
