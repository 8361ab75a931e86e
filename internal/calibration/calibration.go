package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/primescan/internal/errors"
	"github.com/agbru/primescan/internal/primes"
)

// checkEvery is the number of candidates between clock and context checks.
const checkEvery = 256

// Measure runs the oracle over consecutive odd candidates from magnitude
// until budget elapses or ctx is done, and returns the observed rate.
func Measure(ctx context.Context, magnitude uint64, budget time.Duration) (Sample, error) {
	return measure(ctx, magnitude, budget, primes.IsPrime, time.Now)
}

func measure(ctx context.Context, magnitude uint64, budget time.Duration,
	isPrime func(uint64) bool, now func() time.Time) (Sample, error) {
	s := Sample{Magnitude: magnitude}
	began := now()
	n := primes.NextOdd(magnitude)
	var elapsed time.Duration
	for {
		for i := 0; i < checkEvery; i++ {
			isPrime(n)
			s.Checked++
			if n > ^uint64(0)-2 {
				break
			}
			n += 2
		}
		elapsed = now().Sub(began)
		if elapsed >= budget {
			break
		}
		if err := ctx.Err(); err != nil {
			return s, err
		}
	}
	if secs := elapsed.Seconds(); secs > 0 {
		s.Throughput = float64(s.Checked) / secs
	}
	return s, nil
}

// Options configures RunCalibration.
type Options struct {
	// ProfilePath is where the profile is written. Empty selects
	// GetDefaultProfilePath().
	ProfilePath string
	// Quick measures a single magnitude with a short budget.
	Quick bool
}

// RunCalibration measures every sample magnitude, prints a summary table and
// saves the profile. It returns the process exit code.
func RunCalibration(ctx context.Context, out io.Writer, opts Options) int {
	path := opts.ProfilePath
	if path == "" {
		path = GetDefaultProfilePath()
	}
	magnitudes := SampleMagnitudes(opts.Quick)
	budget := SampleBudget(opts.Quick)

	fmt.Fprintf(out, "Calibrating trial division on %d magnitudes (%s each)...\n", len(magnitudes), budget)
	began := time.Now()
	profile := NewProfile()
	for _, m := range magnitudes {
		s, err := Measure(ctx, m, budget)
		if err != nil {
			fmt.Fprintf(out, "Calibration interrupted: %v\n", err)
			return apperrors.ExitCodeFor(err)
		}
		profile.Samples = append(profile.Samples, s)
	}
	profile.CalibrationTime = time.Since(began).Round(time.Millisecond).String()

	printCalibrationResults(out, profile.Samples)
	if err := profile.SaveProfile(path); err != nil {
		fmt.Fprintf(out, "Could not save calibration profile: %v\n", err)
		return apperrors.ExitErrorIO
	}
	printCalibrationOutput(out, path)
	return apperrors.ExitSuccess
}

// LoadThroughput returns the calibrated throughput closest to start from the
// profile at path. ok is false when no valid profile exists, in which case
// the caller should fall back to its default.
func LoadThroughput(path string, start uint64) (throughput float64, reference uint64, ok bool) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	profile, loaded := LoadOrCreateProfile(path)
	if !loaded || !profile.IsValid() {
		return 0, 0, false
	}
	return profile.ThroughputNear(start)
}
