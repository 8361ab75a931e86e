package estimate

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Mode selects how the scan will terminate.
type Mode int

const (
	// Bounded stops after a target number of primes.
	Bounded Mode = iota
	// FullRange scans the whole range.
	FullRange
)

// String returns the mode name used in output.
func (m Mode) String() string {
	switch m {
	case Bounded:
		return "first-n"
	case FullRange:
		return "full"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

const (
	// DefaultThroughput is the assumed trial-division rate in candidates per
	// second at DefaultReference when no calibration profile is available.
	DefaultThroughput = 50_000.0
	// DefaultReference is the magnitude DefaultThroughput was measured at.
	DefaultReference uint64 = 1_000_000_000_000
)

// Forecast is the output of Estimate.
type Forecast struct {
	Mode Mode
	// Candidates is the expected number of odd candidates examined.
	Candidates uint64
	// Primes is the expected number of primes written.
	Primes uint64
	// Bytes is the expected size of the CSV output, header included.
	Bytes uint64
	// Duration is the expected wall time.
	Duration time.Duration
	// Throughput is the candidates-per-second rate used for Duration.
	Throughput float64
}

// Estimator turns a range into a Forecast.
type Estimator struct {
	throughput float64
	reference  uint64
}

// New returns an estimator using throughput candidates per second measured
// around magnitude reference. A non-positive throughput selects
// DefaultThroughput; a zero reference disables magnitude scaling.
func New(throughput float64, reference uint64) *Estimator {
	if throughput <= 0 || math.IsNaN(throughput) || math.IsInf(throughput, 0) {
		throughput, reference = DefaultThroughput, DefaultReference
	}
	return &Estimator{throughput: throughput, reference: reference}
}

// ThroughputAt returns the expected rate for candidates near n. Trial
// division cost grows with √n, so the reference rate is scaled by
// √(reference/n).
func (e *Estimator) ThroughputAt(n uint64) float64 {
	if e.reference == 0 || n < 2 {
		return e.throughput
	}
	return e.throughput * math.Sqrt(float64(e.reference)/float64(n))
}

// Estimate forecasts a scan of [start, end]. In Bounded mode target is the
// number of primes requested; it is ignored in FullRange mode.
func (e *Estimator) Estimate(mode Mode, start, end, target uint64) (Forecast, error) {
	if start == 0 || start > end {
		return Forecast{}, fmt.Errorf("cannot estimate range [%d, %d]", start, end)
	}
	f := Forecast{Mode: mode}
	maxCandidates := (end - start) / 2
	var at uint64

	switch mode {
	case Bounded:
		if target == 0 {
			return Forecast{}, fmt.Errorf("bounded estimate needs a positive target")
		}
		candidates := float64(target) * math.Max(1, math.Log(float64(start)))
		f.Candidates = clampCount(candidates, maxCandidates)
		f.Primes = target
		if full := primesBetween(start, end); full < target {
			f.Primes = full
		}
		at = start
	case FullRange:
		f.Candidates = maxCandidates
		f.Primes = primesBetween(start, end)
		at = start + (end-start)/2
	default:
		return Forecast{}, fmt.Errorf("unknown estimate mode %d", int(mode))
	}

	f.Throughput = e.ThroughputAt(at)
	f.Duration = durationFor(f.Candidates, f.Throughput)
	f.Bytes = uint64(len(Header)+1) + f.Primes*RecordSize(end, f.Primes)
	return f, nil
}

// Header is the CSV header line, without its newline.
const Header = "sequence_index,prime_value"

// PrimeCountApprox approximates π(x) by x/ln(x). It returns 0 for x < 2.
func PrimeCountApprox(x uint64) float64 {
	if x < 2 {
		return 0
	}
	fx := float64(x)
	return fx / math.Log(fx)
}

// RecordSize is the average byte length of one CSV row in a file holding
// count primes no larger than end: both numbers, a comma and a newline.
func RecordSize(end, count uint64) uint64 {
	return uint64(digits(end) + digits(count) + 2)
}

func primesBetween(start, end uint64) uint64 {
	diff := PrimeCountApprox(end) - PrimeCountApprox(start)
	if diff <= 0 {
		return 0
	}
	return uint64(math.Round(diff))
}

func clampCount(v float64, limit uint64) uint64 {
	if v >= float64(limit) {
		return limit
	}
	if v <= 0 {
		return 0
	}
	return uint64(v)
}

func durationFor(candidates uint64, throughput float64) time.Duration {
	if throughput <= 0 {
		return 0
	}
	secs := float64(candidates) / throughput
	if secs >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(secs * float64(time.Second))
}

func digits(v uint64) int {
	return len(strconv.FormatUint(v, 10))
}
