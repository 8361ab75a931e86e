package estimate

import (
	"math"
	"testing"
	"time"
)

func TestPrimeCountApprox(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x    uint64
		want float64
	}{
		{0, 0},
		{1, 0},
		{2, 2 / math.Log(2)},
		{1_000_000, 1e6 / math.Log(1e6)},
	}
	for _, tt := range tests {
		if got := PrimeCountApprox(tt.x); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PrimeCountApprox(%d) = %v, want %v", tt.x, got, tt.want)
		}
	}
	// x/ln x underestimates π(10^6) = 78498 by under 10%.
	if got := PrimeCountApprox(1_000_000); got < 70_000 || got > 78_498 {
		t.Errorf("PrimeCountApprox(1e6) = %v, outside the expected band", got)
	}
}

func TestRecordSize(t *testing.T) {
	t.Parallel()
	// "16,1097\n" is 8 bytes.
	if got := RecordSize(1100, 16); got != 8 {
		t.Errorf("RecordSize(1100, 16) = %d, want 8", got)
	}
	if got := RecordSize(1_999_999_999_999, 1000); got != 13+4+2 {
		t.Errorf("RecordSize = %d, want 19", got)
	}
}

func TestEstimate_FullRange(t *testing.T) {
	t.Parallel()
	e := New(1000, 0)
	start, end := uint64(1_000_000_000_000), uint64(1_999_999_999_999)

	f, err := e.Estimate(FullRange, start, end, 0)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if f.Candidates != (end-start)/2 {
		t.Errorf("Candidates = %d, want %d", f.Candidates, (end-start)/2)
	}
	wantPrimes := PrimeCountApprox(end) - PrimeCountApprox(start)
	if math.Abs(float64(f.Primes)-wantPrimes) > 1 {
		t.Errorf("Primes = %d, want about %.0f", f.Primes, wantPrimes)
	}
	if f.Bytes <= f.Primes {
		t.Errorf("Bytes = %d should exceed prime count %d", f.Bytes, f.Primes)
	}
	wantDur := time.Duration(float64(f.Candidates) / 1000 * float64(time.Second))
	if f.Duration != wantDur {
		t.Errorf("Duration = %v, want %v", f.Duration, wantDur)
	}
	if f.Mode.String() != "full" {
		t.Errorf("Mode = %s", f.Mode)
	}
}

func TestEstimate_Bounded(t *testing.T) {
	t.Parallel()
	e := New(100, 0)
	start := uint64(1_000_000_000_000)

	f, err := e.Estimate(Bounded, start, 1_999_999_999_999, 1000)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	want := uint64(1000 * math.Log(float64(start)))
	if f.Candidates != want {
		t.Errorf("Candidates = %d, want %d", f.Candidates, want)
	}
	if f.Primes != 1000 {
		t.Errorf("Primes = %d, want 1000", f.Primes)
	}
	if f.Duration <= 0 {
		t.Error("Duration should be positive")
	}
}

func TestEstimate_BoundedClampedToRange(t *testing.T) {
	t.Parallel()
	e := New(0, 0)
	f, err := e.Estimate(Bounded, 1000, 1100, 1_000_000)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if f.Candidates != 50 {
		t.Errorf("Candidates = %d, want 50", f.Candidates)
	}
	if f.Primes >= 1_000_000 {
		t.Errorf("Primes = %d should be limited by the range", f.Primes)
	}
}

func TestEstimate_Errors(t *testing.T) {
	t.Parallel()
	e := New(0, 0)
	tests := []struct {
		name       string
		mode       Mode
		start, end uint64
		target     uint64
	}{
		{"zero start", FullRange, 0, 10, 0},
		{"inverted", FullRange, 10, 5, 0},
		{"bounded without target", Bounded, 1, 10, 0},
		{"unknown mode", Mode(7), 1, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := e.Estimate(tt.mode, tt.start, tt.end, tt.target); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestThroughputAt(t *testing.T) {
	t.Parallel()
	e := New(1000, 1_000_000)
	if got := e.ThroughputAt(4_000_000); math.Abs(got-500) > 1e-9 {
		t.Errorf("ThroughputAt(4e6) = %v, want 500", got)
	}
	if got := e.ThroughputAt(1); got != 1000 {
		t.Errorf("ThroughputAt(1) = %v, want unscaled 1000", got)
	}
	if got := New(-1, 0).ThroughputAt(DefaultReference); got != DefaultThroughput {
		t.Errorf("default throughput = %v, want %v", got, DefaultThroughput)
	}
}
