package calibration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/primescan/internal/ui"
)

// stepClock advances by step on every reading.
func stepClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestMeasure_DeterministicClock(t *testing.T) {
	t.Parallel()
	var seen []uint64
	record := func(n uint64) bool {
		seen = append(seen, n)
		return false
	}
	// began=1ms, first check=2ms, so one block runs before the 1ms budget
	// is exceeded.
	s, err := measure(context.Background(), 1000, time.Millisecond, record, stepClock(time.Millisecond))
	if err != nil {
		t.Fatalf("measure() error = %v", err)
	}
	if s.Checked != checkEvery {
		t.Errorf("Checked = %d, want %d", s.Checked, checkEvery)
	}
	if seen[0] != 1001 || seen[1] != 1003 {
		t.Errorf("candidates start at %v, want 1001, 1003", seen[:2])
	}
	if want := float64(checkEvery) / 0.001; s.Throughput != want {
		t.Errorf("Throughput = %v, want %v", s.Throughput, want)
	}
}

func TestMeasure_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Measure(ctx, 1_000_000, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Measure() error = %v, want context.Canceled", err)
	}
}

func TestMeasure_Real(t *testing.T) {
	t.Parallel()
	s, err := Measure(context.Background(), 1_000_000_000, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if s.Checked == 0 || s.Throughput <= 0 {
		t.Errorf("got %+v, want positive counts", s)
	}
}

func TestSampleMagnitudes(t *testing.T) {
	t.Parallel()
	if got := SampleMagnitudes(true); len(got) != 1 {
		t.Errorf("quick magnitudes = %v, want one", got)
	}
	full := SampleMagnitudes(false)
	for i := 1; i < len(full); i++ {
		if full[i] <= full[i-1] {
			t.Errorf("magnitudes not increasing: %v", full)
		}
	}
	if SampleBudget(true) >= SampleBudget(false) {
		t.Error("quick budget should be shorter")
	}
}

func TestRunCalibration_QuickSavesProfile(t *testing.T) {
	defer ui.SetCurrentTheme(ui.GetCurrentTheme())
	ui.SetCurrentTheme(ui.NoColorTheme)

	path := filepath.Join(t.TempDir(), "nested", "profile.json")
	var out bytes.Buffer
	if code := RunCalibration(context.Background(), &out, Options{ProfilePath: path, Quick: true}); code != 0 {
		t.Fatalf("RunCalibration() = %d, output:\n%s", code, out.String())
	}
	for _, want := range []string{"Calibration Summary", "1,000,000,000,000", "Calibration saved to " + path} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	thr, ref, ok := LoadThroughput(path, 1_500_000_000_000)
	if !ok || thr <= 0 || ref != 1_000_000_000_000 {
		t.Errorf("LoadThroughput() = %v, %d, %v", thr, ref, ok)
	}
}

func TestLoadThroughput_Missing(t *testing.T) {
	t.Parallel()
	if _, _, ok := LoadThroughput(filepath.Join(t.TempDir(), "none.json"), 10); ok {
		t.Error("missing profile should not load")
	}
}
