package progress

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestReport(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2025, 11, 18, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		snap        Snapshot
		wantPercent float64
		wantSpeed   float64
		wantElapsed time.Duration
	}{
		{
			name: "halfway with one second interval",
			snap: Snapshot{
				Checked: 50, Found: 7, Current: 1051, Start: 1001, End: 1101,
				CheckedSinceLast: 50,
				StartTime:        t0, LastReportTime: t0.Add(time.Second), Now: t0.Add(2 * time.Second),
			},
			wantPercent: 50,
			wantSpeed:   50,
			wantElapsed: 2 * time.Second,
		},
		{
			name: "zero interval gives zero speed",
			snap: Snapshot{
				Checked: 10, Current: 21, Start: 1, End: 41, CheckedSinceLast: 10,
				StartTime: t0, LastReportTime: t0, Now: t0,
			},
			wantPercent: 50,
			wantSpeed:   0,
		},
		{
			name: "single value range is complete",
			snap: Snapshot{
				Checked: 1, Current: 7, Start: 7, End: 7,
				StartTime: t0, LastReportTime: t0, Now: t0.Add(time.Millisecond),
			},
			wantPercent: 100,
			wantElapsed: time.Millisecond,
		},
		{
			name: "current past end is clamped",
			snap: Snapshot{
				Current: 105, Start: 1, End: 100,
				StartTime: t0, LastReportTime: t0, Now: t0,
			},
			wantPercent: 100,
		},
		{
			name: "clock skew never yields negative elapsed",
			snap: Snapshot{
				Current: 1, Start: 1, End: 100,
				StartTime: t0, LastReportTime: t0, Now: t0.Add(-time.Second),
			},
			wantPercent: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Report(tt.snap)
			if math.Abs(got.Percent-tt.wantPercent) > 1e-9 {
				t.Errorf("Percent = %v, want %v", got.Percent, tt.wantPercent)
			}
			if math.Abs(got.Speed-tt.wantSpeed) > 1e-9 {
				t.Errorf("Speed = %v, want %v", got.Speed, tt.wantSpeed)
			}
			if got.Elapsed != tt.wantElapsed {
				t.Errorf("Elapsed = %v, want %v", got.Elapsed, tt.wantElapsed)
			}
			if got.Checked != tt.snap.Checked || got.Found != tt.snap.Found || got.Current != tt.snap.Current {
				t.Errorf("counters not copied: %+v", got)
			}
		})
	}
}

func TestReport_ETA(t *testing.T) {
	t.Parallel()
	t0 := time.Unix(0, 0)
	line := Report(Snapshot{
		Current: 26, Start: 1, End: 101,
		StartTime: t0, LastReportTime: t0, Now: t0.Add(10 * time.Second),
	})
	// 25% done in 10s, so 30s remain.
	if line.ETA != 30*time.Second {
		t.Errorf("ETA = %v, want 30s", line.ETA)
	}
	if line.Fraction() != 0.25 {
		t.Errorf("Fraction = %v, want 0.25", line.Fraction())
	}
}

func TestReportLine_String(t *testing.T) {
	t.Parallel()
	line := ReportLine{
		Current: 1_000_000_000_039,
		Found:   12345,
		Percent: 12.3456,
		Speed:   54321.4,
		Elapsed: 90 * time.Second,
	}
	s := line.String()
	for _, want := range []string{
		"Progress: 12.35%",
		"Current: 1,000,000,000,039",
		"Found: 12,345",
		"Speed: 54,321/s",
		"Elapsed: 90.0s",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
