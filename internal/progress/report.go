package progress

import (
	"fmt"
	"time"

	"github.com/agbru/primescan/internal/format"
)

// Snapshot is the raw counter state the engine hands to Report.
type Snapshot struct {
	// Checked is the number of candidates examined so far.
	Checked uint64
	// Found is the number of primes found so far.
	Found uint64
	// Current is the candidate examined last.
	Current uint64
	// Start and End are the bounds of the scanned range after normalization.
	// Start is the first odd candidate, not the requested start, so an even
	// start measures percent from start+1.
	Start uint64
	End   uint64
	// CheckedSinceLast is the number of candidates examined since the
	// previous report.
	CheckedSinceLast uint64
	StartTime        time.Time
	LastReportTime   time.Time
	Now              time.Time
	// Final marks the report emitted once the loop has exited.
	Final bool
}

// ReportLine is one progress event.
type ReportLine struct {
	Checked uint64
	Found   uint64
	Current uint64
	// Percent is the position of Current inside the range, 0 to 100.
	Percent float64
	// Speed is candidates per second over the last reporting interval.
	Speed float64
	// Elapsed is the time since the scan started.
	Elapsed time.Duration
	// ETA is the remaining time extrapolated from Percent and Elapsed.
	// Zero when no estimate is possible yet.
	ETA   time.Duration
	Final bool
}

// Fraction returns Percent scaled to [0, 1].
func (r ReportLine) Fraction() float64 { return r.Percent / 100 }

// String renders the line the way the CLI prints it.
func (r ReportLine) String() string {
	return fmt.Sprintf("Progress: %s%% | Current: %s | Found: %s | Speed: %s/s | Elapsed: %ss",
		format.FormatFloat(r.Percent, 2),
		format.FormatUint(r.Current),
		format.FormatUint(r.Found),
		format.FormatFloat(r.Speed, 0),
		format.FormatFloat(r.Elapsed.Seconds(), 1),
	)
}

// Report computes a ReportLine from s. It is pure: the clock readings come
// from the snapshot.
func Report(s Snapshot) ReportLine {
	line := ReportLine{
		Checked: s.Checked,
		Found:   s.Found,
		Current: s.Current,
		Percent: percent(s.Current, s.Start, s.End),
		Elapsed: s.Now.Sub(s.StartTime),
		Final:   s.Final,
	}
	if line.Elapsed < 0 {
		line.Elapsed = 0
	}
	if interval := s.Now.Sub(s.LastReportTime).Seconds(); interval > 0 {
		line.Speed = float64(s.CheckedSinceLast) / interval
	}
	if line.Percent > 0 && line.Percent < 100 {
		total := float64(line.Elapsed) * 100 / line.Percent
		line.ETA = time.Duration(total) - line.Elapsed
	}
	return line
}

func percent(current, start, end uint64) float64 {
	if end <= start {
		return 100
	}
	if current <= start {
		return 0
	}
	if current >= end {
		return 100
	}
	return float64(current-start) / float64(end-start) * 100
}
