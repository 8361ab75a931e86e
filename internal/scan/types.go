package scan

import (
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/agbru/primescan/internal/errors"
)

const (
	// DefaultBatchSize is the number of records buffered between flushes.
	DefaultBatchSize = 10_000
	// DefaultProgressInterval is the number of candidates between progress
	// events.
	DefaultProgressInterval = 10_000_000

	// maxPrealloc bounds the initial capacity of the record buffer so a huge
	// batch size does not allocate up front.
	maxPrealloc = 1 << 16
)

// Range is an inclusive interval of positive integers.
type Range struct {
	Start uint64
	End   uint64
}

// Validate rejects zero bounds and inverted ranges.
func (r Range) Validate() error {
	switch {
	case r.Start == 0:
		return apperrors.RangeError{Start: r.Start, End: r.End, Reason: "start must be at least 1"}
	case r.Start > r.End:
		return apperrors.RangeError{Start: r.Start, End: r.End, Reason: "start exceeds end"}
	}
	return nil
}

// Size returns the number of integers in the range, saturating at the
// maximum uint64.
func (r Range) Size() uint64 {
	if r.End-r.Start == ^uint64(0) {
		return r.End - r.Start
	}
	return r.End - r.Start + 1
}

// OddCandidates returns the number of odd integers in the range.
func (r Range) OddCandidates() uint64 {
	if r.Start > r.End {
		return 0
	}
	first := r.Start | 1
	if first > r.End {
		return 0
	}
	return (r.End-first)/2 + 1
}

// Record is one prime in discovery order. Index starts at 1.
type Record struct {
	Index uint64
	Value uint64
}

// RunOptions tunes a single run.
type RunOptions struct {
	// MaxPrimes stops the run after this many primes. Zero means no cap.
	MaxPrimes uint64
	// BatchSize is the number of records buffered between flushes.
	BatchSize int
	// ProgressInterval is the number of candidates between progress events.
	ProgressInterval uint64
}

func (o RunOptions) withDefaults() RunOptions {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.ProgressInterval == 0 {
		o.ProgressInterval = DefaultProgressInterval
	}
	return o
}

// Status tells why a run ended.
type Status int

const (
	// Completed means every candidate of the range was examined.
	Completed Status = iota
	// CapReached means the run stopped at MaxPrimes.
	CapReached
	// Interrupted means the context was canceled before the range was
	// exhausted.
	Interrupted
	// Failed means a flush error aborted the run.
	Failed
)

// String returns a lower-case name for logs and summaries.
func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case CapReached:
		return "cap-reached"
	case Interrupted:
		return "interrupted"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Summary is the result of a run.
type Summary struct {
	RunID  string
	Status Status
	// Range is the requested range; First is the first candidate examined
	// after normalizing an even start.
	Range Range
	First uint64
	// Last is the last candidate examined, 0 if none was.
	Last    uint64
	Checked uint64
	Found   uint64
	Flushes uint64
	// StartedAt and Elapsed are wall-clock readings for the run.
	StartedAt time.Time
	Elapsed   time.Duration
}

// Throughput returns candidates examined per second.
func (s Summary) Throughput() float64 {
	if secs := s.Elapsed.Seconds(); secs > 0 {
		return float64(s.Checked) / secs
	}
	return 0
}

// Density returns the percentage of examined candidates that were prime.
func (s Summary) Density() float64 {
	if s.Checked == 0 {
		return 0
	}
	return float64(s.Found) / float64(s.Checked) * 100
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
