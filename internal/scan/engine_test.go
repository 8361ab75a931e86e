package scan_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agbru/primescan/internal/errors"
	"github.com/agbru/primescan/internal/primes"
	"github.com/agbru/primescan/internal/progress"
	"github.com/agbru/primescan/internal/scan"
	"github.com/agbru/primescan/internal/scan/mocks"
)

// knownPrimes1000To1100 lists every prime in [1000, 1100].
var knownPrimes1000To1100 = []uint64{
	1009, 1013, 1019, 1021, 1031, 1033, 1039, 1049,
	1051, 1061, 1063, 1069, 1087, 1091, 1093, 1097,
}

// memorySink keeps a copy of every batch it receives.
type memorySink struct {
	mu      sync.Mutex
	batches [][]scan.Record
	closed  bool
}

func (m *memorySink) WriteBatch(records []scan.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, append([]scan.Record(nil), records...))
	return nil
}

func (m *memorySink) Close() error {
	m.closed = true
	return nil
}

func (m *memorySink) records() []scan.Record {
	var all []scan.Record
	for _, b := range m.batches {
		all = append(all, b...)
	}
	return all
}

func (m *memorySink) batchSizes() []int {
	sizes := make([]int, 0, len(m.batches))
	for _, b := range m.batches {
		sizes = append(sizes, len(b))
	}
	return sizes
}

func values(records []scan.Record) []uint64 {
	out := make([]uint64, 0, len(records))
	for _, r := range records {
		out = append(out, r.Value)
	}
	return out
}

func assertContiguous(t *testing.T, records []scan.Record) {
	t.Helper()
	for i, r := range records {
		if r.Index != uint64(i+1) {
			t.Fatalf("record %d has index %d, want %d", i, r.Index, i+1)
		}
	}
}

func TestRun_KnownRange(t *testing.T) {
	t.Parallel()
	sink := &memorySink{}
	sum, err := scan.NewEngine().Run(context.Background(),
		scan.Range{Start: 1000, End: 1100}, sink,
		scan.RunOptions{BatchSize: 10, ProgressInterval: 50})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff(knownPrimes1000To1100, values(sink.records())); diff != "" {
		t.Errorf("primes mismatch (-want +got):\n%s", diff)
	}
	assertContiguous(t, sink.records())
	if diff := cmp.Diff([]int{10, 6}, sink.batchSizes()); diff != "" {
		t.Errorf("batch sizes mismatch (-want +got):\n%s", diff)
	}
	if sum.Status != scan.Completed {
		t.Errorf("Status = %v, want completed", sum.Status)
	}
	if sum.First != 1001 || sum.Last != 1099 {
		t.Errorf("First/Last = %d/%d, want 1001/1099", sum.First, sum.Last)
	}
	if sum.Checked != 50 || sum.Found != 16 || sum.Flushes != 2 {
		t.Errorf("Checked/Found/Flushes = %d/%d/%d, want 50/16/2", sum.Checked, sum.Found, sum.Flushes)
	}
	if got := sum.Density(); math.Abs(got-32) > 1e-9 {
		t.Errorf("Density() = %v, want 32", got)
	}
	if sum.RunID == "" {
		t.Error("RunID should be set")
	}
	if sink.closed {
		t.Error("Run must not close the sink")
	}
}

func TestRun_Cap(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		batchSize int
		wantSizes []int
	}{
		{name: "cap inside a batch", batchSize: 4, wantSizes: []int{4, 4, 2}},
		{name: "cap on a batch boundary", batchSize: 5, wantSizes: []int{5, 5}},
		{name: "batch larger than cap", batchSize: 100, wantSizes: []int{10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sink := &memorySink{}
			sum, err := scan.NewEngine().Run(context.Background(),
				scan.Range{Start: 1000, End: 1100}, sink,
				scan.RunOptions{MaxPrimes: 10, BatchSize: tt.batchSize})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if sum.Status != scan.CapReached {
				t.Errorf("Status = %v, want cap-reached", sum.Status)
			}
			if diff := cmp.Diff(knownPrimes1000To1100[:10], values(sink.records())); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
			assertContiguous(t, sink.records())
			if diff := cmp.Diff(tt.wantSizes, sink.batchSizes()); diff != "" {
				t.Errorf("batch sizes mismatch (-want +got):\n%s", diff)
			}
			// The run stops on the candidate that produced the tenth prime.
			if sum.Last != knownPrimes1000To1100[9] {
				t.Errorf("Last = %d, want %d", sum.Last, knownPrimes1000To1100[9])
			}
		})
	}
}

func TestRun_EvenStartAndSmallRanges(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		rng         scan.Range
		want        []uint64
		wantChecked uint64
	}{
		{"two is not special-cased", scan.Range{Start: 2, End: 10}, []uint64{3, 5, 7}, 4},
		{"starts at one", scan.Range{Start: 1, End: 1}, nil, 1},
		{"single even value", scan.Range{Start: 4, End: 4}, nil, 0},
		{"single prime", scan.Range{Start: 13, End: 13}, []uint64{13}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sink := &memorySink{}
			sum, err := scan.NewEngine().Run(context.Background(), tt.rng, sink, scan.RunOptions{})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			got := values(sink.records())
			if len(got) == 0 {
				got = nil
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("primes mismatch (-want +got):\n%s", diff)
			}
			if sum.Checked != tt.wantChecked {
				t.Errorf("Checked = %d, want %d", sum.Checked, tt.wantChecked)
			}
		})
	}
}

func TestRun_InvalidRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		rng  scan.Range
	}{
		{"zero start", scan.Range{Start: 0, End: 10}},
		{"start exceeds end", scan.Range{Start: 11, End: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			sink := mocks.NewMockSink(ctrl) // no calls expected

			_, err := scan.NewEngine().Run(context.Background(), tt.rng, sink, scan.RunOptions{})
			var rangeErr apperrors.RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("Run() error = %v, want RangeError", err)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d, want config error", apperrors.ExitCodeFor(err))
			}
		})
	}
}

func TestRun_FlushFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	diskFull := errors.New("no space left on device")

	gomock.InOrder(
		sink.EXPECT().WriteBatch(gomock.Any()).DoAndReturn(func(records []scan.Record) error {
			if diff := cmp.Diff([]uint64{1009, 1013}, values(records)); diff != "" {
				t.Errorf("first batch mismatch (-want +got):\n%s", diff)
			}
			return nil
		}),
		sink.EXPECT().WriteBatch(gomock.Any()).Return(diskFull),
	)

	sum, err := scan.NewEngine().Run(context.Background(),
		scan.Range{Start: 1000, End: 1100}, sink, scan.RunOptions{BatchSize: 2})

	var ioErr apperrors.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Run() error = %v, want IOError", err)
	}
	if !errors.Is(err, diskFull) {
		t.Error("IOError should wrap the sink error")
	}
	if ioErr.Op != "flush" || ioErr.Found != 4 || ioErr.Candidate != 1021 || ioErr.Checked != 11 {
		t.Errorf("IOError = %+v, want flush at candidate 1021 after 11 checked, 4 found", ioErr)
	}
	if sum.Status != scan.Failed || sum.Flushes != 1 {
		t.Errorf("Status/Flushes = %v/%d, want failed/1", sum.Status, sum.Flushes)
	}
}

func TestRun_InterruptionFlushesCompleteRows(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const stopAfter = 30
	calls := 0
	isPrime := func(n uint64) bool {
		calls++
		if calls == stopAfter {
			cancel()
		}
		return primes.IsPrime(n)
	}

	path := filepath.Join(t.TempDir(), "interrupted.csv")
	sink, err := scan.OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV() error = %v", err)
	}
	sum, err := scan.NewEngine(scan.WithPrimalityTest(isPrime)).Run(ctx,
		scan.Range{Start: 1000, End: 1_000_000}, sink, scan.RunOptions{BatchSize: 4})
	if err != nil {
		t.Fatalf("Run() error = %v, interruption must not be an error", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if sum.Status != scan.Interrupted {
		t.Errorf("Status = %v, want interrupted", sum.Status)
	}
	if sum.Checked != stopAfter {
		t.Errorf("Checked = %d, want %d", sum.Checked, stopAfter)
	}

	var want []uint64
	for n := uint64(1001); n < 1001+2*stopAfter; n += 2 {
		if primes.IsPrime(n) {
			want = append(want, n)
		}
	}
	got := readCSV(t, path)
	if diff := cmp.Diff(want, values(got)); diff != "" {
		t.Errorf("flushed primes mismatch (-want +got):\n%s", diff)
	}
	assertContiguous(t, got)
}

func TestRun_CanceledBeforeStart(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &memorySink{}
	sum, err := scan.NewEngine().Run(ctx, scan.Range{Start: 1, End: 1000}, sink, scan.RunOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Status != scan.Interrupted || sum.Checked != 0 || len(sink.batches) != 0 {
		t.Errorf("got %+v with %d batches, want an empty interrupted run", sum, len(sink.batches))
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	var outputs [][]byte
	for _, name := range []string{"a.csv", "b.csv", "a.csv"} {
		path := filepath.Join(dir, name)
		sink, err := scan.OpenCSV(path)
		if err != nil {
			t.Fatalf("OpenCSV(%s) error = %v", name, err)
		}
		if _, err := scan.NewEngine().Run(context.Background(),
			scan.Range{Start: 1, End: 5000}, sink, scan.RunOptions{BatchSize: 7}); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if err := sink.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	for i := 1; i < len(outputs); i++ {
		if !bytes.Equal(outputs[0], outputs[i]) {
			t.Errorf("run %d produced different output", i)
		}
	}
	// π(5000) = 669, minus the prime 2 which is never a candidate.
	if rows := readCSV(t, filepath.Join(dir, "a.csv")); len(rows) != 668 {
		t.Errorf("got %d rows, want 668", len(rows))
	}
}

func TestRun_NearMaxUint64(t *testing.T) {
	t.Parallel()
	var seen []uint64
	never := func(n uint64) bool {
		seen = append(seen, n)
		return false
	}
	sum, err := scan.NewEngine(scan.WithPrimalityTest(never)).Run(context.Background(),
		scan.Range{Start: math.MaxUint64 - 10, End: math.MaxUint64}, &memorySink{}, scan.RunOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Checked != 6 {
		t.Errorf("Checked = %d, want 6", sum.Checked)
	}
	if seen[len(seen)-1] != math.MaxUint64 {
		t.Errorf("last candidate = %d, want MaxUint64", seen[len(seen)-1])
	}
}

func TestRun_ProgressEvents(t *testing.T) {
	t.Parallel()
	var lines []progress.ReportLine
	obs := progress.ObserverFunc(func(l progress.ReportLine) { lines = append(lines, l) })

	clock := time.Unix(0, 0)
	tick := func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	_, err := scan.NewEngine(scan.WithObserver(obs), scan.WithClock(tick)).Run(context.Background(),
		scan.Range{Start: 1000, End: 1100}, &memorySink{}, scan.RunOptions{ProgressInterval: 10})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// 50 candidates at interval 10, plus the final line.
	if len(lines) != 6 {
		t.Fatalf("got %d progress lines, want 6", len(lines))
	}
	// The even start 1000 is normalized to 1001, which is where percent
	// is measured from: the tenth candidate 1019 sits at 18/99 of the range.
	if first := lines[0]; first.Current != 1019 || math.Abs(first.Percent-1800.0/99) > 1e-9 {
		t.Errorf("first line current=%d percent=%v, want 1019 and %v", first.Current, first.Percent, 1800.0/99)
	}
	for i, l := range lines[:5] {
		if l.Checked != uint64((i+1)*10) || l.Final {
			t.Errorf("line %d = %+v", i, l)
		}
		if l.Speed <= 0 {
			t.Errorf("line %d has no speed", i)
		}
	}
	last := lines[5]
	if !last.Final || last.Found != 16 || last.Percent != 100 {
		t.Errorf("final line = %+v", last)
	}
}

type countingRecorder struct {
	flushes int
	records int
	runs    []scan.Summary
}

func (r *countingRecorder) RecordFlush(records int, _ time.Duration, err error) {
	if err == nil {
		r.flushes++
		r.records += records
	}
}

func (r *countingRecorder) RecordRun(s scan.Summary) { r.runs = append(r.runs, s) }

func TestRun_Recorder(t *testing.T) {
	t.Parallel()
	rec := &countingRecorder{}
	_, err := scan.NewEngine(scan.WithRecorder(rec)).Run(context.Background(),
		scan.Range{Start: 1000, End: 1100}, &memorySink{}, scan.RunOptions{BatchSize: 5})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rec.flushes != 4 || rec.records != 16 {
		t.Errorf("flushes/records = %d/%d, want 4/16", rec.flushes, rec.records)
	}
	if len(rec.runs) != 1 || rec.runs[0].Found != 16 {
		t.Errorf("runs = %+v", rec.runs)
	}
}

func readCSV(t *testing.T, path string) []scan.Record {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Fatalf("output does not end with a newline")
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if lines[0] != "sequence_index,prime_value" {
		t.Fatalf("header = %q", lines[0])
	}
	var records []scan.Record
	for _, line := range lines[1:] {
		r, err := parseRow(line)
		if err != nil {
			t.Fatalf("malformed row %q: %v", line, err)
		}
		records = append(records, r)
	}
	return records
}

func parseRow(line string) (scan.Record, error) {
	idx, val, ok := strings.Cut(line, ",")
	if !ok || strings.Contains(val, ",") {
		return scan.Record{}, fmt.Errorf("want two fields")
	}
	var r scan.Record
	var err error
	if r.Index, err = strconv.ParseUint(idx, 10, 64); err != nil {
		return r, err
	}
	r.Value, err = strconv.ParseUint(val, 10, 64)
	return r, err
}
