package scan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/primescan/internal/errors"
	"github.com/agbru/primescan/internal/logging"
	"github.com/agbru/primescan/internal/primes"
	"github.com/agbru/primescan/internal/progress"
)

const tracerName = "github.com/agbru/primescan/internal/scan"

// Recorder receives run telemetry from the scanning goroutine.
type Recorder interface {
	RecordFlush(records int, took time.Duration, err error)
	RecordRun(summary Summary)
}

// Named is implemented by sinks that can report where they write; the name
// is attached to I/O errors.
type Named interface {
	Name() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver registers a progress observer.
func WithObserver(o progress.Observer) Option {
	return func(e *Engine) { e.subject.Register(o) }
}

// WithRecorder sets the telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithTracerProvider selects the OpenTelemetry provider for run and flush
// spans. The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) {
		if tp != nil {
			e.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPrimalityTest replaces the trial-division oracle. Used by tests to
// count or intercept candidates.
func WithPrimalityTest(isPrime func(uint64) bool) Option {
	return func(e *Engine) { e.isPrime = isPrime }
}

// Engine runs scans. An Engine holds no per-run state and may run several
// scans one after another; concurrent runs must target distinct sinks.
type Engine struct {
	isPrime  func(uint64) bool
	logger   logging.Logger
	subject  *progress.Subject
	recorder Recorder
	tracer   trace.Tracer
	now      func() time.Time
}

// NewEngine creates an engine using primes.IsPrime.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		isPrime: primes.IsPrime,
		logger:  logging.NewZerologAdapter(zerolog.Nop()),
		subject: progress.NewSubject(),
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Observe registers a progress observer for subsequent runs.
func (e *Engine) Observe(o progress.Observer) { e.subject.Register(o) }

// run is the mutable state of one scan.
type run struct {
	e       *Engine
	ctx     context.Context
	sink    Sink
	opts    RunOptions
	sum     Summary
	buf     []Record
	idField logging.Field

	lastReport  time.Time
	sinceReport uint64
}

// Run scans r and writes every prime to sink. It returns once the range is
// exhausted, opts.MaxPrimes primes were found, ctx is canceled or a flush
// fails. Cancellation is not an error: the summary reports Interrupted and
// the error is nil. Run does not close sink.
func (e *Engine) Run(ctx context.Context, r Range, sink Sink, opts RunOptions) (Summary, error) {
	if err := r.Validate(); err != nil {
		return Summary{Range: r}, err
	}
	opts = opts.withDefaults()

	ctx, span := e.tracer.Start(ctx, "scan.run", trace.WithAttributes(
		attribute.String("scan.start", formatUint(r.Start)),
		attribute.String("scan.end", formatUint(r.End)),
		attribute.Int("scan.batch_size", opts.BatchSize),
	))
	defer span.End()

	capacity := opts.BatchSize
	if capacity > maxPrealloc {
		capacity = maxPrealloc
	}
	st := &run{
		e:    e,
		ctx:  ctx,
		sink: sink,
		opts: opts,
		buf:  make([]Record, 0, capacity),
		sum: Summary{
			RunID:     uuid.NewString(),
			Range:     r,
			First:     r.Start | 1,
			StartedAt: e.now(),
		},
	}
	st.idField = logging.String("run_id", st.sum.RunID)
	st.lastReport = st.sum.StartedAt

	e.logger.Info("scan started", st.idField,
		logging.Uint64("start", r.Start),
		logging.Uint64("end", r.End),
		logging.Uint64("max_primes", opts.MaxPrimes),
		logging.Int("batch_size", opts.BatchSize))

	err := st.loop()
	if err == nil {
		// Every exit path of the loop ends up here with the tail of the
		// buffer still pending.
		err = st.flush()
	}
	if err != nil {
		st.sum.Status = Failed
	}

	st.sum.Elapsed = e.now().Sub(st.sum.StartedAt)
	st.report(true)
	if e.recorder != nil {
		e.recorder.RecordRun(st.sum)
	}

	span.SetAttributes(
		attribute.String("scan.status", st.sum.Status.String()),
		attribute.String("scan.checked", formatUint(st.sum.Checked)),
		attribute.String("scan.found", formatUint(st.sum.Found)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "flush failed")
		e.logger.Error("scan failed", err, st.idField,
			logging.Uint64("checked", st.sum.Checked),
			logging.Uint64("found", st.sum.Found))
		return st.sum, err
	}

	e.logger.Info("scan "+st.sum.Status.String(), st.idField,
		logging.Uint64("checked", st.sum.Checked),
		logging.Uint64("found", st.sum.Found),
		logging.Duration("elapsed", st.sum.Elapsed))
	return st.sum, nil
}

// loop examines candidates until a stop condition. It flushes full batches
// but leaves the final partial batch to the caller.
func (st *run) loop() error {
	end := st.sum.Range.End
	done := st.ctx.Done()

	for n := st.sum.First; n <= end; n += 2 {
		select {
		case <-done:
			st.sum.Status = Interrupted
			return nil
		default:
		}

		st.sum.Checked++
		st.sinceReport++
		st.sum.Last = n

		if st.e.isPrime(n) {
			st.sum.Found++
			st.buf = append(st.buf, Record{Index: st.sum.Found, Value: n})
			if st.opts.MaxPrimes > 0 && st.sum.Found >= st.opts.MaxPrimes {
				st.sum.Status = CapReached
				return nil
			}
			if len(st.buf) >= st.opts.BatchSize {
				if err := st.flush(); err != nil {
					return err
				}
			}
		}

		if st.sum.Checked%st.opts.ProgressInterval == 0 {
			st.report(false)
		}

		// n+2 would wrap past the maximum uint64.
		if end-n < 2 {
			break
		}
	}
	st.sum.Status = Completed
	return nil
}

// flush hands the buffered records to the sink and clears the buffer.
func (st *run) flush() error {
	if len(st.buf) == 0 {
		return nil
	}
	_, span := st.e.tracer.Start(st.ctx, "scan.flush",
		trace.WithAttributes(attribute.Int("scan.records", len(st.buf))))
	defer span.End()

	began := st.e.now()
	err := st.sink.WriteBatch(st.buf)
	took := st.e.now().Sub(began)
	if st.e.recorder != nil {
		st.e.recorder.RecordFlush(len(st.buf), took, err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")
		ioErr := apperrors.IOError{
			Op:        "flush",
			Checked:   st.sum.Checked,
			Found:     st.sum.Found,
			Candidate: st.sum.Last,
			Cause:     err,
		}
		if named, ok := st.sink.(Named); ok {
			ioErr.Path = named.Name()
		}
		return ioErr
	}

	st.sum.Flushes++
	st.e.logger.Debug("batch flushed", st.idField,
		logging.Int("records", len(st.buf)),
		logging.Uint64("last_index", st.buf[len(st.buf)-1].Index),
		logging.Duration("took", took))
	st.buf = st.buf[:0]
	return nil
}

func (st *run) report(final bool) {
	now := st.e.now()
	line := progress.Report(progress.Snapshot{
		Checked:          st.sum.Checked,
		Found:            st.sum.Found,
		Current:          st.sum.Last,
		Start:            st.sum.First,
		End:              st.sum.Range.End,
		CheckedSinceLast: st.sinceReport,
		StartTime:        st.sum.StartedAt,
		LastReportTime:   st.lastReport,
		Now:              now,
		Final:            final,
	})
	if final && st.sum.Status == Completed {
		line.Percent, line.ETA = 100, 0
	}
	st.lastReport = now
	st.sinceReport = 0
	st.e.subject.Notify(line)
}
