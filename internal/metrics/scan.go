package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/primescan/internal/progress"
	"github.com/agbru/primescan/internal/scan"
)

const namespace = "primescan"

// ScanCollector turns engine telemetry into Prometheus metrics. It is both a
// progress.Observer and a scan.Recorder.
type ScanCollector struct {
	checked       prometheus.Counter
	found         prometheus.Counter
	flushes       prometheus.Counter
	flushErrors   prometheus.Counter
	flushDuration prometheus.Histogram
	percent       prometheus.Gauge
	throughput    prometheus.Gauge
	runs          *prometheus.CounterVec

	mu          sync.Mutex
	lastChecked uint64
	lastFound   uint64
}

var (
	_ progress.Observer = (*ScanCollector)(nil)
	_ scan.Recorder     = (*ScanCollector)(nil)
)

// NewScanCollector creates the collector and registers its metrics, plus a
// MemoryCollector, on reg.
func NewScanCollector(reg prometheus.Registerer) *ScanCollector {
	c := &ScanCollector{
		checked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "candidates_checked_total",
			Help: "Odd candidates examined by trial division.",
		}),
		found: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "primes_found_total",
			Help: "Primes found.",
		}),
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "flushes_total",
			Help: "Batches written to the output.",
		}),
		flushErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "flush_errors_total",
			Help: "Batches that failed to write.",
		}),
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "flush_duration_seconds",
			Help:    "Time spent writing one batch.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		percent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "scan_progress_percent",
			Help: "Position of the current candidate inside the range.",
		}),
		throughput: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "scan_throughput",
			Help: "Candidates per second over the last reporting interval.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "runs_total",
			Help: "Finished runs by final status.",
		}, []string{"status"}),
	}
	reg.MustRegister(c.checked, c.found, c.flushes, c.flushErrors, c.flushDuration,
		c.percent, c.throughput, c.runs, NewMemoryCollector())
	return c
}

// Update implements progress.Observer.
func (c *ScanCollector) Update(line progress.ReportLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advance(line.Checked, line.Found)
	c.percent.Set(line.Percent)
	if !line.Final {
		c.throughput.Set(line.Speed)
	}
}

// RecordFlush implements scan.Recorder.
func (c *ScanCollector) RecordFlush(_ int, took time.Duration, err error) {
	c.flushDuration.Observe(took.Seconds())
	if err != nil {
		c.flushErrors.Inc()
		return
	}
	c.flushes.Inc()
}

// RecordRun implements scan.Recorder.
func (c *ScanCollector) RecordRun(s scan.Summary) {
	c.mu.Lock()
	c.advance(s.Checked, s.Found)
	// The next run starts its counters from zero.
	c.lastChecked, c.lastFound = 0, 0
	c.mu.Unlock()
	c.runs.WithLabelValues(s.Status.String()).Inc()
}

// advance adds the growth since the previous reading. Callers hold mu.
func (c *ScanCollector) advance(checked, found uint64) {
	if checked >= c.lastChecked {
		c.checked.Add(float64(checked - c.lastChecked))
		c.lastChecked = checked
	}
	if found >= c.lastFound {
		c.found.Add(float64(found - c.lastFound))
		c.lastFound = found
	}
}
