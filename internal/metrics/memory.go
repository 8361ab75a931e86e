package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes of allocated heap objects
	HeapInuse    uint64 // bytes in in-use spans
	HeapObjects  uint64
	NumGC        uint32
	PauseTotalNs uint64 // cumulative GC pause time
	NumGoroutine int
}

// MemoryCollector reads runtime memory statistics for the dashboard and
// exports them as primescan_* gauges. One ReadMemStats call serves a whole
// scrape.
type MemoryCollector struct {
	heapAlloc   *prometheus.Desc
	heapInuse   *prometheus.Desc
	heapObjects *prometheus.Desc
	gcPause     *prometheus.Desc
}

var _ prometheus.Collector = (*MemoryCollector)(nil)

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &MemoryCollector{
		heapAlloc:   desc("heap_alloc_bytes", "Bytes of allocated heap objects."),
		heapInuse:   desc("heap_inuse_bytes", "Bytes in in-use heap spans."),
		heapObjects: desc("heap_objects", "Number of allocated heap objects."),
		gcPause:     desc("gc_pause_seconds_total", "Cumulative GC stop-the-world pause time."),
	}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapInuse:    m.HeapInuse,
		HeapObjects:  m.HeapObjects,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		NumGoroutine: runtime.NumGoroutine(),
	}
}

// Describe implements prometheus.Collector.
func (mc *MemoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- mc.heapAlloc
	ch <- mc.heapInuse
	ch <- mc.heapObjects
	ch <- mc.gcPause
}

// Collect implements prometheus.Collector.
func (mc *MemoryCollector) Collect(ch chan<- prometheus.Metric) {
	s := mc.Snapshot()
	ch <- prometheus.MustNewConstMetric(mc.heapAlloc, prometheus.GaugeValue, float64(s.HeapAlloc))
	ch <- prometheus.MustNewConstMetric(mc.heapInuse, prometheus.GaugeValue, float64(s.HeapInuse))
	ch <- prometheus.MustNewConstMetric(mc.heapObjects, prometheus.GaugeValue, float64(s.HeapObjects))
	ch <- prometheus.MustNewConstMetric(mc.gcPause, prometheus.CounterValue, float64(s.PauseTotalNs)/1e9)
}
