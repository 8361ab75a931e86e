package tui

import (
	"time"

	"github.com/agbru/primescan/internal/progress"
	"github.com/agbru/primescan/internal/scan"
)

// TickMsg drives the periodic sampling of runtime and system stats.
type TickMsg time.Time

// ReportMsg carries one progress report from the engine.
type ReportMsg struct {
	Line progress.ReportLine
}

// MemStatsMsg is a runtime.MemStats sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg is a system-wide sample from sysmon.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	DiskFree   uint64
}

// ScanDoneMsg is sent once the engine has returned and the sink is closed.
type ScanDoneMsg struct {
	Summary scan.Summary
	Err     error
}

// ContextCancelledMsg reports that the parent context ended (signal or
// timeout).
type ContextCancelledMsg struct {
	Err error
}
