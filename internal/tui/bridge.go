package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/primescan/internal/progress"
	"github.com/agbru/primescan/internal/scan"
)

// reportBuffer is the number of report lines queued between the engine and
// the program.
const reportBuffer = 64

// ScanFunc runs one scan, delivering progress to obs. It must close its sink
// before returning.
type ScanFunc func(ctx context.Context, obs progress.Observer) (scan.Summary, error)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the scan goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// scanResult holds the outcome of the scan goroutine. done is closed once
// summary and err are set.
type scanResult struct {
	done    chan struct{}
	summary scan.Summary
	err     error
}

func newScanResult() *scanResult {
	return &scanResult{done: make(chan struct{})}
}

// runScan executes fn, forwarding its reports to the program without ever
// blocking the engine, then publishes the result.
func runScan(ctx context.Context, ref *programRef, fn ScanFunc, res *scanResult) {
	lines := make(chan progress.ReportLine, reportBuffer)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for line := range lines {
			ref.Send(ReportMsg{Line: line})
		}
	}()

	summary, err := fn(ctx, progress.NewChannelObserver(lines))
	close(lines)
	<-forwarded

	res.summary, res.err = summary, err
	close(res.done)
	ref.Send(ScanDoneMsg{Summary: summary, Err: err})
}
