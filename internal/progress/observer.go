package progress

import (
	"sync"

	"github.com/rs/zerolog"
)

// Observer receives progress events. Implementations must be safe to call
// from the scanning goroutine and must not block it for long.
type Observer interface {
	Update(line ReportLine)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(line ReportLine)

// Update calls f(line).
func (f ObserverFunc) Update(line ReportLine) { f(line) }

// Subject fans progress events out to every registered observer.
type Subject struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewSubject creates an empty subject.
func NewSubject() *Subject {
	return &Subject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *Subject) Register(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Len returns the number of registered observers.
func (s *Subject) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// Notify delivers line to a snapshot of the registered observers.
func (s *Subject) Notify(line ReportLine) {
	s.mu.RLock()
	snapshot := make([]Observer, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	for _, o := range snapshot {
		o.Update(line)
	}
}

// ChannelObserver forwards events to a channel without blocking. Events are
// dropped when the channel is full, except the final one, which replaces the
// oldest queued event so consumers always see the end state.
type ChannelObserver struct {
	ch chan ReportLine
}

// NewChannelObserver creates an observer writing to ch.
func NewChannelObserver(ch chan ReportLine) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update sends line if there is room.
func (o *ChannelObserver) Update(line ReportLine) {
	select {
	case o.ch <- line:
		return
	default:
	}
	if !line.Final {
		return
	}
	select {
	case <-o.ch:
	default:
	}
	select {
	case o.ch <- line:
	default:
	}
}

// LoggingObserver writes each event as a structured log record.
type LoggingObserver struct {
	logger zerolog.Logger
}

// NewLoggingObserver creates an observer logging at info level.
func NewLoggingObserver(logger zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// Update logs line.
func (o *LoggingObserver) Update(line ReportLine) {
	o.logger.Info().
		Uint64("checked", line.Checked).
		Uint64("found", line.Found).
		Uint64("current", line.Current).
		Float64("percent", line.Percent).
		Float64("speed", line.Speed).
		Dur("elapsed", line.Elapsed).
		Bool("final", line.Final).
		Msg("scan progress")
}

// NoOpObserver discards events.
type NoOpObserver struct{}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() NoOpObserver { return NoOpObserver{} }

// Update does nothing.
func (NoOpObserver) Update(ReportLine) {}
