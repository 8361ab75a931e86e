// Package progress derives human-readable progress lines from scan counters
// and fans them out to registered observers (CLI spinner, TUI bridge,
// structured logs, metrics).
package progress
