// Package format holds pure string formatting helpers shared by the CLI,
// the TUI and the progress reporter: durations, ETAs, progress bars, byte
// sizes and numbers with thousands separators.
package format
