// Package logging provides the structured logging interface used by the scan
// engine and the application layer. It hides the backend behind a small
// Logger interface so that components can be tested with a plain *log.Logger
// or a buffer-backed zerolog logger.
package logging
