package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit statuses.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2   // --timeout elapsed
	ExitErrorIO       = 3   // output could not be opened or written
	ExitErrorConfig   = 4   // bad flags, run file or range
	ExitErrorCanceled = 130 // SIGINT convention; also a declined confirmation
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// RangeError reports a scan range that was rejected before any candidate
// was examined: a zero bound or a start beyond the end.
type RangeError struct {
	Start uint64
	End   uint64
	// Reason explains why the range is invalid.
	Reason string
}

// Error returns a formatted message describing the invalid range.
func (e RangeError) Error() string {
	return fmt.Sprintf("invalid range [%d, %d]: %s", e.Start, e.End, e.Reason)
}

// IOError reports a failure to open or write the output sink. It records how
// far the scan had progressed so the operator can tell which records made it
// to disk.
type IOError struct {
	// Op is the failed operation ("open", "flush", "close", "lock").
	Op string
	// Path is the output path, if known.
	Path string
	// Checked is the number of candidates examined before the failure.
	Checked uint64
	// Found is the number of primes found before the failure.
	Found uint64
	// Candidate is the candidate being examined when the failure happened.
	Candidate uint64
	// Cause is the underlying I/O error.
	Cause error
}

// Error returns a formatted message describing the I/O failure.
func (e IOError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Op, e.Path)
	if e.Checked > 0 || e.Found > 0 {
		msg += fmt.Sprintf(" (at candidate %d after %d checked, %d found)", e.Candidate, e.Checked, e.Found)
	}
	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

// Unwrap returns the underlying cause.
func (e IOError) Unwrap() error { return e.Cause }

// OverflowError reports a numeric input that does not fit in the native
// integer type.
type OverflowError struct {
	// Input is the rejected text as supplied by the user.
	Input string
	// Limit is the largest accepted value.
	Limit uint64
}

// Error returns a formatted message describing the overflow.
func (e OverflowError) Error() string {
	return fmt.Sprintf("value %s exceeds the supported maximum %d", e.Input, e.Limit)
}

// TimeoutError represents a scan timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError prefixes err with a formatted message, keeping it in the chain.
// A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
