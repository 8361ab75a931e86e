package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing a diagnosis.
// A nil provider prints without colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the process exit code without printing.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		cfgErr      ConfigError
		valErr      ValidationError
		rangeErr    RangeError
		overflowErr OverflowError
		ioErr       IOError
		timeoutErr  TimeoutError
	)
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &valErr),
		errors.As(err, &rangeErr), errors.As(err, &overflowErr):
		return ExitErrorConfig
	case errors.As(err, &ioErr):
		return ExitErrorIO
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

// HandleScanError prints a diagnosis for err to out and returns the matching
// exit code. A nil err returns ExitSuccess and prints nothing.
//
// Parameters:
//   - err: The error returned by the scan or its setup.
//   - duration: How long the run lasted before failing (0 if unknown).
//   - out: The writer for the diagnosis.
//   - colors: The color provider, or nil for plain output.
//
// Returns:
//   - int: The exit code.
func HandleScanError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	red, yellow, reset := "", "", ""
	if colors != nil {
		red, yellow, reset = colors.Red(), colors.Yellow(), colors.Reset()
	}

	code := ExitCodeFor(err)
	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration.Round(time.Millisecond))
	}

	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sScan timed out%s.%s\n", yellow, suffix, reset)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sScan canceled%s.%s\n", yellow, suffix, reset)
	case ExitErrorIO:
		fmt.Fprintf(out, "%sOutput failure%s: %v%s\n", red, suffix, err, reset)
		fmt.Fprintf(out, "Records flushed before the failure remain valid.\n")
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sInvalid input: %v%s\n", red, err, reset)
	default:
		fmt.Fprintf(out, "%sError%s: %v%s\n", red, suffix, err, reset)
	}
	return code
}
