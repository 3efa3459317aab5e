package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used to colorize error output.
// The cli package provides the terminal implementation; tests can pass a
// provider returning empty strings.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError prints a human-readable description of a failed
// calculation and returns the matching exit code.
//
// Parameters:
//   - err: The error returned by the calculation. A nil error is a success.
//   - duration: How long the calculation ran before failing (0 if unknown).
//   - out: The writer for the error report.
//   - colors: The color provider for the report.
//
// Returns:
//   - int: The exit code to report to the OS.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	var overflowErr OverflowError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sThe calculation timed out%s.%s\n", colors.Red(), msgSuffix, colors.Reset())
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sThe calculation was canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
	case errors.As(err, &overflowErr):
		fmt.Fprintf(out, "%sOverflow: %v.%s\n", colors.Red(), overflowErr, colors.Reset())
	default:
		fmt.Fprintf(out, "%sThe calculation failed%s: %v%s\n", colors.Red(), msgSuffix, err, colors.Reset())
	}
	return ExitCodeFor(err)
}
