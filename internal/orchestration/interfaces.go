package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/fibseq/internal/fibonacci"
)

// CalculationResult is the outcome of a single calculator run.
type CalculationResult struct {
	// Name is the algorithm description (e.g., "Fast Doubling (O(log n))").
	Name string
	// Result is the computed term. It is nil if an error occurred.
	Result *big.Int
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Err is the failure, if any.
	Err error
}

// PresentationOptions configures how the final result is presented.
type PresentationOptions struct {
	N       uint64
	Verbose bool
	Details bool
}

// ProgressReporter displays progress for running calculations.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed and then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: Signalled when display is complete.
	//   - progressChan: Updates from the calculators.
	//   - numCalculators: The number of calculators being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the progress channel without output.
// Used in quiet mode.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan fibonacci.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	// PresentResult displays the final result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports a calculation error and maps it to an exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
