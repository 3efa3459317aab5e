package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
)

// ProgressBufferMultiplier sizes the shared progress channel per calculator.
const ProgressBufferMultiplier = 5

const tracerName = "github.com/agbru/fibseq/internal/orchestration"

// ExecuteCalculations runs the calculators concurrently and collects their
// results in input order.
//
// Individual failures are recorded in the result and never cancel the
// other calculators. Each run is wrapped in a trace span; without an
// installed provider the global no-op tracer is used.
//
// Parameters:
//   - ctx: Cancellation and deadline for all runs.
//   - calculators: The calculators to execute.
//   - n: The requested index.
//   - opts: Options passed to every calculator. With more than one
//     calculator SkipFastPath is forced on.
//   - progressReporter: Progress display (NullProgressReporter for quiet mode).
//   - out: The writer for progress output.
//
// Returns:
//   - []CalculationResult: One result per calculator.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, n uint64, opts fibonacci.Options, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	if len(calculators) > 1 {
		opts.SkipFastPath = true
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "ExecuteCalculations", trace.WithAttributes(
		indexAttribute(n),
		attribute.Int("fib.calculators", len(calculators)),
	))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan fibonacci.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, calc := range calculators {
		g.Go(func() error {
			runCtx, runSpan := tracer.Start(ctx, "Calculate", trace.WithAttributes(
				attribute.String("fib.algorithm", calc.Name()),
				attribute.Int("fib.index", i),
			))
			defer runSpan.End()

			start := time.Now()
			res, err := calc.Calculate(runCtx, progressChan, i, n, opts)
			results[i] = CalculationResult{
				Name: calc.Name(), Result: res, Duration: time.Since(start), Err: err,
			}
			if err != nil {
				runSpan.RecordError(err)
				runSpan.SetStatus(codes.Error, err.Error())
			} else {
				runSpan.SetAttributes(attribute.Int("fib.result_bits", res.BitLen()))
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults reconciles the results of a run.
//
// Results are sorted with successes first, then by duration. All successful
// results must agree; a disagreement yields ExitErrorMismatch. When every
// calculator failed, the first error is passed to errHandler.
//
// Parameters:
//   - results: The results to analyze. Sorted in place.
//   - opts: Presentation options for the final result.
//   - presenter: Renders the table and the result.
//   - errHandler: Maps the failure to an exit code.
//   - out: The writer for the report.
//
// Returns:
//   - int: An exit code.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		successCount++
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	if successCount == 0 {
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		}
		return errHandler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(firstValid.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the algorithms.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// FindBestResult returns the fastest successful result, or nil.
func FindBestResult(results []CalculationResult) *CalculationResult {
	var best *CalculationResult
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if best == nil || results[i].Duration < best.Duration {
			best = &results[i]
		}
	}
	return best
}

// indexAttribute records n in decimal; int64 attributes cannot hold every
// uint64 index.
func indexAttribute(n uint64) attribute.KeyValue {
	return attribute.String("fib.n", strconv.FormatUint(n, 10))
}
