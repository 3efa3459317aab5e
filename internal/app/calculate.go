package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/agbru/fibseq/internal/cli"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
)

const (
	algoFixedWidth = "fixed-width"
	algoLastDigits = "last-digits"
)

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}
}

// runCalculate runs the selected calculator, or all of them, and reports
// the result.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if len(calculatorsToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "Configuration error: unknown algorithm %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	if a.Config.Verbose && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N, fibonacci.Options{}, progressReporter, progressOut)
	for _, res := range results {
		a.observe(res.Name, res.Result, res.Duration, res.Err)
	}

	if a.Config.Quiet {
		return a.reportQuiet(results, out)
	}

	presOpts := orchestration.PresentationOptions{
		N:       a.Config.N,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	presenter := cli.CLIResultPresenter{}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out)
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	best := orchestration.FindBestResult(results)
	if err := a.saveResult(best.Result, best.Duration, best.Name); err != nil {
		return apperrors.ExitErrorGeneric
	}
	if a.Config.OutputFile != "" {
		cli.DisplaySavedNotice(out, a.Config.OutputFile)
	}
	return apperrors.ExitSuccess
}

// reportQuiet prints only the value of the fastest result. Disagreeing
// results are still reported as a mismatch.
func (a *Application) reportQuiet(results []orchestration.CalculationResult, out io.Writer) int {
	best := orchestration.FindBestResult(results)
	if best == nil {
		for _, res := range results {
			if res.Err != nil {
				return cli.CLIResultPresenter{}.HandleError(res.Err, res.Duration, a.ErrWriter)
			}
		}
		return apperrors.ExitErrorGeneric
	}
	for _, res := range results {
		if res.Err == nil && res.Result.Cmp(best.Result) != 0 {
			fmt.Fprintln(a.ErrWriter, "Inconsistent results between algorithms.")
			return apperrors.ExitErrorMismatch
		}
	}

	cli.DisplayQuietResult(out, best.Result)
	if err := a.saveResult(best.Result, best.Duration, best.Name); err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runFixedWidth computes F(N) in 64-bit arithmetic. Indices above
// fibonacci.MaxUint64Index fail with an overflow error.
func (a *Application) runFixedWidth(ctx context.Context, out io.Writer) int {
	if err := ctx.Err(); err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, 0, a.ErrWriter)
	}

	start := time.Now()
	v, err := fibonacci.ComputeUint64(a.Config.N)
	elapsed := time.Since(start)

	var result *big.Int
	if err == nil {
		result = new(big.Int).SetUint64(v)
	}
	a.observe(algoFixedWidth, result, elapsed, err)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, elapsed, a.ErrWriter)
	}

	if err := cli.DisplayResultWithConfig(out, result, a.Config.N, elapsed, algoFixedWidth, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runLastDigits computes only the last K decimal digits of F(N) using
// modular arithmetic, requiring O(K) memory regardless of N. The run is
// bounded by the configured timeout.
func (a *Application) runLastDigits(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	if err := ctx.Err(); err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, 0, a.ErrWriter)
	}

	k := a.Config.LastDigits
	n := a.Config.N
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computing last %d digits of F(%d)...\n", k, n)
	}

	start := time.Now()
	result, err := fibonacci.FastDoublingMod(ctx, n, mod)
	elapsed := time.Since(start)
	a.observe(algoLastDigits, result, elapsed, err)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, elapsed, a.ErrWriter)
	}

	digits := fmt.Sprintf("%0*d", k, result)
	if a.Config.Quiet {
		fmt.Fprintln(out, digits)
	} else {
		fmt.Fprintf(out, "Last %d digits of F(%d): %s\n", k, n, digits)
		fmt.Fprintf(out, "Computed in %s\n", elapsed.Round(time.Microsecond))
	}
	return apperrors.ExitSuccess
}

func (a *Application) saveResult(result *big.Int, d time.Duration, algo string) error {
	if a.Config.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(result, a.Config.N, d, algo, a.outputConfig()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}

// observe logs and records one calculation outcome.
func (a *Application) observe(algo string, result *big.Int, d time.Duration, err error) {
	fields := []logging.Field{
		logging.String("algorithm", algo),
		logging.Uint64("n", a.Config.N),
		logging.String("duration", d.String()),
	}

	if err != nil {
		outcome := metrics.OutcomeFailure
		var overflow apperrors.OverflowError
		if errors.As(err, &overflow) {
			outcome = metrics.OutcomeOverflow
		}
		a.Metrics.ObserveCalculation(algo, a.Config.N, 0, d, outcome)
		a.Logger.Error("calculation failed", err, fields...)
		return
	}

	a.Metrics.ObserveCalculation(algo, a.Config.N, result.BitLen(), d, metrics.OutcomeSuccess)
	a.Logger.Info("calculation finished", append(fields, logging.Int("bits", result.BitLen()))...)
}
