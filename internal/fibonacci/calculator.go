//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

package fibonacci

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// Options tunes a calculation. The zero value selects the defaults.
type Options struct {
	// CheckInterval is the number of iterations between cancellation checks
	// and progress reports for iterative algorithms. 0 means
	// DefaultCheckInterval.
	CheckInterval uint64
	// SkipFastPath runs the algorithm even for indices that fit in 64 bits.
	// Comparisons set it so that every algorithm does its own work.
	SkipFastPath bool
}

func (o Options) checkInterval() uint64 {
	if o.CheckInterval == 0 {
		return DefaultCheckInterval
	}
	return o.CheckInterval
}

// Calculator computes F(n) with a specific algorithm.
type Calculator interface {
	// Calculate computes F(n). Progress updates are sent to progressChan
	// (which may be nil) tagged with calcIndex. The send never blocks.
	Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error)

	// Name returns a human-readable algorithm description.
	Name() string
}

// coreCalculator is the contract each algorithm implements. It is kept
// unexported so that callers always go through FibCalculator.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*big.Int, error)
	Name() string
}

// FibCalculator adapts a core algorithm to the Calculator interface. It
// serves indices up to MaxUint64Index with machine arithmetic and reports
// completion on the progress channel.
type FibCalculator struct {
	core coreCalculator
}

// NewCalculator wraps a core algorithm.
func NewCalculator(core coreCalculator) Calculator {
	return &FibCalculator{core: core}
}

// Name returns the wrapped algorithm's name.
func (c *FibCalculator) Name() string {
	return c.core.Name()
}

// Calculate implements Calculator.
func (c *FibCalculator) Calculate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n uint64, opts Options) (*big.Int, error) {
	reporter := channelReporter(progressChan, calcIndex)

	if err := ctx.Err(); err != nil {
		return nil, apperrors.CalculationError{Cause: err}
	}

	if n <= MaxUint64Index && !opts.SkipFastPath {
		v, err := ComputeUint64(n)
		if err != nil {
			return nil, apperrors.CalculationError{Cause: err}
		}
		reporter(1.0)
		return new(big.Int).SetUint64(v), nil
	}

	result, err := c.core.CalculateCore(ctx, reporter, n, opts)
	if err != nil {
		return nil, apperrors.CalculationError{Cause: err}
	}
	reporter(1.0)
	return result, nil
}
