package fibonacci

import (
	"context"
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// Compute returns F(n) as an arbitrary-precision integer.
//
// It walks the recurrence from the seeds: previous=0, current=1, then n-1
// steps of next=previous+current. For n <= 1 the seed is returned directly.
// Compute is pure: the result is freshly allocated and owned by the caller.
func Compute(n uint64) *big.Int {
	// Background is never canceled, so the core cannot fail here.
	result, _ := IterativeRecurrence{}.CalculateCore(context.Background(), nil, n, Options{})
	return result
}

// ComputeUint64 returns F(n) using 64-bit arithmetic. It fails with
// apperrors.OverflowError when F(n) does not fit, i.e. for n > MaxUint64Index.
// It never wraps or saturates.
func ComputeUint64(n uint64) (uint64, error) {
	if n <= 1 {
		return n, nil
	}
	var previous, current uint64 = 0, 1
	for i := uint64(2); i <= n; i++ {
		next, carry := bits.Add64(previous, current, 0)
		if carry != 0 {
			return 0, apperrors.OverflowError{N: n, Width: uint64Width}
		}
		previous, current = current, next
	}
	return current, nil
}

// IterativeRecurrence evaluates the recurrence term by term. It performs n-1
// big-integer additions, so it is the reference algorithm rather than the
// fast one.
type IterativeRecurrence struct{}

// Name implements coreCalculator.
func (IterativeRecurrence) Name() string {
	return "Iterative Recurrence (O(n))"
}

// CalculateCore implements coreCalculator. The loop checks ctx and reports
// progress every opts.CheckInterval iterations.
func (IterativeRecurrence) CalculateCore(ctx context.Context, reporter ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	if n <= 1 {
		return new(big.Int).SetUint64(n), nil
	}
	if reporter == nil {
		reporter = noopReporter
	}

	interval := opts.checkInterval()
	steps := n - 1
	previous, current, next := big.NewInt(0), big.NewInt(1), new(big.Int)

	for i := uint64(1); i <= steps; i++ {
		next.Add(previous, current)
		// Rotate the three buffers so no iteration allocates.
		previous, current, next = current, next, previous

		if i%interval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			// Step i adds numbers of O(i) bits, so completed work grows
			// quadratically with i.
			frac := float64(i) / float64(steps)
			reporter(frac * frac)
		}
	}
	return current, nil
}
