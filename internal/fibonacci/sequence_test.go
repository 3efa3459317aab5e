package fibonacci

import (
	"context"
	"errors"
	"math/big"
	"testing"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

func TestCompute_KnownValues(t *testing.T) {
	t.Parallel()
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{3, "2"},
		{10, "55"},
		{15, "610"},
		{50, "12586269025"},
		{93, "12200160415121876738"},
		{94, "19740274219868223167"},
		{100, "354224848179261915075"},
	}
	for _, tc := range cases {
		if got := Compute(tc.n).String(); got != tc.want {
			t.Errorf("Compute(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()
	first := Compute(500)
	for i := 0; i < 3; i++ {
		if Compute(500).Cmp(first) != 0 {
			t.Fatal("Compute(500) changed between calls")
		}
	}
	// Mutating a result must not leak into later calls.
	first.SetInt64(-1)
	if Compute(500).Sign() <= 0 {
		t.Fatal("Compute returned shared state")
	}
}

func TestComputeUint64(t *testing.T) {
	t.Parallel()
	for _, n := range []uint64{0, 1, 2, 15, 64, MaxUint64Index} {
		got, err := ComputeUint64(n)
		if err != nil {
			t.Fatalf("ComputeUint64(%d) unexpected error: %v", n, err)
		}
		if want := Compute(n); new(big.Int).SetUint64(got).Cmp(want) != 0 {
			t.Errorf("ComputeUint64(%d) = %d, want %s", n, got, want)
		}
	}
}

func TestComputeUint64_Overflow(t *testing.T) {
	t.Parallel()
	for _, n := range []uint64{MaxUint64Index + 1, 1000, ^uint64(0)} {
		_, err := ComputeUint64(n)
		var overflowErr apperrors.OverflowError
		if !errors.As(err, &overflowErr) {
			t.Fatalf("ComputeUint64(%d) error = %v, want OverflowError", n, err)
		}
		if overflowErr.N != n || overflowErr.Width != 64 {
			t.Errorf("OverflowError = %+v, want N=%d Width=64", overflowErr, n)
		}
	}
}

func TestCalculators_Agree(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	for _, n := range []uint64{0, 1, 2, 15, 93, 94, 200, 1000, 4097} {
		want := Compute(n)
		for _, name := range factory.List() {
			calc := factory.MustGet(name)
			got, err := calc.Calculate(context.Background(), nil, 0, n, Options{})
			if err != nil {
				t.Fatalf("%s: F(%d) error: %v", name, n, err)
			}
			if got.Cmp(want) != 0 {
				t.Errorf("%s: F(%d) = %s, want %s", name, n, got, want)
			}
		}
	}
}

func TestCalculate_ReportsCompletion(t *testing.T) {
	t.Parallel()
	for _, n := range []uint64{10, 5000} {
		progressChan := make(chan ProgressUpdate, 64)
		calc := NewCalculator(IterativeRecurrence{})
		if _, err := calc.Calculate(context.Background(), progressChan, 3, n, Options{CheckInterval: 500}); err != nil {
			t.Fatalf("Calculate(%d): %v", n, err)
		}
		close(progressChan)

		var last ProgressUpdate
		prev := -1.0
		for update := range progressChan {
			if update.CalculatorIndex != 3 {
				t.Errorf("CalculatorIndex = %d, want 3", update.CalculatorIndex)
			}
			if update.Value < prev {
				t.Errorf("progress went backwards: %f after %f", update.Value, prev)
			}
			prev = update.Value
			last = update
		}
		if last.Value != 1.0 {
			t.Errorf("n=%d: final progress = %f, want 1.0", n, last.Value)
		}
	}
}

func TestCalculate_SkipFastPathRunsCore(t *testing.T) {
	t.Parallel()
	count := func(opts Options) int {
		progressChan := make(chan ProgressUpdate, 128)
		result, err := NewCalculator(IterativeRecurrence{}).Calculate(context.Background(), progressChan, 0, 50, opts)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if result.Uint64() != 12586269025 {
			t.Errorf("F(50) = %s, want 12586269025", result)
		}
		close(progressChan)
		return len(progressChan)
	}

	if got := count(Options{CheckInterval: 1}); got != 1 {
		t.Errorf("fast path sent %d updates, want only the final one", got)
	}
	if got := count(Options{CheckInterval: 1, SkipFastPath: true}); got != 50 {
		t.Errorf("core sent %d updates, want 49 steps plus the final one", got)
	}
}

func TestCalculate_FullChannelDoesNotBlock(t *testing.T) {
	t.Parallel()
	progressChan := make(chan ProgressUpdate) // unbuffered and never read
	calc := NewCalculator(IterativeRecurrence{})
	if _, err := calc.Calculate(context.Background(), progressChan, 0, 3000, Options{CheckInterval: 1}); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
}

func TestCalculateCore_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cores := []coreCalculator{IterativeRecurrence{}, FastDoubling{}}
	for _, core := range cores {
		_, err := core.CalculateCore(ctx, nil, 100000, Options{CheckInterval: 1})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("%s: error = %v, want context.Canceled", core.Name(), err)
		}
	}
}

func TestCalculate_CanceledWrapsCalculationError(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCalculator(FastDoubling{}).Calculate(ctx, nil, 0, 10, Options{})
	var calcErr apperrors.CalculationError
	if !errors.As(err, &calcErr) {
		t.Fatalf("error = %v, want CalculationError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error chain should contain context.Canceled")
	}
}
