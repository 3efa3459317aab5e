package orchestration

import (
	"time"

	"github.com/agbru/fibseq/internal/fibonacci"
)

// ProgressAggregator folds per-calculator progress into one average and
// estimates the remaining time from the elapsed time.
type ProgressAggregator struct {
	progresses []float64
	start      time.Time
	now        func() time.Time
}

// NewProgressAggregator creates an aggregator for numCalculators
// calculators. Returns nil if numCalculators <= 0.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		progresses: make([]float64, numCalculators),
		start:      time.Now(),
		now:        time.Now,
	}
}

// AggregatedProgress is the result of processing one update.
type AggregatedProgress struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update records an update and returns the new aggregate. Out-of-range
// indices are ignored.
func (a *ProgressAggregator) Update(update fibonacci.ProgressUpdate) AggregatedProgress {
	if update.CalculatorIndex >= 0 && update.CalculatorIndex < len(a.progresses) {
		a.progresses[update.CalculatorIndex] = update.Value
	}
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: a.CalculateAverage(),
		ETA:             a.GetETA(),
	}
}

// CalculateAverage returns the mean progress across calculators.
func (a *ProgressAggregator) CalculateAverage() float64 {
	var total float64
	for _, p := range a.progresses {
		total += p
	}
	return total / float64(len(a.progresses))
}

// GetETA extrapolates the remaining time linearly. It returns 0 until some
// progress has been made and once the work is complete.
func (a *ProgressAggregator) GetETA() time.Duration {
	avg := a.CalculateAverage()
	if avg <= 0 || avg >= 1 {
		return 0
	}
	elapsed := a.now().Sub(a.start)
	return time.Duration(float64(elapsed) * (1 - avg) / avg)
}

// NumCalculators returns the number of calculators being tracked.
func (a *ProgressAggregator) NumCalculators() int {
	return len(a.progresses)
}

// IsMultiCalculator reports whether more than one calculator is tracked.
func (a *ProgressAggregator) IsMultiCalculator() bool {
	return len(a.progresses) > 1
}

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan fibonacci.ProgressUpdate) {
	for range progressChan {
	}
}
