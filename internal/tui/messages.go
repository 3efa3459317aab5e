package tui

import (
	"time"

	"github.com/agbru/fibseq/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-algorithm results of a comparison.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the reconciled result.
type FinalResultMsg struct {
	Result orchestration.CalculationResult
	N      uint64
}

// ErrorMsg reports a failed calculation.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg refreshes the elapsed timer.
type TickMsg time.Time

// CalculationCompleteMsg is sent when orchestration returns.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
