package tui

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/orchestration"
)

func testCalculators() []fibonacci.Calculator {
	return []fibonacci.Calculator{
		fibonacci.NewCalculator(fibonacci.IterativeRecurrence{}),
		fibonacci.NewCalculator(fibonacci.FastDoubling{}),
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	m := NewModel(context.Background(), testCalculators(), cfg, "v1.2.3", nil)
	t.Cleanup(m.cancel)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_Init(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init() must start the calculation")
	}
}

func TestModel_ProgressMsg(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, ProgressMsg{CalculatorIndex: 1, Value: 0.5, AverageProgress: 0.25, ETA: 3 * time.Second})
	if m.progress[1] != 0.5 || m.average != 0.25 {
		t.Errorf("progress = %v average = %v", m.progress, m.average)
	}

	// Out-of-range indices are ignored.
	m, _ = update(t, m, ProgressMsg{CalculatorIndex: 7, Value: 0.9})
	if m.progress[0] != 0 {
		t.Errorf("progress[0] = %v, want 0", m.progress[0])
	}

	view := m.View()
	if !strings.Contains(view, "50.00%") {
		t.Errorf("View() missing progress percentage:\n%s", view)
	}
	if !strings.Contains(view, "Average") {
		t.Errorf("View() missing average row:\n%s", view)
	}
}

func TestModel_PauseIgnoresProgress(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runeKey('p'))
	if !m.paused {
		t.Fatal("p should pause the display")
	}
	m, _ = update(t, m, ProgressMsg{CalculatorIndex: 0, Value: 0.8})
	if m.progress[0] != 0 {
		t.Errorf("paused model applied progress %v", m.progress[0])
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() should show PAUSED")
	}

	m, _ = update(t, m, runeKey('p'))
	if m.paused {
		t.Error("second p should resume")
	}
}

func TestModel_FinalResult(t *testing.T) {
	m := newTestModel(t)

	res := orchestration.CalculationResult{Name: "Iterative Recurrence (O(n))", Result: big.NewInt(610), Duration: time.Millisecond}
	m, _ = update(t, m, ComparisonResultsMsg{Results: []orchestration.CalculationResult{res}})
	m, _ = update(t, m, FinalResultMsg{Result: res, N: 15})
	m, _ = update(t, m, CalculationCompleteMsg{ExitCode: apperrors.ExitSuccess})

	view := m.View()
	if !strings.Contains(view, "15th Fibonacci Number is 610") {
		t.Errorf("View() missing result line:\n%s", view)
	}
	if !strings.Contains(view, "DONE") {
		t.Errorf("View() missing DONE status:\n%s", view)
	}
	if m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("ExitCode() = %d, want 0", m.ExitCode())
	}
}

func TestModel_Mismatch(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, CalculationCompleteMsg{ExitCode: apperrors.ExitErrorMismatch})
	if m.ExitCode() != apperrors.ExitErrorMismatch {
		t.Errorf("ExitCode() = %d, want %d", m.ExitCode(), apperrors.ExitErrorMismatch)
	}
	if !strings.Contains(m.View(), "FAILED") {
		t.Error("View() should show FAILED after a mismatch")
	}
}

func TestModel_StaleGenerationIgnored(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runeKey('r'))
	if m.generation != 1 {
		t.Fatalf("generation = %d, want 1", m.generation)
	}
	m, _ = update(t, m, CalculationCompleteMsg{ExitCode: apperrors.ExitErrorGeneric, Generation: 0})
	if m.done {
		t.Error("completion from a previous run must be ignored")
	}
	m, cmd := update(t, m, ContextCancelledMsg{Err: context.Canceled, Generation: 0})
	if m.done || cmd != nil {
		t.Error("cancellation from a previous run must be ignored")
	}
}

func TestModel_ResetClearsState(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, ErrorMsg{Err: context.DeadlineExceeded})
	m, _ = update(t, m, CalculationCompleteMsg{ExitCode: apperrors.ExitErrorTimeout})
	m, cmd := update(t, m, runeKey('r'))
	t.Cleanup(m.cancel)

	if cmd == nil {
		t.Fatal("reset should restart the calculation")
	}
	if m.done || m.failed || len(m.logs) != 0 || m.ExitCode() != apperrors.ExitSuccess {
		t.Errorf("reset left state behind: done=%v failed=%v logs=%v exit=%d", m.done, m.failed, m.logs, m.ExitCode())
	}
}

func TestModel_QuitBeforeDone(t *testing.T) {
	m := newTestModel(t)
	runCtx := m.ctx

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.ExitCode() != apperrors.ExitErrorCanceled {
		t.Errorf("ExitCode() = %d, want %d", m.ExitCode(), apperrors.ExitErrorCanceled)
	}
	if runCtx.Err() == nil {
		t.Error("quit should cancel the run context")
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, ContextCancelledMsg{Err: context.DeadlineExceeded})
	if cmd == nil {
		t.Fatal("cancellation should quit the program")
	}
	if m.ExitCode() != apperrors.ExitErrorTimeout {
		t.Errorf("ExitCode() = %d, want %d", m.ExitCode(), apperrors.ExitErrorTimeout)
	}
}

func TestModel_TickStopsWhenDone(t *testing.T) {
	m := newTestModel(t)

	if _, cmd := update(t, m, TickMsg(time.Now())); cmd == nil {
		t.Error("running model should schedule the next tick")
	}
	m, _ = update(t, m, CalculationCompleteMsg{})
	if _, cmd := update(t, m, TickMsg(time.Now())); cmd != nil {
		t.Error("finished model should stop ticking")
	}
}

func TestStartCalculationCmd(t *testing.T) {
	cfg := config.Default()
	cfg.N = 30

	var (
		mu       sync.Mutex
		observed []orchestration.CalculationResult
	)
	observe := func(res orchestration.CalculationResult) {
		mu.Lock()
		observed = append(observed, res)
		mu.Unlock()
	}

	msg := startCalculationCmd(&programRef{}, context.Background(), testCalculators(), cfg, 4, observe)()
	done, ok := msg.(CalculationCompleteMsg)
	if !ok {
		t.Fatalf("got %T, want CalculationCompleteMsg", msg)
	}
	if done.ExitCode != apperrors.ExitSuccess || done.Generation != 4 {
		t.Errorf("got %+v", done)
	}
	if len(observed) != 2 {
		t.Fatalf("observed %d results, want 2", len(observed))
	}
	for _, res := range observed {
		if res.Err != nil || res.Result.Cmp(big.NewInt(832040)) != 0 {
			t.Errorf("%s: got %v, %v", res.Name, res.Result, res.Err)
		}
	}
}

func TestWatchContextCmd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := watchContextCmd(ctx, make(chan struct{}), 2)()
	cancelled, ok := msg.(ContextCancelledMsg)
	if !ok {
		t.Fatalf("got %T, want ContextCancelledMsg", msg)
	}
	if cancelled.Generation != 2 || cancelled.Err != context.Canceled {
		t.Errorf("got %+v", cancelled)
	}
}

func TestModel_CompletionStopsWatcher(t *testing.T) {
	m := newTestModel(t)
	watch := watchContextCmd(m.ctx, m.stop, m.generation)

	m, _ = update(t, m, CalculationCompleteMsg{ExitCode: apperrors.ExitSuccess})

	// The run context is still live, so only the closed stop channel can
	// release the watcher.
	if msg := watch(); msg != nil {
		t.Errorf("watcher after completion returned %T, want nil", msg)
	}
	if m.ctx.Err() != nil {
		t.Error("completion must not cancel the run context")
	}
}

func TestModel_RunContextHasTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.Timeout = time.Millisecond
	m := NewModel(context.Background(), testCalculators(), cfg, "", nil)
	t.Cleanup(m.cancel)

	select {
	case <-m.ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("run context did not time out")
	}
	if m.ctx.Err() != context.DeadlineExceeded {
		t.Errorf("run context err = %v, want DeadlineExceeded", m.ctx.Err())
	}

	// A restart gets a fresh deadline.
	m, _ = update(t, m, runeKey('r'))
	t.Cleanup(m.cancel)
	if _, ok := m.ctx.Deadline(); !ok {
		t.Error("restarted run context has no deadline")
	}
}

func TestModel_ProgressDoneHidesETA(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, ProgressMsg{CalculatorIndex: 0, Value: 0.5, ETA: 90 * time.Second})
	if !strings.Contains(m.View(), "ETA") {
		t.Fatal("View() should show the ETA while running")
	}
	m, _ = update(t, m, ProgressDoneMsg{})
	if m.eta != 0 {
		t.Errorf("eta = %s, want 0", m.eta)
	}
	if strings.Contains(m.View(), "ETA") {
		t.Error("View() should hide the ETA once progress is done")
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		progress   float64
		wantFilled int
	}{
		{-1, 0},
		{0, 0},
		{0.5, barWidth / 2},
		{1, barWidth},
		{2, barWidth},
	}
	for _, tt := range tests {
		got := bar(tt.progress)
		if filled := strings.Count(got, "█"); filled != tt.wantFilled {
			t.Errorf("bar(%v) filled = %d, want %d", tt.progress, filled, tt.wantFilled)
		}
		if total := len([]rune(got)); total != barWidth {
			t.Errorf("bar(%v) width = %d, want %d", tt.progress, total, barWidth)
		}
	}
}
