package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibseq/internal/cli"
	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/orchestration"
)

const (
	barWidth    = 30
	maxLogLines = 8
	tickRate    = 250 * time.Millisecond
)

// Model is the root bubbletea model of the dashboard.
type Model struct {
	keymap KeyMap

	ctx         context.Context
	cancel      context.CancelFunc
	stop        chan struct{}
	parentCtx   context.Context
	calculators []fibonacci.Calculator
	generation  uint64

	config   config.AppConfig
	version  string
	observe  Observer
	ref      *programRef
	started  time.Time
	finished time.Time

	progress []float64
	average  float64
	eta      time.Duration
	logs     []string
	result   string

	paused   bool
	done     bool
	failed   bool
	exitCode int
	width    int
}

// Observer is called with every finished calculation result.
type Observer func(orchestration.CalculationResult)

// NewModel creates a dashboard model for the given calculators. observe may
// be nil.
func NewModel(parentCtx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, version string, observe Observer) Model {
	ctx, cancel := newRunContext(parentCtx, cfg.Timeout)
	return Model{
		keymap:      DefaultKeyMap(),
		ctx:         ctx,
		cancel:      cancel,
		stop:        make(chan struct{}),
		parentCtx:   parentCtx,
		calculators: calculators,
		config:      cfg,
		version:     version,
		observe:     observe,
		ref:         &programRef{},
		started:     time.Now(),
		progress:    make([]float64, len(calculators)),
		exitCode:    apperrors.ExitSuccess,
	}
}

// newRunContext scopes one run. Each restart gets a fresh timeout.
func newRunContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return context.WithCancel(parent)
}

// Init starts the calculation, the context watcher and the timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.calculators, m.config, m.generation, m.observe),
		watchContextCmd(m.ctx, m.stop, m.generation),
	)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ProgressMsg:
		if m.paused {
			return m, nil
		}
		if msg.CalculatorIndex >= 0 && msg.CalculatorIndex < len(m.progress) {
			m.progress[msg.CalculatorIndex] = msg.Value
		}
		m.average = msg.AverageProgress
		m.eta = msg.ETA
		return m, nil

	case ComparisonResultsMsg:
		for _, res := range msg.Results {
			if res.Err != nil {
				m.addLog(errorStyle.Render(fmt.Sprintf("%s: failed (%v)", res.Name, res.Err)))
				continue
			}
			m.addLog(fmt.Sprintf("%s: %s", algoStyle.Render(res.Name), format.FormatExecutionDuration(res.Duration)))
		}
		return m, nil

	case FinalResultMsg:
		m.result = cli.FormatSequenceLine(msg.N, msg.Result.Result)
		m.addLog(successStyle.Render(fmt.Sprintf("%s finished in %s", msg.Result.Name, format.FormatExecutionDuration(msg.Result.Duration))))
		return m, nil

	case ProgressDoneMsg:
		m.eta = 0
		return m, nil

	case ErrorMsg:
		m.failed = true
		m.addLog(errorStyle.Render(fmt.Sprintf("error: %v", msg.Err)))
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.finished = time.Now()
		// A finished run stays on screen until the user quits.
		close(m.stop)
		if msg.ExitCode == apperrors.ExitErrorMismatch {
			m.failed = true
			m.addLog(errorStyle.Render("results disagree between algorithms"))
		}
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		if m.finished.IsZero() {
			m.finished = time.Now()
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) addLog(line string) {
	m.logs = append(m.logs, line)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = newRunContext(m.parentCtx, m.config.Timeout)
		m.stop = make(chan struct{})
		m.started = time.Now()
		m.finished = time.Time{}
		m.progress = make([]float64, len(m.calculators))
		m.average, m.eta = 0, 0
		m.logs, m.result = nil, ""
		m.done, m.failed, m.paused = false, false, false
		m.exitCode = apperrors.ExitSuccess
		return m, tea.Batch(
			tickCmd(),
			startCalculationCmd(m.ref, m.ctx, m.calculators, m.config, m.generation, m.observe),
			watchContextCmd(m.ctx, m.stop, m.generation),
		)
	}
	return m, nil
}

// ExitCode returns the exit code of the last completed run.
func (m Model) ExitCode() int {
	return m.exitCode
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	elapsed := time.Since(m.started)
	if !m.finished.IsZero() {
		elapsed = m.finished.Sub(m.started)
	}
	title := "fibseq"
	if m.version != "" && m.version != "dev" {
		title += " " + m.version
	}
	fmt.Fprintf(&b, "%s %s\n\n", titleStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("| F(%d) | elapsed %s", m.config.N, format.FormatExecutionDuration(elapsed))))

	for i, calc := range m.calculators {
		fmt.Fprintf(&b, "%s %s %6.2f%%\n", algoStyle.Render(fmt.Sprintf("%-28s", calc.Name())), barStyle.Render(bar(m.progress[i])), m.progress[i]*100)
	}
	if len(m.calculators) > 1 {
		fmt.Fprintf(&b, "%-28s %s %6.2f%%\n", "Average", barStyle.Render(bar(m.average)), m.average*100)
	}
	if m.eta > 0 && !m.done {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render("ETA "+format.FormatExecutionDuration(m.eta.Round(time.Second))))
	}

	if len(m.logs) > 0 {
		b.WriteString("\n" + strings.Join(m.logs, "\n") + "\n")
	}
	if m.result != "" {
		b.WriteString("\n" + successStyle.Render(m.result) + "\n")
	}

	b.WriteString("\n" + m.statusLine() + "  " + m.helpLine())

	style := panelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(b.String())
}

func (m Model) statusLine() string {
	switch {
	case m.done && m.failed:
		return errorStyle.Bold(true).Render("FAILED")
	case m.done:
		return statusDoneStyle.Render("DONE")
	case m.paused:
		return dimStyle.Render("PAUSED")
	default:
		return successStyle.Render("RUNNING")
	}
}

func (m Model) helpLine() string {
	parts := make([]string, 0, 3)
	for _, binding := range m.keymap.ShortHelp() {
		h := binding.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "  "))
}

func bar(progress float64) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// Run starts the dashboard in the alternate screen and returns the exit
// code of the last run. Each run is bounded by cfg.Timeout; canceling ctx
// stops the program.
func Run(ctx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, version string, observe Observer, opts ...tea.ProgramOption) int {
	initTUIStyles()

	model := NewModel(ctx, calculators, cfg, version, observe)
	defer model.cancel()

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)...)
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apperrors.ExitCodeFor(ctxErr)
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startCalculationCmd runs the orchestration and reports completion.
func startCalculationCmd(ref *programRef, ctx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, gen uint64, observe Observer) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref}
		results := orchestration.ExecuteCalculations(ctx, calculators, cfg.N, fibonacci.Options{}, &TUIProgressReporter{ref: ref}, io.Discard)
		if observe != nil {
			for _, res := range results {
				observe(res)
			}
		}
		presOpts := orchestration.PresentationOptions{N: cfg.N, Verbose: cfg.Verbose, Details: cfg.Details}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, io.Discard)
		return CalculationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchContextCmd waits for the run context to end. It returns no message
// once stop is closed.
func watchContextCmd(ctx context.Context, stop <-chan struct{}, gen uint64) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
		case <-stop:
			return nil
		}
	}
}
