package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"

	"github.com/agbru/fibseq/internal/cli"
	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/tui"
	"github.com/agbru/fibseq/internal/ui"
)

// Application represents the fibseq application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.Recorder

	in io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the logger built from the configured level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the reader used by interactive mode.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.in = in }
}

// New creates an Application by parsing command-line arguments. args[0]
// is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, in: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}

	programName := "fibseq"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = logging.NewLeveledLogger(errWriter, "app", cfg.LogLevel)
	}
	app.Metrics = metrics.NewRecorder(cfg.Metrics)
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	a.Logger.Debug("starting",
		logging.Uint64("n", a.Config.N),
		logging.String("algo", a.Config.Algo),
		logging.String("timeout", a.Config.Timeout.String()),
	)

	var code int
	switch {
	case a.Config.Interactive:
		code = a.runInteractive(ctx, out)
	case a.Config.LastDigits > 0:
		code = a.runLastDigits(ctx, out)
	case a.Config.FixedWidth:
		code = a.runFixedWidth(ctx, out)
	case a.Config.TUI:
		code = a.runTUI(ctx)
	default:
		code = a.runCalculate(ctx, out)
	}

	if a.Config.Metrics {
		if err := a.Metrics.WriteText(a.ErrWriter); err != nil {
			a.Logger.Error("metrics dump failed", err)
		}
	}
	a.Logger.Debug("finished", logging.Int("exit_code", code))
	return code
}

// runInteractive starts the REPL. Each calculation gets its own timeout.
func (a *Application) runInteractive(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Details:     a.Config.Details,
	})
	repl.SetInput(a.in)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runTUI runs the calculation inside the dashboard.
// The dashboard applies the timeout to each run itself.
func (a *Application) runTUI(ctx context.Context) int {
	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if len(calculatorsToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "Configuration error: unknown algorithm %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	// The observer runs on a bubbletea command goroutine. Results are only
	// collected there; logging waits until the alternate screen is gone.
	var (
		mu      sync.Mutex
		results []orchestration.CalculationResult
	)
	code := tui.Run(ctx, calculatorsToRun, a.Config, Version, func(res orchestration.CalculationResult) {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
	})

	mu.Lock()
	collected := slices.Clone(results)
	mu.Unlock()
	return a.finishTUI(code, collected)
}

// finishTUI logs and records the dashboard results, then saves the fastest
// one when the run succeeded.
func (a *Application) finishTUI(code int, results []orchestration.CalculationResult) int {
	for _, res := range results {
		a.observe(res.Name, res.Result, res.Duration, res.Err)
	}
	best := orchestration.FindBestResult(results)
	if code == apperrors.ExitSuccess && best != nil {
		if err := a.saveResult(best.Result, best.Duration, best.Name); err != nil {
			return apperrors.ExitErrorGeneric
		}
	}
	return code
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
