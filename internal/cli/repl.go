package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/fibseq/internal/config"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the algorithm selected at startup.
	DefaultAlgo string
	// Timeout bounds each calculation.
	Timeout time.Duration
	// Details shows digits, bits and timing after each result.
	Details bool
}

// REPL is an interactive session reading indices from its input.
type REPL struct {
	config      REPLConfig
	factory     fibonacci.CalculatorFactory
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a REPL over the calculators of factory.
// An empty or "all" default selects the first registered key.
func NewREPL(factory fibonacci.CalculatorFactory, config REPLConfig) *REPL {
	currentAlgo := config.DefaultAlgo
	if currentAlgo == "" || currentAlgo == orchestration.AlgoAll {
		if keys := factory.List(); len(keys) > 0 {
			currentAlgo = keys[0]
		}
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}

	return &REPL{
		config:      config,
		factory:     factory,
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and executes commands until exit or end of input.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"fib> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(ctx, line) {
				return
			}
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s\n", ui.Heading("Fibonacci Sequence - Interactive Mode"))
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scalc <n>%s      - Compute F(n) with the current algorithm\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<n>%s           - Shorthand for calc <n>\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s   - Change algorithm (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.algoList())
	fmt.Fprintf(r.out, "  %scompare <n>%s   - Compare all algorithms for F(n)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s          - List available algorithms\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdetails%s       - Toggle result details\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

func (r *REPL) algoList() string {
	return strings.Join(r.factory.List(), ", ")
}

// processCommand executes one input line. It returns false on exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "calc", "c":
		if n, ok := r.indexArg("calc", args); ok {
			r.calculate(ctx, n)
		}
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		if n, ok := r.indexArg("compare", args); ok {
			r.compare(ctx, n)
		}
	case "list", "ls":
		r.cmdList()
	case "details":
		r.config.Details = !r.config.Details
		fmt.Fprintf(r.out, "Result details: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Details), ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if looksNumeric(cmd) {
			if n, ok := r.parseIndex(cmd); ok {
				r.calculate(ctx, n)
			}
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func looksNumeric(s string) bool {
	c := s[0]
	return c == '-' || c == '+' || (c >= '0' && c <= '9')
}

func (r *REPL) indexArg(cmd string, args []string) (uint64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <n>%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		return 0, false
	}
	return r.parseIndex(args[0])
}

func (r *REPL) parseIndex(s string) (uint64, bool) {
	n, err := config.ParseIndex(s)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid input: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return 0, false
	}
	return n, true
}

// calculate computes F(n) with the current algorithm.
func (r *REPL) calculate(ctx context.Context, n uint64) {
	calc, err := r.factory.Get(r.currentAlgo)
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	results := orchestration.ExecuteCalculations(ctx, []fibonacci.Calculator{calc}, n, fibonacci.Options{}, CLIProgressReporter{}, r.out)
	res := results[0]
	if res.Err != nil {
		CLIResultPresenter{}.HandleError(res.Err, res.Duration, r.out)
		return
	}
	DisplayResult(res.Result, n, res.Duration, false, r.config.Details, r.out)
}

// compare runs every algorithm on n and checks that they agree.
func (r *REPL) compare(ctx context.Context, n uint64) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	calcs := orchestration.GetCalculatorsToRun(orchestration.AlgoAll, r.factory)
	results := orchestration.ExecuteCalculations(ctx, calcs, n, fibonacci.Options{}, orchestration.NullProgressReporter{}, r.out)

	fmt.Fprintf(r.out, "\n%sComparison for F(%d):%s\n", ui.ColorBold(), n, ui.ColorReset())
	var reference *orchestration.CalculationResult
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-28s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Name, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if reference == nil {
			reference = &results[i]
		} else if res.Result.Cmp(reference.Result) != 0 {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-28s%s: %s%12s%s %s\n",
			ui.ColorYellow(), res.Name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(res.Duration), ui.ColorReset(), status)
	}
	if reference != nil {
		fmt.Fprintln(r.out, FormatSequenceLine(n, reference.Result))
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", r.algoList())
		return
	}

	name := strings.ToLower(args[0])
	calc, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", r.algoList())
		return
	}

	r.currentAlgo = name
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), calc.Name(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable algorithms:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		calc, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), calc.Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:  %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:    %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Details:    %s%s%s\n", ui.ColorCyan(), onOff(r.config.Details), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
