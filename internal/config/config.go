// Package config parses and validates the fibseq configuration.
//
// Values are resolved in this order (highest priority first):
//  1. command-line flags and the positional index argument
//  2. FIBSEQ_* environment variables
//  3. the YAML file named by --config or FIBSEQ_CONFIG
//  4. the defaults below
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/logging"
)

const (
	// EnvPrefix prefixes every environment variable the application reads.
	EnvPrefix = "FIBSEQ_"

	// DefaultN is the index computed when none is given.
	DefaultN = 15
	// DefaultAlgo is the algorithm used when none is given.
	DefaultAlgo = "iterative"
	// DefaultTimeout bounds a single calculation.
	DefaultTimeout = time.Minute
	// DefaultLogLevel keeps diagnostics off the console unless asked for.
	DefaultLogLevel = "warn"
	// MaxLastDigits bounds --last-digits; the modulus holds 10^K.
	MaxLastDigits = 1_000_000
)

// AppConfig is the fully resolved application configuration.
type AppConfig struct {
	// N is the index of the term to compute.
	N uint64
	// Algo selects a registered calculator, or "all" to compare every one.
	Algo string
	// Timeout bounds the calculation.
	Timeout time.Duration
	// Quiet prints only the value, for scripting.
	Quiet bool
	// Verbose prints the execution configuration before computing.
	Verbose bool
	// Details prints digit count, bit length and duration after the result.
	Details bool
	// LastDigits, when positive, computes only the last K decimal digits.
	LastDigits int
	// OutputFile, when set, receives the result.
	OutputFile string
	// FixedWidth computes with 64-bit arithmetic and fails on overflow.
	FixedWidth bool
	// Metrics dumps the metrics registry to the error stream after the run.
	Metrics bool
	// LogLevel is the minimum structured log level.
	LogLevel string
	// ConfigFile is the optional YAML configuration file.
	ConfigFile string
	// Interactive starts the read-eval-print loop on standard input.
	Interactive bool
	// TUI runs the calculation inside the full-screen dashboard.
	TUI bool
	// NoColor disables ANSI colors.
	NoColor bool
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		N:        DefaultN,
		Algo:     DefaultAlgo,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
	}
}

// ParseIndex parses a term index. Anything other than a non-negative
// decimal integer that fits in 64 bits is rejected with a ValidationError
// on field "n".
func ParseIndex(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, apperrors.ValidationError{Field: "n", Message: "empty index"}
	}
	if strings.HasPrefix(s, "-") {
		return 0, apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("%q is negative; the index must be a non-negative integer", s)}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("%q exceeds the 64-bit range (max %d)", s, uint64(math.MaxUint64))}
	}
	if err != nil {
		return 0, apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("%q is not a non-negative integer", s)}
	}
	return n, nil
}

// indexValue adapts ParseIndex to flag.Value. The flag package flattens
// Set errors into strings, so the typed error is kept in err for the caller.
type indexValue struct {
	n   *uint64
	err *error
}

func (v indexValue) String() string {
	if v.n == nil {
		return ""
	}
	return strconv.FormatUint(*v.n, 10)
}

func (v indexValue) Set(s string) error {
	n, err := ParseIndex(s)
	if err != nil {
		*v.err = err
		return err
	}
	*v.n = n
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applying
// the config file and environment overrides, then validates the result.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: The writer for usage and flag errors.
//   - availableAlgos: The registered algorithm names.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, otherwise a
//     ConfigError or ValidationError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	// Flag output is buffered so that a negative positional index, which
	// the flag package sees as an undefined flag, can be reported on its own.
	var flagOut bytes.Buffer
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(&flagOut)

	config := Default()
	var indexErr error
	fs.Var(indexValue{n: &config.N, err: &indexErr}, "n", "Index of the Fibonacci term to compute (may also be given as the positional argument).")
	fs.StringVar(&config.Algo, "algo", config.Algo, fmt.Sprintf("Algorithm to use: %s, or 'all' to compare.", strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Maximum calculation time (e.g. 10s, 1m).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the value.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print the execution configuration.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.Details, "details", false, "Print digits, bit length and duration of the result.")
	fs.BoolVar(&config.Details, "d", false, "Shorthand for --details.")
	fs.IntVar(&config.LastDigits, "last-digits", 0, "Compute only the last K decimal digits (O(K) memory).")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.BoolVar(&config.FixedWidth, "fixed-width", false, "Use 64-bit arithmetic and fail on overflow.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Dump metrics in Prometheus text format to stderr after the run.")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Structured log level: debug, info, warn, error, disabled.")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML configuration file.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start an interactive session reading indices from stdin.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for --interactive.")
	fs.BoolVar(&config.TUI, "tui", false, "Show progress in a full-screen dashboard.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [N]\n\n", programName)
		fmt.Fprintf(fs.Output(), "Prints \"{N}th Fibonacci Number is {F(N)}\". N defaults to %d.\n\nFlags:\n", DefaultN)
		fs.PrintDefaults()
	}

	err := fs.Parse(args)
	if err != nil {
		if name, ok := negativeIndexFlag(err); ok {
			_, negErr := ParseIndex(name)
			fmt.Fprintln(errorWriter, "Invalid input:", negErr)
			return AppConfig{}, negErr
		}
	}
	_, _ = flagOut.WriteTo(errorWriter)
	if err != nil {
		// The flag package already printed the error and usage.
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		if indexErr != nil {
			return AppConfig{}, indexErr
		}
		return AppConfig{}, apperrors.ConfigError{Message: err.Error()}
	}

	var positional *uint64
	switch fs.NArg() {
	case 0:
	case 1:
		if isFlagSet(fs, "n") {
			return AppConfig{}, reportConfigError(errorWriter, apperrors.NewConfigError("the index was given both with -n and as an argument"))
		}
		n, err := ParseIndex(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(errorWriter, "Invalid input:", err)
			return AppConfig{}, err
		}
		positional = &n
	default:
		return AppConfig{}, reportConfigError(errorWriter, apperrors.NewConfigError("expected at most one index argument, got %d", fs.NArg()))
	}

	if err := applyFileConfig(&config, fs); err != nil {
		return AppConfig{}, reportConfigError(errorWriter, err)
	}
	applyEnvOverrides(&config, fs)
	if positional != nil {
		config.N = *positional
	}

	if err := config.Validate(availableAlgos); err != nil {
		return AppConfig{}, reportConfigError(errorWriter, err)
	}
	return config, nil
}

// negativeIndexFlag reports whether err is the flag package rejecting a
// negative number such as "-1" as an undefined flag, and returns it.
func negativeIndexFlag(err error) (string, bool) {
	name, ok := strings.CutPrefix(err.Error(), "flag provided but not defined: ")
	if !ok {
		return "", false
	}
	digits := strings.TrimPrefix(name, "-")
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return "", false
	}
	return name, true
}

func reportConfigError(w io.Writer, err error) error {
	fmt.Fprintln(w, "Configuration error:", err)
	return err
}

// Validate checks the cross-field constraints of the configuration.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.LastDigits < 0 {
		return apperrors.NewConfigError("--last-digits must be non-negative, got %d", c.LastDigits)
	}
	if c.LastDigits > MaxLastDigits {
		return apperrors.NewConfigError("--last-digits must be at most %d, got %d", MaxLastDigits, c.LastDigits)
	}
	if c.FixedWidth && c.LastDigits > 0 {
		return apperrors.NewConfigError("--fixed-width and --last-digits are mutually exclusive")
	}
	if c.TUI && (c.Interactive || c.Quiet) {
		return apperrors.NewConfigError("--tui cannot be combined with --interactive or --quiet")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Algo != "all" && !contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: %s, all)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
