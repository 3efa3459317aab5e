// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatSequenceLine], [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints the bare value only.
	Quiet bool
	// Verbose disables truncation of the grouped value in details.
	Verbose bool
	// Details adds the result analysis section.
	Details bool
}

// FormatSequenceLine returns the canonical result line,
// e.g. "15th Fibonacci Number is 610".
func FormatSequenceLine(n uint64, value *big.Int) string {
	return fmt.Sprintf("%s Fibonacci Number is %s", format.Ordinal(n), value.String())
}

// DisplayResult writes the result line and, when details is set, an
// analysis of the result.
//
// The result line is never colorized so that it can be matched by scripts.
//
// Parameters:
//   - result: The calculated term.
//   - n: The index.
//   - duration: The calculation duration.
//   - verbose: Shows the grouped value in full instead of truncating it.
//   - details: Adds digits, bits and timing.
//   - out: The output writer.
func DisplayResult(result *big.Int, n uint64, duration time.Duration, verbose, details bool, out io.Writer) {
	fmt.Fprintln(out, FormatSequenceLine(n, result))
	if !details {
		return
	}

	resultStr := result.String()
	numDigits := len(resultStr)

	fmt.Fprintf(out, "\n%s\n", ui.Heading("--- Detailed result analysis ---"))
	fmt.Fprintf(out, "Calculation time   : %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "Result binary size : %s%s%s bits\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(result.BitLen())), ui.ColorReset())
	fmt.Fprintf(out, "Number of digits   : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(numDigits)), ui.ColorReset())

	if numDigits > TruncationLimit && !verbose {
		fmt.Fprintf(out, "Calculated value   : F(%d) = %s%s...%s%s (truncated)\n",
			n, ui.ColorGreen(), resultStr[:DisplayEdges], resultStr[numDigits-DisplayEdges:], ui.ColorReset())
		fmt.Fprintf(out, "Tip: use %s--verbose%s to display the full value.\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "Calculated value   : F(%d) = %s%s%s\n", n, ui.ColorGreen(), format.FormatNumberString(resultStr), ui.ColorReset())
}

// FormatQuietResult formats a result for quiet mode: the decimal value only.
func FormatQuietResult(result *big.Int) string {
	return result.String()
}

// DisplayQuietResult writes the bare decimal value followed by a newline.
func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// WriteResultToFile writes a calculation result to config.OutputFile,
// creating parent directories as needed. An empty path is a no-op.
//
// Parameters:
//   - result: The calculated term.
//   - n: The index.
//   - duration: The calculation duration.
//   - algo: The algorithm name used.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result *big.Int, n uint64, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# Fibonacci Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %d\n", n)
	fmt.Fprintf(file, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(file, "# Digits: %d\n", len(result.String()))
	fmt.Fprintf(file, "\n%s\n", FormatSequenceLine(n, result))

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResultWithConfig displays a result according to config and saves
// it when an output file is configured.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result *big.Int, n uint64, duration time.Duration, algo string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, n, duration, config.Verbose, config.Details, out)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(result, n, duration, algo, config); err != nil {
		return err
	}
	if !config.Quiet {
		DisplaySavedNotice(out, config.OutputFile)
	}
	return nil
}

// DisplaySavedNotice tells the user where the result file was written.
func DisplaySavedNotice(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
