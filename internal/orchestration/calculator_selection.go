package orchestration

import (
	"github.com/agbru/fibseq/internal/fibonacci"
)

// AlgoAll selects every registered calculator.
const AlgoAll = "all"

// GetCalculatorsToRun resolves an algorithm selection to calculators.
// "all" returns every registered calculator in the factory's sorted order.
// An unknown name yields nil.
//
// Parameters:
//   - algo: The algorithm key, or "all".
//   - factory: The calculator factory to resolve names against.
//
// Returns:
//   - []fibonacci.Calculator: The calculators to execute.
func GetCalculatorsToRun(algo string, factory fibonacci.CalculatorFactory) []fibonacci.Calculator {
	if algo == AlgoAll {
		keys := factory.List()
		calculators := make([]fibonacci.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}

	if calc, err := factory.Get(algo); err == nil {
		return []fibonacci.Calculator{calc}
	}
	return nil
}
