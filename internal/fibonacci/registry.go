//go:generate mockgen -source=registry.go -destination=mocks/mock_factory.go -package=mocks

package fibonacci

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// CalculatorFactory resolves calculators by their registered name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns a copy of the registry.
	GetAll() map[string]Calculator
}

// DefaultFactory is a concurrency-safe calculator registry. The zero
// value is an empty registry ready for Register.
type DefaultFactory struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory with the built-in algorithms
// registered under AlgoIterative and AlgoFast.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{calculators: make(map[string]Calculator)}
	f.calculators[AlgoIterative] = NewCalculator(IterativeRecurrence{})
	f.calculators[AlgoFast] = NewCalculator(FastDoubling{})
	return f
}

// Register adds calc under name. Names must be non-empty, unique and must
// not be "all", which selects every calculator.
func (f *DefaultFactory) Register(name string, calc Calculator) error {
	if name == "" || name == "all" {
		return apperrors.NewConfigError("invalid calculator name %q", name)
	}
	if calc == nil {
		return apperrors.NewConfigError("calculator %q is nil", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calculators == nil {
		f.calculators = make(map[string]Calculator)
	}
	if _, exists := f.calculators[name]; exists {
		return apperrors.NewConfigError("calculator %q already registered", name)
	}
	f.calculators[name] = calc
	return nil
}

// Get implements CalculatorFactory.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	calc, ok := f.calculators[name]
	if !ok {
		return nil, apperrors.NewConfigError("unknown algorithm %q", name)
	}
	return calc, nil
}

// MustGet is Get that panics on unknown names. Intended for tests and
// static wiring.
func (f *DefaultFactory) MustGet(name string) Calculator {
	calc, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("fibonacci: %v", err))
	}
	return calc
}

// List implements CalculatorFactory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll implements CalculatorFactory.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	all := make(map[string]Calculator, len(f.calculators))
	for name, calc := range f.calculators {
		all[name] = calc
	}
	return all
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide default factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}
