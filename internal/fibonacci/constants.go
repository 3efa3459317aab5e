package fibonacci

const (
	// DefaultCheckInterval is the number of iterations between context
	// checks and progress reports in the iterative recurrence. Each check
	// costs a channel send attempt, so it is kept well above 1.
	DefaultCheckInterval = 1 << 12

	// MaxUint64Index is the largest n for which F(n) fits in a uint64.
	// F(93) = 12200160415121876738; F(94) exceeds 2^64-1.
	MaxUint64Index = 93

	// uint64Width is the bit width reported by the fixed-width overflow error.
	uint64Width = 64
)

// Registered algorithm names.
const (
	AlgoIterative = "iterative"
	AlgoFast      = "fast"
)
