package fibonacci

// ProgressUpdate is a progress report emitted by a running calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator in a comparison run.
	CalculatorIndex int
	// Value is the completed fraction of the work, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of the work.
type ProgressCallback func(progress float64)

// channelReporter returns a ProgressCallback that forwards to ch without
// blocking. Updates are dropped when the consumer falls behind; a nil
// channel discards everything.
func channelReporter(ch chan<- ProgressUpdate, calcIndex int) ProgressCallback {
	return func(v float64) {
		if ch == nil {
			return
		}
		select {
		case ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: v}:
		default:
		}
	}
}

func noopReporter(float64) {}
