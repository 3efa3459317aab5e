package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "fibseq"

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeOverflow = "overflow"
)

// Recorder holds the collectors for one process run.
type Recorder struct {
	registry *prometheus.Registry

	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	lastIndex    prometheus.Gauge
	resultBits   prometheus.Gauge
}

// NewRecorder creates a Recorder backed by its own registry. When
// withRuntime is true the Go runtime collector is registered as well.
func NewRecorder(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Number of completed calculations by algorithm and outcome.",
		}, []string{"algorithm", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Wall-clock duration of calculations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"algorithm"}),
		lastIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_index",
			Help:      "Index of the most recently requested term.",
		}),
		resultBits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_result_bits",
			Help:      "Bit length of the most recently computed term.",
		}),
	}
	r.registry.MustRegister(r.calculations, r.duration, r.lastIndex, r.resultBits)
	if withRuntime {
		r.registry.MustRegister(collectors.NewGoCollector())
	}
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCalculation records one calculation.
//
// Parameters:
//   - algorithm: The algorithm name used as a label.
//   - n: The requested index.
//   - bits: The bit length of the result (ignored unless outcome is success).
//   - d: The elapsed time.
//   - outcome: One of the Outcome* constants.
func (r *Recorder) ObserveCalculation(algorithm string, n uint64, bits int, d time.Duration, outcome string) {
	r.calculations.WithLabelValues(algorithm, outcome).Inc()
	r.duration.WithLabelValues(algorithm).Observe(d.Seconds())
	r.lastIndex.Set(float64(n))
	if outcome == OutcomeSuccess {
		r.resultBits.Set(float64(bits))
	}
}

// WriteText gathers the registry and writes every metric family in the
// Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
