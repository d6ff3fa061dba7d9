package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Record and file outcomes used as the status label.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BatchMetrics bundles the Prometheus collectors updated by the batch
// converter.
type BatchMetrics struct {
	gatherer prometheus.Gatherer

	Records      *prometheus.CounterVec
	Files        *prometheus.CounterVec
	FileDuration prometheus.Histogram
}

// NewBatchMetrics registers the batch metrics against reg, defaulting to the
// global Prometheus registry when nil. Collectors already registered under
// the same name are reused.
func NewBatchMetrics(reg prometheus.Registerer) (*BatchMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	records, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plcoord_records_total",
		Help: "Converted records, labeled by operation and status.",
	}, []string{"operation", "status"}), "plcoord_records_total")
	if err != nil {
		return nil, err
	}

	files, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plcoord_files_total",
		Help: "Processed input files, labeled by status.",
	}, []string{"status"}), "plcoord_files_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plcoord_file_duration_seconds",
		Help:    "Time spent converting one input file.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60},
	}), "plcoord_file_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &BatchMetrics{
		gatherer:     gatherer,
		Records:      records,
		Files:        files,
		FileDuration: duration,
	}, nil
}

// ObserveRecord counts one converted record. A nil receiver is a no-op.
func (m *BatchMetrics) ObserveRecord(operation string, err error) {
	if m == nil || m.Records == nil {
		return
	}
	m.Records.WithLabelValues(operation, status(err)).Inc()
}

// ObserveFile counts one processed file and its duration in seconds.
func (m *BatchMetrics) ObserveFile(seconds float64, err error) {
	if m == nil {
		return
	}
	if m.Files != nil {
		m.Files.WithLabelValues(status(err)).Inc()
	}
	if m.FileDuration != nil {
		m.FileDuration.Observe(seconds)
	}
}

// WriteToTextfile dumps the gathered metrics in the text exposition format,
// for pickup by a node exporter textfile collector.
func (m *BatchMetrics) WriteToTextfile(path string) error {
	gatherer := m.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
