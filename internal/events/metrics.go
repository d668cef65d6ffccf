package events

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsSink counts finished calls and observes their duration.
type MetricsSink struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inFlight   prometheus.Gauge
}

// NewMetricsSink creates the collectors and registers them with reg.
func NewMetricsSink(reg prometheus.Registerer) (*MetricsSink, error) {
	m := &MetricsSink{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "serverconf",
			Name:      "operations_total",
			Help:      "Configuration operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "serverconf",
			Name:      "operation_duration_seconds",
			Help:      "Duration of configuration operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "serverconf",
			Name:      "operations_in_flight",
			Help:      "Configuration operations currently executing.",
		}),
	}
	for _, c := range []prometheus.Collector{m.operations, m.duration, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Emit updates the collectors.
func (m *MetricsSink) Emit(e Event) {
	switch e.Kind {
	case KindCallStart:
		m.inFlight.Inc()
	case KindCallEnd:
		m.inFlight.Dec()
		m.operations.WithLabelValues(e.Operation, string(e.Outcome)).Inc()
		m.duration.WithLabelValues(e.Operation).Observe(e.Duration.Seconds())
	}
}
