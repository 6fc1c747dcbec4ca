package host

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records host-level validation activity.
type Metrics struct {
	validations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

var (
	metricsOnce     sync.Once
	metricsRegistry *Metrics
)

// ValidationMetrics returns the lazily-initialised metrics registry shared by
// every runtime in the process.
func ValidationMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsRegistry = &Metrics{
			validations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "liquidnation",
				Subsystem: "host",
				Name:      "validations_total",
				Help:      "Contract validations segmented by app tag and outcome.",
			}, []string{"tag", "outcome"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "liquidnation",
				Subsystem: "host",
				Name:      "validation_duration_seconds",
				Help:      "Latency distribution for contract validations.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"tag"}),
		}
		prometheus.MustRegister(metricsRegistry.validations, metricsRegistry.latency)
	})
	return metricsRegistry
}

// Observe records one validation outcome.
func (m *Metrics) Observe(tag byte, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := string(rune(tag))
	m.validations.WithLabelValues(label, outcome).Inc()
	if elapsed > 0 {
		m.latency.WithLabelValues(label).Observe(elapsed.Seconds())
	}
}
