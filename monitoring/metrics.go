// Package monitoring exports Prometheus metrics for the RPC calls made by the
// client.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "corerpc"

	// ResultOK labels a call that returned a result.
	ResultOK = "ok"
)

// Metrics are the collectors updated for every RPC call.
type Metrics struct {
	// Calls counts calls by method and result, where the result is
	// ResultOK or the error kind.
	Calls *prometheus.CounterVec

	// Latency observes the round trip time of calls by method.
	Latency *prometheus.HistogramVec
}

// NewMetrics creates the collectors. They are not registered.
func NewMetrics() *Metrics {
	return &Metrics{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "Number of RPC calls by method and result.",
		}, []string{"method", "result"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "call_duration_seconds",
			Help:      "Round trip time of RPC calls by method.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"method"}),
	}
}

// Register registers the collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if err := reg.Register(m.Calls); err != nil {
		return err
	}

	return reg.Register(m.Latency)
}

// Observe records one finished call.
func (m *Metrics) Observe(method, result string, elapsed time.Duration) {
	m.Calls.WithLabelValues(method, result).Inc()
	m.Latency.WithLabelValues(method).Observe(elapsed.Seconds())
}
