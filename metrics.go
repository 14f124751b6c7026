package bungie

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess        = "success"
	outcomePlatformError  = "platform_error"
	outcomeTransportError = "transport_error"
	outcomeStatusError    = "status_error"
	outcomeDecodeError    = "decode_error"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	throttle *prometheus.GaugeVec
}

// newMetrics registers with reg; a nil reg leaves the collectors unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bungie",
			Subsystem: "platform",
			Name:      "requests_total",
			Help:      "Platform calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bungie",
			Subsystem: "platform",
			Name:      "request_duration_seconds",
			Help:      "Time from sending a platform request to having decoded its envelope.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		throttle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bungie",
			Subsystem: "platform",
			Name:      "throttle_seconds",
			Help:      "ThrottleSeconds of the last envelope received per endpoint.",
		}, []string{"endpoint"}),
	}
}

func (m *metrics) observe(endpoint, outcome string, took time.Duration) {
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(took.Seconds())
}
