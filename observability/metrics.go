// Package observability provides Prometheus metrics for adapter calls.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference
// latencies, ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts adapter calls by mode (complete|stream) and
	// outcome (ok|error).
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmwire_requests_total",
			Help: "Adapter calls",
		},
		[]string{"mode", "outcome"},
	)

	// RequestDuration records call duration in seconds by mode. For
	// streaming calls this covers connection setup, not consumption.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llmwire_request_duration_seconds",
			Help:    "Call duration",
			Buckets: LLMBuckets,
		},
		[]string{"mode"},
	)

	// RetriesTotal counts HTTP attempts beyond the first.
	RetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "llmwire_retries_total",
			Help: "Retried HTTP attempts",
		},
	)

	// StreamDeltasTotal counts text deltas emitted by streaming calls.
	StreamDeltasTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "llmwire_stream_deltas_total",
			Help: "Emitted stream deltas",
		},
	)

	// ActiveStreams tracks streams currently being consumed.
	ActiveStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "llmwire_streams_active",
			Help: "Active streaming responses",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		RetriesTotal,
		StreamDeltasTotal,
		ActiveStreams,
	)
}
