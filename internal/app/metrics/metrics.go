// Package metrics holds the Prometheus collectors for both services.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "yt2t"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics owns a per-process registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	extractions          *prometheus.CounterVec
	stageSeconds         *prometheus.HistogramVec
	transcriptions       *prometheus.CounterVec
	transcriptionSeconds prometheus.Histogram
	httpRequests         *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Extractions by terminal outcome and error code.",
		}, []string{"outcome", "code"}),
		stageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_stage_seconds",
			Help:      "Time spent in each extraction stage.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"stage"}),
		transcriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcriptions_total",
			Help:      "Transcription requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		transcriptionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcription_seconds",
			Help:      "Model inference latency.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 12),
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by service, method, route and status.",
		}, []string{"service", "method", "route", "status"}),
	}

	m.registry.MustRegister(
		m.extractions,
		m.stageSeconds,
		m.transcriptions,
		m.transcriptionSeconds,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveExtraction counts a finished extraction. code is empty on success.
func (m *Metrics) ObserveExtraction(err error, code string) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.extractions.WithLabelValues(outcome, code).Inc()
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.stageSeconds.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveTranscription counts a transcription call and records its latency.
func (m *Metrics) ObserveTranscription(endpoint string, err error, d time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.transcriptions.WithLabelValues(endpoint, outcome).Inc()
	if err == nil {
		m.transcriptionSeconds.Observe(d.Seconds())
	}
}

// ObserveHTTP counts one served request.
func (m *Metrics) ObserveHTTP(service, method, route, status string) {
	m.httpRequests.WithLabelValues(service, method, route, status).Inc()
}
