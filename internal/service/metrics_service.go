package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the document generation pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	recordsGenerated *prometheus.CounterVec
	recordsReused    prometheus.Counter
	recordsFailed    prometheus.Counter
	cacheOperations  *prometheus.CounterVec
}

// NewMetricsService registers the service's Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	recordsGenerated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "student_records_generated_total",
		Help: "Documents rendered and persisted, by trigger source",
	}, []string{"source"})

	recordsReused := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "student_records_reused_total",
		Help: "Generation calls answered from an existing record",
	})

	recordsFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "student_records_failed_total",
		Help: "Generation attempts that errored",
	})

	cacheOperations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_operations_total",
		Help: "Cache lookups partitioned by outcome",
	}, []string{"result"})

	registry.MustRegister(requestDuration, requestTotal, recordsGenerated, recordsReused, recordsFailed, cacheOperations)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		recordsGenerated: recordsGenerated,
		recordsReused:    recordsReused,
		recordsFailed:    recordsFailed,
		cacheOperations:  cacheOperations,
	}
}

// Handler exposes the /metrics scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records latency and volume for one request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{"method": method, "path": path, "status": strconv.Itoa(status)}
	m.requestDuration.With(labels).Observe(duration.Seconds())
	m.requestTotal.With(labels).Inc()
}

// RecordGenerated counts a rendered-and-persisted document.
func (m *MetricsService) RecordGenerated(source string) {
	m.recordsGenerated.WithLabelValues(source).Inc()
}

// RecordReused counts an idempotent short-circuit.
func (m *MetricsService) RecordReused() {
	m.recordsReused.Inc()
}

// RecordFailed counts a failed generation attempt.
func (m *MetricsService) RecordFailed() {
	m.recordsFailed.Inc()
}

// RecordCacheOperation counts one cache lookup by outcome.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheOperations.WithLabelValues(result).Inc()
}
