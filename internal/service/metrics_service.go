package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	storeDuration     *prometheus.HistogramVec
	storeErrors       *prometheus.CounterVec
	submissionsTotal  *prometheus.CounterVec
	reflectionsTotal  *prometheus.CounterVec
	speechTotal       *prometheus.CounterVec
	postersRendered   prometheus.Counter
	posterPagesByPoem prometheus.Histogram
}

// NewMetricsService registers core Prometheus collectors.
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

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "record_store_operation_seconds",
		Help:    "Latency of record store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	storeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "record_store_errors_total",
		Help: "Record store operations that failed",
	}, []string{"op"})

	submissionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_total",
		Help: "Poem submissions by outcome",
	}, []string{"outcome"})

	reflectionsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reflections_total",
		Help: "Reflection requests by outcome",
	}, []string{"outcome"})

	speechTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "speech_requests_total",
		Help: "Text-to-speech requests by outcome",
	}, []string{"outcome"})

	postersRendered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "posters_rendered_total",
		Help: "Poster PDFs rendered",
	})

	posterPages := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "poster_pages",
		Help:    "Pages produced per paginated poem",
		Buckets: []float64{1, 2, 3, 5, 8, 13},
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, storeErrors, submissionsTotal, reflectionsTotal, speechTotal, postersRendered, posterPages, goroutines)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		storeDuration:     storeDuration,
		storeErrors:       storeErrors,
		submissionsTotal:  submissionsTotal,
		reflectionsTotal:  reflectionsTotal,
		speechTotal:       speechTotal,
		postersRendered:   postersRendered,
		posterPagesByPoem: posterPages,
	}
}

// Registry exposes the underlying registry for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveStoreOperation records record store latency and failures.
func (m *MetricsService) ObserveStoreOperation(op string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		m.storeErrors.WithLabelValues(op).Inc()
	}
}

// RecordSubmission counts a submission attempt by outcome code.
func (m *MetricsService) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordReflection counts a reflection request by outcome.
func (m *MetricsService) RecordReflection(outcome string) {
	if m == nil {
		return
	}
	m.reflectionsTotal.WithLabelValues(outcome).Inc()
}

// RecordSpeech counts a text-to-speech request by outcome.
func (m *MetricsService) RecordSpeech(outcome string) {
	if m == nil {
		return
	}
	m.speechTotal.WithLabelValues(outcome).Inc()
}

// ObservePoster records a pagination and whether a PDF was rendered.
func (m *MetricsService) ObservePoster(pages int, rendered bool) {
	if m == nil {
		return
	}
	m.posterPagesByPoem.Observe(float64(pages))
	if rendered {
		m.postersRendered.Inc()
	}
}
