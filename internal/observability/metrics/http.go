package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	Analysis *AnalysisMetrics

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge
	responseSize    *prometheus.HistogramVec
	uploadsTotal    *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legistra",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legistra",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "legistra",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	// Report exports dominate the upper buckets.
	responseSize := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legistra",
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "HTTP response body size in bytes.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"service", "path"},
	)
	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legistra",
			Subsystem: "documents",
			Name:      "uploads_total",
			Help:      "Total accepted uploads by document format.",
		},
		[]string{"service", "format"},
	)

	registry.MustRegister(requestTotal, requestDuration, requestInFlight, responseSize, uploadsTotal)

	return &HTTPServerMetrics{
		registry:        registry,
		Analysis:        newAnalysisMetrics(service, registry),
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		responseSize:    responseSize,
		uploadsTotal:    uploadsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &sizeRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(service, r.Method, path, strconv.Itoa(recorder.statusCode)).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
		m.responseSize.WithLabelValues(service, path).Observe(float64(recorder.written))
	})
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/v1/documents/") {
		return path
	}
	rest := strings.TrimPrefix(path, "/v1/documents/")
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return "/v1/documents/{document_id}" + rest[idx:]
	}
	return "/v1/documents/{document_id}"
}

func (m *HTTPServerMetrics) RecordUpload(service, format string) {
	m.uploadsTotal.WithLabelValues(service, labelOrUnknown(format)).Inc()
}

type sizeRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (w *sizeRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sizeRecorder) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

func (w *sizeRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
