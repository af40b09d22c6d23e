package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry
	service  string

	Analysis *AnalysisMetrics

	taskTotal    *prometheus.CounterVec
	taskInFlight prometheus.Gauge
	queueLag     *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	taskTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legistra",
			Subsystem: "worker",
			Name:      "tasks_total",
			Help:      "Total consumed analysis tasks by status.",
		},
		[]string{"service", "status"},
	)
	taskInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "legistra",
			Subsystem: "worker",
			Name:      "tasks_in_flight",
			Help:      "Number of in-flight analysis tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legistra",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between queueing an analysis and starting it.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(taskTotal, taskInFlight, queueLag)

	return &WorkerMetrics{
		registry:     registry,
		service:      service,
		Analysis:     newAnalysisMetrics(service, registry),
		taskTotal:    taskTotal,
		taskInFlight: taskInFlight,
		queueLag:     queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartTask() {
	m.taskInFlight.Inc()
}

func (m *WorkerMetrics) FinishTask(err error) {
	m.taskInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}
	m.taskTotal.WithLabelValues(m.service, status).Inc()
}

func (m *WorkerMetrics) ObserveQueueLag(lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(m.service).Observe(lag.Seconds())
}
