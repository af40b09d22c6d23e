package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/legistra/internal/core/domain"
)

// AnalysisMetrics records analysis pipeline progress. It satisfies
// ports.AnalysisObserver and is shared by the api and the worker.
type AnalysisMetrics struct {
	service string

	analysesTotal     *prometheus.CounterVec
	analysisDuration  *prometheus.HistogramVec
	clausesExtracted  *prometheus.HistogramVec
	stagesTotal       *prometheus.CounterVec
	summaryFallbacks  *prometheus.CounterVec
	breakerTransition *prometheus.CounterVec
	breakerOpen       *prometheus.GaugeVec
}

func newAnalysisMetrics(service string, registry *prometheus.Registry) *AnalysisMetrics {
	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legistra",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total analysis runs by mode and outcome.",
		},
		[]string{"service", "mode", "status"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legistra",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Analysis duration in seconds by mode and outcome.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"service", "mode", "status"},
	)
	clausesExtracted := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legistra",
			Subsystem: "analysis",
			Name:      "clauses",
			Help:      "Distribution of extracted clauses per analysis.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10, 15, 20},
		},
		[]string{"service", "mode"},
	)
	stagesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legistra",
			Subsystem: "analysis",
			Name:      "stages_total",
			Help:      "Total pipeline stages entered.",
		},
		[]string{"service", "mode", "stage"},
	)
	summaryFallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legistra",
			Subsystem: "summarizer",
			Name:      "fallbacks_total",
			Help:      "Total summarizer fallbacks by reason.",
		},
		[]string{"service", "mode", "reason"},
	)
	breakerTransition := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legistra",
			Subsystem: "resilience",
			Name:      "breaker_transitions_total",
			Help:      "Total circuit breaker state transitions.",
		},
		[]string{"service", "operation", "to"},
	)
	breakerOpen := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "legistra",
			Subsystem: "resilience",
			Name:      "breaker_open",
			Help:      "1 while the operation circuit breaker is open.",
		},
		[]string{"service", "operation"},
	)

	registry.MustRegister(
		analysesTotal,
		analysisDuration,
		clausesExtracted,
		stagesTotal,
		summaryFallbacks,
		breakerTransition,
		breakerOpen,
	)

	return &AnalysisMetrics{
		service:           service,
		analysesTotal:     analysesTotal,
		analysisDuration:  analysisDuration,
		clausesExtracted:  clausesExtracted,
		stagesTotal:       stagesTotal,
		summaryFallbacks:  summaryFallbacks,
		breakerTransition: breakerTransition,
		breakerOpen:       breakerOpen,
	}
}

func (m *AnalysisMetrics) ObserveStage(mode string, stage domain.AnalysisStage) {
	m.stagesTotal.WithLabelValues(m.service, labelOrUnknown(mode), string(stage)).Inc()
}

func (m *AnalysisMetrics) ObserveSummaryFallback(mode, reason string) {
	m.summaryFallbacks.WithLabelValues(m.service, labelOrUnknown(mode), labelOrUnknown(reason)).Inc()
}

func (m *AnalysisMetrics) ObserveAnalysis(mode string, clauseCount int, failure *domain.AnalysisError, duration time.Duration) {
	mode = labelOrUnknown(mode)
	status := "success"
	if failure != nil {
		status = string(failure.Kind)
	}
	m.analysesTotal.WithLabelValues(m.service, mode, status).Inc()
	m.analysisDuration.WithLabelValues(m.service, mode, status).Observe(duration.Seconds())
	if failure == nil {
		m.clausesExtracted.WithLabelValues(m.service, mode).Observe(float64(clauseCount))
	}
}

// ObserveBreakerTransition matches resilience.Config.OnStateChange.
func (m *AnalysisMetrics) ObserveBreakerTransition(operation, _, to string) {
	operation = labelOrUnknown(operation)
	m.breakerTransition.WithLabelValues(m.service, operation, to).Inc()
	open := 0.0
	if to == "open" {
		open = 1
	}
	m.breakerOpen.WithLabelValues(m.service, operation).Set(open)
}

func labelOrUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
