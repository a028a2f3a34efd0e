package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry and the instruments exposed
// on /metrics.
type MetricsService struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	detectionRuns     *prometheus.CounterVec
	detectionDuration prometheus.Histogram
	conflictsFound    *prometheus.GaugeVec
}

// NewMetricsService creates a registry with Go runtime and application
// collectors registered.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &MetricsService{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planning_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planning_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		detectionRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planning_conflict_detection_runs_total",
			Help: "Conflict detection runs by outcome.",
		}, []string{"outcome"}),
		detectionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planning_conflict_detection_duration_seconds",
			Help:    "Duration of conflict detection runs.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		conflictsFound: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planning_conflicts_detected",
			Help: "Conflicts found by the most recent detection run per semester.",
		}, []string{"semester_id"}),
	}

	registry.MustRegister(
		s.httpRequests,
		s.httpDuration,
		s.detectionRuns,
		s.detectionDuration,
		s.conflictsFound,
	)
	return s
}

// ObserveHTTPRequest records one handled HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	s.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	s.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDetection records the outcome of a conflict detection run.
func (s *MetricsService) ObserveDetection(semesterID string, created int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.detectionRuns.WithLabelValues(outcome).Inc()
	s.detectionDuration.Observe(duration.Seconds())
	if err == nil {
		s.conflictsFound.WithLabelValues(semesterID).Set(float64(created))
	}
}

// Handler exposes the registry for scraping.
func (s *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
