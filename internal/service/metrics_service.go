package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the planner.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	conflictChecks    *prometheus.CounterVec
	scheduleMutations *prometheus.CounterVec
	sessionsCreated   prometheus.Counter
	snapshotFailures  prometheus.Counter
}

// NewMetricsService registers the planner's collectors.
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

	conflictChecks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_conflict_checks_total",
		Help: "Conflict checks run, labelled by outcome",
	}, []string{"result"})

	scheduleMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_schedule_mutations_total",
		Help: "Schedule mutations, labelled by operation",
	}, []string{"op"})

	sessionsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_sessions_created_total",
		Help: "Planning sessions created",
	})

	snapshotFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planner_snapshot_failures_total",
		Help: "Schedule snapshot persistence failures",
	})

	registry.MustRegister(requestDuration, requestTotal, conflictChecks, scheduleMutations, sessionsCreated, snapshotFailures)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		conflictChecks:    conflictChecks,
		scheduleMutations: scheduleMutations,
		sessionsCreated:   sessionsCreated,
		snapshotFailures:  snapshotFailures,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// GinMiddleware records request duration and count per route.
func (s *MetricsService) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		s.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		s.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// RecordConflictCheck counts one conflict check by outcome.
func (s *MetricsService) RecordConflictCheck(ok bool) {
	result := "conflict"
	if ok {
		result = "ok"
	}
	s.conflictChecks.WithLabelValues(result).Inc()
}

// RecordMutation counts a schedule mutation.
func (s *MetricsService) RecordMutation(op string) {
	s.scheduleMutations.WithLabelValues(op).Inc()
}

// RecordSessionCreated counts a new planning session.
func (s *MetricsService) RecordSessionCreated() {
	s.sessionsCreated.Inc()
}

// RecordSnapshotFailure counts a failed snapshot save.
func (s *MetricsService) RecordSnapshotFailure() {
	s.snapshotFailures.Inc()
}
