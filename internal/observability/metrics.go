// Package observability collects the Prometheus metrics for the application.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	placements        *prometheus.CounterVec
	plansScored       prometheus.Counter
	planScore         prometheus.Histogram
	playbackStreams   prometheus.Counter
}

// NewMetrics registers the collectors on a fresh registry so that repeated
// server boots inside one test binary do not collide. The activeSessions
// callback is sampled on every scrape.
func NewMetrics(activeSessions func() float64) *Metrics {
	scoreBucketWidth := 10.0
	scoreBucketCount := 10
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		placements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sampling_point_placements_total",
			Help: "Total count of sampling point placements by method and outcome.",
		}, []string{"method", "outcome"}),
		plansScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plans_scored_total",
			Help: "Total count of scored sampling plans.",
		}),
		planScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plan_score",
			Help:    "Histogram of total scores of scored sampling plans.",
			Buckets: prometheus.LinearBuckets(scoreBucketWidth, scoreBucketWidth, scoreBucketCount),
		}),
		playbackStreams: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playback_streams_total",
			Help: "Total count of started auto-placement playback streams.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.placements,
		m.plansScored,
		m.planScore,
		m.playbackStreams,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "active_sandbox_sessions",
			Help: "Number of sandbox sessions currently held in memory.",
		}, activeSessions),
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder.
func (s *statusRecorder) Flush() {
	if flusher, ok := s.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer, e.g. to
// adjust write deadlines on streaming routes.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(duration)
		}
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Placement(method string, accepted bool) {
	if m == nil {
		return
	}
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	m.placements.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) PlanScored(totalScore int) {
	if m == nil {
		return
	}
	m.plansScored.Inc()
	m.planScore.Observe(float64(totalScore))
}

func (m *Metrics) PlaybackStarted() {
	if m == nil {
		return
	}
	m.playbackStreams.Inc()
}
