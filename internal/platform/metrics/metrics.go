package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tactical_board"

// Metrics holds every collector the service exports. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	sessionsActive   prometheus.Gauge
	sessionsOpened   prometheus.Counter
	sessionsExpired  prometheus.Counter
	selections       *prometheus.CounterVec
	snapshots        prometheus.Counter
	sinkFailures     prometheus.Counter
	analyticsLatency *prometheus.HistogramVec
	analyticsCache   *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,
		sessionsActive: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Visualization sessions currently open",
		}),
		sessionsOpened: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_opened_total",
			Help:      "Visualization sessions opened",
		}),
		sessionsExpired: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_expired_total",
			Help:      "Sessions closed by the idle janitor",
		}),
		selections: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_transitions_total",
			Help:      "Selection state machine transitions by outcome",
		}, []string{"outcome"}),
		snapshots: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_committed_total",
			Help:      "Formation snapshots appended to a history",
		}),
		sinkFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_sink_failures_total",
			Help:      "Snapshot publications the sink rejected",
		}),
		analyticsLatency: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analytics_compute_seconds",
			Help:      "Time spent recomputing an analytics view",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"view"}),
		analyticsCache: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analytics_cache_requests_total",
			Help:      "Analytics memo lookups by result",
		}, []string{"view", "result"}),
		breakerState: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_breaker_open",
			Help:      "1 when the circuit breaker of a data source is not closed",
		}, []string{"source"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionsOpened.Inc()
	m.sessionsActive.Inc()
}

func (m *Metrics) SessionClosed(expired bool) {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
	if expired {
		m.sessionsExpired.Inc()
	}
}

// SelectionTransition records one of "selected", "cleared", "swapped" or
// "swap_failed".
func (m *Metrics) SelectionTransition(outcome string) {
	if m == nil {
		return
	}
	m.selections.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SnapshotCommitted() {
	if m == nil {
		return
	}
	m.snapshots.Inc()
}

func (m *Metrics) SinkFailed() {
	if m == nil {
		return
	}
	m.sinkFailures.Inc()
}

func (m *Metrics) ObserveAnalytics(view string, started time.Time) {
	if m == nil {
		return
	}
	m.analyticsLatency.WithLabelValues(view).Observe(time.Since(started).Seconds())
}

func (m *Metrics) AnalyticsCache(view string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.analyticsCache.WithLabelValues(view, result).Inc()
}

func (m *Metrics) BreakerOpen(source string, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.breakerState.WithLabelValues(source).Set(v)
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
