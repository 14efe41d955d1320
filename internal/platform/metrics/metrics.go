package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes Prometheus observability primitives for the subscription API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	subscriptionWrites  *prometheus.CounterVec
	aggregations        prometheus.Counter
	aggregatedRows      prometheus.Histogram
	rateLimitedRequests prometheus.Counter
}

// NewMetrics builds the collectors on a private registry along with the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subtrack_http_requests_total",
		Help: "Counts HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "subtrack_http_request_duration_seconds",
		Help:    "HTTP request latency per method/route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	subscriptionWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subtrack_subscription_writes_total",
		Help: "Subscription writes by operation and outcome.",
	}, []string{"operation", "outcome"})

	aggregations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subtrack_aggregations_total",
		Help: "Monthly total aggregations computed.",
	})

	aggregatedRows := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "subtrack_aggregated_rows",
		Help:    "Number of subscriptions folded into one aggregation.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	})

	rateLimitedRequests := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subtrack_rate_limited_requests_total",
		Help: "Requests rejected by the rate limiter.",
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		subscriptionWrites,
		aggregations,
		aggregatedRows,
		rateLimitedRequests,
	)

	return &Metrics{
		registry:            registry,
		httpRequests:        httpRequests,
		httpDuration:        httpDuration,
		subscriptionWrites:  subscriptionWrites,
		aggregations:        aggregations,
		aggregatedRows:      aggregatedRows,
		rateLimitedRequests: rateLimitedRequests,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the underlying registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveHTTPRequest records one completed request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordSubscriptionWrite counts a create/update/delete and whether it succeeded.
func (m *Metrics) RecordSubscriptionWrite(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.subscriptionWrites.WithLabelValues(operation, outcome).Inc()
}

// RecordAggregation counts one aggregation over rows subscriptions.
func (m *Metrics) RecordAggregation(rows int) {
	if m == nil {
		return
	}
	m.aggregations.Inc()
	m.aggregatedRows.Observe(float64(rows))
}

// RecordRateLimited counts a request rejected by the limiter.
func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.rateLimitedRequests.Inc()
}
