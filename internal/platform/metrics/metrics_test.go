package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsAndExposes(t *testing.T) {
	m := metrics.NewMetrics()

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/subscriptions", http.StatusOK, 20*time.Millisecond)
	m.RecordSubscriptionWrite("create", nil)
	m.RecordSubscriptionWrite("create", errors.New("boom"))
	m.RecordAggregation(3)
	m.RecordRateLimited()

	count, err := testutil.GatherAndCount(m.Gatherer(),
		"subtrack_http_requests_total",
		"subtrack_subscription_writes_total",
		"subtrack_aggregations_total",
		"subtrack_rate_limited_requests_total",
	)
	require.NoError(t, err)
	// one http series, two write series (success/error), one aggregation, one rate limited
	assert.Equal(t, 5, count)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `subtrack_subscription_writes_total{operation="create",outcome="error"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.RecordSubscriptionWrite("delete", nil)
		m.RecordAggregation(0)
		m.RecordRateLimited()
	})
}
