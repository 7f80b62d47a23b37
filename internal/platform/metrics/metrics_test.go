package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_SessionLifecycle(t *testing.T) {
	m := New()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessionsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionsExpired))
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := New()
	m.SelectionTransition("swapped")
	m.AnalyticsCache("distribution", true)
	m.ObserveHTTP(http.MethodGet, "/healthz", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `tactical_board_selection_transitions_total{outcome="swapped"} 1`))
	assert.True(t, strings.Contains(body, `tactical_board_analytics_cache_requests_total{result="hit",view="distribution"} 1`))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.SessionOpened()
	m.BreakerOpen("lineups", true)
	m.ObserveAnalytics("vectors", time.Now())
	assert.Nil(t, m.Registry())
}
