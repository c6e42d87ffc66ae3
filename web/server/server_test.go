package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devguild/devlin/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeStatus struct {
	latency time.Duration
}

func (f fakeStatus) Latency() time.Duration { return f.latency }

func TestHealth(t *testing.T) {
	s := New(fakeStatus{latency: 42 * time.Millisecond}, nil, "v1.2.3", time.Now().Add(-time.Hour), zaptest.NewLogger(t).Sugar())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "v1.2.3", resp.Version)
	assert.Equal(t, "1 hour", resp.Uptime)
	assert.Equal(t, 42.0, resp.LatencyMS)
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	m.IncCommand("ping", "ok")

	s := New(fakeStatus{}, m.Registry, "dev", time.Now(), zaptest.NewLogger(t).Sugar())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `devlin_commands_total{command="ping",status="ok"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	s := New(nil, nil, "dev", time.Now(), zaptest.NewLogger(t).Sugar())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
