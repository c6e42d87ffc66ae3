package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.IncCommand("cleanup", "ok")
	m.IncCommand("cleanup", "ok")
	m.IncCommand("ping", "error")
	m.IncFetch("status")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues("cleanup", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("ping", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetches.WithLabelValues("status")))
}

func TestObserveCleanup(t *testing.T) {
	m := New()
	m.ObserveCleanup(4, 2, 1)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.removals.WithLabelValues("kicked")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.removals.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.removals.WithLabelValues("skipped")))

	expected := `
# HELP devlin_cleanup_members_total Members processed by confirmed cleanups, by result.
# TYPE devlin_cleanup_members_total counter
devlin_cleanup_members_total{result="failed"} 2
devlin_cleanup_members_total{result="kicked"} 4
devlin_cleanup_members_total{result="skipped"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "devlin_cleanup_members_total"))
}

func TestLatency(t *testing.T) {
	m := New()
	assert.Zero(t, m.latencySeconds())

	m.SetLatencyFunc(func() time.Duration { return 250 * time.Millisecond })
	assert.Equal(t, 0.25, m.latencySeconds())
}
