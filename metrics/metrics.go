// Package metrics holds the bot's Prometheus collectors.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "devlin"

// Metrics is a set of collectors registered on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	commands   *prometheus.CounterVec
	fetches    *prometheus.CounterVec
	removals   *prometheus.CounterVec
	candidates prometheus.Histogram

	latencyMu sync.RWMutex
	latency   func() time.Duration
}

// New creates a new Metrics, including Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Slash command invocations by command and status.",
		}, []string{"command", "status"}),

		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaderboard_fetches_total",
			Help:      "Leaderboard fetches by result.",
		}, []string{"result"}),

		removals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "members_total",
			Help:      "Members processed by confirmed cleanups, by result.",
		}, []string{"result"}),

		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "candidates",
			Help:      "Number of candidates in each confirmed cleanup.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
	}

	latency := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "gateway_latency_seconds",
		Help:      "Gateway heartbeat latency.",
	}, m.latencySeconds)

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.commands,
		m.fetches,
		m.removals,
		m.candidates,
		latency,
	)
	return m
}

// IncCommand counts a command invocation.
func (m *Metrics) IncCommand(name, status string) {
	m.commands.WithLabelValues(name, status).Inc()
}

// IncFetch counts a leaderboard fetch.
func (m *Metrics) IncFetch(result string) {
	m.fetches.WithLabelValues(result).Inc()
}

// ObserveCleanup records the result of a confirmed cleanup.
func (m *Metrics) ObserveCleanup(succeeded, failed, skipped int) {
	m.removals.WithLabelValues("kicked").Add(float64(succeeded))
	m.removals.WithLabelValues("failed").Add(float64(failed))
	m.removals.WithLabelValues("skipped").Add(float64(skipped))
	m.candidates.Observe(float64(succeeded + failed + skipped))
}

// SetLatencyFunc sets the function used to report gateway latency.
func (m *Metrics) SetLatencyFunc(fn func() time.Duration) {
	m.latencyMu.Lock()
	m.latency = fn
	m.latencyMu.Unlock()
}

func (m *Metrics) latencySeconds() float64 {
	m.latencyMu.RLock()
	fn := m.latency
	m.latencyMu.RUnlock()

	if fn == nil {
		return 0
	}
	return fn().Seconds()
}
