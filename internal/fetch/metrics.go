package fetch

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the instrumentation for a sync run on a dedicated registry,
// keeping the exposition endpoint free of default process collectors' noise
// from other code paths. All methods tolerate a nil receiver so callers can
// run unmetered.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	requestTime   prometheus.Histogram
	candidates    prometheus.Counter
	newGames      prometheus.Counter
	runsCompleted prometheus.Counter
}

// NewMetrics builds and registers the metric set.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamedex_fetch_requests_total",
			Help: "Page fetch attempts by phase (started, ok, error).",
		}, []string{"phase"}),
		requestTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gamedex_fetch_request_duration_seconds",
			Help:    "Wall time spent fetching a listing page.",
			Buckets: prometheus.DefBuckets,
		}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamedex_candidates_extracted_total",
			Help: "Candidate records extracted from fetched pages.",
		}),
		newGames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamedex_new_games_total",
			Help: "Games added to the catalog as new arrivals.",
		}),
		runsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamedex_runs_total",
			Help: "Synchronization runs committed.",
		}),
	}
	m.registry.MustRegister(m.requests, m.requestTime, m.candidates, m.newGames, m.runsCompleted)
	return m
}

// Handler returns the exposition endpoint for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncRequest counts one fetch attempt in the given phase.
func (m *Metrics) IncRequest(phase string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(phase).Inc()
}

// ObserveDuration records one fetch's wall time in seconds.
func (m *Metrics) ObserveDuration(seconds float64) {
	if m == nil {
		return
	}
	m.requestTime.Observe(seconds)
}

// AddCandidates counts candidates extracted from a page.
func (m *Metrics) AddCandidates(n int) {
	if m == nil {
		return
	}
	m.candidates.Add(float64(n))
}

// AddNewGames counts new arrivals committed by a run.
func (m *Metrics) AddNewGames(n int) {
	if m == nil {
		return
	}
	m.newGames.Add(float64(n))
}

// IncRuns counts one committed run.
func (m *Metrics) IncRuns() {
	if m == nil {
		return
	}
	m.runsCompleted.Inc()
}
