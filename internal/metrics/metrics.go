// Package metrics exposes Prometheus counters for the games and the
// leaderboard, plus a small ops HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "discord_bot"

// Metrics holds every collector the bot records to.
type Metrics struct {
	Registry *prometheus.Registry

	Guesses       *prometheus.CounterVec
	Awards        *prometheus.CounterVec
	StoreErrors   *prometheus.CounterVec
	RoundsStarted *prometheus.CounterVec
	Lookups       *prometheus.CounterVec
	Commands      *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Guesses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_total",
			Help:      "Guesses handled, by game and outcome.",
		}, []string{"game", "outcome"}),
		Awards: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_awarded_total",
			Help:      "Points awarded, by category.",
		}, []string{"category"}),
		StoreErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Leaderboard store failures, by backend and operation.",
		}, []string{"backend", "op"}),
		RoundsStarted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Rounds started, by game.",
		}, []string{"game"}),
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meaning_lookups_total",
			Help:      "Meaning lookups, by the source that answered.",
		}, []string{"source"}),
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Chat commands dispatched.",
		}, []string{"command"}),
	}
}

// ObservePendingAnnouncements exports the number of scheduled but not yet
// fired announcements.
func (m *Metrics) ObservePendingAnnouncements(pending func() int) {
	promauto.With(m.Registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_announcements",
		Help:      "Delayed game announcements waiting to fire.",
	}, func() float64 { return float64(pending()) })
}
