package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stagewalk/stagewalk/pkg/domain"
)

// Metrics exposes playback counters to Prometheus.
type Metrics struct {
	sessionsStarted *prometheus.CounterVec
	stepsRevealed   *prometheus.CounterVec
	refits          prometheus.Counter
	completions     prometheus.Counter
	cancellations   prometheus.Counter
	activeSessions  prometheus.Gauge
}

// NewMetrics creates and registers the playback metrics on the given
// registerer (use prometheus.DefaultRegisterer for the global registry).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stagewalk",
			Name:      "sessions_started_total",
			Help:      "Playback sessions started, by mode.",
		}, []string{"mode"}),
		stepsRevealed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stagewalk",
			Name:      "steps_revealed_total",
			Help:      "Reveal steps issued, by element kind.",
		}, []string{"kind"}),
		refits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stagewalk",
			Name:      "refits_total",
			Help:      "View re-frame requests issued during playback.",
		}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stagewalk",
			Name:      "sessions_completed_total",
			Help:      "Playback sessions that ran to completion.",
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stagewalk",
			Name:      "sessions_cancelled_total",
			Help:      "Playback sessions cancelled by supersession or teardown.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stagewalk",
			Name:      "active_sessions",
			Help:      "Live playback sessions (0 or 1).",
		}),
	}
	reg.MustRegister(
		m.sessionsStarted,
		m.stepsRevealed,
		m.refits,
		m.completions,
		m.cancellations,
		m.activeSessions,
	)
	return m
}

// Hooks returns the playback hooks feeding these metrics.
func (m *Metrics) Hooks() domain.PlaybackHooks {
	return domain.PlaybackHooks{
		OnSessionStart: func(_ context.Context, ev *domain.SessionEvent) {
			mode := "animate"
			if ev.Skip {
				mode = "skip"
			}
			m.sessionsStarted.WithLabelValues(mode).Inc()
			m.activeSessions.Set(1)
		},
		OnStep: func(_ context.Context, ev *domain.StepEvent) {
			m.stepsRevealed.WithLabelValues(string(ev.Kind)).Inc()
			if ev.Refit {
				m.refits.Inc()
			}
		},
		OnComplete: func(_ context.Context, _ *domain.SessionEvent) {
			m.completions.Inc()
			m.activeSessions.Set(0)
		},
		OnCancel: func(_ context.Context, _ *domain.SessionEvent) {
			m.cancellations.Inc()
			m.activeSessions.Set(0)
		},
	}
}
