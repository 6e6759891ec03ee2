package playback

import (
	"log/slog"
	"time"

	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
)

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithClock injects a custom clock. Tests use this to drive the cadence
// deterministically.
func WithClock(clock ports.Clock) ManagerOption {
	return func(m *Manager) {
		m.clock = clock
	}
}

// WithTiming overrides the playback cadence.
func WithTiming(t Timing) ManagerOption {
	return func(m *Manager) {
		m.timing = t
	}
}

// WithLogger configures a structured logger for the manager and its surface
// adapter.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHooks registers observability hooks. May be given multiple times; all
// registered hook sets are invoked.
func WithHooks(hooks domain.PlaybackHooks) ManagerOption {
	return func(m *Manager) {
		m.hooks = append(m.hooks, hooks)
	}
}

// WithContainer names the display container surfaces are bound to
// (default "main").
func WithContainer(container string) ManagerOption {
	return func(m *Manager) {
		m.container = container
	}
}

// WithAcquireTimeout bounds how long session initialization waits for the
// rendering capability.
func WithAcquireTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.acquireTimeout = d
	}
}
