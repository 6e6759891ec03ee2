package stagewalk

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/playback"
	"github.com/stagewalk/stagewalk/pkg/ports"
	"github.com/stagewalk/stagewalk/pkg/surface"
)

// Version is the library version, surfaced by the CLI and the MCP adapter.
var Version = "0.1.0"

// Engine is the high-level entry point for the Stagewalk library.
// It wraps the playback manager and provides a simplified API for consumers.
type Engine struct {
	manager *playback.Manager

	managerOpts []playback.ManagerOption
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithHooks registers observability hooks. May be given more than once;
// all registered hooks are invoked.
func WithHooks(hooks domain.PlaybackHooks) Option {
	return func(e *Engine) {
		e.managerOpts = append(e.managerOpts, playback.WithHooks(hooks))
	}
}

// WithTiming overrides the playback cadence.
func WithTiming(t playback.Timing) Option {
	return func(e *Engine) {
		e.managerOpts = append(e.managerOpts, playback.WithTiming(t))
	}
}

// WithClock injects a custom clock, used by tests to drive playback
// deterministically.
func WithClock(c ports.Clock) Option {
	return func(e *Engine) {
		e.managerOpts = append(e.managerOpts, playback.WithClock(c))
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.managerOpts = append(e.managerOpts, playback.WithLogger(logger))
	}
}

// WithContainer names the render-surface container playback attaches to
// (default: "main").
func WithContainer(container string) Option {
	return func(e *Engine) {
		e.managerOpts = append(e.managerOpts, playback.WithContainer(container))
	}
}

// WithAcquireTimeout bounds how long a session waits for the render surface
// before degrading to a silent run.
func WithAcquireTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.managerOpts = append(e.managerOpts, playback.WithAcquireTimeout(d))
	}
}

// New initializes a new Stagewalk Engine rendering onto the given surface
// provider.
func New(provider ports.SurfaceProvider, opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		eng.managerOpts = append(eng.managerOpts, playback.WithLogger(eng.logger))
	}

	eng.manager = playback.NewManager(provider, eng.managerOpts...)
	return eng
}

// Play validates the dataset and starts a playback session, superseding any
// session already running. An empty dataset tears the current session down
// and leaves the engine idle. onComplete, if non-nil, fires exactly once when
// the session finishes.
func (e *Engine) Play(ds *domain.Dataset, skip bool, onComplete func()) domain.Progress {
	return e.manager.Play(ds, skip, onComplete)
}

// Progress reports the position and state of the current session.
func (e *Engine) Progress() domain.Progress {
	return e.manager.Progress()
}

// Stop cancels the current session, if any, and releases the surface.
func (e *Engine) Stop() {
	e.manager.Stop()
}

// Close stops playback and rejects further Play calls.
func (e *Engine) Close() {
	e.manager.Close()
}

// Lazy wraps a surface initializer so the expensive setup runs on the first
// session and its outcome, success or failure, is shared by all later ones.
func Lazy(init func(context.Context) (ports.SurfaceProvider, error)) ports.SurfaceProvider {
	return surface.NewLazy(init)
}
