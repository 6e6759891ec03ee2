package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stagewalk/stagewalk/internal/logging"
	"github.com/stagewalk/stagewalk/pkg/dataset"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
	"github.com/stagewalk/stagewalk/pkg/surface"
)

// Manager ties playback sessions to the identity of their inputs. It
// guarantees at most one live session, and full cleanup (timers cancelled,
// surface released) whenever the inputs change or the owner shuts down.
//
// Any call to Play restarts from scratch: superseding an in-flight session is
// always a full cancel-then-start, which is the simple behavior that keeps
// the cancellation invariants easy to uphold.
type Manager struct {
	adapter        *surface.Adapter
	clock          ports.Clock
	timing         Timing
	hooks          []domain.PlaybackHooks
	logger         *slog.Logger
	container      string
	acquireTimeout time.Duration

	mu      sync.Mutex
	current *session
	closed  bool
}

// NewManager creates a Manager that plays against surfaces opened on the
// given provider.
func NewManager(provider ports.SurfaceProvider, opts ...ManagerOption) *Manager {
	m := &Manager{
		clock:     ports.SystemClock(),
		timing:    DefaultTiming(),
		logger:    logging.NewNop(),
		container: "main",
	}
	for _, opt := range opts {
		opt(m)
	}

	surfaceOpts := []surface.Option{surface.WithLogger(m.logger)}
	if m.acquireTimeout > 0 {
		surfaceOpts = append(surfaceOpts, surface.WithAcquireTimeout(m.acquireTimeout))
	}
	m.adapter = surface.NewAdapter(provider, surfaceOpts...)
	return m
}

// Play synchronizes the engine with a new set of inputs. It cancels any
// session in flight, then either starts a fresh one or, for a nil/empty
// dataset, leaves the engine idle and renders nothing.
//
// onComplete is invoked at most once for this call, when all steps have been
// revealed (normal mode) or after the skip settle delay (skip mode). It runs
// outside the manager lock, so it may safely call back into Play.
func (m *Manager) Play(ds *domain.Dataset, skip bool, onComplete func()) domain.Progress {
	prepared, ok := dataset.Prepare(ds)

	m.mu.Lock()
	cancelled := m.teardownLocked()
	if !ok || m.closed {
		m.mu.Unlock()
		m.fireCancel(cancelled)
		return domain.Progress{State: domain.StateIdle}
	}

	s := &session{
		id:         uuid.NewString(),
		prepared:   prepared,
		skip:       skip,
		onComplete: onComplete,
		state:      domain.StateInitializing,
		startedAt:  m.clock.Now(),
	}
	m.current = s
	progress := s.progressLocked()
	start := s.eventLocked(m.clock.Now())
	m.mu.Unlock()

	m.fireCancel(cancelled)
	m.fireSessionStart(start)

	m.logger.Debug("playback session starting",
		"session_id", s.id,
		"total_steps", prepared.TotalSteps(),
		"skip", skip,
	)

	go m.initialize(s)
	return progress
}

// Stop tears down the current session, if any. Equivalent to Play with an
// empty dataset.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancelled := m.teardownLocked()
	m.mu.Unlock()
	m.fireCancel(cancelled)
}

// Close tears down the current session and marks the manager unusable.
// Subsequent Play calls render nothing.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	cancelled := m.teardownLocked()
	m.mu.Unlock()
	m.fireCancel(cancelled)
}

// Progress reports the observable position of the current session. It is
// display-only and not part of the control contract.
func (m *Manager) Progress() domain.Progress {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return domain.Progress{State: domain.StateIdle}
	}
	return m.current.progressLocked()
}

// initialize acquires and loads the surface, then hands off to the sequencer
// or the skip path. It runs on its own goroutine because capability
// acquisition may block until the backend is ready or the timeout hits.
func (m *Manager) initialize(s *session) {
	handle := m.adapter.Acquire(context.Background(), m.container)

	m.mu.Lock()
	if m.current != s || s.state != domain.StateInitializing {
		m.mu.Unlock()
		handle.Release() // superseded while acquiring
		return
	}
	s.handle = handle
	m.mu.Unlock()

	// Full dataset lands in one transactional call, every element hidden.
	handle.Load(s.prepared.Nodes, s.prepared.Edges)

	m.mu.Lock()
	if m.current != s || s.state != domain.StateInitializing {
		m.mu.Unlock()
		return
	}

	if s.skip {
		s.state = domain.StateSkippingToFinal
		m.mu.Unlock()
		m.runSkip(s)
		return
	}

	if s.prepared.TotalSteps() == 0 {
		// No order information supplied: complete without any reveal step.
		done := m.completeLocked(s)
		m.mu.Unlock()
		done()
		return
	}

	s.state = domain.StateAnimating
	m.scheduleLocked(s, m.timing.InitialDelay, func() { m.step(s) })
	m.mu.Unlock()
}

// teardownLocked detaches the current session and, if it is still live,
// cancels every outstanding continuation before releasing its surface.
// Returns the cancel event to fire outside the lock, or nil.
func (m *Manager) teardownLocked() *domain.SessionEvent {
	s := m.current
	m.current = nil
	if s == nil || s.state.Terminal() {
		return nil
	}

	s.state = domain.StateCancelled
	s.stopTimersLocked()
	if s.handle != nil {
		s.handle.Release()
	}
	return s.eventLocked(m.clock.Now())
}

// completeLocked transitions the session to Complete, releasing its surface.
// It returns the dispatch closure to run outside the lock so the completion
// callback may re-enter the manager.
func (m *Manager) completeLocked(s *session) func() {
	s.state = domain.StateComplete
	s.stopTimersLocked()
	if s.handle != nil {
		s.handle.Release()
	}

	if s.completed {
		return func() {}
	}
	s.completed = true

	cb := s.onComplete
	ev := s.eventLocked(m.clock.Now())
	return func() {
		m.fireComplete(ev)
		if cb != nil {
			cb()
		}
	}
}

// scheduleLocked registers a continuation with the session so teardown can
// cancel it before the surface goes away.
func (m *Manager) scheduleLocked(s *session, d time.Duration, fn func()) {
	s.timers = append(s.timers, m.clock.AfterFunc(d, fn))
}

func (m *Manager) fireSessionStart(ev *domain.SessionEvent) {
	if ev == nil {
		return
	}
	ctx := context.Background()
	for _, h := range m.hooks {
		if h.OnSessionStart != nil {
			h.OnSessionStart(ctx, ev)
		}
	}
}

func (m *Manager) fireStep(ev *domain.StepEvent) {
	ctx := context.Background()
	for _, h := range m.hooks {
		if h.OnStep != nil {
			h.OnStep(ctx, ev)
		}
	}
}

func (m *Manager) fireComplete(ev *domain.SessionEvent) {
	if ev == nil {
		return
	}
	ctx := context.Background()
	for _, h := range m.hooks {
		if h.OnComplete != nil {
			h.OnComplete(ctx, ev)
		}
	}
}

func (m *Manager) fireCancel(ev *domain.SessionEvent) {
	if ev == nil {
		return
	}
	ctx := context.Background()
	for _, h := range m.hooks {
		if h.OnCancel != nil {
			h.OnCancel(ctx, ev)
		}
	}
}
