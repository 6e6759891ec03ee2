package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stagewalk/stagewalk/internal/logging"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
)

// Recorder persists playback progress snapshots through a SnapshotStore.
// Store failures are logged and otherwise ignored; persistence must never
// disturb the playback cadence.
type Recorder struct {
	store  ports.SnapshotStore
	logger *slog.Logger

	mu      sync.Mutex
	started map[string]time.Time
}

// NewRecorder creates a recorder writing to the given store.
func NewRecorder(store ports.SnapshotStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Recorder{
		store:   store,
		logger:  logger,
		started: make(map[string]time.Time),
	}
}

// Hooks returns the playback hooks feeding the store.
func (r *Recorder) Hooks() domain.PlaybackHooks {
	return domain.PlaybackHooks{
		OnSessionStart: func(ctx context.Context, ev *domain.SessionEvent) {
			r.mu.Lock()
			r.started[ev.SessionID] = ev.Timestamp
			r.mu.Unlock()
			r.save(ctx, ev.SessionID, ev.State, 0, ev.TotalSteps, ev.Skip, ev.Timestamp)
		},
		OnStep: func(ctx context.Context, ev *domain.StepEvent) {
			r.save(ctx, ev.SessionID, domain.StateAnimating, ev.Index+1, -1, false, ev.Timestamp)
		},
		OnComplete: func(ctx context.Context, ev *domain.SessionEvent) {
			r.save(ctx, ev.SessionID, ev.State, ev.TotalSteps, ev.TotalSteps, ev.Skip, ev.Timestamp)
			r.forget(ev.SessionID)
		},
		OnCancel: func(ctx context.Context, ev *domain.SessionEvent) {
			r.save(ctx, ev.SessionID, ev.State, -1, ev.TotalSteps, ev.Skip, ev.Timestamp)
			r.forget(ev.SessionID)
		},
	}
}

func (r *Recorder) save(ctx context.Context, sessionID string, state domain.SessionState, step, total int, skip bool, at time.Time) {
	prev, err := r.store.Load(ctx, sessionID)
	if err != nil {
		prev = &domain.Snapshot{SessionID: sessionID}
	}
	if step >= 0 {
		prev.Step = step
	}
	if total >= 0 {
		prev.TotalSteps = total
		prev.Skip = skip
	}
	prev.State = state

	r.mu.Lock()
	if started, ok := r.started[sessionID]; ok {
		prev.StartedAt = started
	}
	r.mu.Unlock()
	prev.UpdatedAt = at

	if err := r.store.Save(ctx, sessionID, prev); err != nil {
		r.logger.Debug("snapshot save failed", "session_id", sessionID, "err", err)
	}
}

func (r *Recorder) forget(sessionID string) {
	r.mu.Lock()
	delete(r.started, sessionID)
	r.mu.Unlock()
}
