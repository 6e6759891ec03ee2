package playback

import (
	"time"

	"github.com/stagewalk/stagewalk/pkg/dataset"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
	"github.com/stagewalk/stagewalk/pkg/surface"
)

// session is one run of the playback engine bound to one prepared dataset.
// Only the Manager creates or destroys sessions; all fields are guarded by
// the Manager mutex.
type session struct {
	id         string
	prepared   *dataset.Prepared
	skip       bool
	onComplete func()

	state     domain.SessionState
	stepIndex int

	// handle owns the live render surface. Created during initialization,
	// released exactly once on any terminal or superseding transition.
	handle *surface.Handle

	// timers holds every outstanding scheduled continuation (step, pulse,
	// settle). All of them are stopped before the surface is released.
	timers []ports.Timer

	completed bool
	startedAt time.Time
}

func (s *session) stopTimersLocked() {
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

func (s *session) progressLocked() domain.Progress {
	return domain.Progress{
		SessionID:  s.id,
		Step:       s.stepIndex,
		TotalSteps: s.prepared.TotalSteps(),
		Animating:  !s.state.Terminal(),
		State:      s.state,
	}
}

func (s *session) eventLocked(now time.Time) *domain.SessionEvent {
	return &domain.SessionEvent{
		Timestamp:  now,
		SessionID:  s.id,
		State:      s.state,
		TotalSteps: s.prepared.TotalSteps(),
		Skip:       s.skip,
	}
}
