package playback

import (
	"github.com/stagewalk/stagewalk/pkg/domain"
)

// step executes one reveal of the concatenated node-then-edge order. It is
// always entered from a scheduled continuation, so the first thing it does is
// re-check that it still belongs to the live session.
//
// Steps execute strictly in stepIndex order with no overlap: the next step is
// scheduled only after this one's synchronous work has been issued. Pulse and
// fit side effects stay pending in the background but never re-enter the
// scheduling path.
func (m *Manager) step(s *session) {
	m.mu.Lock()
	if m.current != s || s.state != domain.StateAnimating {
		m.mu.Unlock()
		return // stale continuation from a superseded session
	}

	target := s.prepared.Steps[s.stepIndex]
	index := s.stepIndex

	switch target.Kind {
	case domain.StepNode:
		s.handle.ShowNode(target.ID, domain.StyleActive)
		// Fire-and-forget pulse: the settled re-style must not delay the
		// step cadence.
		nodeID := target.ID
		m.scheduleLocked(s, m.timing.PulseDuration, func() { m.settle(s, nodeID) })
	case domain.StepEdge:
		s.handle.ShowEdge(target.ID, domain.StyleRevealed)
	}

	s.stepIndex++
	count := s.stepIndex
	refit := count%refitEvery == 0 || count == s.prepared.TotalSteps()
	if refit {
		s.handle.Fit(m.timing.FitDuration)
	}

	ev := &domain.StepEvent{
		Timestamp: m.clock.Now(),
		SessionID: s.id,
		Index:     index,
		Kind:      target.Kind,
		TargetID:  target.ID,
		Refit:     refit,
	}

	if count == s.prepared.TotalSteps() {
		done := m.completeLocked(s)
		m.mu.Unlock()
		m.fireStep(ev)
		done()
		return
	}

	m.scheduleLocked(s, m.timing.StepInterval, func() { m.step(s) })
	m.mu.Unlock()
	m.fireStep(ev)
}

// settle flips a pulsed node to its resting style. Best-effort: it may fire
// after a later step, or after completion released the surface, in which case
// the handle absorbs it.
func (m *Manager) settle(s *session, nodeID string) {
	m.mu.Lock()
	if m.current != s {
		m.mu.Unlock()
		return
	}
	handle := s.handle
	m.mu.Unlock()

	if handle != nil {
		handle.ShowNode(nodeID, domain.StyleSettled)
	}
}
