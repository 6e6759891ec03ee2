package playback

import (
	"github.com/stagewalk/stagewalk/pkg/domain"
)

// runSkip reveals the entire dataset immediately in its resting styles,
// requests one re-frame, and completes after a fixed settle delay. It never
// transitions through the per-step animating states.
func (m *Manager) runSkip(s *session) {
	m.mu.Lock()
	if m.current != s || s.state != domain.StateSkippingToFinal {
		m.mu.Unlock()
		return
	}

	for _, n := range s.prepared.Nodes {
		s.handle.ShowNode(n.ID, domain.StyleSettled)
	}
	for _, e := range s.prepared.Edges {
		s.handle.ShowEdge(e.ID, domain.StyleRevealed)
	}
	s.handle.Fit(m.timing.FitDuration)
	s.stepIndex = s.prepared.TotalSteps()

	m.scheduleLocked(s, m.timing.SkipSettleDelay, func() { m.finishSkip(s) })
	m.mu.Unlock()
}

func (m *Manager) finishSkip(s *session) {
	m.mu.Lock()
	if m.current != s || s.state != domain.StateSkippingToFinal {
		m.mu.Unlock()
		return
	}
	done := m.completeLocked(s)
	m.mu.Unlock()
	done()
}
