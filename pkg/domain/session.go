package domain

import "time"

// SessionState defines the lifecycle of a playback session.
type SessionState string

const (
	StateIdle            SessionState = "idle"
	StateInitializing    SessionState = "initializing"
	StateAnimating       SessionState = "animating"
	StateSkippingToFinal SessionState = "skipping_to_final"
	StateComplete        SessionState = "complete"
	StateCancelled       SessionState = "cancelled"
)

// Terminal reports whether no further transitions can occur.
func (s SessionState) Terminal() bool {
	return s == StateComplete || s == StateCancelled
}

// Progress is the observable position of a playback session.
// It is exposed for display purposes only and is not part of the
// control contract.
type Progress struct {
	SessionID  string       `json:"session_id"`
	Step       int          `json:"step"`
	TotalSteps int          `json:"total_steps"`
	Animating  bool         `json:"animating"`
	State      SessionState `json:"state"`
}

// Snapshot is a persisted view of a session's progress, kept so recent
// sessions can be inspected after the engine restarts.
type Snapshot struct {
	SessionID  string       `json:"session_id"`
	State      SessionState `json:"state"`
	Step       int          `json:"step"`
	TotalSteps int          `json:"total_steps"`
	Skip       bool         `json:"skip"`
	StartedAt  time.Time    `json:"started_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
