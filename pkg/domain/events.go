package domain

import (
	"context"
	"time"
)

// StepKind classifies a reveal step.
type StepKind string

const (
	StepNode StepKind = "node"
	StepEdge StepKind = "edge"
)

// SessionEvent describes a session-level transition (start, complete, cancel).
type SessionEvent struct {
	Timestamp  time.Time    `json:"timestamp"`
	SessionID  string       `json:"session_id"`
	State      SessionState `json:"state"`
	TotalSteps int          `json:"total_steps"`
	Skip       bool         `json:"skip"`
}

// StepEvent describes a single reveal step that was issued.
type StepEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Index     int       `json:"index"`
	Kind      StepKind  `json:"kind"`
	TargetID  string    `json:"target_id"`
	Refit     bool      `json:"refit"`
}

// PlaybackHooks defines callbacks for engine observability.
// Hooks are invoked synchronously from the playback goroutine; implementations
// must be fast and must not call back into the session lifecycle.
type PlaybackHooks struct {
	OnSessionStart func(context.Context, *SessionEvent)
	OnStep         func(context.Context, *StepEvent)
	OnComplete     func(context.Context, *SessionEvent)
	OnCancel       func(context.Context, *SessionEvent)
}
