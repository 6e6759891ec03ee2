package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/stagewalk/stagewalk/pkg/domain"
)

// StreamManager fans playback events out to active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
}

// NewStreamManager creates an empty stream manager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the connection goes away.
func (sm *StreamManager) Subscribe() (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 16)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast sends a message to every subscriber, dropping it for clients
// whose buffer is full rather than blocking the playback goroutine.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			slog.Warn("SSE: client buffer full, dropping message")
		}
	}
}

// streamEvent is the wire shape of one SSE payload.
type streamEvent struct {
	Type    string               `json:"type"` // session | step
	Session *domain.SessionEvent `json:"session,omitempty"`
	Step    *domain.StepEvent    `json:"step,omitempty"`
}

// StreamHooks adapts a StreamManager into playback hooks so every session
// and step event reaches SSE subscribers.
func StreamHooks(sm *StreamManager) domain.PlaybackHooks {
	broadcast := func(ev streamEvent) {
		data, err := json.Marshal(ev)
		if err != nil {
			slog.Debug("SSE: event encode failed", "err", err)
			return
		}
		sm.Broadcast(string(data))
	}

	return domain.PlaybackHooks{
		OnSessionStart: func(_ context.Context, ev *domain.SessionEvent) {
			broadcast(streamEvent{Type: "session", Session: ev})
		},
		OnStep: func(_ context.Context, ev *domain.StepEvent) {
			broadcast(streamEvent{Type: "step", Step: ev})
		},
		OnComplete: func(_ context.Context, ev *domain.SessionEvent) {
			broadcast(streamEvent{Type: "session", Session: ev})
		},
		OnCancel: func(_ context.Context, ev *domain.SessionEvent) {
			broadcast(streamEvent{Type: "session", Session: ev})
		},
	}
}
