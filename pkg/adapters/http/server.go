// Package http exposes playback control over a JSON API: start/inspect/stop
// the current session, stream step events over SSE, list persisted session
// snapshots, and let render-surface clients attach over WebSocket.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stagewalk/stagewalk/internal/logging"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
)

// Engine defines the interface for the playback core.
type Engine interface {
	Play(ds *domain.Dataset, skip bool, onComplete func()) domain.Progress
	Progress() domain.Progress
	Stop()
}

// Server wires the playback engine into HTTP handlers.
type Server struct {
	engine  Engine
	store   ports.SnapshotStore
	streams *StreamManager
	surface http.Handler
	logger  *slog.Logger
}

// HandlerOption configures the handler.
type HandlerOption func(*Server)

// WithStore enables the /sessions endpoints backed by a snapshot store.
func WithStore(store ports.SnapshotStore) HandlerOption {
	return func(s *Server) {
		s.store = store
	}
}

// WithStreams attaches a stream manager for the SSE event feed. The same
// manager must be registered as a playback hook (see StreamHooks).
func WithStreams(sm *StreamManager) HandlerOption {
	return func(s *Server) {
		s.streams = sm
	}
}

// WithSurfaceHandler mounts a render-surface attach endpoint (e.g. the
// WebSocket hub) at /surface.
func WithSurfaceHandler(h http.Handler) HandlerOption {
	return func(s *Server) {
		s.surface = h
	}
}

// WithLogger configures a logger for request diagnostics.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...HandlerOption) http.Handler {
	server := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Post("/playback", server.startPlayback)
	r.Get("/playback", server.getProgress)
	r.Delete("/playback", server.stopPlayback)
	r.Get("/playback/events", server.subscribeEvents)
	r.Get("/sessions", server.listSessions)
	r.Get("/sessions/{id}", server.getSession)
	r.Get("/healthz", server.health)
	r.Handle("/metrics", promhttp.Handler())
	if server.surface != nil {
		r.Handle("/surface", server.surface)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PlayRequest is the body of POST /playback.
type PlayRequest struct {
	Dataset *domain.Dataset `json:"dataset"`
	Skip    bool            `json:"skip"`
}

func (s *Server) startPlayback(w http.ResponseWriter, r *http.Request) {
	var body PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("playback start: invalid request body", "err", err)
		return
	}

	progress := s.engine.Play(body.Dataset, body.Skip, nil)
	if progress.State == domain.StateIdle {
		// Nothing to render; any previous session was torn down.
		writeJSON(w, http.StatusOK, progress)
		return
	}

	s.logger.Info("playback started",
		"session_id", progress.SessionID,
		"total_steps", progress.TotalSteps,
		"skip", body.Skip,
	)
	writeJSON(w, http.StatusAccepted, progress)
}

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Progress())
}

func (s *Server) stopPlayback(w http.ResponseWriter, r *http.Request) {
	s.engine.Stop()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "Snapshot store not configured", http.StatusNotFound)
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("session list failed", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "Snapshot store not configured", http.StatusNotFound)
		return
	}
	snap, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("session load failed", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	if s.streams == nil {
		http.Error(w, "Event streaming not configured", http.StatusNotFound)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("subscribeEvents: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := s.streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "err", err)
	}
}
