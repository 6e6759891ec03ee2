package surface

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stagewalk/stagewalk/internal/logging"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
)

// DefaultAcquireTimeout bounds how long Acquire waits for a lazily
// initialized capability before degrading to a no-op handle.
const DefaultAcquireTimeout = 5 * time.Second

// Adapter opens Handles against a SurfaceProvider.
type Adapter struct {
	provider ports.SurfaceProvider
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures the Adapter.
type Option func(*Adapter)

// WithAcquireTimeout overrides the capability acquisition timeout.
func WithAcquireTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		a.timeout = d
	}
}

// WithLogger configures a logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// NewAdapter creates an adapter around the given provider.
func NewAdapter(provider ports.SurfaceProvider, opts ...Option) *Adapter {
	a := &Adapter{
		provider: provider,
		timeout:  DefaultAcquireTimeout,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire binds a new rendering instance to the given display container.
//
// Acquire never fails: if the capability cannot be opened before the timeout,
// the returned handle is in a failed state and every operation on it is a
// silent no-op. The caller is expected to keep playing; completion signalling
// does not depend on a working surface.
func (a *Adapter) Acquire(ctx context.Context, container string) *Handle {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	driver, err := a.provider.Open(ctx, container)
	if err != nil {
		a.logger.Warn("surface capability unavailable, playback degrades to no-op",
			"container", container,
			"err", err,
		)
		return &Handle{failed: true, logger: a.logger}
	}
	return &Handle{driver: driver, logger: a.logger}
}

// Handle owns one live rendering instance. It is exclusively owned by the
// current playback session; all operations are safe on failed or released
// handles and swallow driver errors.
type Handle struct {
	mu       sync.Mutex
	driver   ports.SurfaceDriver
	failed   bool
	released bool
	logger   *slog.Logger
}

// Failed reports whether the capability never became available.
func (h *Handle) Failed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failed
}

// Load replaces the surface's full element set, every element hidden.
func (h *Handle) Load(nodes []domain.Node, edges []domain.Edge) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.driver == nil || h.released {
		return
	}
	if err := h.driver.Load(nodes, edges); err != nil {
		h.logger.Debug("surface load failed", "nodes", len(nodes), "edges", len(edges), "err", err)
	}
}

// ShowNode reveals or re-styles one node.
func (h *Handle) ShowNode(id string, style domain.Style) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.driver == nil || h.released {
		return
	}
	if err := h.driver.ShowNode(id, style); err != nil {
		h.logger.Debug("surface node reveal failed", "node", id, "style", style, "err", err)
	}
}

// ShowEdge reveals or re-styles one edge.
func (h *Handle) ShowEdge(id string, style domain.Style) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.driver == nil || h.released {
		return
	}
	if err := h.driver.ShowEdge(id, style); err != nil {
		h.logger.Debug("surface edge reveal failed", "edge", id, "style", style, "err", err)
	}
}

// Fit requests a view re-frame around currently visible elements.
// Failures are treated as instantaneous success so the playback cadence is
// unaffected.
func (h *Handle) Fit(duration time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.driver == nil || h.released {
		return
	}
	if err := h.driver.Fit(duration); err != nil {
		h.logger.Debug("surface re-frame failed", "err", err)
	}
}

// Release destroys the surface instance. Safe to call multiple times.
func (h *Handle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return
	}
	h.released = true
	if h.driver == nil {
		return
	}
	if err := h.driver.Destroy(); err != nil {
		h.logger.Debug("surface destroy failed", "err", err)
	}
}
