package ports

import (
	"context"
	"time"

	"github.com/stagewalk/stagewalk/pkg/domain"
)

// SurfaceDriver is one live rendering instance bound to a display container.
// Drivers may fail at any call; the surface adapter swallows and logs those
// failures so they never abort the owning playback session.
type SurfaceDriver interface {
	// Load replaces the surface's full node/edge set in a single transactional
	// call. Every element starts hidden.
	Load(nodes []domain.Node, edges []domain.Edge) error

	// ShowNode reveals or re-styles one node. Unknown ids must be a no-op.
	ShowNode(id string, style domain.Style) error

	// ShowEdge reveals or re-styles one edge. Unknown ids must be a no-op.
	ShowEdge(id string, style domain.Style) error

	// Fit re-frames the view around currently visible elements. The visual
	// transition settles within roughly the given duration; drivers must not
	// block the caller on it.
	Fit(duration time.Duration) error

	// Destroy releases the instance. Called at most once per driver.
	Destroy() error
}

// SurfaceProvider opens rendering instances. Open may block while a lazily
// initialized capability becomes available; the surface adapter bounds that
// wait with a timeout and degrades to a no-op handle on failure.
type SurfaceProvider interface {
	Open(ctx context.Context, container string) (SurfaceDriver, error)
}
