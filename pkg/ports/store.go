package ports

import (
	"context"

	"github.com/stagewalk/stagewalk/pkg/domain"
)

// SnapshotStore defines the interface for persisting playback progress.
// It lets operators inspect recent sessions across engine restarts or from
// other replicas; the playback core itself never depends on it.
type SnapshotStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSnapshotNotFound if the session is unknown.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the session IDs with a stored snapshot.
	List(ctx context.Context) ([]string, error)
}
