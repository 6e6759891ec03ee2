package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/stagewalk/stagewalk/pkg/domain"
)

// Store implements ports.SnapshotStore in process memory.
type Store struct {
	mu   sync.RWMutex
	data map[string]domain.Snapshot
}

// NewStore creates an empty snapshot store.
func NewStore() *Store {
	return &Store{data: make(map[string]domain.Snapshot)}
}

// Save persists a copy of the snapshot.
func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = *snap
	return nil
}

// Load retrieves a copy of the snapshot.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return &snap, nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored session IDs, sorted for stable output.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
