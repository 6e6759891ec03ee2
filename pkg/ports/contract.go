package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := &domain.Snapshot{
			SessionID:  sessionID,
			State:      domain.StateAnimating,
			Step:       3,
			TotalSteps: 5,
			StartedAt:  time.Now().UTC(),
			UpdatedAt:  time.Now().UTC(),
		}

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snap.SessionID, loaded.SessionID)
		assert.Equal(t, domain.StateAnimating, loaded.State)
		assert.Equal(t, 3, loaded.Step)
		assert.Equal(t, 5, loaded.TotalSteps)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		err := store.Save(ctx, sessionID, &domain.Snapshot{SessionID: sessionID, Step: 1, TotalSteps: 5})
		require.NoError(t, err)
		err = store.Save(ctx, sessionID, &domain.Snapshot{SessionID: sessionID, Step: 4, TotalSteps: 5})
		require.NoError(t, err)

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 4, loaded.Step)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, &domain.Snapshot{SessionID: sessionID})
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, &domain.Snapshot{SessionID: id1})
		_ = store.Save(ctx, id2, &domain.Snapshot{SessionID: id2})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
