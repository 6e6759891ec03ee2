package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagewalk/stagewalk/pkg/adapters/memory"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/observability"
)

func TestRecorder_PersistsSessionProgress(t *testing.T) {
	store := memory.NewStore()
	hooks := observability.NewRecorder(store, nil).Hooks()
	ctx := context.Background()

	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	hooks.OnSessionStart(ctx, &domain.SessionEvent{
		Timestamp: started, SessionID: "s1", State: domain.StateInitializing, TotalSteps: 2,
	})

	snap, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateInitializing, snap.State)
	assert.Equal(t, 0, snap.Step)
	assert.Equal(t, 2, snap.TotalSteps)
	assert.Equal(t, started, snap.StartedAt)

	hooks.OnStep(ctx, &domain.StepEvent{
		Timestamp: started.Add(time.Second), SessionID: "s1", Index: 0, Kind: domain.StepNode, TargetID: "a",
	})

	snap, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateAnimating, snap.State)
	assert.Equal(t, 1, snap.Step)
	assert.Equal(t, 2, snap.TotalSteps, "step updates must not clobber the total")
	assert.Equal(t, started, snap.StartedAt)
	assert.Equal(t, started.Add(time.Second), snap.UpdatedAt)

	hooks.OnComplete(ctx, &domain.SessionEvent{
		Timestamp: started.Add(2 * time.Second), SessionID: "s1", State: domain.StateComplete, TotalSteps: 2,
	})

	snap, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateComplete, snap.State)
	assert.Equal(t, 2, snap.Step)
	assert.Equal(t, started, snap.StartedAt)
}

func TestRecorder_RecordsCancellation(t *testing.T) {
	store := memory.NewStore()
	hooks := observability.NewRecorder(store, nil).Hooks()
	ctx := context.Background()

	hooks.OnSessionStart(ctx, &domain.SessionEvent{SessionID: "s1", State: domain.StateInitializing, TotalSteps: 5})
	hooks.OnStep(ctx, &domain.StepEvent{SessionID: "s1", Index: 0, Kind: domain.StepNode})
	hooks.OnCancel(ctx, &domain.SessionEvent{SessionID: "s1", State: domain.StateCancelled, TotalSteps: 5})

	snap, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateCancelled, snap.State)
	assert.Equal(t, 1, snap.Step, "cancellation keeps the last revealed position")
	assert.Equal(t, 5, snap.TotalSteps)
}
