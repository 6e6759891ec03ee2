package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisStore "github.com/stagewalk/stagewalk/pkg/adapters/redis"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redisStore.Option) (*redisStore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redisStore.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunSnapshotStoreContract(t, store)
}

func TestStore_SnapshotsExpire(t *testing.T) {
	store, mr := newTestStore(t, redisStore.WithTTL(time.Minute))
	ctx := context.Background()

	snap := &domain.Snapshot{SessionID: "sess-1", State: domain.StateComplete, Step: 5, TotalSteps: 5}
	require.NoError(t, store.Save(ctx, "sess-1", snap))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateComplete, loaded.State)

	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestStore_CustomPrefixIsolatesKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	a := redisStore.NewFromClient(client, redisStore.WithPrefix("a:"))
	b := redisStore.NewFromClient(client, redisStore.WithPrefix("b:"))
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, "sess-1", &domain.Snapshot{SessionID: "sess-1"}))

	_, err := b.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	ids, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
