package surface_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagewalk/stagewalk/pkg/adapters/memory"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/surface"
)

func TestAdapter_AcquireOpensDriver(t *testing.T) {
	provider := memory.NewSurface()
	adapter := surface.NewAdapter(provider)

	h := adapter.Acquire(context.Background(), "main")
	require.False(t, h.Failed())

	h.Load([]domain.Node{{ID: "a"}}, nil)
	h.ShowNode("a", domain.StyleActive)
	h.Fit(time.Second)
	h.Release()

	d := provider.Last()
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Loads())
	assert.Equal(t, domain.StyleActive, d.NodeStyle("a"))
	assert.Equal(t, 1, d.Fits())
	assert.True(t, d.Destroyed())
}

func TestAdapter_FailedAcquireDegradesToNoOp(t *testing.T) {
	provider := memory.NewSurface()
	provider.FailOpen(errors.New("backend missing"))
	adapter := surface.NewAdapter(provider)

	h := adapter.Acquire(context.Background(), "main")
	assert.True(t, h.Failed())

	// Every operation is a silent no-op; nothing may panic.
	h.Load([]domain.Node{{ID: "a"}}, nil)
	h.ShowNode("a", domain.StyleActive)
	h.ShowEdge("e", domain.StyleRevealed)
	h.Fit(time.Second)
	h.Release()
	h.Release()

	assert.Equal(t, 0, provider.OpenCount())
}

func TestAdapter_AcquireTimesOutOnBlockedProvider(t *testing.T) {
	provider := memory.NewSurface()
	provider.Block()
	adapter := surface.NewAdapter(provider, surface.WithAcquireTimeout(20*time.Millisecond))

	start := time.Now()
	h := adapter.Acquire(context.Background(), "main")

	assert.True(t, h.Failed())
	assert.Less(t, time.Since(start), 5*time.Second, "acquire must respect the configured timeout")
}

func TestHandle_ReleaseIsIdempotent(t *testing.T) {
	provider := memory.NewSurface()
	adapter := surface.NewAdapter(provider)

	h := adapter.Acquire(context.Background(), "main")
	h.Release()
	h.Release()

	assert.True(t, provider.Last().Destroyed())
}

func TestHandle_OperationsAfterReleaseAreNoOps(t *testing.T) {
	provider := memory.NewSurface()
	adapter := surface.NewAdapter(provider)

	h := adapter.Acquire(context.Background(), "main")
	h.Load([]domain.Node{{ID: "a"}}, nil)
	h.Release()

	h.ShowNode("a", domain.StyleActive)
	h.Fit(time.Second)

	d := provider.Last()
	assert.Equal(t, domain.StyleHidden, d.NodeStyle("a"), "released handle must not touch the surface")
	assert.Equal(t, 0, d.Fits())
}

func TestHandle_SwallowsDriverErrors(t *testing.T) {
	provider := memory.NewSurface()
	adapter := surface.NewAdapter(provider)

	h := adapter.Acquire(context.Background(), "main")
	provider.Last().FailCalls(errors.New("render surface wedged"))

	// Driver failures degrade to no-ops; the cadence must never see them.
	h.Load([]domain.Node{{ID: "a"}}, nil)
	h.ShowNode("a", domain.StyleActive)
	h.Fit(time.Second)
	h.Release()
}
