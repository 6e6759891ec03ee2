package playback_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagewalk/stagewalk/internal/testutils"
	"github.com/stagewalk/stagewalk/pkg/adapters/memory"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/playback"
)

func TestSkip_RevealsEverythingImmediately(t *testing.T) {
	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	done := false
	m.Play(sampleDataset(), true, func() { done = true })
	waitForTimers(t, clock)

	d := surface.Last()
	require.NotNil(t, d)

	// Every element lands in its resting style with a single re-frame,
	// before any time passes.
	assert.Equal(t, domain.StyleSettled, d.NodeStyle("a"))
	assert.Equal(t, domain.StyleSettled, d.NodeStyle("b"))
	assert.Equal(t, domain.StyleSettled, d.NodeStyle("c"))
	assert.Equal(t, domain.StyleRevealed, d.EdgeStyle("e1"))
	assert.Equal(t, domain.StyleRevealed, d.EdgeStyle("e2"))
	assert.Equal(t, 1, d.Fits())

	progress := m.Progress()
	assert.Equal(t, domain.StateSkippingToFinal, progress.State)
	assert.Equal(t, progress.TotalSteps, progress.Step)
	assert.False(t, done, "completion waits for the settle delay")

	clock.Advance(800 * time.Millisecond)

	assert.True(t, done)
	assert.Equal(t, domain.StateComplete, m.Progress().State)
	assert.True(t, d.Destroyed())
	assert.Equal(t, 1, d.Fits(), "skip mode re-frames exactly once")
}

func TestSkip_CompletionFiresExactlyOnce(t *testing.T) {
	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	calls := 0
	m.Play(sampleDataset(), true, func() { calls++ })
	waitForTimers(t, clock)
	clock.Advance(10 * time.Second)
	clock.Advance(10 * time.Second)

	assert.Equal(t, 1, calls)
}

func TestSkip_CompletesOnUnavailableSurface(t *testing.T) {
	surface := memory.NewSurface()
	surface.FailOpen(errors.New("renderer not installed"))
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	done := false
	m.Play(sampleDataset(), true, func() { done = true })
	waitForTimers(t, clock)
	clock.Advance(10 * time.Second)

	assert.True(t, done)
	assert.Equal(t, domain.StateComplete, m.Progress().State)
}

func TestSkip_SupersededBeforeSettleDoesNotComplete(t *testing.T) {
	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	skipDone := false
	m.Play(sampleDataset(), true, func() { skipDone = true })
	waitForTimers(t, clock)

	animateDone := false
	m.Play(sampleDataset(), false, func() { animateDone = true })
	require.Eventually(t, func() bool {
		return surface.OpenCount() == 2
	}, time.Second, time.Millisecond)

	waitForTimers(t, clock)
	clock.Advance(10 * time.Second)

	assert.False(t, skipDone, "superseded skip session must not complete")
	assert.True(t, animateDone)
}
