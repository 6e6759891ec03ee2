package playback_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagewalk/stagewalk/internal/testutils"
	"github.com/stagewalk/stagewalk/pkg/adapters/memory"
	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/playback"
)

func TestSequencer_RevealOrderAndPulse(t *testing.T) {
	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	done := false
	m.Play(sampleDataset(), false, func() { done = true })
	waitForTimers(t, clock)
	clock.Advance(10 * time.Second)

	require.True(t, done)
	d := surface.Last()
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Loads())

	// Nodes first (pulse then settle), then edges, in dataset order.
	want := []memory.Reveal{
		{Kind: domain.StepNode, ID: "a", Style: domain.StyleActive},
		{Kind: domain.StepNode, ID: "a", Style: domain.StyleSettled},
		{Kind: domain.StepNode, ID: "b", Style: domain.StyleActive},
		{Kind: domain.StepNode, ID: "b", Style: domain.StyleSettled},
		{Kind: domain.StepNode, ID: "c", Style: domain.StyleActive},
		{Kind: domain.StepNode, ID: "c", Style: domain.StyleSettled},
		{Kind: domain.StepEdge, ID: "e1", Style: domain.StyleRevealed},
		{Kind: domain.StepEdge, ID: "e2", Style: domain.StyleRevealed},
	}
	assert.Equal(t, want, d.Reveals())
	assert.True(t, d.Destroyed(), "surface released on completion")
}

func TestSequencer_Cadence(t *testing.T) {
	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	m.Play(sampleDataset(), false, nil)
	waitForTimers(t, clock)
	d := surface.Last()

	// Nothing happens before the initial delay elapses.
	clock.Advance(499 * time.Millisecond)
	assert.Empty(t, d.Reveals())

	clock.Advance(1 * time.Millisecond)
	require.Len(t, d.Reveals(), 1)
	assert.Equal(t, domain.StyleActive, d.NodeStyle("a"))

	// The pulse settles before the next step fires.
	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, domain.StyleSettled, d.NodeStyle("a"))
	require.Len(t, d.Reveals(), 2)

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, domain.StyleActive, d.NodeStyle("b"))
}

func TestSequencer_RefitEveryFifthAndFinalStep(t *testing.T) {
	ds := &domain.Dataset{}
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("n%d", i)
		ds.Nodes = append(ds.Nodes, domain.Node{ID: id})
		ds.NodeOrder = append(ds.NodeOrder, id)
	}

	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	m.Play(ds, false, nil)
	waitForTimers(t, clock)
	clock.Advance(10 * time.Second)

	// Re-frame on the 5th reveal and again on the final (7th) one.
	assert.Equal(t, 2, surface.Last().Fits())
}

func TestSequencer_FinalStepOnCadenceRefitsOnce(t *testing.T) {
	ds := &domain.Dataset{}
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("n%d", i)
		ds.Nodes = append(ds.Nodes, domain.Node{ID: id})
		ds.NodeOrder = append(ds.NodeOrder, id)
	}

	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	m.Play(ds, false, nil)
	waitForTimers(t, clock)
	clock.Advance(10 * time.Second)

	assert.Equal(t, 1, surface.Last().Fits())
}

func TestSequencer_CompletionFiresExactlyOnce(t *testing.T) {
	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	calls := 0
	m.Play(sampleDataset(), false, func() { calls++ })
	waitForTimers(t, clock)
	clock.Advance(10 * time.Second)
	clock.Advance(10 * time.Second)

	assert.Equal(t, 1, calls)
}

func TestSequencer_ZeroOrderCompletesWithoutSteps(t *testing.T) {
	ds := &domain.Dataset{
		Nodes: []domain.Node{{ID: "a"}, {ID: "b"}},
		Edges: []domain.Edge{{ID: "e1", From: "a", To: "b"}},
	}

	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	done := make(chan struct{})
	progress := m.Play(ds, false, func() { close(done) })
	assert.Equal(t, 0, progress.TotalSteps)

	// Completion does not wait for any timer when there is nothing to reveal.
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected completion without advancing the clock")
	}

	assert.Empty(t, surface.Last().Reveals())
	assert.Equal(t, domain.StateComplete, m.Progress().State)
}

func TestSequencer_UnknownOrderIDsAreNoOpSteps(t *testing.T) {
	ds := sampleDataset()
	ds.NodeOrder = []string{"a", "ghost", "b", "c"}
	ds.EdgeOrder = []string{"e1", "phantom", "e2"}

	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()
	m := playback.NewManager(surface, playback.WithClock(clock))
	defer m.Close()

	done := false
	progress := m.Play(ds, false, func() { done = true })
	assert.Equal(t, 7, progress.TotalSteps, "dangling references still count as steps")

	waitForTimers(t, clock)
	clock.Advance(20 * time.Second)

	require.True(t, done, "dangling references must not stall playback")

	d := surface.Last()
	for _, r := range d.Reveals() {
		assert.NotEqual(t, "ghost", r.ID)
		assert.NotEqual(t, "phantom", r.ID)
	}
}

func TestSequencer_NodeOrderWinsDuplicateIDs(t *testing.T) {
	// "x" appears in both orders; it must be treated as a node step both times.
	ds := &domain.Dataset{
		Nodes:     []domain.Node{{ID: "x"}},
		Edges:     []domain.Edge{{ID: "e1", From: "x", To: "x"}},
		NodeOrder: []string{"x"},
		EdgeOrder: []string{"x", "e1"},
	}

	surface := memory.NewSurface()
	clock := testutils.NewFakeClock()

	var kinds []domain.StepKind
	m := playback.NewManager(surface,
		playback.WithClock(clock),
		playback.WithHooks(domain.PlaybackHooks{
			OnStep: func(_ context.Context, ev *domain.StepEvent) {
				kinds = append(kinds, ev.Kind)
			},
		}),
	)
	defer m.Close()

	m.Play(ds, false, nil)
	waitForTimers(t, clock)
	clock.Advance(10 * time.Second)

	assert.Equal(t, []domain.StepKind{domain.StepNode, domain.StepNode, domain.StepEdge}, kinds)
}
