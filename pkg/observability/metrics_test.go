package observability_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/stagewalk/stagewalk/pkg/domain"
	"github.com/stagewalk/stagewalk/pkg/observability"
)

func TestMetrics_CompletedSession(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := observability.NewMetrics(reg).Hooks()
	ctx := context.Background()

	hooks.OnSessionStart(ctx, &domain.SessionEvent{SessionID: "s1", State: domain.StateInitializing, TotalSteps: 3})
	hooks.OnStep(ctx, &domain.StepEvent{SessionID: "s1", Index: 0, Kind: domain.StepNode, TargetID: "a"})
	hooks.OnStep(ctx, &domain.StepEvent{SessionID: "s1", Index: 1, Kind: domain.StepNode, TargetID: "b"})
	hooks.OnStep(ctx, &domain.StepEvent{SessionID: "s1", Index: 2, Kind: domain.StepEdge, TargetID: "e1", Refit: true})
	hooks.OnComplete(ctx, &domain.SessionEvent{SessionID: "s1", State: domain.StateComplete, TotalSteps: 3})

	expected := `
		# HELP stagewalk_sessions_started_total Playback sessions started, by mode.
		# TYPE stagewalk_sessions_started_total counter
		stagewalk_sessions_started_total{mode="animate"} 1
		# HELP stagewalk_steps_revealed_total Reveal steps issued, by element kind.
		# TYPE stagewalk_steps_revealed_total counter
		stagewalk_steps_revealed_total{kind="edge"} 1
		stagewalk_steps_revealed_total{kind="node"} 2
		# HELP stagewalk_refits_total View re-frame requests issued during playback.
		# TYPE stagewalk_refits_total counter
		stagewalk_refits_total 1
		# HELP stagewalk_sessions_completed_total Playback sessions that ran to completion.
		# TYPE stagewalk_sessions_completed_total counter
		stagewalk_sessions_completed_total 1
		# HELP stagewalk_active_sessions Live playback sessions (0 or 1).
		# TYPE stagewalk_active_sessions gauge
		stagewalk_active_sessions 0
	`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"stagewalk_sessions_started_total",
		"stagewalk_steps_revealed_total",
		"stagewalk_refits_total",
		"stagewalk_sessions_completed_total",
		"stagewalk_active_sessions",
	))
}

func TestMetrics_SkipAndCancel(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := observability.NewMetrics(reg).Hooks()
	ctx := context.Background()

	hooks.OnSessionStart(ctx, &domain.SessionEvent{SessionID: "s1", Skip: true, TotalSteps: 3})
	hooks.OnCancel(ctx, &domain.SessionEvent{SessionID: "s1", State: domain.StateCancelled, Skip: true, TotalSteps: 3})

	expected := `
		# HELP stagewalk_sessions_started_total Playback sessions started, by mode.
		# TYPE stagewalk_sessions_started_total counter
		stagewalk_sessions_started_total{mode="skip"} 1
		# HELP stagewalk_sessions_cancelled_total Playback sessions cancelled by supersession or teardown.
		# TYPE stagewalk_sessions_cancelled_total counter
		stagewalk_sessions_cancelled_total 1
		# HELP stagewalk_active_sessions Live playback sessions (0 or 1).
		# TYPE stagewalk_active_sessions gauge
		stagewalk_active_sessions 0
	`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"stagewalk_sessions_started_total",
		"stagewalk_sessions_cancelled_total",
		"stagewalk_active_sessions",
	))
}
