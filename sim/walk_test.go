package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedOpts returns options that pin every free parameter except the ones a
// test overrides, so assertions can follow the clock exactly.
func fixedOpts(cases int) Options {
	return Options{
		Cases:             cases,
		Seed:              1,
		BatchSizeMin:      100,
		BatchSizeMax:      100,
		Resources:         []string{"Line 1"},
		ReworkProbability: 0,
		MaxDetours:        1,
	}
}

// The canonical detour scenario: a two-stage intake path where the check
// stage always fails once, jumps back, and then completes because the detour
// budget is spent.
func TestWalk_SingleDetourReplaysTarget(t *testing.T) {
	stages := []Stage{
		{Name: "Arrival", DurationMin: 0, DurationMax: 0, Chance: 1.0},
		{Name: "A", DurationMin: 5, DurationMax: 5, Chance: 1.0},
		{Name: "B", DurationMin: 10, DurationMax: 10, Chance: 1.0, ReworkTo: "A"},
		{Name: "Done", DurationMin: 0, DurationMax: 0, Chance: 1.0},
	}
	flow, err := NewFlow(stages, "Done", nil)
	require.NoError(t, err)

	opts := fixedOpts(1)
	opts.ReworkProbability = 1.0
	opts.MaxDetours = 1

	events, report, err := Generate(context.Background(), flow, opts)
	require.NoError(t, err)

	var activities []string
	for _, e := range events {
		activities = append(activities, e.Activity)
	}
	assert.Equal(t, []string{"Arrival", "A", "REWORK_B", "A", "B", "Done"}, activities)

	// Exactly one detour, then the budget suppresses the second failure.
	assert.Equal(t, 1, report.ReworkEvents)
	assert.Equal(t, 1, report.ReworkSuppressedCases)
	assert.Equal(t, 0, report.TruncatedCases)
	assert.Equal(t, 0, report.MissingPivotCases)

	arrival := events[0].Timestamp
	assert.Equal(t, arrival.Add(5*time.Minute), events[1].Timestamp, "first A")
	assert.Equal(t, arrival.Add(15*time.Minute), events[2].Timestamp, "rework at B")
	// The clock resumes at the rework timestamp with zero gap; the replayed
	// stage still consumes its own drawn duration.
	assert.Equal(t, arrival.Add(20*time.Minute), events[3].Timestamp, "replayed A")
	assert.Equal(t, arrival.Add(30*time.Minute), events[4].Timestamp, "completed B")
	assert.Equal(t, arrival.Add(30*time.Minute), events[5].Timestamp, "pivot")

	// Arrival precedes the nominal run start by the bounded offset.
	assert.True(t, arrival.Before(DefaultStart))
	assert.True(t, arrival.After(DefaultStart.Add(-12*time.Hour)))
}

// Core-production detours resume after the checkpoint, redoing the failed
// stage rather than the checkpoint itself.
func TestWalk_CoreProductionResumesAfterCheckpoint(t *testing.T) {
	stages := []Stage{
		{Name: "Arrival", DurationMin: 0, DurationMax: 0, Chance: 1.0},
		{Name: "Start", DurationMin: 0, DurationMax: 0, Chance: 1.0},
		{Name: "Assemble", DurationMin: 5, DurationMax: 5, Chance: 1.0},
		{Name: "Inspect", DurationMin: 10, DurationMax: 10, Chance: 1.0, ReworkTo: "Assemble"},
		{Name: "Ship", DurationMin: 1, DurationMax: 1, Chance: 1.0},
	}
	flow, err := NewFlow(stages, "Start", map[string]string{"Inspect": "Assemble"})
	require.NoError(t, err)

	opts := fixedOpts(1)
	opts.ReworkProbability = 1.0
	opts.MaxDetours = 1

	events, _, err := Generate(context.Background(), flow, opts)
	require.NoError(t, err)

	var activities []string
	for _, e := range events {
		activities = append(activities, e.Activity)
	}
	// The detour at Inspect returns to the slot after Assemble: Inspect is
	// redone, Assemble is not.
	assert.Equal(t, []string{"Arrival", "Start", "Assemble", "REWORK_Inspect", "Inspect", "Ship"}, activities)
}

// A core-production stage with a rework link but no checkpoint override is
// non-reworkable there: it always completes normally.
func TestWalk_UnmappedOverrideFallsBackToForward(t *testing.T) {
	stages := []Stage{
		{Name: "Arrival", DurationMin: 0, DurationMax: 0, Chance: 1.0},
		{Name: "Start", DurationMin: 0, DurationMax: 0, Chance: 1.0},
		{Name: "Inspect", DurationMin: 10, DurationMax: 10, Chance: 1.0, ReworkTo: "Start"},
		{Name: "Ship", DurationMin: 1, DurationMax: 1, Chance: 1.0},
	}
	flow, err := NewFlow(stages, "Start", nil)
	require.NoError(t, err)

	opts := fixedOpts(1)
	opts.ReworkProbability = 1.0

	events, report, err := Generate(context.Background(), flow, opts)
	require.NoError(t, err)

	assert.Equal(t, 0, report.ReworkEvents)
	for _, e := range events {
		assert.False(t, IsRework(e.Activity), "unexpected rework event %s", e.Activity)
	}
}

// A stage that never occurs consumes neither an event nor simulated time.
func TestWalk_SkippedStageEmitsNothing(t *testing.T) {
	stages := []Stage{
		{Name: "Arrival", DurationMin: 0, DurationMax: 0, Chance: 1.0},
		{Name: "Optional", DurationMin: 60, DurationMax: 60, Chance: 0},
		{Name: "Start", DurationMin: 0, DurationMax: 0, Chance: 1.0},
		{Name: "Ship", DurationMin: 1, DurationMax: 1, Chance: 1.0},
	}
	flow, err := NewFlow(stages, "Start", nil)
	require.NoError(t, err)

	events, _, err := Generate(context.Background(), flow, fixedOpts(1))
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, []string{"Arrival", "Start", "Ship"}, []string{events[0].Activity, events[1].Activity, events[2].Activity})
	// No time passed between arrival and the pivot: Optional was skipped,
	// not rushed.
	assert.Equal(t, events[0].Timestamp, events[1].Timestamp)
}
