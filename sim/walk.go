// sim/walk.go
//
// Per-case walk engine. One caseWalk is created per production batch, runs
// the dual-phase traversal to completion, and is discarded; it never touches
// another case's state, which is what makes cross-case parallelism safe.

package sim

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Synthetic material arrival happens a bounded random offset before the
// run's nominal start.
const (
	arrivalOffsetMinDays = 0.1
	arrivalOffsetMaxDays = 0.5
)

// caseResult is the self-contained outcome of one case's walk.
type caseResult struct {
	Events           []Event
	ReworkEvents     int
	Truncated        bool // a phase hit the iteration safety bound
	MissingPivot     bool // the pivot event was never emitted; no core-production events
	ReworkSuppressed bool // the detour budget ran out while reworkable stages remained
}

// caseWalk holds the mutable cursor/clock state of a single case.
type caseWalk struct {
	flow *Flow
	rng  *rand.Rand
	opts *Options

	caseID    string
	batchSize int
	clock     time.Time

	result caseResult
}

func newCaseWalk(flow *Flow, rng *rand.Rand, opts *Options, caseID string) *caseWalk {
	return &caseWalk{
		flow:      flow,
		rng:       rng,
		opts:      opts,
		caseID:    caseID,
		batchSize: opts.BatchSizeMin + rng.Intn(opts.BatchSizeMax-opts.BatchSizeMin+1),
	}
}

// run walks the whole flow for this case and returns its events in emission
// order. Timestamps never decrease within a case: the clock only moves
// forward, and a rework detour re-anchors it to the detour event's own
// timestamp.
func (w *caseWalk) run() caseResult {
	// Material arrival precedes the nominal run start by a bounded offset.
	offsetDays := arrivalOffsetMinDays + w.rng.Float64()*(arrivalOffsetMaxDays-arrivalOffsetMinDays)
	arrival := w.opts.Start.Add(-time.Duration(offsetDays * 24 * float64(time.Hour)))
	w.clock = arrival
	w.emit(w.flow.Stages[0].Name, arrival)

	// Phase A: intake walk up to (not consuming) the pivot.
	w.walk(1, w.flow.PivotIndex(), declaredResolver{flow: w.flow})

	if w.result.Truncated {
		// Defensive guard: without a pivot event there is nothing to anchor
		// the core-production phase to. The case keeps its intake events.
		w.result.MissingPivot = true
		logrus.Warnf("case %s: intake walk truncated before reaching pivot %q; skipping core production", w.caseID, w.flow.Pivot)
		return w.result
	}

	// The pivot executes unconditionally; its timestamp is captured here at
	// emission time and re-anchors the clock for the core-production walk.
	pivot := w.flow.Stages[w.flow.PivotIndex()]
	pivotTime := w.clock.Add(w.drawDuration(pivot))
	w.emit(pivot.Name, pivotTime)
	w.clock = pivotTime

	// Phase B: core production, strictly after the pivot.
	w.walk(w.flow.PivotIndex()+1, w.flow.Len(), overrideResolver{flow: w.flow})

	return w.result
}

// walk advances the cursor from lo until it runs past hi, executing one
// stage per iteration. Rework detours jump the cursor backward to the
// position the resolver supplies; everything else about the two sub-paths is
// identical.
func (w *caseWalk) walk(lo, hi int, resolver ReworkResolver) {
	// With the detour budget exhausted the cursor strictly advances, so this
	// bound only trips on a walk that misbehaves.
	maxIterations := w.flow.Len() * (w.opts.MaxDetours + 2)

	cursor := lo
	for iterations := 0; cursor < hi; iterations++ {
		if iterations >= maxIterations {
			w.result.Truncated = true
			logrus.Warnf("case %s: walk exceeded %d iterations at stage %q; truncating", w.caseID, maxIterations, w.flow.Stages[cursor].Name)
			return
		}

		stage := w.flow.Stages[cursor]

		// Occurrence draw; a skipped stage emits nothing and consumes no time.
		if w.rng.Float64() >= stage.Chance {
			cursor++
			continue
		}

		candidate := w.clock.Add(w.drawDuration(stage))

		if resumeIdx, ok := resolver.Resolve(cursor); ok {
			if w.result.ReworkEvents >= w.opts.MaxDetours {
				w.result.ReworkSuppressed = true
			} else if w.rng.Float64() < w.opts.ReworkProbability {
				logrus.Debugf("case %s: rework at %q, resuming at %q", w.caseID, stage.Name, w.flow.Stages[resumeIdx].Name)
				w.emit(ReworkActivity(stage.Name), candidate)
				w.result.ReworkEvents++
				w.clock = candidate
				cursor = resumeIdx
				continue
			}
		}

		w.emit(stage.Name, candidate)
		w.clock = candidate
		cursor++
	}
}

// drawDuration samples the stage's elapsed time uniformly from its bounds.
func (w *caseWalk) drawDuration(stage Stage) time.Duration {
	minutes := stage.DurationMin + w.rng.Float64()*(stage.DurationMax-stage.DurationMin)
	return time.Duration(minutes * float64(time.Minute))
}

// emit appends one event, assigning a resource fresh from the pool.
func (w *caseWalk) emit(activity string, ts time.Time) {
	w.result.Events = append(w.result.Events, Event{
		CaseID:    w.caseID,
		Activity:  activity,
		Timestamp: ts,
		Resource:  w.opts.Resources[w.rng.Intn(len(w.opts.Resources))],
		BatchSize: w.batchSize,
	})
}
