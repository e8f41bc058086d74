// sim/generator.go
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxDetours bounds rework detours per case when Options.MaxDetours
// is left zero. A healthy flow never detours anywhere near this often; the
// bound keeps adversarial probability/flow combinations terminating.
const DefaultMaxDetours = 16

// DefaultStart is the nominal run start used when Options.Start is zero.
var DefaultStart = time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)

// Options groups the run-level generation parameters.
type Options struct {
	Cases             int       // number of production batches to simulate (>= 0; 0 yields an empty log)
	Seed              int64     // master seed; fixes the whole log bit-for-bit
	BatchSizeMin      int       // inclusive batch size bounds, positive, min <= max
	BatchSizeMax      int
	Resources         []string  // non-empty pool; drawn fresh per event
	ReworkProbability float64   // in [0,1], applied at any stage the resolver marks reworkable
	MaxDetours        int       // per-case rework budget (0 = DefaultMaxDetours)
	Start             time.Time // nominal run start (zero = DefaultStart)
	Workers           int       // concurrent case walkers (0 or 1 = sequential)

	// Progress, when set, is called once per completed case. It may be
	// called from multiple goroutines when Workers > 1.
	Progress func(done, total int)
}

// Validate checks parameter ranges. Configuration errors surface here, never
// mid-generation.
func (o *Options) Validate() error {
	if o.Cases < 0 {
		return fmt.Errorf("cases must be non-negative, got %d", o.Cases)
	}
	if o.BatchSizeMin < 1 || o.BatchSizeMax < o.BatchSizeMin {
		return fmt.Errorf("invalid batch size range [%d, %d]", o.BatchSizeMin, o.BatchSizeMax)
	}
	if len(o.Resources) == 0 {
		return fmt.Errorf("resource pool must not be empty")
	}
	for i, r := range o.Resources {
		if r == "" {
			return fmt.Errorf("resource %d has an empty name", i)
		}
	}
	if o.ReworkProbability < 0 || o.ReworkProbability > 1 {
		return fmt.Errorf("rework probability %v outside [0,1]", o.ReworkProbability)
	}
	if o.MaxDetours < 0 {
		return fmt.Errorf("max detours must be non-negative, got %d", o.MaxDetours)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", o.Workers)
	}
	return nil
}

// CaseID formats the stable identifier of the i-th case (0-based input,
// 1-based identifier).
func CaseID(i int) string {
	return fmt.Sprintf("BATCH_%05d", i+1)
}

// Generate runs one independent walk per case over the flow and returns the
// flat event log: cases concatenated in case order, each case's events in
// emission order (chronological within the case). Cross-case chronology is
// NOT guaranteed; consumers sort with SortEvents before analysis.
//
// Generation is pure apart from its seeded random source: a fixed
// Options.Seed reproduces the log exactly, regardless of Workers.
// Cancellation via ctx is honored between cases; events of already-completed
// cases are returned alongside the context error, each case being a valid
// self-contained unit.
func Generate(ctx context.Context, flow *Flow, opts Options) ([]Event, *Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid generation options: %w", err)
	}
	if opts.MaxDetours == 0 {
		opts.MaxDetours = DefaultMaxDetours
	}
	if opts.Start.IsZero() {
		opts.Start = DefaultStart
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	logrus.Infof("generating %d cases over %d-stage flow (pivot %q, seed %d, workers %d)",
		opts.Cases, flow.Len(), flow.Pivot, opts.Seed, opts.Workers)

	streams := NewCaseStreams(NewRunKey(opts.Seed))
	results := make([]*caseResult, opts.Cases)

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i := 0; i < opts.Cases; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			caseID := CaseID(i)
			res := newCaseWalk(flow, streams.ForCase(caseID), &opts, caseID).run()

			mu.Lock()
			results[i] = &res
			done++
			d := done
			mu.Unlock()

			if opts.Progress != nil {
				opts.Progress(d, opts.Cases)
			}
			return nil
		})
	}

	runErr := g.Wait()
	if runErr == nil {
		runErr = ctx.Err()
	}

	report := NewReport()
	var events []Event
	for i := 0; i < opts.Cases; i++ {
		res := results[i]
		if res == nil {
			// Interrupted before this case completed; later cases are
			// dropped so the log stays a contiguous prefix of case order.
			break
		}
		events = append(events, res.Events...)
		report.observe(res)
	}
	report.Events = len(events)

	if runErr != nil {
		logrus.Warnf("generation interrupted after %d of %d cases: %v", report.Cases, opts.Cases, runErr)
		return events, report, runErr
	}

	logrus.Infof("generation complete: %d events across %d cases (%d rework)", report.Events, report.Cases, report.ReworkEvents)
	return events, report, nil
}
