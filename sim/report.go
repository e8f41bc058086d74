// Aggregates run-wide accounting for final reporting: event volumes, rework
// counts, and the recoverable per-case anomalies (truncation, missing pivot).

package sim

import (
	"fmt"

	"github.com/google/uuid"
)

// Report summarizes one generation run. The anomaly counters surface the
// recoverable per-case conditions so callers can judge log quality without
// re-scanning the events.
type Report struct {
	RunID string // unique per invocation; not part of the deterministic output

	Cases        int // cases that completed their walk
	Events       int // total events emitted, rework included
	ReworkEvents int // rework-tagged events across all cases

	TruncatedCases        int // cases whose walk hit the iteration safety bound
	MissingPivotCases     int // cases that never emitted a pivot event (no core-production phase)
	ReworkSuppressedCases int // cases that exhausted their detour budget
}

// NewReport creates an empty Report with a fresh run identifier.
func NewReport() *Report {
	return &Report{RunID: uuid.NewString()}
}

// observe folds one case's outcome into the run totals.
func (r *Report) observe(res *caseResult) {
	r.Cases++
	r.ReworkEvents += res.ReworkEvents
	if res.Truncated {
		r.TruncatedCases++
	}
	if res.MissingPivot {
		r.MissingPivotCases++
	}
	if res.ReworkSuppressed {
		r.ReworkSuppressedCases++
	}
}

// Print displays the run summary after generation.
func (r *Report) Print() {
	fmt.Println("=== Generation Summary ===")
	fmt.Printf("Run ID               : %s\n", r.RunID)
	fmt.Printf("Cases                : %d\n", r.Cases)
	fmt.Printf("Events               : %d\n", r.Events)
	fmt.Printf("Rework Events        : %d\n", r.ReworkEvents)
	if r.Cases > 0 {
		fmt.Printf("Rework Rate          : %.4f events/case\n", float64(r.ReworkEvents)/float64(r.Cases))
	}
	fmt.Printf("Truncated Cases      : %d\n", r.TruncatedCases)
	fmt.Printf("Missing Pivot Cases  : %d\n", r.MissingPivotCases)
	fmt.Printf("Detour Budget Hit    : %d cases\n", r.ReworkSuppressedCases)
}
