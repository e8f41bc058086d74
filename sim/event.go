package sim

import (
	"fmt"
	"strings"
	"time"
)

// ReworkPrefix tags the activity name of a rework detour event. Non-rework
// events carry the stage name byte-for-byte, which downstream conformance
// tooling relies on to match the log against a flow model.
const ReworkPrefix = "REWORK_"

// Event is one immutable record of the generated log.
type Event struct {
	CaseID    string    // production batch identifier, unique per case
	Activity  string    // stage name, or its ReworkPrefix-tagged variant
	Timestamp time.Time // absolute completion time of the activity
	Resource  string    // drawn fresh per event, not sticky per case
	BatchSize int       // drawn once per case, identical on every event of the case
}

// ReworkActivity returns the tagged activity name for a rework detour at the
// named stage.
func ReworkActivity(stage string) string {
	return ReworkPrefix + stage
}

// IsRework reports whether the activity name is a rework-tagged variant.
func IsRework(activity string) bool {
	return strings.HasPrefix(activity, ReworkPrefix)
}

// ReworkStage strips the rework tag, returning the underlying stage name.
// Non-rework activity names are returned unchanged.
func ReworkStage(activity string) string {
	return strings.TrimPrefix(activity, ReworkPrefix)
}

// String returns a human-readable one-line representation of the event.
func (e Event) String() string {
	return fmt.Sprintf("Event: (CaseID: %s, Activity: %s, Timestamp: %s, Resource: %s, BatchSize: %d)",
		e.CaseID, e.Activity, e.Timestamp.Format(time.RFC3339), e.Resource, e.BatchSize)
}
