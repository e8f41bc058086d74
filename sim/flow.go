// sim/flow.go
package sim

import "fmt"

// Stage is one named step in a manufacturing process flow.
// Durations are in minutes; an elapsed time is drawn uniformly from
// [DurationMin, DurationMax] whenever the stage executes.
type Stage struct {
	Name        string  // unique, stable across the run
	DurationMin float64 // inclusive lower bound (minutes)
	DurationMax float64 // inclusive upper bound (minutes)
	Chance      float64 // occurrence probability in [0,1]; a failed draw skips the stage
	ReworkTo    string  // optional name of a strictly earlier stage to detour back to
}

// Flow is an immutable, validated process flow: an ordered stage sequence
// from material intake (stage 0) to shipment, split at a pivot stage into an
// intake sub-path and a core production sub-path.
//
// ReworkOverrides maps a core-production stage name to the upstream
// checkpoint a failure at that stage returns to. A stage with ReworkTo set
// but no override entry is non-reworkable during core production.
type Flow struct {
	Stages          []Stage
	Pivot           string
	ReworkOverrides map[string]string

	pivotIdx int
	position map[string]int // stage name -> index, built once at validation
}

// NewFlow validates the stage sequence and builds the position index.
// All configuration errors surface here, never mid-walk.
func NewFlow(stages []Stage, pivot string, overrides map[string]string) (*Flow, error) {
	if len(stages) < 2 {
		return nil, fmt.Errorf("flow needs at least an arrival stage and a pivot stage, got %d stages", len(stages))
	}

	position := make(map[string]int, len(stages))
	for i, st := range stages {
		if st.Name == "" {
			return nil, fmt.Errorf("stage %d has an empty name", i)
		}
		if _, dup := position[st.Name]; dup {
			return nil, fmt.Errorf("duplicate stage name %q", st.Name)
		}
		position[st.Name] = i
	}

	for i, st := range stages {
		if st.DurationMin < 0 || st.DurationMax < st.DurationMin {
			return nil, fmt.Errorf("stage %q: invalid duration bounds [%v, %v]", st.Name, st.DurationMin, st.DurationMax)
		}
		if st.Chance < 0 || st.Chance > 1 {
			return nil, fmt.Errorf("stage %q: occurrence probability %v outside [0,1]", st.Name, st.Chance)
		}
		if st.ReworkTo != "" {
			target, ok := position[st.ReworkTo]
			if !ok {
				return nil, fmt.Errorf("stage %q: rework target %q is not a stage in the flow", st.Name, st.ReworkTo)
			}
			// A self or forward reference would make the walk non-terminating.
			if target >= i {
				return nil, fmt.Errorf("stage %q: rework target %q must appear strictly earlier in the flow", st.Name, st.ReworkTo)
			}
		}
	}

	pivotIdx, ok := position[pivot]
	if !ok {
		return nil, fmt.Errorf("pivot stage %q is not a stage in the flow", pivot)
	}
	if pivotIdx == 0 {
		return nil, fmt.Errorf("pivot stage %q cannot be the arrival stage", pivot)
	}

	for name, checkpoint := range overrides {
		from, ok := position[name]
		if !ok {
			return nil, fmt.Errorf("rework override for unknown stage %q", name)
		}
		to, ok := position[checkpoint]
		if !ok {
			return nil, fmt.Errorf("stage %q: rework override %q is not a stage in the flow", name, checkpoint)
		}
		if to >= from {
			return nil, fmt.Errorf("stage %q: rework override %q must appear strictly earlier in the flow", name, checkpoint)
		}
	}

	return &Flow{
		Stages:          stages,
		Pivot:           pivot,
		ReworkOverrides: overrides,
		pivotIdx:        pivotIdx,
		position:        position,
	}, nil
}

// PivotIndex returns the position of the pivot stage.
func (f *Flow) PivotIndex() int {
	return f.pivotIdx
}

// Position returns the index of the named stage and whether it exists.
func (f *Flow) Position(name string) (int, bool) {
	i, ok := f.position[name]
	return i, ok
}

// Len returns the number of stages in the flow.
func (f *Flow) Len() int {
	return len(f.Stages)
}
