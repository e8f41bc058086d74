package sim

// ReworkResolver decides whether a stage can detour on failure and where the
// walk resumes after the detour. The intake and core-production sub-paths
// run the same walk loop and differ only in the resolver they supply.
type ReworkResolver interface {
	// Resolve returns the position the walk resumes at after a rework detour
	// at the given stage index, and whether the stage is reworkable at all.
	Resolve(stageIdx int) (resumeIdx int, ok bool)
}

// declaredResolver resolves a stage's own ReworkTo reference and resumes AT
// the target, re-executing it. Used on the intake sub-path.
type declaredResolver struct {
	flow *Flow
}

func (r declaredResolver) Resolve(stageIdx int) (int, bool) {
	target := r.flow.Stages[stageIdx].ReworkTo
	if target == "" {
		return 0, false
	}
	// Existence and ordering were checked by NewFlow.
	pos, _ := r.flow.Position(target)
	return pos, true
}

// overrideResolver resolves through the flow's checkpoint map and resumes
// AFTER the checkpoint, redoing the work downstream of it. Used on the
// core-production sub-path. A stage without an override entry is treated as
// non-reworkable for that occurrence, so the walk advances instead of
// jumping.
type overrideResolver struct {
	flow *Flow
}

func (r overrideResolver) Resolve(stageIdx int) (int, bool) {
	if r.flow.Stages[stageIdx].ReworkTo == "" {
		return 0, false
	}
	checkpoint, ok := r.flow.ReworkOverrides[r.flow.Stages[stageIdx].Name]
	if !ok {
		return 0, false
	}
	pos, ok := r.flow.Position(checkpoint)
	if !ok {
		return 0, false
	}
	return pos + 1, true
}
