// Package sim generates synthetic manufacturing event logs for process
// mining: one independent stochastic walk per production batch over a fixed
// process flow, with probabilistic rework detours back to earlier stages.
//
// # Reading Guide
//
// Start with these three files to understand the generation kernel:
//   - flow.go: the immutable process-flow model and its fail-fast validation
//   - walk.go: the per-case state machine (forward advance, conditional
//     skip, probabilistic backtrack, dual-phase traversal split at the pivot)
//   - generator.go: the public Generate operation, per-case RNG streams, and
//     optional cross-case parallelism
//
// # Architecture
//
// A Flow is built once (NewFlow or DefaultBatteryFlow) and shared read-only
// by every case. Each case walks the flow twice around its pivot stage: the
// intake sub-path resolves rework through each stage's own declared link,
// the core-production sub-path through the flow's checkpoint overrides. Both
// phases run the same loop parameterized by a ReworkResolver.
//
// Output is a flat []Event, chronological within each case. SortEvents and
// WriteCSV cover the collaborator contract with downstream process-discovery
// and conformance tooling; everything beyond the flat event table (mining
// algorithms, analytics, dataframe plumbing) lives outside this module.
package sim
