package sim

import (
	"hash/fnv"
	"math/rand"
)

// RunKey uniquely identifies a reproducible generation run.
// Two runs with the same RunKey and identical configuration MUST produce
// bit-for-bit identical event logs.
type RunKey int64

// NewRunKey creates a RunKey from a seed value.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

// CaseStreams derives deterministic, isolated RNG streams per case.
//
// Derivation formula: masterSeed XOR fnv1a64(caseID). Each ForCase call
// returns a fresh *rand.Rand positioned at the start of the case's stream,
// so the same case always replays the same draws no matter which worker
// generates it or in what order. Streams are not cached; callers draw from
// exactly one stream per case.
//
// ForCase is safe to call from multiple goroutines; the returned *rand.Rand
// itself is not.
type CaseStreams struct {
	key RunKey
}

// NewCaseStreams creates a CaseStreams from a RunKey.
func NewCaseStreams(key RunKey) *CaseStreams {
	return &CaseStreams{key: key}
}

// ForCase returns a deterministically-seeded RNG stream for the named case.
// Never returns nil.
func (c *CaseStreams) ForCase(caseID string) *rand.Rand {
	return rand.New(rand.NewSource(int64(c.key) ^ fnv1a64(caseID)))
}

// Key returns the RunKey used to create this CaseStreams.
func (c *CaseStreams) Key() RunKey {
	return c.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
