// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

// DuplicatePolicy selects how the Duplicate-Key Arbiter resolves a
// repeated mapping key (§4.8, §6 `duplicate_keys`).
type DuplicatePolicy int

const (
	PolicyError DuplicatePolicy = iota
	PolicyFirstWins
	PolicyLastWins
)

// DuplicateOutcome tells the Deserializer Core what to do with the value
// that follows a key it just arbitrated.
type DuplicateOutcome int

const (
	OutcomeKeep   DuplicateOutcome = iota // first sighting: keep as normal
	OutcomeSkip                           // FirstWins loser: walk and discard the value
	OutcomeReplace                        // LastWins: value should overwrite the prior one
)

// DuplicateKeyArbiter tracks the canonical keys seen so far within one
// mapping. A fresh arbiter is used per mapping (nested mappings get their
// own), matching spec.md §4.8's "canonical set of keys seen so far in the
// current mapping."
type DuplicateKeyArbiter struct {
	policy DuplicatePolicy
	seen   map[Key]bool
}

// NewDuplicateKeyArbiter starts a fresh per-mapping key set under policy.
func NewDuplicateKeyArbiter(policy DuplicatePolicy) *DuplicateKeyArbiter {
	return &DuplicateKeyArbiter{policy: policy, seen: make(map[Key]bool)}
}

// Offer arbitrates a newly seen key at loc and reports what the caller
// should do with the value that follows.
func (d *DuplicateKeyArbiter) Offer(key Key, loc Location, text string) (DuplicateOutcome, *Error) {
	if !d.seen[key] {
		d.seen[key] = true
		return OutcomeKeep, nil
	}
	switch d.policy {
	case PolicyError:
		return OutcomeKeep, errDuplicateKey(loc, text)
	case PolicyFirstWins:
		return OutcomeSkip, nil
	case PolicyLastWins:
		return OutcomeReplace, nil
	default:
		return OutcomeKeep, errDuplicateKey(loc, text)
	}
}
