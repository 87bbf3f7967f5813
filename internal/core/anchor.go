// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

// AnchorRecord is the captured event sub-sequence for one declared anchor:
// a contiguous, balanced run starting at the anchor-declaring event (§3).
type AnchorRecord struct {
	ID      int
	Defined Location
	Events  []Event
}

type capture struct {
	anchorID int
	defined  Location
	events   []Event
	depth    int
}

// AnchorRegistry is the per-document map anchor_id -> AnchorRecord (§4.4).
// Recording is a tee: Tee is called once per live event and appends it to
// every capture currently open, finalizing any capture whose balance
// returns to zero.
type AnchorRegistry struct {
	records map[int]*AnchorRecord
	active  []*capture
}

// NewAnchorRegistry returns an empty registry, scoped to one document.
func NewAnchorRegistry() *AnchorRegistry {
	return &AnchorRegistry{records: make(map[int]*AnchorRecord)}
}

// Begin starts capturing a new anchor at the event about to be teed.
func (ar *AnchorRegistry) Begin(anchorID int, defined Location) {
	ar.active = append(ar.active, &capture{anchorID: anchorID, defined: defined})
}

// Tee appends a live event to every active capture, finalizing any whose
// node has balanced (I2).
func (ar *AnchorRegistry) Tee(e Event) {
	if len(ar.active) == 0 {
		return
	}
	delta := e.BalanceDelta()
	i := 0
	for i < len(ar.active) {
		c := ar.active[i]
		c.events = append(c.events, e)
		c.depth += delta
		if c.depth == 0 {
			ar.records[c.anchorID] = &AnchorRecord{ID: c.anchorID, Defined: c.defined, Events: c.events}
			ar.active = append(ar.active[:i], ar.active[i+1:]...)
			continue
		}
		i++
	}
}

// Lookup returns the record for anchorID, or ok=false if none was declared
// in the current document (I1: anchors never cross documents).
func (ar *AnchorRegistry) Lookup(anchorID int) (*AnchorRecord, bool) {
	r, ok := ar.records[anchorID]
	return r, ok
}
