// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

// ReplayCursor is a position inside an AnchorRecord's captured event
// sequence, plus a reentry counter (§3). Nested aliases encountered while
// replaying open further cursors, pushed on top of this one.
type ReplayCursor struct {
	AnchorID int
	record   *AnchorRecord
	pos      int
	reentry  int
}

func (c *ReplayCursor) exhausted() bool { return c.pos >= len(c.record.Events) }

func (c *ReplayCursor) take() Event {
	e := c.record.Events[c.pos]
	c.pos++
	e.fromReplay = true
	return e
}

// AliasReplayer owns the stack of active ReplayCursors (§4.5). At most one
// cursor is "current" (top of stack) at a time; EventQueue draws from it
// until exhausted, then the stack pops and the previous cursor (or the
// live parser, if the stack is empty) resumes.
type AliasReplayer struct {
	bm    *BudgetMonitor
	stack []*ReplayCursor
}

// NewAliasReplayer builds a replayer bound to the document's budget
// counters (stack depth, per-anchor expansions, total replayed events all
// live there).
func NewAliasReplayer(bm *BudgetMonitor) *AliasReplayer {
	return &AliasReplayer{bm: bm}
}

// Active reports whether any cursor is currently being served.
func (r *AliasReplayer) Active() bool { return len(r.stack) > 0 }

// isActiveOnStack reports whether anchorID already has a cursor open,
// i.e. whether opening it again would be a direct self-reference (§4.5,
// "detects direct self-reference during a replay already in progress for
// the same anchor").
func (r *AliasReplayer) isActiveOnStack(anchorID int) bool {
	for _, c := range r.stack {
		if c.AnchorID == anchorID {
			return true
		}
	}
	return false
}

// Open begins replaying record at loc. If anchorID is already active
// higher on the stack, no cursor is pushed and isBackReference is true:
// the caller (Deserializer Core) must route this to a back-reference
// capability or fail with RecursiveReferencesRequireWeakTypes.
func (r *AliasReplayer) Open(record *AnchorRecord, loc Location) (isBackReference bool, err *Error) {
	if r.isActiveOnStack(record.ID) {
		return true, nil
	}
	if e := r.bm.EnterReplay(loc); e != nil {
		return false, e.(*Error)
	}
	r.stack = append(r.stack, &ReplayCursor{AnchorID: record.ID, record: record})
	if e := r.bm.AliasExpansion(loc, record.ID); e != nil {
		return false, e.(*Error)
	}
	return false, nil
}

// Next returns the next replayed event from the top cursor, popping
// exhausted cursors (possibly more than one, if several end on the same
// event) until one yields an event or the stack empties.
func (r *AliasReplayer) Next(loc Location) (Event, bool, *Error) {
	for len(r.stack) > 0 {
		top := r.stack[len(r.stack)-1]
		if top.exhausted() {
			r.stack = r.stack[:len(r.stack)-1]
			r.bm.LeaveReplay()
			continue
		}
		e := top.take()
		if err := r.bm.ReplayedEvent(loc); err != nil {
			return Event{}, false, err.(*Error)
		}
		return e, true, nil
	}
	return Event{}, false, nil
}
