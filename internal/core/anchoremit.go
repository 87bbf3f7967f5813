// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import "strconv"

// SentinelKind distinguishes a strong (owning) shared-ownership wrapper
// from a weak (back-reference) one, mirroring the distinction a producer's
// own Rc/Arc-and-Weak pair would carry (§4.14).
type SentinelKind int

const (
	SentinelNone SentinelKind = iota
	SentinelStrong
	SentinelWeak
)

// Sentinel is what a producer offers the Anchor Emitter before writing a
// value it considers shared: an identity (Addr, typically a pointer or map
// address stable for the lifetime of one emission) and whether the
// reference is owning or a weak back-reference.
type Sentinel struct {
	Kind SentinelKind
	Addr uintptr
}

// AnchorEmitter is the serialization mirror of the Anchor Registry: it
// recognizes the sentinels a producer marks as shared, assigns anchor ids
// from a monotonically increasing counter on first occurrence, and tells
// the producer whether to write the value structurally (first occurrence),
// as a bare alias (subsequent occurrence), or as null (a weak sentinel with
// no strong anchor ever assigned to the same identity).
type AnchorEmitter struct {
	nameOf func(id int) string
	ids    map[uintptr]int
	next   int
}

// NewAnchorEmitter binds an emitter to one serialization call. nameOf
// generates an anchor's textual name from its 1-based id; a nil nameOf
// defaults to "a<id>" per §4.14.
func NewAnchorEmitter(nameOf func(id int) string) *AnchorEmitter {
	if nameOf == nil {
		nameOf = defaultAnchorName
	}
	return &AnchorEmitter{nameOf: nameOf, ids: make(map[uintptr]int)}
}

func defaultAnchorName(id int) string {
	return "a" + strconv.Itoa(id)
}

// AnchorDecision is what the producer should do with the value it offered
// via Offer.
type AnchorDecision struct {
	// Name is the anchor's textual name; empty when Action is ActionNull.
	Name   string
	Action AnchorAction
}

type AnchorAction int

const (
	// ActionWriteValue means write the value structurally, prefixed with
	// "&Name" (first occurrence of a strong or weak-then-strong identity).
	ActionWriteValue AnchorAction = iota
	// ActionWriteAlias means write only "*Name"; the value itself is
	// already anchored from an earlier occurrence.
	ActionWriteAlias
	// ActionWriteNull means write a bare null: a weak sentinel whose
	// identity was never strongly anchored.
	ActionWriteNull
)

// Offer registers one occurrence of s and returns what the producer should
// emit for it. A SentinelNone value always yields ActionWriteValue with no
// name, since the emitter only reacts to explicit sentinels — it never
// dedupes by structural equality.
func (a *AnchorEmitter) Offer(s Sentinel) AnchorDecision {
	if s.Kind == SentinelNone {
		return AnchorDecision{Action: ActionWriteValue}
	}
	if id, seen := a.ids[s.Addr]; seen {
		return AnchorDecision{Name: a.nameOf(id), Action: ActionWriteAlias}
	}
	if s.Kind == SentinelWeak {
		return AnchorDecision{Action: ActionWriteNull}
	}
	a.next++
	a.ids[s.Addr] = a.next
	return AnchorDecision{Name: a.nameOf(a.next), Action: ActionWriteValue}
}
