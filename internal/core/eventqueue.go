// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import "go.yaml.in/yamlcore/internal/lowlevel"

// EventQueue buffers one lookahead event, records the last-seen location,
// and pre-decodes scalar styles and anchor/tag hints (§4.1). It is backed
// by the low-level tokenizer/parser for live events and transparently
// splices in AliasReplayer output while a replay cursor is active.
type EventQueue struct {
	parser   *lowlevel.YamlParser
	ar       *AnchorRegistry
	replayer *AliasReplayer
	bm       *BudgetMonitor

	anchorNames  map[string]int
	nextAnchorID int

	peeked   *Event
	havePeek bool

	lastLoc Location
	refLoc  Location
}

// NewEventQueue wires a live parser to the per-document AR/replayer/BM.
func NewEventQueue(parser *lowlevel.YamlParser, ar *AnchorRegistry, replayer *AliasReplayer, bm *BudgetMonitor) *EventQueue {
	q := &EventQueue{parser: parser, ar: ar, replayer: replayer, bm: bm}
	q.ResetForDocument()
	return q
}

// ResetForDocument clears the anchor-name → anchor-id table (I1: anchor
// ids are not visible across documents).
func (q *EventQueue) ResetForDocument() {
	q.anchorNames = make(map[string]int)
	q.nextAnchorID = 1
}

func (q *EventQueue) anchorID(name []byte) int {
	if len(name) == 0 {
		return 0
	}
	s := string(name)
	if id, ok := q.anchorNames[s]; ok {
		return id
	}
	id := q.nextAnchorID
	q.nextAnchorID++
	q.anchorNames[s] = id
	return id
}

func (q *EventQueue) translate(low *lowlevel.Event) Event {
	kind, ok := eventKindFrom(low.Type)
	if !ok {
		kind = StreamEnd
	}
	loc := fromMark(low.Start_mark)
	e := Event{Kind: kind, Location: loc}
	switch kind {
	case Scalar:
		e.AnchorID = q.anchorID(low.Anchor)
		e.Tag = string(low.Tag)
		e.Value = string(low.Value)
		e.Style = scalarStyleFrom(low.Scalar_style())
		e.Location = loc.extendLength(len([]rune(e.Value)))
	case SequenceStart, MappingStart:
		e.AnchorID = q.anchorID(low.Anchor)
		e.Tag = string(low.Tag)
	case Alias:
		e.AliasTarget = q.anchorID(low.Anchor)
	}
	return e
}

func (q *EventQueue) pullLive() (Event, *Error) {
	low, err := lowlevel.Parse(q.parser)
	if err != nil {
		return Event{}, errParser(q.lastLoc, err)
	}
	e := q.translate(low)
	if e.AnchorID != 0 && (e.Kind == Scalar || e.Kind == SequenceStart || e.Kind == MappingStart) {
		q.ar.Begin(e.AnchorID, e.Location)
		if err := q.bm.Anchor(e.Location); err != nil {
			return Event{}, err.(*Error)
		}
	}
	q.ar.Tee(e)
	return e, nil
}

func (q *EventQueue) pullRaw() (Event, *Error) {
	if q.replayer.Active() {
		e, ok, err := q.replayer.Next(q.lastLoc)
		if err != nil {
			return Event{}, err
		}
		if ok {
			return e, nil
		}
	}
	return q.pullLive()
}

// Peek returns the next event without consuming it, loading one if the
// lookahead buffer is empty.
func (q *EventQueue) Peek() (*Event, *Error) {
	if q.havePeek {
		return q.peeked, nil
	}
	e, err := q.pullRaw()
	if err != nil {
		return nil, err
	}
	q.peeked = &e
	q.havePeek = true
	return q.peeked, nil
}

// Next consumes the peeked event (or pulls a fresh one) and updates
// LastLocation.
func (q *EventQueue) Next() (*Event, *Error) {
	var e Event
	if q.havePeek {
		e = *q.peeked
		q.havePeek = false
		q.peeked = nil
	} else {
		var err *Error
		e, err = q.pullRaw()
		if err != nil {
			return nil, err
		}
	}
	q.lastLoc = e.Location
	if err := q.bm.Event(e.Location); err != nil {
		return nil, err.(*Error)
	}
	return &e, nil
}

// LastLocation is the location of the most recently observed event, used
// for EOF errors.
func (q *EventQueue) LastLocation() Location { return q.lastLoc }

// ReferenceLocation is the location at which the consumer started asking
// for the current logical node (Spanned.Referenced).
func (q *EventQueue) ReferenceLocation() Location { return q.refLoc }

// SetReferenceLocation is called by the Deserializer Core when it begins
// decoding a new logical node.
func (q *EventQueue) SetReferenceLocation(l Location) { q.refLoc = l }

// InReplay reports whether events are currently being served from an
// AliasReplayer cursor rather than the live parser (ZCBA gate, §4.10).
func (q *EventQueue) InReplay() bool { return q.replayer.Active() }

// BeginReplay is invoked by DC when it consumes an Alias event. It looks
// up the anchor record and either opens a replay cursor or reports a
// direct self-reference for the caller to route to a back-reference
// capability.
func (q *EventQueue) BeginReplay(anchorID int, loc Location) (isBackReference bool, err *Error) {
	record, ok := q.ar.Lookup(anchorID)
	if !ok {
		return false, errUnknownAnchor(loc, anchorID)
	}
	if err := q.bm.Alias(loc); err != nil {
		return false, err.(*Error)
	}
	return q.replayer.Open(record, loc)
}
