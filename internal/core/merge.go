// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

// MergeSource is one mapping's fully captured event stream, ready to be
// replayed key by key into the host mapping. Capturing (rather than
// re-reading lazily) lets the Merge Engine resolve aliases and sequence
// ordering up front and hand the Deserializer Core a plain list.
type MergeSource struct {
	Events []Event
}

// MergeEngine expands `<<` merge keys per §4.7.
type MergeEngine struct {
	bm *BudgetMonitor
}

// NewMergeEngine binds a merge engine to the document's budget monitor,
// which every contributed key is counted against.
func NewMergeEngine(bm *BudgetMonitor) *MergeEngine {
	return &MergeEngine{bm: bm}
}

// Expand consumes a `<<` key's value — a mapping, an alias to a mapping,
// or a sequence whose elements are mappings or aliases to mappings — and
// returns the contributing sources in the order the Deserializer Core
// should offer their keys to the host mapping's Duplicate-Key Arbiter.
//
// pull reads the merge value's own structural events; it may be the live
// Event Queue's Next or a Merge Engine source's own captured-event
// cursor, when a `<<` is found nested inside an already-captured value.
// replay is always the document's live Event Queue: alias resolution
// always goes through its AnchorRegistry/AliasReplayer regardless of
// where pull's events are coming from.
//
// For a sequence value the sources are returned in sequence order: P4
// requires that among merge sources, the earlier one in sequence order
// wins, which a first-sighting-wins key set gets for free as long as
// the earlier source's keys are offered first.
func (m *MergeEngine) Expand(pull func() (*Event, *Error), replay *EventQueue, at Location) ([]MergeSource, *Error) {
	e, err := pull()
	if err != nil {
		return nil, err
	}
	switch e.Kind {
	case Alias:
		src, err := m.captureAliasedNode(replay, *e)
		if err != nil {
			return nil, err
		}
		switch {
		case len(src.Events) > 0 && src.Events[0].Kind == MappingStart:
			if cerr := m.countKeys(src.Events, at); cerr != nil {
				return nil, cerr
			}
			return []MergeSource{src}, nil
		case len(src.Events) > 0 && src.Events[0].Kind == SequenceStart:
			return m.expandCapturedSequence(src.Events, at)
		default:
			return nil, errMergeShape(at)
		}

	case MappingStart:
		events, err := captureNode(pull, *e)
		if err != nil {
			return nil, err
		}
		if cerr := m.countKeys(events, at); cerr != nil {
			return nil, cerr
		}
		return []MergeSource{{Events: events}}, nil

	case SequenceStart:
		var sources []MergeSource
		for {
			next, err := pull()
			if err != nil {
				return nil, err
			}
			if next.Kind == SequenceEnd {
				break
			}
			var src MergeSource
			if next.Kind == Alias {
				src, err = m.captureAliasedNode(replay, *next)
			} else {
				var events []Event
				events, err = captureNode(pull, *next)
				src = MergeSource{Events: events}
			}
			if err != nil {
				return nil, err
			}
			if len(src.Events) == 0 || src.Events[0].Kind != MappingStart {
				return nil, errMergeShape(at)
			}
			if cerr := m.countKeys(src.Events, at); cerr != nil {
				return nil, cerr
			}
			sources = append(sources, src)
		}
		return sources, nil

	default:
		return nil, errMergeShape(at)
	}
}

// captureAliasedNode opens a replay cursor on q for an Alias event
// already consumed and captures the full replayed node.
func (m *MergeEngine) captureAliasedNode(q *EventQueue, aliasEvent Event) (MergeSource, *Error) {
	isBackRef, err := q.BeginReplay(aliasEvent.AliasTarget, aliasEvent.Location)
	if err != nil {
		return MergeSource{}, err
	}
	if isBackRef {
		return MergeSource{}, errMergeShape(aliasEvent.Location)
	}
	first, err := q.Next()
	if err != nil {
		return MergeSource{}, err
	}
	events, err := captureNode(q.Next, *first)
	if err != nil {
		return MergeSource{}, err
	}
	return MergeSource{Events: events}, nil
}

// captureNode walks exactly one balanced node starting at an already
// consumed first event and returns the full event list for that node.
func captureNode(pull func() (*Event, *Error), first Event) ([]Event, *Error) {
	events := []Event{first}
	if !first.IsCollectionStart() {
		return events, nil
	}
	depth := 1
	for depth > 0 {
		e, err := pull()
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
		switch {
		case e.IsCollectionStart():
			depth++
		case e.IsCollectionEnd():
			depth--
		}
	}
	return events, nil
}

// expandCapturedSequence handles a merge value that is an alias to a
// sequence of mappings: the sequence's own element events are already
// fully captured (aliases inside it resolved via replay as they were
// walked), so this just splits them into per-element sources in sequence
// order and validates each is a mapping.
func (m *MergeEngine) expandCapturedSequence(events []Event, at Location) ([]MergeSource, *Error) {
	inner := events[1 : len(events)-1]
	nodes := splitTopLevelNodes(inner)
	sources := make([]MergeSource, len(nodes))
	for i, n := range nodes {
		if len(n) == 0 || n[0].Kind != MappingStart {
			return nil, errMergeShape(at)
		}
		if cerr := m.countKeys(n, at); cerr != nil {
			return nil, cerr
		}
		sources[i] = MergeSource{Events: n}
	}
	return sources, nil
}

// splitTopLevelNodes splits a flat event list representing the direct
// children of some already-stripped collection start/end pair into one
// balanced sub-slice per child node.
func splitTopLevelNodes(events []Event) [][]Event {
	var nodes [][]Event
	depth := 0
	start := 0
	for i, e := range events {
		switch {
		case e.IsCollectionStart():
			if depth == 0 {
				start = i
			}
			depth++
		case e.IsCollectionEnd():
			depth--
			if depth == 0 {
				nodes = append(nodes, events[start:i+1])
			}
		default:
			if depth == 0 {
				nodes = append(nodes, events[i:i+1])
			}
		}
	}
	return nodes
}

// countKeys charges the budget monitor once per key slot at the top
// level of a captured mapping's events.
func (m *MergeEngine) countKeys(events []Event, at Location) *Error {
	if len(events) == 0 || events[0].Kind != MappingStart {
		return nil
	}
	depth := 0
	expectKey := true
	for _, e := range events {
		switch e.Kind {
		case MappingStart, SequenceStart:
			depth++
			if depth == 1 {
				continue
			}
		case MappingEnd, SequenceEnd:
			depth--
			continue
		}
		if depth != 1 {
			continue
		}
		if expectKey {
			if err := m.bm.MergeKey(at); err != nil {
				return err.(*Error)
			}
			expectKey = false
		} else {
			expectKey = true
		}
	}
	return nil
}
