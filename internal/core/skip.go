// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

// Skip walks exactly one balanced node from q and discards it: one scalar
// or alias event, or a matching sequence/mapping start/end pair with any
// nesting (§4.9). Unlike the Deserializer Core's dispatch, Skip never
// invokes the consumer — it exists purely to discard duplicate-key losers
// and ignored struct fields.
func Skip(q *EventQueue) *Error {
	e, err := q.Next()
	if err != nil {
		return err
	}
	if e.Kind == Alias {
		// An alias's replayed node is exactly one logical node; open the
		// cursor (or back-reference) and skip the replayed node with a
		// recursive Skip, so the cursor's budget/reentry bookkeeping still
		// applies.
		isBackRef, berr := q.BeginReplay(e.AliasTarget, e.Location)
		if berr != nil {
			return berr
		}
		if isBackRef {
			return nil
		}
		return Skip(q)
	}
	if !e.IsCollectionStart() {
		return nil
	}
	depth := 1
	for depth > 0 {
		e, err := q.Next()
		if err != nil {
			return err
		}
		switch {
		case e.Kind == Alias:
			isBackRef, berr := q.BeginReplay(e.AliasTarget, e.Location)
			if berr != nil {
				return berr
			}
			if !isBackRef {
				if serr := skipOneInline(q); serr != nil {
					return serr
				}
			}
		case e.IsCollectionStart():
			depth++
		case e.IsCollectionEnd():
			depth--
		}
	}
	return nil
}

// skipOneInline walks one node already sourced (via BeginReplay) without
// recursing through Skip's own Next() call, used when an alias is
// encountered in the middle of an outer structural walk.
func skipOneInline(q *EventQueue) *Error {
	e, err := q.Next()
	if err != nil {
		return err
	}
	if !e.IsCollectionStart() {
		return nil
	}
	depth := 1
	for depth > 0 {
		e, err := q.Next()
		if err != nil {
			return err
		}
		switch {
		case e.IsCollectionStart():
			depth++
		case e.IsCollectionEnd():
			depth--
		}
	}
	return nil
}
