// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"reflect"

	"go.yaml.in/yamlcore/internal/lowlevel"
)

// Location is a 1-based line/column plus a character offset/length, with
// an optional byte offset/length populated only when the input is a known
// UTF-8 slice (never for reader-based input).
type Location struct {
	Line           int
	Column         int
	OffsetChars    int
	LengthChars    int
	HasByteOffsets bool
	ByteOffset     int
	ByteLength     int
}

// Unknown is the sentinel for a location the upstream parser did not supply.
var Unknown = Location{}

// IsUnknown reports whether l is the Unknown sentinel.
func (l Location) IsUnknown() bool {
	return l == Location{}
}

// fromMark builds a Location from a low-level scanner/parser mark. Marks in
// the low-level layer are 0-based; the core always exposes 1-based
// line/column, per spec.
func fromMark(m lowlevel.Position) Location {
	return Location{
		Line:        m.Line + 1,
		Column:      m.Column + 1,
		OffsetChars: m.Index,
	}
}

// withByteRange extends a Location with byte-level coordinates, available
// only when the source was a contiguous UTF-8 slice.
func (l Location) withByteRange(off, length int) Location {
	l.HasByteOffsets = true
	l.ByteOffset = off
	l.ByteLength = length
	return l
}

// extendLength returns a copy of l with LengthChars set, used to size a
// scalar's span from its decoded text.
func (l Location) extendLength(chars int) Location {
	l.LengthChars = chars
	return l
}

// Spanned pairs a value with the two locations spec.md's data model
// requires: where the consumer's request was made (Referenced) and where
// the value was authored (Defined). They're equal unless the value arrived
// through an alias or a merge key.
type Spanned[T any] struct {
	Value      T
	Referenced Location
	Defined    Location
}

var locationType = reflect.TypeOf(Location{})

// spanFields reports whether t is (an instantiation of) the Spanned[T]
// shape, identified structurally rather than by type identity: a
// three-field struct with a Value field of any type and Referenced/
// Defined fields of type Location. Structural matching, rather than a
// direct Spanned[T] type assertion, is what lets the root package
// re-export Spanned under its own name without the Core importing it
// back.
func spanFields(t reflect.Type) (valueIdx, refIdx, defIdx int, ok bool) {
	if t.Kind() != reflect.Struct || t.NumField() != 3 {
		return 0, 0, 0, false
	}
	vf, hasValue := t.FieldByName("Value")
	rf, hasRef := t.FieldByName("Referenced")
	df, hasDef := t.FieldByName("Defined")
	if !hasValue || !hasRef || !hasDef || rf.Type != locationType || df.Type != locationType {
		return 0, 0, 0, false
	}
	return vf.Index[0], rf.Index[0], df.Index[0], true
}

// decodeSpanned decodes e into the Value field at valueIdx, and fills
// Referenced/Defined from the location(s) spec.md's data model requires:
// Referenced is where the consumer's request was made (the alias site,
// for an Alias event, else the node's own site); Defined is where the
// value was actually authored (the anchor's own site, for an Alias
// event, else the same as Referenced).
func (d *Decoder) decodeSpanned(e Event, pull source, v reflect.Value, valueIdx, refIdx, defIdx int) *Error {
	referenced := e.Location
	inner := v.Field(valueIdx)

	if e.Kind == Alias {
		if pv, ok := d.pending[e.AliasTarget]; ok {
			if perr := assignBackReference(e.Location, pv, inner); perr != nil {
				return perr
			}
			v.Field(refIdx).Set(reflect.ValueOf(referenced))
			v.Field(defIdx).Set(reflect.ValueOf(referenced))
			return nil
		}
		isBackRef, berr := d.q.BeginReplay(e.AliasTarget, e.Location)
		if berr != nil {
			return berr
		}
		if isBackRef {
			return errRecursiveNeedsWeak(e.Location, e.Location)
		}
		de, derr := d.q.Next()
		if derr != nil {
			return derr
		}
		defined := de.Location
		if perr := d.decodeEvent(*de, d.q.Next, inner); perr != nil {
			return perr
		}
		v.Field(refIdx).Set(reflect.ValueOf(referenced))
		v.Field(defIdx).Set(reflect.ValueOf(defined))
		return nil
	}

	if perr := d.decodeEvent(e, pull, inner); perr != nil {
		return perr
	}
	v.Field(refIdx).Set(reflect.ValueOf(referenced))
	v.Field(defIdx).Set(reflect.ValueOf(referenced))
	return nil
}
