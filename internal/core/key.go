// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"sort"
	"strconv"
)

// Key is the canonicalized representation of a mapping key used for
// duplicate detection (§3): a scalar's string form, a sequence's ordered
// child keys, or a mapping's unordered multiset of key/value pairs.
// Equality is structural, so two Keys compare equal via ==.
type Key struct {
	kind     keyKind
	scalar   string
	sequence string // pre-flattened, comparable form
	mapping  string
}

type keyKind int

const (
	keyScalar keyKind = iota
	keySequence
	keyMapping
)

// ScalarKey builds a canonical Key from a resolved scalar's logical value.
// A quoted "null" string is distinct from the plain null scalar (§4.8),
// since resolution already folds that distinction into Text/Type.
func ScalarKey(r ResolvedScalar) Key {
	return Key{kind: keyScalar, scalar: scalarKeyText(r)}
}

func scalarKeyText(r ResolvedScalar) string {
	switch r.Type {
	case LogicalNull:
		return "\x00null"
	case LogicalBool:
		if r.Bool {
			return "\x00bool:true"
		}
		return "\x00bool:false"
	case LogicalInt:
		return "\x00int:" + strconv.FormatInt(r.Int, 10)
	case LogicalFloat:
		return "\x00float:" + strconv.FormatFloat(r.Float, 'g', -1, 64)
	default:
		return "\x01str:" + r.Text
	}
}

// SequenceKey builds a canonical Key from an ordered list of child Keys.
func SequenceKey(children []Key) Key {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.canon()
	}
	return Key{kind: keySequence, sequence: joinWithSep(parts)}
}

// MappingKey builds a canonical Key from an unordered set of key/value
// Key pairs (a mapping used as a mapping key).
func MappingKey(pairs [][2]Key) Key {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p[0].canon() + "=>" + p[1].canon()
	}
	sort.Strings(parts)
	return Key{kind: keyMapping, mapping: joinWithSep(parts)}
}

func (k Key) canon() string {
	switch k.kind {
	case keySequence:
		return "[" + k.sequence + "]"
	case keyMapping:
		return "{" + k.mapping + "}"
	default:
		return k.scalar
	}
}

func joinWithSep(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\x02"
		}
		out += p
	}
	return out
}

