// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import "strings"

// PathKind distinguishes a mapping-key path segment from a sequence-index
// one.
type PathKind int

const (
	PathKey PathKind = iota
	PathIndex
)

// PathSegment is one step of a PathKey: either a mapping key name or a
// sequence index rendered as a decimal string.
type PathSegment struct {
	Kind PathKind
	Name string
}

// PathKeyVal is the path to one node in the document, recorded as the
// Deserializer Core descends (§4.12).
type PathKeyVal struct {
	segments []PathSegment
}

// EmptyPath is the root path.
func EmptyPath() PathKeyVal { return PathKeyVal{} }

// Join returns a new path with seg appended.
func (p PathKeyVal) Join(seg PathSegment) PathKeyVal {
	next := make([]PathSegment, len(p.segments)+1)
	copy(next, p.segments)
	next[len(p.segments)] = seg
	return PathKeyVal{segments: next}
}

// JoinKey is shorthand for Join(PathSegment{Kind: PathKey, Name: name}).
func (p PathKeyVal) JoinKey(name string) PathKeyVal {
	return p.Join(PathSegment{Kind: PathKey, Name: name})
}

// JoinIndex is shorthand for a sequence-index segment.
func (p PathKeyVal) JoinIndex(i int) PathKeyVal {
	return p.Join(PathSegment{Kind: PathIndex, Name: itoaIndex(i)})
}

func itoaIndex(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

func (p PathKeyVal) Len() int      { return len(p.segments) }
func (p PathKeyVal) IsEmpty() bool { return len(p.segments) == 0 }

// LeafString returns the final segment's name, if any.
func (p PathKeyVal) LeafString() (string, bool) {
	if len(p.segments) == 0 {
		return "", false
	}
	return p.segments[len(p.segments)-1].Name, true
}

// canon renders the path as a stable map key, distinguishing segment kind
// so an index "2" never collides with a key "2".
func (p PathKeyVal) canon() string {
	var b strings.Builder
	for _, s := range p.segments {
		if s.Kind == PathIndex {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
		b.WriteString(s.Name)
	}
	return b.String()
}

// FormatWithResolvedLeaf renders a human-readable path, substituting
// resolvedLeaf for the final key segment's recorded name (used when the
// leaf was matched fuzzily and the caller wants to show the YAML spelling
// instead of the validation-side name it was searched with).
func FormatWithResolvedLeaf(p PathKeyVal, resolvedLeaf string) string {
	if len(p.segments) == 0 {
		return "<root>"
	}
	var b strings.Builder
	lastIndex := len(p.segments) - 1
	for i, seg := range p.segments {
		switch seg.Kind {
		case PathIndex:
			b.WriteByte('[')
			b.WriteString(seg.Name)
			b.WriteByte(']')
		case PathKey:
			if i > 0 {
				b.WriteByte('.')
			}
			if i == lastIndex {
				b.WriteString(resolvedLeaf)
			} else {
				b.WriteString(seg.Name)
			}
		}
	}
	return b.String()
}

// PathMap maps recorded PathKeyVals to the Location observed for them.
type PathMap struct {
	entries map[string]pathMapEntry
}

type pathMapEntry struct {
	path PathKeyVal
	loc  Location
}

func NewPathMap() *PathMap {
	return &PathMap{entries: make(map[string]pathMapEntry)}
}

// Insert records loc for path, keyed by canonical form. A later insert
// under a colliding canonical form (same kinds and names) overwrites the
// earlier one — callers needing both occurrences (LastWins) record under
// distinct, already-disambiguated PathKeyVals upstream.
func (m *PathMap) Insert(path PathKeyVal, loc Location) {
	m.entries[path.canon()] = pathMapEntry{path: path, loc: loc}
}

// Search implements the ordered fuzzy-match passes of §4.12: direct
// lookup, whole-path case-insensitive, tokenized case-insensitive,
// collapsed case-insensitive. A non-direct pass succeeds only if it
// yields exactly one candidate.
func (m *PathMap) Search(target PathKeyVal) (Location, string, bool) {
	if e, ok := m.entries[target.canon()]; ok {
		leaf, _ := target.LeafString()
		return e.loc, leaf, true
	}
	if loc, leaf, ok := m.findUnique(target, segmentsEqualCaseInsensitive); ok {
		return loc, leaf, true
	}
	if loc, leaf, ok := m.findUnique(target, segmentsEqualTokenized); ok {
		return loc, leaf, true
	}
	if loc, leaf, ok := m.findUnique(target, segmentsEqualCollapsed); ok {
		return loc, leaf, true
	}
	return Location{}, "", false
}

func (m *PathMap) findUnique(target PathKeyVal, eq func(a, b PathKeyVal) bool) (Location, string, bool) {
	if target.IsEmpty() {
		return Location{}, "", false
	}
	var found *pathMapEntry
	for _, e := range m.entries {
		if eq(target, e.path) {
			if found != nil {
				return Location{}, "", false
			}
			entry := e
			found = &entry
		}
	}
	if found == nil {
		return Location{}, "", false
	}
	leaf, _ := found.path.LeafString()
	return found.loc, leaf, true
}

func stripRawIdentifierPrefix(s string) string {
	return strings.TrimPrefix(s, "r#")
}

func segmentsEqualCaseInsensitive(target, candidate PathKeyVal) bool {
	if len(target.segments) != len(candidate.segments) {
		return false
	}
	for i := range target.segments {
		t, c := target.segments[i], candidate.segments[i]
		if t.Kind != c.Kind {
			return false
		}
		if t.Kind == PathIndex {
			if t.Name != c.Name {
				return false
			}
			continue
		}
		if !strings.EqualFold(stripRawIdentifierPrefix(t.Name), stripRawIdentifierPrefix(c.Name)) {
			return false
		}
	}
	return true
}

func collapseNonAlnumASCIILower(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		} else if r >= 'A' && r <= 'Z' {
			b.WriteRune(r - 'A' + 'a')
		}
	}
	return b.String()
}

func segmentsEqualCollapsed(target, candidate PathKeyVal) bool {
	if len(target.segments) != len(candidate.segments) {
		return false
	}
	for i := range target.segments {
		t, c := target.segments[i], candidate.segments[i]
		if t.Kind != c.Kind {
			return false
		}
		if t.Kind == PathIndex {
			if t.Name != c.Name {
				return false
			}
			continue
		}
		if collapseNonAlnumASCIILower(stripRawIdentifierPrefix(t.Name)) != collapseNonAlnumASCIILower(stripRawIdentifierPrefix(c.Name)) {
			return false
		}
	}
	return true
}

type charClass int

const (
	classLower charClass = iota
	classUpper
	classDigit
	classOther
)

func classifyASCII(b byte) charClass {
	switch {
	case b >= 'a' && b <= 'z':
		return classLower
	case b >= 'A' && b <= 'Z':
		return classUpper
	case b >= '0' && b <= '9':
		return classDigit
	default:
		return classOther
	}
}

// tokenizeSegment splits s on non-alphanumeric separators and then on
// camel/pascal-case, digit, and acronym boundaries, lowercasing every
// token (e.g. "sha256Sum" -> ["sha","256","sum"]).
func tokenizeSegment(s string) []string {
	var tokens []string
	pieces := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	for _, piece := range pieces {
		b := []byte(piece)
		start := 0
		for i := 1; i < len(b); i++ {
			prev := classifyASCII(b[i-1])
			curr := classifyASCII(b[i])
			var next charClass
			hasNext := i+1 < len(b)
			if hasNext {
				next = classifyASCII(b[i+1])
			}
			boundary := false
			switch {
			case prev == classLower && curr == classUpper:
				boundary = true
			case prev == classDigit && (curr == classLower || curr == classUpper):
				boundary = true
			case (prev == classLower || prev == classUpper) && curr == classDigit:
				boundary = true
			case prev == classUpper && curr == classUpper && hasNext && next == classLower:
				boundary = true
			}
			if boundary {
				if start < i {
					tokens = append(tokens, strings.ToLower(string(b[start:i])))
				}
				start = i
			}
		}
		if start < len(b) {
			tokens = append(tokens, strings.ToLower(string(b[start:])))
		}
	}
	return tokens
}

func tokensEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func segmentsEqualTokenized(target, candidate PathKeyVal) bool {
	if len(target.segments) != len(candidate.segments) {
		return false
	}
	for i := range target.segments {
		t, c := target.segments[i], candidate.segments[i]
		if t.Kind != c.Kind {
			return false
		}
		if t.Kind == PathIndex {
			if t.Name != c.Name {
				return false
			}
			continue
		}
		if !tokensEqual(
			tokenizeSegment(stripRawIdentifierPrefix(t.Name)),
			tokenizeSegment(stripRawIdentifierPrefix(c.Name)),
		) {
			return false
		}
	}
	return true
}

// PathRecorder tracks the Deserializer Core's current descent path and the
// two PathMaps (use-site / reference locations, and definition-site
// locations) it accumulates along the way.
type PathRecorder struct {
	Current PathKeyVal
	Ref     *PathMap
	Defined *PathMap
}

func NewPathRecorder() *PathRecorder {
	return &PathRecorder{Current: EmptyPath(), Ref: NewPathMap(), Defined: NewPathMap()}
}

// Descend pushes seg onto the current path for the duration of fn, then
// restores it, recording both locations for the descended-to path.
func (r *PathRecorder) Descend(seg PathSegment, referenced, defined Location, fn func() *Error) *Error {
	prev := r.Current
	r.Current = r.Current.Join(seg)
	r.Ref.Insert(r.Current, referenced)
	r.Defined.Insert(r.Current, defined)
	err := fn()
	r.Current = prev
	return err
}
