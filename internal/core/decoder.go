// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"reflect"
)

// FieldResolver maps a struct type and a YAML mapping key to the struct
// field that should receive it, and optionally names a field that should
// absorb keys no declared field claims. The root package implements this
// over its own reflect-based tag parsing; internal/core never imports
// that package, so the dependency runs through this interface instead.
type FieldResolver interface {
	StructField(t reflect.Type, key string) (index []int, ok bool)
	InlineField(t reflect.Type) (index []int, ok bool)

	// RequiredFields returns the mapping keys t declares as mandatory
	// (e.g. via a `,required` tag flag). DecodeMappingIntoStruct reports
	// KindMissingField for the first one absent from the input.
	RequiredFields(t reflect.Type) []string
}

// VariantResolver recognizes a registered enum interface type and
// constructs the concrete value for one of its named variants, so the
// Deserializer Core can dispatch the Enum shapes of §4.11 without
// importing the root package's registry. t is always the interface
// type of the decode target, as reported by reflect.
type VariantResolver interface {
	// Variants reports the known variant names for t, or false if t
	// isn't a registered enum interface.
	Variants(t reflect.Type) (names []string, ok bool)

	// NewVariant returns an addressable pointer to a fresh zero value
	// of the concrete type registered for name, for the Core to decode
	// the variant's payload into and then assign back into the target.
	NewVariant(t reflect.Type, name string) (value reflect.Value, ok bool)
}

// DecodeOptions configures one Deserializer Core run (§4.11, §6).
type DecodeOptions struct {
	Scalar    ScalarOptions
	Duplicate DuplicatePolicy
	Fields    FieldResolver
	Variants  VariantResolver
	Borrow    BorrowPolicy

	// UnknownField is called for a mapping key a struct target has no
	// field (and no inline catch-all) for. Returning a non-nil Error
	// fails the decode; a nil UnknownField ignores unknown fields.
	UnknownField func(path PathKeyVal, loc Location, key string) *Error
}

// source pulls the next event from whatever is currently supplying this
// node's siblings: the live queue, or a merge source's captured events.
// Isolating this as a function type (rather than an interface) keeps the
// live path and the merge-replay path identical except for where the
// closure's events come from.
type source func() (*Event, *Error)

// Decoder is the Deserializer Core: it walks the live Event Queue (and,
// for `<<` values, the Merge Engine's captured sources) and populates a
// Go value via reflection, maintaining the Path Recorder as it descends
// and consulting the Duplicate-Key Arbiter once per mapping (§4.11).
type Decoder struct {
	q     *EventQueue
	bm    *BudgetMonitor
	merge *MergeEngine
	pr    *PathRecorder
	opts  DecodeOptions

	// pending maps an anchor id to the addressable value currently being
	// populated for it, for the duration of that node's own decode. An
	// Alias naming a still-pending anchor is a genuine recursive
	// self-reference (the anchor's AnchorRecord can't exist yet, since
	// its node hasn't balanced), resolved directly against this map
	// rather than through the Anchor Registry/Replayer.
	pending map[int]reflect.Value
}

// NewDecoder binds a Decoder to one document's Event Queue, Budget
// Monitor, and Merge Engine.
func NewDecoder(q *EventQueue, bm *BudgetMonitor, opts DecodeOptions) *Decoder {
	return &Decoder{
		q:       q,
		bm:      bm,
		merge:   NewMergeEngine(bm),
		pr:      NewPathRecorder(),
		opts:    opts,
		pending: make(map[int]reflect.Value),
	}
}

// PathRecorder exposes the accumulated Ref/Defined path maps, for
// validation-error path resolution after a decode fails partway through.
func (d *Decoder) PathRecorder() *PathRecorder { return d.pr }

// DecodeDocument decodes one whole document's root node into v.
func (d *Decoder) DecodeDocument(v reflect.Value) *Error {
	d.q.SetReferenceLocation(d.q.LastLocation())
	e, err := d.q.Next()
	if err != nil {
		return err
	}
	return d.decodeEvent(*e, d.q.Next, v)
}

// decodeValue pulls the next event from pull and dispatches it.
func (d *Decoder) decodeValue(pull source, v reflect.Value) *Error {
	e, err := pull()
	if err != nil {
		return err
	}
	return d.decodeEvent(*e, pull, v)
}

// decodeEvent dispatches an already-pulled event, using pull for any
// further events this node's children need (§4.11's "peek next event;
// dispatch by kind").
func (d *Decoder) decodeEvent(e Event, pull source, v reflect.Value) *Error {
	if v.IsValid() {
		if valueIdx, refIdx, defIdx, ok := spanFields(v.Type()); ok {
			return d.decodeSpanned(e, pull, v, valueIdx, refIdx, defIdx)
		}
	}

	if e.Kind == Alias {
		if pv, ok := d.pending[e.AliasTarget]; ok {
			return assignBackReference(e.Location, pv, v)
		}
		isBackRef, berr := d.q.BeginReplay(e.AliasTarget, e.Location)
		if berr != nil {
			return berr
		}
		if isBackRef {
			return errRecursiveNeedsWeak(e.Location, e.Location)
		}
		return d.decodeValue(d.q.Next, v)
	}

	if d.opts.Variants != nil && (e.Kind == Scalar || e.Kind == MappingStart) &&
		v.Kind() == reflect.Interface && v.NumMethod() > 0 {
		if names, ok := d.opts.Variants.Variants(v.Type()); ok {
			return d.decodeEnum(e, pull, v, names)
		}
	}

	if e.Kind == Scalar {
		return d.decodeScalarInto(e, v)
	}

	v = allocatePointers(v)
	switch e.Kind {
	case SequenceStart:
		return d.decodeSequence(e, pull, v)
	case MappingStart:
		return d.decodeMapping(e, pull, v)
	default:
		return errUnexpected(e.Location, "a value")
	}
}

// allocatePointers walks through pointer indirections, allocating as
// needed, stopping at the first non-pointer value (or an Interface,
// which callers handle directly).
func allocatePointers(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	return v
}

// assignBackReference assigns a recursive alias target into v, which must
// be a Ptr or an empty Interface: only those can hold a reference to a
// node whose own decode hasn't finished without copying an incomplete
// value (§4.5, RecursiveReferencesRequireWeakTypes).
func assignBackReference(loc Location, pv reflect.Value, v reflect.Value) *Error {
	if pv.Kind() != reflect.Ptr {
		if !pv.CanAddr() {
			return errRecursiveNeedsWeak(loc, loc)
		}
		pv = pv.Addr()
	}
	switch v.Kind() {
	case reflect.Interface:
		v.Set(pv)
		return nil
	case reflect.Ptr:
		if !pv.Type().AssignableTo(v.Type()) {
			return errRecursiveNeedsWeak(loc, loc)
		}
		v.Set(pv)
		return nil
	default:
		return errRecursiveNeedsWeak(loc, loc)
	}
}

// registerPending records v's address under anchorID for the duration of
// fn, so a nested alias back to the same anchor can resolve as a
// recursive back-reference instead of failing as unknown.
func (d *Decoder) registerPending(anchorID int, v reflect.Value, fn func() *Error) *Error {
	if anchorID == 0 || !v.CanAddr() {
		return fn()
	}
	d.pending[anchorID] = v.Addr()
	err := fn()
	delete(d.pending, anchorID)
	return err
}

// --- Scalars -----------------------------------------------------------

func (d *Decoder) decodeScalarInto(e Event, v reflect.Value) *Error {
	if err := d.bm.ScalarBytes(e.Location, len(e.Value)); err != nil {
		return err.(*Error)
	}
	resolved, rerr := Resolve(e.Location, e.Value, e.Style, e.Tag, d.opts.Scalar)
	if rerr != nil {
		return rerr
	}
	if resolved.Type == LogicalNull {
		return assignNull(e, v)
	}
	v = allocatePointers(v)
	if resolved.Type == LogicalString && d.opts.Borrow.Enabled && assignsString(v) {
		ctx := BorrowContext{InputIsSlice: d.opts.Borrow.InputIsSlice, FromReplay: d.q.InReplay()}
		decision := Analyze(ctx, e.Style, containsBorrowTransforms(e.Style, resolved.Text))
		if !decision.CanBorrow {
			return errCannotBorrow(e.Location, decision.Reason)
		}
	}
	return assignResolved(e, resolved, v)
}

// assignsString reports whether v will end up holding the scalar's text
// as a Go string: either directly, or via an any-typed interface, the
// two cases the Zero-Copy Borrow Analyzer's gate applies to (§4.10).
func assignsString(v reflect.Value) bool {
	return v.Kind() == reflect.String || (v.Kind() == reflect.Interface && v.NumMethod() == 0)
}

// --- Enum variants (§4.11) ------------------------------------------------

func (d *Decoder) decodeEnum(e Event, pull source, v reflect.Value, names []string) *Error {
	switch e.Kind {
	case Scalar:
		name := e.Value
		if !containsString(names, name) {
			return errUnknownVariant(e.Location, name, names)
		}
		payload, ok := d.opts.Variants.NewVariant(v.Type(), name)
		if !ok {
			return errUnknownVariant(e.Location, name, names)
		}
		return assignVariant(e.Location, v, payload)
	case MappingStart:
		ke, err := pull()
		if err != nil {
			return err
		}
		if ke.Kind != Scalar {
			if derr := d.skipValue(pull, *ke); derr != nil {
				return derr
			}
			if derr := d.drainMapping(pull); derr != nil {
				return derr
			}
			return errUnexpected(ke.Location, "a scalar variant name")
		}
		name := ke.Value
		ve, err := pull()
		if err != nil {
			return err
		}
		payload, ok := d.opts.Variants.NewVariant(v.Type(), name)
		if !containsString(names, name) || !ok {
			if derr := d.skipValue(pull, *ve); derr != nil {
				return derr
			}
			if derr := d.drainMapping(pull); derr != nil {
				return derr
			}
			return errUnknownVariant(ke.Location, name, names)
		}
		if perr := d.decodeEvent(*ve, pull, payload.Elem()); perr != nil {
			return perr
		}
		end, err := pull()
		if err != nil {
			return err
		}
		if end.Kind != MappingEnd {
			if derr := d.drainMapping(pull); derr != nil {
				return derr
			}
			return errUnexpected(end.Location, "end of single-entry variant mapping")
		}
		return assignVariant(e.Location, v, payload)
	default:
		return errUnexpected(e.Location, "an enum variant")
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// assignVariant stores payload (an addressable pointer to the concrete
// variant type) into the enum-typed target ifaceVal, trying both the
// pointer and the pointed-to value so either a pointer or value receiver
// satisfying the target interface works.
func assignVariant(loc Location, ifaceVal, payload reflect.Value) *Error {
	if payload.Type().AssignableTo(ifaceVal.Type()) {
		ifaceVal.Set(payload)
		return nil
	}
	if elem := payload.Elem(); elem.Type().AssignableTo(ifaceVal.Type()) {
		ifaceVal.Set(elem)
		return nil
	}
	return errUnexpected(loc, "a variant implementing the target interface")
}

func assignNull(e Event, v reflect.Value) *Error {
	v = skipNilablePointers(v)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		v.Set(reflect.Zero(v.Type()))
		return nil
	case reflect.Invalid:
		return nil
	default:
		return newErr(KindNullIntoString, e.Location, "cannot assign a null scalar into "+v.Type().String())
	}
}

// skipNilablePointers only unwraps already-allocated pointers: a nil
// pointer target for a null scalar should stay nil rather than being
// allocated just to be zeroed again.
func skipNilablePointers(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func assignResolved(e Event, r ResolvedScalar, v reflect.Value) *Error {
	if v.Kind() == reflect.Interface && v.NumMethod() == 0 {
		v.Set(reflect.ValueOf(naturalValue(r)))
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		if r.Type == LogicalBinary {
			return errInvalidScalar(e.Location, "string", r.Text)
		}
		v.SetString(r.Text)
		return nil
	case reflect.Bool:
		b, ok := r.asBool()
		if !ok {
			return errInvalidScalar(e.Location, "bool", r.Text)
		}
		v.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := r.asInt()
		if !ok || v.OverflowInt(i) {
			return errInvalidScalar(e.Location, v.Type().String(), r.Text)
		}
		v.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, ok := r.asInt()
		if !ok || i < 0 || v.OverflowUint(uint64(i)) {
			return errInvalidScalar(e.Location, v.Type().String(), r.Text)
		}
		v.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := r.asFloat()
		if !ok {
			return errInvalidScalar(e.Location, "float", r.Text)
		}
		v.SetFloat(f)
		return nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, ok := r.asBytes()
			if !ok {
				return errInvalidScalar(e.Location, "[]byte", r.Text)
			}
			v.SetBytes(b)
			return nil
		}
		return errInvalidScalar(e.Location, v.Type().String(), r.Text)
	default:
		return errInvalidScalar(e.Location, v.Type().String(), r.Text)
	}
}

func naturalValue(r ResolvedScalar) any {
	switch r.Type {
	case LogicalBool:
		return r.Bool
	case LogicalInt:
		return r.Int
	case LogicalFloat:
		return r.Float
	case LogicalBinary:
		return r.Binary
	default:
		return r.Text
	}
}

func (r ResolvedScalar) asBool() (bool, bool) {
	if r.Type == LogicalBool {
		return r.Bool, true
	}
	return false, false
}

func (r ResolvedScalar) asInt() (int64, bool) {
	switch r.Type {
	case LogicalInt:
		return r.Int, true
	case LogicalFloat:
		if r.Float == float64(int64(r.Float)) {
			return int64(r.Float), true
		}
	}
	return 0, false
}

func (r ResolvedScalar) asFloat() (float64, bool) {
	switch r.Type {
	case LogicalFloat:
		return r.Float, true
	case LogicalInt:
		return float64(r.Int), true
	}
	return 0, false
}

func (r ResolvedScalar) asBytes() ([]byte, bool) {
	switch r.Type {
	case LogicalBinary:
		return r.Binary, true
	case LogicalString:
		return []byte(r.Text), true
	}
	return nil, false
}

// --- Sequences -----------------------------------------------------------

func (d *Decoder) decodeSequence(e Event, pull source, v reflect.Value) *Error {
	if err := d.bm.EnterDepth(e.Location); err != nil {
		return err.(*Error)
	}
	defer d.bm.LeaveDepth()

	return d.registerPending(e.AnchorID, v, func() *Error {
		switch {
		case v.Kind() == reflect.Slice:
			return d.decodeSequenceIntoSlice(pull, v)
		case v.Kind() == reflect.Array:
			return d.decodeSequenceIntoArray(pull, v)
		case v.Kind() == reflect.Interface && v.NumMethod() == 0:
			return d.decodeSequenceIntoAny(pull, v)
		default:
			if derr := d.drainSequence(pull); derr != nil {
				return derr
			}
			return errUnexpected(e.Location, "a sequence-compatible target")
		}
	})
}

func (d *Decoder) decodeSequenceIntoSlice(pull source, v reflect.Value) *Error {
	elemType := v.Type().Elem()
	out := reflect.MakeSlice(v.Type(), 0, 0)
	idx := 0
	for {
		pe, err := pull()
		if err != nil {
			return err
		}
		if pe.Kind == SequenceEnd {
			break
		}
		elem := reflect.New(elemType).Elem()
		e := *pe
		i := idx
		perr := d.pr.Descend(PathSegment{Kind: PathIndex, Name: itoaIndex(i)}, e.Location, e.Location, func() *Error {
			return d.decodeEvent(e, pull, elem)
		})
		if perr != nil {
			return perr
		}
		out = reflect.Append(out, elem)
		idx++
	}
	v.Set(out)
	return nil
}

func (d *Decoder) decodeSequenceIntoArray(pull source, v reflect.Value) *Error {
	idx := 0
	for {
		pe, err := pull()
		if err != nil {
			return err
		}
		if pe.Kind == SequenceEnd {
			break
		}
		e := *pe
		if idx < v.Len() {
			i := idx
			perr := d.pr.Descend(PathSegment{Kind: PathIndex, Name: itoaIndex(i)}, e.Location, e.Location, func() *Error {
				return d.decodeEvent(e, pull, v.Index(i))
			})
			if perr != nil {
				return perr
			}
		} else if serr := d.skipValue(pull, e); serr != nil {
			return serr
		}
		idx++
	}
	return nil
}

func (d *Decoder) decodeSequenceIntoAny(pull source, v reflect.Value) *Error {
	var out []any
	idx := 0
	for {
		pe, err := pull()
		if err != nil {
			return err
		}
		if pe.Kind == SequenceEnd {
			break
		}
		e := *pe
		var elem any
		ev := reflect.ValueOf(&elem).Elem()
		i := idx
		perr := d.pr.Descend(PathSegment{Kind: PathIndex, Name: itoaIndex(i)}, e.Location, e.Location, func() *Error {
			return d.decodeEvent(e, pull, ev)
		})
		if perr != nil {
			return perr
		}
		out = append(out, elem)
		idx++
	}
	v.Set(reflect.ValueOf(out))
	return nil
}

func (d *Decoder) drainSequence(pull source) *Error {
	for {
		pe, err := pull()
		if err != nil {
			return err
		}
		if pe.Kind == SequenceEnd {
			return nil
		}
		if serr := d.skipValue(pull, *pe); serr != nil {
			return serr
		}
	}
}

// --- Mappings ------------------------------------------------------------

// resolvedEntry is one key/value pair a mapping target should receive,
// after merge expansion and duplicate-key arbitration have settled which
// pairs survive and in what final form. The value's events are captured
// up front (rather than decoded in place) because a mapping's keys are
// scanned in one pass before any target-specific decode begins — capture
// is what lets that scan leave the stream correctly balanced regardless
// of which entries are ultimately kept.
type resolvedEntry struct {
	keyLoc      Location
	keyText     string
	keyNative   any
	canon       Key
	valueLoc    Location
	valueEvents []Event
}

func (d *Decoder) decodeMapping(e Event, pull source, v reflect.Value) *Error {
	if err := d.bm.EnterDepth(e.Location); err != nil {
		return err.(*Error)
	}
	defer d.bm.LeaveDepth()

	return d.registerPending(e.AnchorID, v, func() *Error {
		switch {
		case v.Kind() == reflect.Map:
			return d.decodeMappingIntoMap(pull, v)
		case v.Kind() == reflect.Struct:
			return d.decodeMappingIntoStruct(e.Location, pull, v)
		case v.Kind() == reflect.Interface && v.NumMethod() == 0:
			return d.decodeMappingIntoAny(pull, v)
		default:
			if derr := d.drainMapping(pull); derr != nil {
				return derr
			}
			return errUnexpected(e.Location, "a mapping-compatible target")
		}
	})
}

// collectMappingEntries scans the mapping pull produces, expanding `<<`
// keys through the Merge Engine and arbitrating duplicates, and returns
// the final ordered set of key/value pairs a target should populate.
// Explicit keys always win over merge-contributed ones regardless of
// textual order; among merge sources themselves the earliest source's key
// wins without consulting the DuplicatePolicy; between an earlier explicit
// occurrence and a later one, the configured DuplicatePolicy governs
// (§4.7, §4.8).
func (d *Decoder) collectMappingEntries(pull source) ([]resolvedEntry, *Error) {
	arb := NewDuplicateKeyArbiter(d.opts.Duplicate)
	explicitSeen := map[Key]bool{}
	var entries []resolvedEntry
	var mergeSources []MergeSource

	for {
		ke, err := pull()
		if err != nil {
			return nil, err
		}
		if ke.Kind == MappingEnd {
			break
		}

		if ke.Kind == Scalar && ke.Style == StylePlain && ke.Value == "<<" {
			srcs, merr := d.merge.Expand(pull, d.q, ke.Location)
			if merr != nil {
				return nil, merr
			}
			mergeSources = append(mergeSources, srcs...)
			continue
		}

		keyEntry, kerr := d.readKey(*ke, pull)
		if kerr != nil {
			return nil, kerr
		}
		ve, err := pull()
		if err != nil {
			return nil, err
		}
		valueEvents, verr := captureNode(pull, *ve)
		if verr != nil {
			return nil, verr
		}
		explicitSeen[keyEntry.canon] = true

		outcome, derr := arb.Offer(keyEntry.canon, ke.Location, keyEntry.keyText)
		if derr != nil {
			return nil, derr
		}
		keyEntry.valueLoc = ve.Location
		keyEntry.valueEvents = valueEvents
		switch outcome {
		case OutcomeSkip:
			// Already fully consumed above; nothing further to discard.
		case OutcomeKeep:
			entries = append(entries, keyEntry)
		case OutcomeReplace:
			replaceEntry(entries, keyEntry)
		}
	}

	for _, src := range mergeSources {
		if merr := d.collectMergeSourceEntries(src, explicitSeen, arb, &entries); merr != nil {
			return nil, merr
		}
	}
	return entries, nil
}

func (d *Decoder) collectMergeSourceEntries(src MergeSource, explicitSeen map[Key]bool, arb *DuplicateKeyArbiter, entries *[]resolvedEntry) *Error {
	srcPull := sliceSource(src.Events)
	if _, err := srcPull(); err != nil { // consume MappingStart
		return err
	}
	for {
		ke, err := srcPull()
		if err != nil {
			return err
		}
		if ke.Kind == MappingEnd {
			return nil
		}
		keyEntry, kerr := d.readKey(*ke, srcPull)
		if kerr != nil {
			return kerr
		}
		ve, err := srcPull()
		if err != nil {
			return err
		}
		valueEvents, verr := captureNode(srcPull, *ve)
		if verr != nil {
			return verr
		}
		if explicitSeen[keyEntry.canon] {
			continue
		}
		outcome, derr := arb.Offer(keyEntry.canon, ke.Location, keyEntry.keyText)
		if derr != nil {
			return derr
		}
		explicitSeen[keyEntry.canon] = true
		keyEntry.valueLoc = ve.Location
		keyEntry.valueEvents = valueEvents
		switch outcome {
		case OutcomeSkip:
			// Already fully consumed above; nothing further to discard.
		case OutcomeKeep:
			*entries = append(*entries, keyEntry)
		case OutcomeReplace:
			replaceEntry(*entries, keyEntry)
		}
	}
}

func replaceEntry(entries []resolvedEntry, replacement resolvedEntry) {
	for i := range entries {
		if entries[i].canon == replacement.canon {
			entries[i] = replacement
			return
		}
	}
}

// readKey decodes a mapping key event into both its canonical Key (for
// duplicate detection) and a human-readable/native form for diagnostics
// and map-key assignment. Scalars are the common case; sequence,
// mapping, and alias keys (§4.8's complex keys) are decoded into an
// interface{} scratch value and canonicalized from the resulting Go
// value.
func (d *Decoder) readKey(ke Event, pull source) (resolvedEntry, *Error) {
	if ke.Kind == Scalar {
		if err := d.bm.ScalarBytes(ke.Location, len(ke.Value)); err != nil {
			return resolvedEntry{}, err.(*Error)
		}
		resolved, rerr := Resolve(ke.Location, ke.Value, ke.Style, ke.Tag, d.opts.Scalar)
		if rerr != nil {
			return resolvedEntry{}, rerr
		}
		return resolvedEntry{
			keyLoc:    ke.Location,
			keyText:   resolved.Text,
			keyNative: naturalValue(resolved),
			canon:     ScalarKey(resolved),
		}, nil
	}
	var native any
	ev := reflect.ValueOf(&native).Elem()
	if err := d.decodeEvent(ke, pull, ev); err != nil {
		return resolvedEntry{}, err
	}
	return resolvedEntry{
		keyLoc:    ke.Location,
		keyText:   fmt.Sprintf("%v", native),
		keyNative: native,
		canon:     keyFromGoValue(native),
	}, nil
}

func keyFromGoValue(v any) Key {
	switch t := v.(type) {
	case nil:
		return ScalarKey(ResolvedScalar{Type: LogicalNull})
	case bool:
		return ScalarKey(ResolvedScalar{Type: LogicalBool, Bool: t})
	case int64:
		return ScalarKey(ResolvedScalar{Type: LogicalInt, Int: t})
	case float64:
		return ScalarKey(ResolvedScalar{Type: LogicalFloat, Float: t})
	case []byte:
		return ScalarKey(ResolvedScalar{Type: LogicalBinary, Binary: t})
	case string:
		return ScalarKey(ResolvedScalar{Type: LogicalString, Text: t})
	case []any:
		children := make([]Key, len(t))
		for i, c := range t {
			children[i] = keyFromGoValue(c)
		}
		return SequenceKey(children)
	case map[string]any:
		pairs := make([][2]Key, 0, len(t))
		for k, val := range t {
			pairs = append(pairs, [2]Key{ScalarKey(ResolvedScalar{Type: LogicalString, Text: k}), keyFromGoValue(val)})
		}
		return MappingKey(pairs)
	default:
		return ScalarKey(ResolvedScalar{Type: LogicalString, Text: fmt.Sprintf("%v", t)})
	}
}

func (d *Decoder) decodeMappingIntoMap(pull source, v reflect.Value) *Error {
	entries, err := d.collectMappingEntries(pull)
	if err != nil {
		return err
	}
	if v.IsNil() {
		v.Set(reflect.MakeMap(v.Type()))
	}
	keyType := v.Type().Key()
	elemType := v.Type().Elem()
	for _, en := range entries {
		keyVal := reflect.New(keyType).Elem()
		if perr := setReflectFromNative(keyVal, en.keyNative, en.keyLoc); perr != nil {
			return perr
		}
		elemVal := reflect.New(elemType).Elem()
		entry := en
		vpull := sliceSource(entry.valueEvents)
		perr := d.pr.Descend(PathSegment{Kind: PathKey, Name: entry.keyText}, entry.keyLoc, entry.valueLoc, func() *Error {
			return d.decodeValue(vpull, elemVal)
		})
		if perr != nil {
			return perr
		}
		v.SetMapIndex(keyVal, elemVal)
	}
	return nil
}

func (d *Decoder) decodeMappingIntoStruct(loc Location, pull source, v reflect.Value) *Error {
	entries, err := d.collectMappingEntries(pull)
	if err != nil {
		return err
	}
	t := v.Type()
	var inlineIdx []int
	haveInline := false
	var required []string
	if d.opts.Fields != nil {
		inlineIdx, haveInline = d.opts.Fields.InlineField(t)
		required = d.opts.Fields.RequiredFields(t)
	}
	var seen map[string]bool
	if len(required) > 0 {
		seen = make(map[string]bool, len(entries))
	}
	for _, en := range entries {
		entry := en
		var idx []int
		ok := false
		if d.opts.Fields != nil {
			idx, ok = d.opts.Fields.StructField(t, entry.keyText)
		}
		if ok {
			if seen != nil {
				seen[entry.keyText] = true
			}
			field := v.FieldByIndex(idx)
			vpull := sliceSource(entry.valueEvents)
			perr := d.pr.Descend(PathSegment{Kind: PathKey, Name: entry.keyText}, entry.keyLoc, entry.valueLoc, func() *Error {
				return d.decodeValue(vpull, field)
			})
			if perr != nil {
				return perr
			}
			continue
		}
		if haveInline {
			inlineField := v.FieldByIndex(inlineIdx)
			if inlineField.Kind() == reflect.Map {
				if inlineField.IsNil() {
					inlineField.Set(reflect.MakeMap(inlineField.Type()))
				}
				keyVal := reflect.New(inlineField.Type().Key()).Elem()
				if perr := setReflectFromNative(keyVal, entry.keyNative, entry.keyLoc); perr != nil {
					return perr
				}
				elemVal := reflect.New(inlineField.Type().Elem()).Elem()
				vpull := sliceSource(entry.valueEvents)
				perr := d.pr.Descend(PathSegment{Kind: PathKey, Name: entry.keyText}, entry.keyLoc, entry.valueLoc, func() *Error {
					return d.decodeValue(vpull, elemVal)
				})
				if perr != nil {
					return perr
				}
				inlineField.SetMapIndex(keyVal, elemVal)
				continue
			}
		}
		if d.opts.UnknownField != nil {
			if uerr := d.opts.UnknownField(d.pr.Current.JoinKey(entry.keyText), entry.keyLoc, entry.keyText); uerr != nil {
				return uerr
			}
		}
	}
	for _, name := range required {
		if !seen[name] {
			return errMissingField(loc, name)
		}
	}
	return nil
}

func (d *Decoder) decodeMappingIntoAny(pull source, v reflect.Value) *Error {
	entries, err := d.collectMappingEntries(pull)
	if err != nil {
		return err
	}
	out := make(map[string]any, len(entries))
	for _, en := range entries {
		entry := en
		var elem any
		ev := reflect.ValueOf(&elem).Elem()
		vpull := sliceSource(entry.valueEvents)
		perr := d.pr.Descend(PathSegment{Kind: PathKey, Name: entry.keyText}, entry.keyLoc, entry.valueLoc, func() *Error {
			return d.decodeValue(vpull, ev)
		})
		if perr != nil {
			return perr
		}
		out[entry.keyText] = elem
	}
	v.Set(reflect.ValueOf(out))
	return nil
}

func (d *Decoder) drainMapping(pull source) *Error {
	for {
		ke, err := pull()
		if err != nil {
			return err
		}
		if ke.Kind == MappingEnd {
			return nil
		}
		ve, err := pull()
		if err != nil {
			return err
		}
		if serr := d.skipValue(pull, *ve); serr != nil {
			return serr
		}
	}
}

// setReflectFromNative assigns a decoded Go-native scalar (bool, int64,
// float64, string, []byte, or nil) into dst, converting between numeric
// kinds as needed. Used for map keys, whose declared type rarely matches
// the natural decoding of a YAML scalar exactly (e.g. map[int]T).
func setReflectFromNative(dst reflect.Value, native any, loc Location) *Error {
	if native == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	rv := reflect.ValueOf(native)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}
	switch dst.Kind() {
	case reflect.String:
		dst.SetString(fmt.Sprintf("%v", native))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, ok := native.(int64); ok {
			dst.SetInt(i)
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i, ok := native.(int64); ok && i >= 0 {
			dst.SetUint(uint64(i))
			return nil
		}
	case reflect.Float32, reflect.Float64:
		switch n := native.(type) {
		case float64:
			dst.SetFloat(n)
			return nil
		case int64:
			dst.SetFloat(float64(n))
			return nil
		}
	case reflect.Bool:
		if b, ok := native.(bool); ok {
			dst.SetBool(b)
			return nil
		}
	}
	return errInvalidScalar(loc, dst.Type().String(), fmt.Sprintf("%v", native))
}

// --- Skipping (generalized over source) ----------------------------------

// sliceSource adapts a captured, balanced event list (a Merge Engine
// source's events) to the source shape, so the same decode/skip
// functions drive both live and merge-replayed mappings.
func sliceSource(events []Event) source {
	i := 0
	return func() (*Event, *Error) {
		e := events[i]
		i++
		return &e, nil
	}
}

// skipValue discards one balanced node whose first event, first, has
// already been pulled from pull. Nested aliases resolve through the
// live queue's replayer exactly as skip.go's Skip does; a nested
// self-reference to a still-pending anchor has nothing further to
// discard, since its content is what's currently being decoded.
func (d *Decoder) skipValue(pull source, first Event) *Error {
	if first.Kind == Alias {
		if _, ok := d.pending[first.AliasTarget]; ok {
			return nil
		}
		isBackRef, berr := d.q.BeginReplay(first.AliasTarget, first.Location)
		if berr != nil {
			return berr
		}
		if isBackRef {
			return nil
		}
		return Skip(d.q)
	}
	if !first.IsCollectionStart() {
		return nil
	}
	depth := 1
	for depth > 0 {
		e, err := pull()
		if err != nil {
			return err
		}
		switch {
		case e.Kind == Alias:
			if _, ok := d.pending[e.AliasTarget]; ok {
				continue
			}
			isBackRef, berr := d.q.BeginReplay(e.AliasTarget, e.Location)
			if berr != nil {
				return berr
			}
			if !isBackRef {
				if serr := skipOneInline(d.q); serr != nil {
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
