//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0
//

// Reflect-based marshal walker driving the low-level emitter.
//
// Grounded on the teacher's marshal() dispatch (value kind switch feeding
// encodeMap/encodeStruct/encodeSlice/encodeString/...), adapted to route
// scalar style decisions through the Scalar Resolver (so a plain rendering
// is only requested when core.Resolve would read it back as a string) and
// shared pointer/map/slice identity through the Anchor Emitter instead of
// the teacher's own visited-pointer bookkeeping.

package yaml

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	"go.yaml.in/yamlcore/internal/core"
	"go.yaml.in/yamlcore/internal/lowemit"
)

func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

type encoder struct {
	emitter   *lowemit.Emitter
	opts      *Options
	ae        *core.AnchorEmitter
	refCounts map[uintptr]int
	started   bool

	// flowHint is set just before encoding a struct field tagged ",flow"
	// and consumed by the very next marshal() call.
	flowHint bool
}

func newEncoder(em *lowemit.Emitter, opts *Options) *encoder {
	nameOf := opts.AnchorGenerator
	return &encoder{emitter: em, opts: opts, ae: core.NewAnchorEmitter(nameOf)}
}

func (e *encoder) emit(ev *lowemit.Event) error {
	return e.emitter.Emit(ev, false)
}

func (e *encoder) ensureStarted() error {
	if e.started {
		return nil
	}
	e.started = true
	return e.emit(lowemit.StreamStartEvent())
}

func (e *encoder) encodeDocument(v any) error {
	if err := e.ensureStarted(); err != nil {
		return err
	}
	start := lowemit.DocumentStartEvent()
	start.Implicit = !e.opts.ExplicitStart
	if err := e.emit(start); err != nil {
		return err
	}
	e.refCounts = make(map[uintptr]int)
	countRefs(reflect.ValueOf(v), make(map[uintptr]bool), e.refCounts)
	if n, ok := v.(*Node); ok {
		if err := e.encodeNode(n); err != nil {
			return err
		}
	} else if n, ok := v.(Node); ok {
		if err := e.encodeNode(&n); err != nil {
			return err
		}
	} else if err := e.marshal("", v); err != nil {
		return err
	}
	end := lowemit.DocumentEndEvent()
	end.Implicit = !e.opts.ExplicitEnd
	return e.emit(end)
}

func (e *encoder) close() error {
	if !e.started {
		return nil
	}
	return e.emitter.Emit(lowemit.StreamEndEvent(), true)
}

// isReferenceable reports whether v's kind carries an address that two
// independent reflect.Values can share (and so is a candidate for anchor
// tracking rather than being copied out wholesale on every occurrence).
func isReferenceable(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

// countRefs walks v once, counting how many times each distinct
// Ptr/Map/Slice address is reachable. A count greater than one earns an
// anchor; a count of exactly one is encoded inline with no identity
// bookkeeping. visiting breaks cycles: re-entering an address already on
// the walk stack stops the descent (it will be encoded as an alias once
// its own anchor assignment completes).
func countRefs(v reflect.Value, visiting map[uintptr]bool, counts map[uintptr]int) {
	if !v.IsValid() {
		return
	}
	switch v.Kind() {
	case reflect.Interface:
		if !v.IsNil() {
			countRefs(v.Elem(), visiting, counts)
		}
	case reflect.Ptr:
		if v.IsNil() {
			return
		}
		addr := v.Pointer()
		counts[addr]++
		if visiting[addr] {
			return
		}
		visiting[addr] = true
		countRefs(v.Elem(), visiting, counts)
		delete(visiting, addr)
	case reflect.Map:
		if v.IsNil() {
			return
		}
		addr := v.Pointer()
		counts[addr]++
		if visiting[addr] {
			return
		}
		visiting[addr] = true
		for _, k := range v.MapKeys() {
			countRefs(v.MapIndex(k), visiting, counts)
		}
		delete(visiting, addr)
	case reflect.Slice:
		if v.IsNil() {
			return
		}
		addr := v.Pointer()
		counts[addr]++
		if visiting[addr] {
			return
		}
		visiting[addr] = true
		for i := 0; i < v.Len(); i++ {
			countRefs(v.Index(i), visiting, counts)
		}
		delete(visiting, addr)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).PkgPath != "" && !t.Field(i).Anonymous {
				continue
			}
			countRefs(v.Field(i), visiting, counts)
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			countRefs(v.Index(i), visiting, counts)
		}
	}
}

// sentinelFor returns the Anchor Emitter sentinel for v, and whether one
// applies at all (nil pointers/maps/slices and everything else skip
// identity tracking entirely).
func (e *encoder) sentinelFor(v reflect.Value) (core.Sentinel, bool) {
	if !isReferenceable(v.Kind()) || v.IsNil() {
		return core.Sentinel{}, false
	}
	addr := v.Pointer()
	if e.refCounts[addr] <= 1 {
		return core.Sentinel{}, false
	}
	return core.Sentinel{Kind: core.SentinelStrong, Addr: addr}, true
}

func (e *encoder) marshal(tag string, v any) error {
	switch value := v.(type) {
	case *Node:
		return e.encodeNode(value)
	case Node:
		return e.encodeNode(&value)
	case time.Time:
		return e.encodeString(tag, value.Format(time.RFC3339Nano), false)
	case *time.Time:
		if value == nil {
			return e.encodeNil()
		}
		return e.encodeString(tag, value.Format(time.RFC3339Nano), false)
	case time.Duration:
		return e.encodeString(tag, value.String(), true)
	case Marshaler:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return e.encodeNil()
		}
		y, err := value.MarshalYAML()
		if err != nil {
			return err
		}
		return e.marshal(tag, y)
	case encoding.TextMarshaler:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return e.encodeNil()
		}
		text, err := value.MarshalText()
		if err != nil {
			return err
		}
		return e.encodeString(tag, string(text), true)
	case nil:
		return e.encodeNil()
	}
	flow := e.flowHint || e.opts.FlowSimpleCollections
	e.flowHint = false
	return e.marshalReflect(tag, reflect.ValueOf(v), flow)
}

func (e *encoder) marshalReflect(tag string, rv reflect.Value, flow bool) error {
	if !rv.IsValid() {
		return e.encodeNil()
	}

	if sentinel, ok := e.sentinelFor(rv); ok {
		decision := e.ae.Offer(sentinel)
		if decision.Action == core.ActionWriteAlias {
			return e.emit(lowemit.AliasEvent([]byte(decision.Name)))
		}
		return e.marshalWithAnchor(tag, rv, decision.Name, flow)
	}
	return e.marshalWithAnchor(tag, rv, "", flow)
}

func (e *encoder) marshalWithAnchor(tag string, rv reflect.Value, anchor string, flow bool) error {
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return e.encodeNil()
		}
		return e.marshalElemWithAnchor(tag, rv.Elem(), anchor, flow)
	case reflect.Interface:
		if rv.IsNil() {
			return e.encodeNil()
		}
		return e.marshalReflect(tag, reflect.ValueOf(rv.Interface()), flow)
	case reflect.Map:
		return e.encodeMap(tag, rv, anchor, flow)
	case reflect.Struct:
		return e.encodeStruct(tag, rv, anchor, flow)
	case reflect.Slice:
		if rv.IsNil() {
			return e.encodeNil()
		}
		return e.encodeSlice(tag, rv, anchor, flow)
	case reflect.Array:
		return e.encodeSlice(tag, rv, anchor, flow)
	case reflect.String:
		return e.encodeString(tag, rv.String(), false)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.encodeInt(tag, rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return e.encodeUint(tag, rv.Uint())
	case reflect.Float32:
		return e.encodeFloat(tag, rv.Float(), 32)
	case reflect.Float64:
		return e.encodeFloat(tag, rv.Float(), 64)
	case reflect.Bool:
		return e.encodeBool(tag, rv.Bool())
	default:
		return fmt.Errorf("yaml: cannot marshal type: %s", rv.Type())
	}
}

// marshalElemWithAnchor re-dispatches a pointer's element while keeping an
// anchor name assigned to the pointer itself (not recomputed for Elem()).
func (e *encoder) marshalElemWithAnchor(tag string, elem reflect.Value, anchor string, flow bool) error {
	if elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			return e.encodeNil()
		}
		elem = reflect.ValueOf(elem.Interface())
	}
	return e.marshalWithAnchor(tag, elem, anchor, flow)
}

func mappingStyle(flow bool) lowemit.YamlMappingStyle {
	if flow {
		return lowemit.FLOW_MAPPING_STYLE
	}
	return lowemit.ANY_MAPPING_STYLE
}

func sequenceStyle(flow bool) lowemit.YamlSequenceStyle {
	if flow {
		return lowemit.FLOW_SEQUENCE_STYLE
	}
	return lowemit.ANY_SEQUENCE_STYLE
}

func (e *encoder) encodeMap(tag string, in reflect.Value, anchor string, flow bool) error {
	if in.IsNil() {
		return e.emptyMapping(tag, anchor, flow)
	}
	if err := e.emit(lowemit.MappingStartEvent([]byte(anchor), []byte(tag), tag == "", mappingStyle(flow))); err != nil {
		return err
	}
	keys := in.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		if err := e.marshal("", k.Interface()); err != nil {
			return err
		}
		if err := e.marshal("", in.MapIndex(k).Interface()); err != nil {
			return err
		}
	}
	return e.emit(lowemit.MappingEndEvent())
}

func (e *encoder) emptyMapping(tag, anchor string, flow bool) error {
	if err := e.emit(lowemit.MappingStartEvent([]byte(anchor), []byte(tag), tag == "", mappingStyle(flow))); err != nil {
		return err
	}
	return e.emit(lowemit.MappingEndEvent())
}

func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for _, num := range index {
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		v = v.Field(num)
	}
	return v
}

func isZero(v reflect.Value) bool {
	if z, ok := v.Interface().(IsZeroer); ok {
		if v.Kind() == reflect.Ptr && v.IsNil() {
			return true
		}
		return z.IsZero()
	}
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Struct:
		vt := v.Type()
		for i := vt.NumField() - 1; i >= 0; i-- {
			if vt.Field(i).PkgPath != "" {
				continue
			}
			if !isZero(v.Field(i)) {
				return false
			}
		}
		return true
	}
	return false
}

func (e *encoder) encodeStruct(tag string, in reflect.Value, anchor string, flow bool) error {
	sinfo, err := getStructInfo(in.Type())
	if err != nil {
		return err
	}
	if err := e.emit(lowemit.MappingStartEvent([]byte(anchor), []byte(tag), tag == "", mappingStyle(flow))); err != nil {
		return err
	}
	for _, info := range sinfo.FieldsList {
		var field reflect.Value
		if info.Inline == nil {
			field = in.Field(info.Num)
		} else {
			field = fieldByIndex(in, info.Inline)
			if !field.IsValid() {
				continue
			}
		}
		if info.OmitEmpty && isZero(field) {
			continue
		}
		if err := e.marshal("", info.Key); err != nil {
			return err
		}
		if info.Flow {
			e.flowHint = true
		}
		if err := e.marshal("", field.Interface()); err != nil {
			return err
		}
	}
	if sinfo.InlineMap >= 0 {
		m := in.Field(sinfo.InlineMap)
		if !m.IsNil() {
			keys := m.MapKeys()
			sort.Slice(keys, func(i, j int) bool {
				return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
			})
			for _, k := range keys {
				if err := e.marshal("", k.Interface()); err != nil {
					return err
				}
				if err := e.marshal("", m.MapIndex(k).Interface()); err != nil {
					return err
				}
			}
		}
	}
	return e.emit(lowemit.MappingEndEvent())
}

func (e *encoder) encodeSlice(tag string, in reflect.Value, anchor string, flow bool) error {
	if in.Kind() == reflect.Slice && in.Type().Elem().Kind() == reflect.Uint8 {
		return e.encodeBinary(tag, in.Bytes())
	}
	if err := e.emit(lowemit.SequenceStartEvent([]byte(anchor), []byte(tag), tag == "", sequenceStyle(flow))); err != nil {
		return err
	}
	for i := 0; i < in.Len(); i++ {
		if err := e.marshal("", in.Index(i).Interface()); err != nil {
			return err
		}
	}
	return e.emit(lowemit.SequenceEndEvent())
}

func (e *encoder) encodeNil() error {
	return e.emit(lowemit.ScalarEvent(nil, nil, []byte("null"), true, false, lowemit.PLAIN_SCALAR_STYLE))
}

func (e *encoder) encodeBool(tag string, b bool) error {
	v := "false"
	if b {
		v = "true"
	}
	return e.emit(lowemit.ScalarEvent(nil, []byte(tag), []byte(v), tag == "", false, lowemit.PLAIN_SCALAR_STYLE))
}

func (e *encoder) encodeInt(tag string, i int64) error {
	return e.emit(lowemit.ScalarEvent(nil, []byte(tag), []byte(strconv.FormatInt(i, 10)), tag == "", false, lowemit.PLAIN_SCALAR_STYLE))
}

func (e *encoder) encodeUint(tag string, u uint64) error {
	return e.emit(lowemit.ScalarEvent(nil, []byte(tag), []byte(strconv.FormatUint(u, 10)), tag == "", false, lowemit.PLAIN_SCALAR_STYLE))
}

func (e *encoder) encodeFloat(tag string, f float64, bits int) error {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	return e.emit(lowemit.ScalarEvent(nil, []byte(tag), []byte(s), tag == "", false, lowemit.PLAIN_SCALAR_STYLE))
}

func (e *encoder) encodeBinary(tag string, data []byte) error {
	s := encodeBase64(data)
	bt := "!!binary"
	if tag != "" {
		bt = tag
	}
	return e.emit(lowemit.ScalarEvent(nil, []byte(bt), []byte(s), false, false, lowemit.PLAIN_SCALAR_STYLE))
}

// encodeString decides whether s can round-trip as a plain scalar by
// running it back through the Scalar Resolver: if core.Resolve reads it
// as anything other than a string (or style forbids plain), a quoted
// style is requested instead and the emitter's own analyzer still has the
// final say on what is syntactically safe.
func (e *encoder) encodeString(tag string, s string, forceQuoted bool) error {
	style := lowemit.PLAIN_SCALAR_STYLE
	if forceQuoted || !plainScalarIsSafe(s) {
		style = lowemit.DOUBLE_QUOTED_SCALAR_STYLE
	}
	return e.emit(lowemit.ScalarEvent(nil, []byte(tag), []byte(s), tag == "" && style == lowemit.PLAIN_SCALAR_STYLE, tag == "" && style != lowemit.PLAIN_SCALAR_STYLE, style))
}

func plainScalarIsSafe(s string) bool {
	if s == "" {
		return false
	}
	if s != trimmed(s) {
		return false
	}
	for _, r := range s {
		if r == '\n' || r < 0x20 {
			return false
		}
	}
	resolved, err := core.Resolve(core.Location{}, s, core.StylePlain, "", core.ScalarOptions{})
	if err != nil {
		return false
	}
	return resolved.Type == core.LogicalString
}

func trimmed(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[i:j]
}

// encodeNode emits a *Node tree directly, used when the caller hands Dump
// an already-built Node (or a DocumentNode from a prior Load) instead of a
// plain Go value. Anchors and aliases come from the node's own Anchor/
// Alias fields rather than from pointer-identity scanning.
func (e *encoder) encodeNode(n *Node) error {
	if n == nil || n.IsZero() {
		return e.encodeNil()
	}
	switch n.Kind {
	case DocumentNode:
		for _, c := range n.Content {
			if err := e.encodeNode(c); err != nil {
				return err
			}
		}
		return nil
	case AliasNode:
		name := n.Value
		if name == "" && n.Alias != nil {
			name = n.Alias.Anchor
		}
		return e.emit(lowemit.AliasEvent([]byte(name)))
	case ScalarNode:
		style := nodeScalarStyle(n.Style)
		return e.emit(lowemit.ScalarEvent([]byte(n.Anchor), []byte(n.Tag), []byte(n.Value), n.Tag == "", false, style))
	case SequenceNode:
		flow := n.Style&FlowStyle != 0
		if err := e.emit(lowemit.SequenceStartEvent([]byte(n.Anchor), []byte(n.Tag), n.Tag == "", sequenceStyle(flow))); err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := e.encodeNode(c); err != nil {
				return err
			}
		}
		return e.emit(lowemit.SequenceEndEvent())
	case MappingNode:
		flow := n.Style&FlowStyle != 0
		if err := e.emit(lowemit.MappingStartEvent([]byte(n.Anchor), []byte(n.Tag), n.Tag == "", mappingStyle(flow))); err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := e.encodeNode(c); err != nil {
				return err
			}
		}
		return e.emit(lowemit.MappingEndEvent())
	default:
		return fmt.Errorf("yaml: cannot encode node kind %v", n.Kind)
	}
}

func nodeScalarStyle(s Style) lowemit.YamlScalarStyle {
	switch {
	case s&DoubleQuotedStyle != 0:
		return lowemit.DOUBLE_QUOTED_SCALAR_STYLE
	case s&SingleQuotedStyle != 0:
		return lowemit.SINGLE_QUOTED_SCALAR_STYLE
	case s&LiteralStyle != 0:
		return lowemit.LITERAL_SCALAR_STYLE
	case s&FoldedStyle != 0:
		return lowemit.FOLDED_SCALAR_STYLE
	default:
		return lowemit.PLAIN_SCALAR_STYLE
	}
}
