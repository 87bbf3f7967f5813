//
// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0
//

package yaml

import (
	"reflect"
	"sync"

	"go.yaml.in/yamlcore/internal/core"
)

// variantSet records one enum interface type's known variant names and,
// for each, a constructor for its concrete Go representation.
type variantSet struct {
	names   []string
	factory map[string]func() reflect.Value
}

var (
	variantMu   sync.RWMutex
	variantSets = make(map[reflect.Type]*variantSet)
)

// RegisterVariant declares name as one of the variants the interface
// type I can decode into, backed by concrete type V. Call once per
// (I, name) pair, typically from an init function:
//
//	type Shape interface{ isShape() }
//
//	type Circle struct{ Radius float64 }
//	func (Circle) isShape() {}
//
//	func init() {
//		yaml.RegisterVariant[Shape, Circle]("circle")
//	}
//
// The wire shape (unit, newtype, tuple, or struct, per the Enum
// contract) follows from V's own kind: decoding `circle: {radius: 1}`
// reads V's fields as a mapping; a slice-kind V reads a tuple's
// sequence; any other V reads a newtype's single value. A bare scalar
// `circle` (no payload) decodes into V's zero value.
func RegisterVariant[I any, V any](name string) {
	var iface I
	t := reflect.TypeOf(&iface).Elem()

	variantMu.Lock()
	defer variantMu.Unlock()
	set, ok := variantSets[t]
	if !ok {
		set = &variantSet{factory: make(map[string]func() reflect.Value)}
		variantSets[t] = set
	}
	set.names = append(set.names, name)
	set.factory[name] = func() reflect.Value {
		var v V
		return reflect.ValueOf(&v)
	}
}

// variantResolver adapts the package-level variant registry to
// internal/core's VariantResolver interface.
type variantResolver struct{}

func (variantResolver) Variants(t reflect.Type) ([]string, bool) {
	variantMu.RLock()
	defer variantMu.RUnlock()
	set, ok := variantSets[t]
	if !ok {
		return nil, false
	}
	return append([]string(nil), set.names...), true
}

func (variantResolver) NewVariant(t reflect.Type, name string) (reflect.Value, bool) {
	variantMu.RLock()
	defer variantMu.RUnlock()
	set, ok := variantSets[t]
	if !ok {
		return reflect.Value{}, false
	}
	factory, ok := set.factory[name]
	if !ok {
		return reflect.Value{}, false
	}
	return factory(), true
}

var _ core.VariantResolver = variantResolver{}
