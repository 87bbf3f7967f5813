// Copyright 2011-2019 Canonical Ltd
// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Struct metadata extraction for YAML marshaling/unmarshaling.
//
// Parses struct tags like `yaml:"name,omitempty,flow,inline"` and caches
// the results for efficient repeated access by the Deserializer Core and
// the Anchor Emitter's struct encoding path.

package yaml

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.yaml.in/yamlcore/internal/core"
)

// structInfo holds cached information about a struct's YAML-relevant fields.
type structInfo struct {
	FieldsMap  map[string]fieldInfo
	FieldsList []fieldInfo

	// InlineMap is the number of the field in the struct that
	// contains an ,inline map, or -1 if there's none.
	InlineMap int

	// InlineUnmarshalers holds indexes to inlined fields that
	// implement Unmarshaler themselves.
	InlineUnmarshalers [][]int

	// Required lists the keys of fields tagged `,required`.
	Required []string
}

// fieldInfo holds information about a single struct field.
type fieldInfo struct {
	Key       string
	Num       int
	OmitEmpty bool
	Flow      bool
	Required  bool
	// Id holds the unique field identifier, so duplicate fields can be
	// detected cheaply without an extra map.
	Id int

	// Inline holds the field index path if the field is part of an
	// inlined struct.
	Inline []int
}

var (
	structMap       = make(map[reflect.Type]*structInfo)
	fieldMapMutex   sync.RWMutex
	unmarshalerType reflect.Type
)

func init() {
	var v Unmarshaler
	unmarshalerType = reflect.ValueOf(&v).Elem().Type()
}

// getStructInfo returns cached information about a struct type's fields.
func getStructInfo(st reflect.Type) (*structInfo, error) {
	fieldMapMutex.RLock()
	sinfo, found := structMap[st]
	fieldMapMutex.RUnlock()
	if found {
		return sinfo, nil
	}

	n := st.NumField()
	fieldsMap := make(map[string]fieldInfo)
	fieldsList := make([]fieldInfo, 0, n)
	inlineMap := -1
	var inlineUnmarshalers [][]int
	for i := 0; i != n; i++ {
		field := st.Field(i)
		if field.PkgPath != "" && !field.Anonymous {
			continue // unexported field
		}

		info := fieldInfo{Num: i}

		tag := field.Tag.Get("yaml")
		if tag == "" && !strings.Contains(string(field.Tag), ":") {
			tag = string(field.Tag)
		}
		if tag == "-" {
			continue
		}

		inline := false
		fields := strings.Split(tag, ",")
		if len(fields) > 1 {
			for _, flag := range fields[1:] {
				switch flag {
				case "omitempty":
					info.OmitEmpty = true
				case "flow":
					info.Flow = true
				case "inline":
					inline = true
				case "required":
					info.Required = true
				default:
					return nil, fmt.Errorf("unsupported flag %q in tag %q of type %s", flag, tag, st)
				}
			}
			tag = fields[0]
		}

		if inline {
			switch field.Type.Kind() {
			case reflect.Map:
				if inlineMap >= 0 {
					return nil, errors.New("multiple ,inline maps in struct " + st.String())
				}
				if field.Type.Key() != reflect.TypeOf("") {
					return nil, errors.New("option ,inline needs a map with string keys in struct " + st.String())
				}
				inlineMap = info.Num
			case reflect.Struct, reflect.Pointer:
				ftype := field.Type
				for ftype.Kind() == reflect.Pointer {
					ftype = ftype.Elem()
				}
				if ftype.Kind() != reflect.Struct {
					return nil, errors.New("option ,inline may only be used on a struct or map field")
				}
				if reflect.PointerTo(ftype).Implements(unmarshalerType) {
					inlineUnmarshalers = append(inlineUnmarshalers, []int{i})
				} else {
					sub, err := getStructInfo(ftype)
					if err != nil {
						return nil, err
					}
					for _, index := range sub.InlineUnmarshalers {
						inlineUnmarshalers = append(inlineUnmarshalers, append([]int{i}, index...))
					}
					for _, finfo := range sub.FieldsList {
						if _, found := fieldsMap[finfo.Key]; found {
							return nil, errors.New("duplicated key '" + finfo.Key + "' in struct " + st.String())
						}
						if finfo.Inline == nil {
							finfo.Inline = []int{i, finfo.Num}
						} else {
							finfo.Inline = append([]int{i}, finfo.Inline...)
						}
						finfo.Id = len(fieldsList)
						fieldsMap[finfo.Key] = finfo
						fieldsList = append(fieldsList, finfo)
					}
				}
			default:
				return nil, errors.New("option ,inline may only be used on a struct or map field")
			}
			continue
		}

		if tag != "" {
			info.Key = tag
		} else {
			info.Key = strings.ToLower(field.Name)
		}

		if _, found = fieldsMap[info.Key]; found {
			return nil, errors.New("duplicated key '" + info.Key + "' in struct " + st.String())
		}

		info.Id = len(fieldsList)
		fieldsList = append(fieldsList, info)
		fieldsMap[info.Key] = info
	}

	var required []string
	for _, info := range fieldsList {
		if info.Required {
			required = append(required, info.Key)
		}
	}

	sinfo = &structInfo{
		FieldsMap:          fieldsMap,
		FieldsList:         fieldsList,
		InlineMap:          inlineMap,
		InlineUnmarshalers: inlineUnmarshalers,
		Required:           required,
	}

	fieldMapMutex.Lock()
	structMap[st] = sinfo
	fieldMapMutex.Unlock()
	return sinfo, nil
}

// tagFieldResolver adapts getStructInfo's cached tag metadata to
// internal/core's FieldResolver interface, which the Deserializer Core
// calls without importing this package's reflect-based tag parsing.
type tagFieldResolver struct{}

func (tagFieldResolver) StructField(t reflect.Type, key string) ([]int, bool) {
	sinfo, err := getStructInfo(t)
	if err != nil {
		return nil, false
	}
	info, ok := sinfo.FieldsMap[key]
	if !ok {
		info, ok = sinfo.FieldsMap[strings.ToLower(key)]
		if !ok {
			return nil, false
		}
	}
	if info.Inline != nil {
		return info.Inline, true
	}
	return []int{info.Num}, true
}

func (tagFieldResolver) InlineField(t reflect.Type) ([]int, bool) {
	sinfo, err := getStructInfo(t)
	if err != nil || sinfo.InlineMap < 0 {
		return nil, false
	}
	return []int{sinfo.InlineMap}, true
}

// RequiredFields returns the keys of fields tagged `,required` in t.
func (tagFieldResolver) RequiredFields(t reflect.Type) []string {
	sinfo, err := getStructInfo(t)
	if err != nil {
		return nil
	}
	return sinfo.Required
}

var _ core.FieldResolver = tagFieldResolver{}
