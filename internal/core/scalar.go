// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yamlcore/internal/lowlevel"
)

// LogicalType is the resolved schema type of a scalar (§4.6).
type LogicalType int

const (
	LogicalString LogicalType = iota
	LogicalNull
	LogicalBool
	LogicalInt
	LogicalFloat
	LogicalBinary
)

// ResolvedScalar is the outcome of applying the core schema to a scalar's
// text and tag.
type ResolvedScalar struct {
	Type   LogicalType
	Text   string
	Bool   bool
	Int    int64
	Float  float64
	Binary []byte
}

// ScalarOptions configures the Scalar Resolver per spec.md §6.
type ScalarOptions struct {
	StrictBooleans     bool // YAML 1.2-only spellings when true
	LegacyOctalNumbers bool // leading-0 octal, e.g. 0755
	NoSchema           bool // plain scalars stay strings unless explicitly tagged

	// AngleConversions enables the domain extension recognizing !radians,
	// !degrees tags and the pi/tau/deg(x)/rad(x) plain-scalar spellings,
	// all resolving to a LogicalFloat in radians.
	AngleConversions bool
}

func normalizeTag(tag string) string {
	switch tag {
	case "!!null", "null":
		return lowlevel.NULL_TAG
	case "!!bool", "bool":
		return lowlevel.BOOL_TAG
	case "!!str", "str":
		return lowlevel.STR_TAG
	case "!!int", "int":
		return lowlevel.INT_TAG
	case "!!float", "float":
		return lowlevel.FLOAT_TAG
	case "!!binary", "binary":
		return lowlevel.BINARY_TAG
	default:
		return tag
	}
}

// Resolve applies spec.md §4.6's resolution order: explicit tag first,
// then (for Plain style, outside no_schema) the YAML core schema
// patterns, else string.
func Resolve(loc Location, value string, style ScalarStyle, tag string, opts ScalarOptions) (ResolvedScalar, *Error) {
	tag = normalizeTag(tag)

	if opts.AngleConversions && (tag == "!radians" || tag == "!degrees") {
		f, ok := parseFloat(value)
		if !ok {
			return ResolvedScalar{}, errInvalidScalar(loc, "float", value)
		}
		if tag == "!degrees" {
			f = f * math.Pi / 180
		}
		return ResolvedScalar{Type: LogicalFloat, Float: f, Text: value}, nil
	}

	if tag != "" && tag != lowlevel.STR_TAG {
		switch tag {
		case lowlevel.NULL_TAG:
			return ResolvedScalar{Type: LogicalNull, Text: value}, nil
		case lowlevel.BOOL_TAG:
			b, ok := parseBool(value, true)
			if !ok {
				return ResolvedScalar{}, errInvalidScalar(loc, "bool", value)
			}
			return ResolvedScalar{Type: LogicalBool, Bool: b, Text: value}, nil
		case lowlevel.INT_TAG:
			i, ok := parseInt(value, opts.LegacyOctalNumbers)
			if !ok {
				return ResolvedScalar{}, errInvalidScalar(loc, "int", value)
			}
			return ResolvedScalar{Type: LogicalInt, Int: i, Text: value}, nil
		case lowlevel.FLOAT_TAG:
			f, ok := parseFloat(value)
			if !ok {
				return ResolvedScalar{}, errInvalidScalar(loc, "float", value)
			}
			return ResolvedScalar{Type: LogicalFloat, Float: f, Text: value}, nil
		case lowlevel.BINARY_TAG:
			b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(value), ""))
			if err != nil {
				e := newErr(KindInvalidBinaryBase64, loc, "invalid base64 in !!binary scalar")
				e.Cause = err
				return ResolvedScalar{}, e
			}
			return ResolvedScalar{Type: LogicalBinary, Binary: b, Text: value}, nil
		}
	}

	if tag == lowlevel.STR_TAG {
		return ResolvedScalar{Type: LogicalString, Text: value}, nil
	}

	if style != StylePlain || opts.NoSchema {
		return ResolvedScalar{Type: LogicalString, Text: value}, nil
	}

	if opts.AngleConversions {
		if f, ok := resolveAngleLiteral(value); ok {
			return ResolvedScalar{Type: LogicalFloat, Float: f, Text: value}, nil
		}
	}

	if isNullPattern(value) {
		return ResolvedScalar{Type: LogicalNull, Text: value}, nil
	}
	if b, ok := parseBool(value, opts.StrictBooleans); ok {
		return ResolvedScalar{Type: LogicalBool, Bool: b, Text: value}, nil
	}
	if i, ok := parseInt(value, opts.LegacyOctalNumbers); ok {
		return ResolvedScalar{Type: LogicalInt, Int: i, Text: value}, nil
	}
	if f, ok := parseFloat(value); ok {
		return ResolvedScalar{Type: LogicalFloat, Float: f, Text: value}, nil
	}
	return ResolvedScalar{Type: LogicalString, Text: value}, nil
}

func isNullPattern(s string) bool {
	switch s {
	case "~", "", "null", "Null", "NULL":
		return true
	}
	return false
}

func parseBool(s string, strict bool) (bool, bool) {
	switch s {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	if strict {
		return false, false
	}
	switch s {
	case "yes", "Yes", "YES", "on", "On", "ON", "y", "Y":
		return true, true
	case "no", "No", "NO", "off", "Off", "OFF", "n", "N":
		return false, true
	}
	return false, false
}

func parseInt(s string, legacyOctal bool) (int64, bool) {
	if s == "" {
		return 0, false
	}
	sign := int64(1)
	body := s
	if body[0] == '+' || body[0] == '-' {
		if body[0] == '-' {
			sign = -1
		}
		body = body[1:]
	}
	if body == "" {
		return 0, false
	}
	base := 10
	switch {
	case strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X"):
		base = 16
		body = body[2:]
	case strings.HasPrefix(body, "0o") || strings.HasPrefix(body, "0O"):
		base = 8
		body = body[2:]
	case strings.HasPrefix(body, "0b") || strings.HasPrefix(body, "0B"):
		base = 2
		body = body[2:]
	case legacyOctal && len(body) > 1 && body[0] == '0':
		base = 8
		body = body[1:]
	}
	if body == "" {
		return 0, false
	}
	signed := body
	if sign < 0 {
		signed = "-" + body
	}
	v, err := strconv.ParseInt(signed, base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloat(s string) (float64, bool) {
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		return posInf(), true
	case "-.inf":
		return negInf(), true
	case ".nan":
		return nan(), true
	}
	if !looksLikeFloat(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func looksLikeFloat(s string) bool {
	if s == "" {
		return false
	}
	hasDotOrExp := false
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i = 1
	}
	if i >= len(s) {
		return false
	}
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' || c == 'e' || c == 'E':
			hasDotOrExp = true
		case c == '+' || c == '-':
		default:
			return false
		}
	}
	return hasDotOrExp
}

// resolveAngleLiteral recognizes the angle_conversions plain-scalar forms:
// the named constants pi/tau, and the deg(x)/rad(x) functional spellings,
// all resolving to radians.
func resolveAngleLiteral(s string) (float64, bool) {
	switch s {
	case "pi":
		return math.Pi, true
	case "tau":
		return 2 * math.Pi, true
	}
	for _, fn := range []struct {
		prefix string
		toRad  func(float64) float64
	}{
		{"deg(", func(x float64) float64 { return x * math.Pi / 180 }},
		{"rad(", func(x float64) float64 { return x }},
	} {
		if strings.HasPrefix(s, fn.prefix) && strings.HasSuffix(s, ")") {
			inner := s[len(fn.prefix) : len(s)-1]
			x, ok := parseFloat(inner)
			if !ok {
				return 0, false
			}
			return fn.toRad(x), true
		}
	}
	return 0, false
}

func posInf() float64 { return math.Inf(1) }
func negInf() float64 { return math.Inf(-1) }
func nan() float64    { return math.NaN() }
