// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"strings"
)

// Kind identifies a member of the error taxonomy in spec.md §4.15/§7.
type Kind int

const (
	KindEOF Kind = iota
	KindParser
	KindMultipleDocuments
	KindUnknownAnchor
	KindDuplicateMappingKey
	KindInvalidScalar
	KindSerdeInvalidType
	KindInvalidValue
	KindUnknownVariant
	KindUnknownField
	KindMissingField
	KindUnexpected
	KindMergeValueNotMapOrSeqOfMaps
	KindInvalidBinaryBase64
	KindBinaryNotUTF8
	KindCannotBorrowTransformedString
	KindNullIntoString
	KindInvalidChar
	KindBudget
	KindAliasReplayLimitExceeded
	KindAliasExpansionLimitExceeded
	KindAliasReplayStackDepthExceeded
	KindRecursiveReferencesRequireWeakTypes
	KindIOError
	KindExternalMessage
	KindValidationError
)

// BorrowReason enumerates why a borrowed string was rejected (§4.10).
type BorrowReason int

const (
	ReasonEscapeSequence BorrowReason = iota
	ReasonLineFolding
	ReasonMultiLineNormalization
	ReasonBlockScalarProcessing
	ReasonSingleQuoteEscape
	ReasonInputNotBorrowable
)

func (r BorrowReason) String() string {
	switch r {
	case ReasonEscapeSequence:
		return "EscapeSequence"
	case ReasonLineFolding:
		return "LineFolding"
	case ReasonMultiLineNormalization:
		return "MultiLineNormalization"
	case ReasonBlockScalarProcessing:
		return "BlockScalarProcessing"
	case ReasonSingleQuoteEscape:
		return "SingleQuoteEscape"
	case ReasonInputNotBorrowable:
		return "InputNotBorrowable"
	}
	return "Unknown"
}

// BudgetBreach identifies which configured cap was exceeded.
type BudgetBreach struct {
	Cap      string
	Limit    int
	Observed int
}

// Error is the CORE's single error type. It always carries a referenced
// location and, when the value came through an alias or merge, a distinct
// defined location.
type Error struct {
	Kind       Kind
	Message    string
	Referenced Location
	Defined    Location
	HasDefined bool

	AnchorID int
	Key      string
	TypeName string
	Expected string
	Breach   BudgetBreach
	Reason   BorrowReason
	Cause    error

	// ExternalSource/Code/Params back the ExternalMessage variant, routed
	// through the override hook instead of being formatted here.
	ExternalSource string
	ExternalCode   string
	ExternalParams map[string]string

	localizer Localizer
}

func (e *Error) Error() string {
	loc := Localized(e)
	if e.HasDefined && e.Defined != e.Referenced {
		return fmt.Sprintf("%s (at %s, defined at %s)", loc, formatLocation(e.Referenced), formatLocation(e.Defined))
	}
	return fmt.Sprintf("%s (at %s)", loc, formatLocation(e.Referenced))
}

func (e *Error) Unwrap() error { return e.Cause }

func formatLocation(l Location) string {
	if l.IsUnknown() {
		return "unknown location"
	}
	return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
}

// Location returns the primary (referenced) location, matching spec.md
// §6's "Error/diagnostic surface".
func (e *Error) Location() Location { return e.Referenced }

// Locations returns (referenced, defined).
func (e *Error) Locations() (Location, Location) {
	if e.HasDefined {
		return e.Referenced, e.Defined
	}
	return e.Referenced, e.Referenced
}

func newErr(kind Kind, loc Location, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Referenced: loc}
}

func newErrAt(kind Kind, referenced, defined Location, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Referenced: referenced, Defined: defined, HasDefined: true}
}

func errEOF(loc Location) *Error {
	return newErr(KindEOF, loc, "unexpected end of input")
}

func errParser(loc Location, cause error) *Error {
	e := newErr(KindParser, loc, cause.Error())
	e.Cause = cause
	return e
}

func errUnknownAnchor(loc Location, id int) *Error {
	e := newErr(KindUnknownAnchor, loc, fmt.Sprintf("unknown anchor %d", id))
	e.AnchorID = id
	return e
}

func errDuplicateKey(loc Location, key string) *Error {
	e := newErr(KindDuplicateMappingKey, loc, fmt.Sprintf("mapping key %q already defined", key))
	e.Key = key
	return e
}

func errInvalidScalar(loc Location, typeName, text string) *Error {
	e := newErr(KindInvalidScalar, loc, fmt.Sprintf("cannot parse %q as %s", text, typeName))
	e.TypeName = typeName
	return e
}

func errMergeShape(loc Location) *Error {
	return newErr(KindMergeValueNotMapOrSeqOfMaps, loc, "merge value must be a mapping or a sequence of mappings")
}

func errBudget(loc Location, breach BudgetBreach) *Error {
	e := newErr(KindBudget, loc, fmt.Sprintf("budget exceeded: %s (limit %d, observed %d)", breach.Cap, breach.Limit, breach.Observed))
	e.Breach = breach
	return e
}

func errCannotBorrow(loc Location, reason BorrowReason) *Error {
	e := newErr(KindCannotBorrowTransformedString, loc, "cannot borrow a transformed string: "+reason.String())
	e.Reason = reason
	return e
}

func errRecursiveNeedsWeak(referenced, defined Location) *Error {
	return newErrAt(KindRecursiveReferencesRequireWeakTypes, referenced, defined,
		"recursive alias requires a back-reference capable field")
}

func errUnexpected(loc Location, expected string) *Error {
	e := newErr(KindUnexpected, loc, "unexpected event, expected "+expected)
	e.Expected = expected
	return e
}

func errUnknownVariant(loc Location, name string, known []string) *Error {
	return newErr(KindUnknownVariant, loc, fmt.Sprintf("unknown variant %q, expected one of [%s]", name, strings.Join(known, ", ")))
}

func errMissingField(loc Location, name string) *Error {
	e := newErr(KindMissingField, loc, fmt.Sprintf("missing field %q", name))
	e.Key = name
	return e
}

func errUnknownField(loc Location, name string) *Error {
	e := newErr(KindUnknownField, loc, fmt.Sprintf("unknown field %q", name))
	e.Key = name
	return e
}

func errIO(loc Location, cause error) *Error {
	e := newErr(KindIOError, loc, cause.Error())
	e.Cause = cause
	return e
}
