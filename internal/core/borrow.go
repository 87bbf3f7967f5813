// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

// BorrowPolicy configures whether decodeScalarInto's string path must
// clear the Zero-Copy Borrow Analyzer before assigning. Disabled by
// default: ordinary string decoding never rejects a transformed scalar,
// since the Go value it produces is always an owned copy regardless.
type BorrowPolicy struct {
	Enabled bool

	// InputIsSlice reports whether the document being decoded came from
	// a byte slice the caller still holds (Load, Unmarshal), rather than
	// an io.Reader read incrementally through the Input Adapter. Only a
	// slice-backed input is a candidate for borrowing at all.
	InputIsSlice bool
}

// BorrowDecision is the outcome of asking the Zero-Copy Borrow Analyzer
// whether a scalar's text can be handed to the consumer as a slice of the
// original input rather than copied (§4.10).
type BorrowDecision struct {
	CanBorrow bool
	Reason    BorrowReason // populated only when CanBorrow is false
}

// BorrowContext carries the facts the analyzer needs that the scalar text
// itself doesn't encode: whether the input bytes backing the document are
// addressable as a slice at all, and whether the event came from a live
// parse or an alias replay.
type BorrowContext struct {
	InputIsSlice bool
	FromReplay   bool
}

// Analyze decides whether value, as scanned with style, can be exposed to
// the consumer by reference into the original input instead of by copy.
//
// A scalar is borrowable only when all of the following hold:
//   - the input itself is addressable as a byte slice (a string/[]byte
//     source, not an io.Reader being read incrementally);
//   - the event was not sourced from an alias replay, since replayed text
//     lives in the Anchor Registry's own captured copy, not the original
//     input bytes;
//   - the scalar's style is Plain, or Single/Double Quoted with no escape
//     or fold transformation actually applied while scanning, i.e. the
//     decoded Value is byte-identical to what appeared in the input.
//     Block scalars always go through chomping and fold transforms, so
//     they never borrow.
func Analyze(ctx BorrowContext, style ScalarStyle, containsEscapes bool) BorrowDecision {
	if !ctx.InputIsSlice || ctx.FromReplay {
		return BorrowDecision{Reason: ReasonInputNotBorrowable}
	}
	switch style {
	case StylePlain:
		if containsEscapes {
			return BorrowDecision{Reason: ReasonLineFolding}
		}
		return BorrowDecision{CanBorrow: true}
	case StyleSingleQuoted:
		if containsEscapes {
			return BorrowDecision{Reason: ReasonSingleQuoteEscape}
		}
		return BorrowDecision{CanBorrow: true}
	case StyleDoubleQuoted:
		if containsEscapes {
			return BorrowDecision{Reason: ReasonEscapeSequence}
		}
		return BorrowDecision{CanBorrow: true}
	case StyleLiteralBlock, StyleFoldedBlock:
		return BorrowDecision{Reason: ReasonBlockScalarProcessing}
	default:
		return BorrowDecision{Reason: ReasonMultiLineNormalization}
	}
}

// containsBorrowTransforms reports whether value's decoded text could
// only have reached its current form through an escape transform for
// the given style, rather than appearing verbatim in the input. A
// single-quoted scalar can only contain a quote character via a doubled
// `''` escape; a double-quoted scalar can only contain a control byte or
// a bare backslash via a `\x`/`\u`/`\\`-style escape, since those bytes
// can't appear literally inside one.
func containsBorrowTransforms(style ScalarStyle, value string) bool {
	switch style {
	case StylePlain:
		return false
	case StyleSingleQuoted:
		for i := 0; i < len(value); i++ {
			if value[i] == '\'' {
				return true
			}
		}
		return false
	case StyleDoubleQuoted:
		for i := 0; i < len(value); i++ {
			if value[i] == '\\' || value[i] < 0x20 {
				return true
			}
		}
		return false
	default:
		return true
	}
}
