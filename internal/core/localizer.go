// Copyright 2026 The yamlcore Project Contributors
// SPDX-License-Identifier: Apache-2.0

package core

import "fmt"

// ExternalSource identifies where an externally authored message came
// from, so a Localizer can override specific texts without string
// matching (spec.md §4.15, "external message override hook").
type ExternalSource int

const (
	ExternalSourceParser ExternalSource = iota
	ExternalSourceValidator
)

// ExternalMessage is a best-effort description of a message authored
// outside the CORE (the low-level parser, or a post-parse validator).
type ExternalMessage struct {
	Source   ExternalSource
	Original string
	Code     string
	Params   map[string]string
}

// Localizer is the wording customization hook. Every method has a
// reasonable English default; implementations typically override only the
// phrases they care about.
type Localizer interface {
	AttachLocation(base string, loc Location) string
	RootPathLabel() string
	Message(e *Error) string
	OverrideExternalMessage(msg ExternalMessage) string
}

// englishLocalizer is the DEFAULT_ENGLISH_LOCALIZER equivalent.
type englishLocalizer struct{}

// DefaultLocalizer is used whenever no Localizer option is configured.
var DefaultLocalizer Localizer = englishLocalizer{}

func (englishLocalizer) AttachLocation(base string, loc Location) string {
	if loc.IsUnknown() {
		return base
	}
	return fmt.Sprintf("%s at line %d, column %d", base, loc.Line, loc.Column)
}

func (englishLocalizer) RootPathLabel() string { return "<root>" }

func (englishLocalizer) Message(e *Error) string {
	return e.Message
}

func (englishLocalizer) OverrideExternalMessage(msg ExternalMessage) string {
	return msg.Original
}

// Localized renders e.Message through the configured Localizer, falling
// back to the default English wording when none was set.
func Localized(e *Error) string {
	l := e.localizer
	if l == nil {
		l = DefaultLocalizer
	}
	if e.Kind == KindExternalMessage {
		return l.OverrideExternalMessage(ExternalMessage{
			Original: e.Message,
			Code:     e.ExternalCode,
			Params:   e.ExternalParams,
		})
	}
	return l.Message(e)
}

// WithLocalizer attaches a Localizer to an Error for later rendering.
func (e *Error) WithLocalizer(l Localizer) *Error {
	e.localizer = l
	return e
}
