//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package lowemit

// Event constructors used by the Go-level marshal walker to drive Emit
// without building lowlevel.Event literals inline at every call site.

func StreamStartEvent() *Event {
	return &Event{
		Type:     STREAM_START_EVENT,
		Encoding: UTF8_ENCODING,
	}
}

func StreamEndEvent() *Event {
	return &Event{
		Type: STREAM_END_EVENT,
	}
}

func DocumentStartEvent() *Event {
	return &Event{
		Type:     DOCUMENT_START_EVENT,
		Implicit: true,
	}
}

func DocumentEndEvent() *Event {
	return &Event{
		Type:     DOCUMENT_END_EVENT,
		Implicit: true,
	}
}

func AliasEvent(anchor []byte) *Event {
	return &Event{
		Type:   ALIAS_EVENT,
		Anchor: anchor,
	}
}

func ScalarEvent(anchor, tag, value []byte, plainImplicit, quotedImplicit bool, style YamlScalarStyle) *Event {
	return &Event{
		Type:            SCALAR_EVENT,
		Anchor:          anchor,
		Tag:             tag,
		Value:           value,
		Implicit:        plainImplicit,
		Quoted_implicit: quotedImplicit,
		Style:           YamlStyle(style),
	}
}

func SequenceStartEvent(anchor, tag []byte, implicit bool, style YamlSequenceStyle) *Event {
	return &Event{
		Type:     SEQUENCE_START_EVENT,
		Anchor:   anchor,
		Tag:      tag,
		Implicit: implicit,
		Style:    YamlStyle(style),
	}
}

func SequenceEndEvent() *Event {
	return &Event{
		Type: SEQUENCE_END_EVENT,
	}
}

func MappingStartEvent(anchor, tag []byte, implicit bool, style YamlMappingStyle) *Event {
	return &Event{
		Type:     MAPPING_START_EVENT,
		Anchor:   anchor,
		Tag:      tag,
		Implicit: implicit,
		Style:    YamlStyle(style),
	}
}

func MappingEndEvent() *Event {
	return &Event{
		Type: MAPPING_END_EVENT,
	}
}
