//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright 2026 The yamlcore Project Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package yaml implements YAML support for the Go language.
package yaml

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"go.yaml.in/yamlcore/internal/core"
	"go.yaml.in/yamlcore/internal/lowlevel"
)

// Unmarshaler is the interface implemented by types
// that can unmarshal a YAML description of themselves.
type Unmarshaler interface {
	UnmarshalYAML(node *Node) error
}

// Marshaler is the interface implemented by types that can marshal
// themselves into a YAML document.
type Marshaler interface {
	MarshalYAML() (any, error)
}

// IsZeroer is implemented by types that can determine whether they hold
// the zero value for the purpose of the omitempty tag flag.
type IsZeroer interface {
	IsZero() bool
}

// UnmarshalError holds one field-level error encountered while decoding,
// along with the line and column it occurred at.
type UnmarshalError struct {
	Err    error
	Line   int
	Column int
}

func (e *UnmarshalError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err.Error())
}

func (e *UnmarshalError) Unwrap() error { return e.Err }

// TypeError holds the errors accumulated while decoding a document whose
// values didn't match the target's types.
type TypeError struct {
	Errors []*UnmarshalError
}

func (e *TypeError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, sub := range e.Errors {
		msgs[i] = sub.Error()
	}
	return "yaml: unmarshal errors:\n  " + joinLines(msgs)
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n  "
		}
		out += l
	}
	return out
}

func fromCoreErr(e *core.Error) error {
	if e == nil {
		return nil
	}
	return e
}

//-----------------------------------------------------------------------------
// Load / Dump API
//-----------------------------------------------------------------------------

// Load decodes the first YAML document with the given options.
//
// Maps and pointers (to a struct, string, int, etc) are accepted as out
// values. If an internal pointer within a struct is not initialized,
// the yaml package will initialize it if necessary. The out parameter
// must not be nil.
//
// Struct fields are only loaded if they are exported (have an upper case
// first letter), and are loaded using the field name lowercased as the
// default key. Custom keys may be defined via the "yaml" name in the field
// tag: the content preceding the first comma is used as the key, and the
// following comma-separated options control the loading and dumping behavior.
//
// For example:
//
//	type T struct {
//	    F int `yaml:"a,omitempty"`
//	    B int
//	}
//	var t T
//	yaml.Load([]byte("a: 1\nb: 2"), &t)
//
// See the documentation of Dump for the format of tags and a list of
// supported tag options.
func Load(in []byte, out any, opts ...Option) error {
	l, err := NewLoader(bytes.NewReader(in), append(opts, sliceBackedInput())...)
	if err != nil {
		return err
	}
	err = l.Load(out)
	if err == io.EOF {
		return nil
	}
	return err
}

// LoadAll decodes all YAML documents from the input.
//
// Returns a slice containing all decoded documents. Each document is
// decoded into an any value (typically map[string]any or []any).
func LoadAll(in []byte, opts ...Option) ([]any, error) {
	l, err := NewLoader(bytes.NewReader(in), append(opts, sliceBackedInput())...)
	if err != nil {
		return nil, err
	}
	var docs []any
	for {
		var doc any
		err := l.Load(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// A Loader reads and decodes YAML values from an input stream with
// configurable options.
type Loader struct {
	q        *core.EventQueue
	bm       *core.BudgetMonitor
	opts     *Options
	docCount int
	started  bool
}

// NewLoader returns a new Loader that reads from r with the given options.
//
// The Loader introduces its own buffering and may read data from r beyond
// the YAML values requested.
func NewLoader(r io.Reader, opts ...Option) (*Loader, error) {
	o := applyOptions(opts...)
	if o.err != nil {
		return nil, o.err
	}
	input := core.NewInputAdapter(r, o.Budget.MaxReaderInputBytes)
	bm := core.NewBudgetMonitor(o.Budget)
	q := core.NewEventQueue(lowlevel.New(input), core.NewAnchorRegistry(), core.NewAliasReplayer(bm), bm)
	return &Loader{q: q, bm: bm, opts: o}, nil
}

// Load reads the next YAML-encoded document from its input and stores it
// in the value pointed to by v.
//
// Returns io.EOF when there are no more documents to read. If
// WithSingleDocument was set and a document was already read, subsequent
// calls also return io.EOF.
func (l *Loader) Load(v any) error {
	if l.opts.SingleDocument && l.docCount > 0 {
		return io.EOF
	}
	for {
		e, err := l.q.Next()
		if err != nil {
			return err
		}
		switch e.Kind {
		case core.StreamEnd:
			return io.EOF
		case core.StreamStart, core.DocumentEnd:
			continue
		case core.DocumentStart:
		}
		break
	}
	l.q.ResetForDocument()
	l.bm.ResetForDocument()

	if target, ok := v.(*Node); ok {
		root, derr := decodeEventNode(l.q, l.opts.Scalar)
		if derr != nil {
			return fromCoreErr(derr)
		}
		*target = Node{Kind: DocumentNode, Content: []*Node{root}}
		l.docCount++
		return nil
	}

	out := reflect.ValueOf(v)
	if out.Kind() != reflect.Pointer || out.IsNil() {
		return fmt.Errorf("yaml: Load requires a non-nil pointer, got %s", out.Kind())
	}
	out = out.Elem()

	dec := core.NewDecoder(l.q, l.bm, l.opts.decodeOptions(tagFieldResolver{}))
	if derr := dec.DecodeDocument(out); derr != nil {
		return fromCoreErr(derr)
	}
	l.docCount++
	return nil
}

// Dump and DumpAll are defined in dumper.go, alongside the Dumper type.

//-----------------------------------------------------------------------------
// Decode / Encode API
//-----------------------------------------------------------------------------

// A Decoder reads and decodes YAML values from an input stream.
//
// Deprecated: Use Loader instead. Will be removed in v5.
type Decoder struct {
	loader      *Loader
	knownFields bool
	r           io.Reader
}

// NewDecoder returns a new decoder that reads from r.
//
// Deprecated: Use NewLoader instead. Will be removed in v5.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// KnownFields ensures that the keys in decoded mappings exist as fields
// in the struct being decoded into.
//
// Deprecated: Use NewLoader with WithKnownFields option instead.
// Will be removed in v5.
func (dec *Decoder) KnownFields(enable bool) {
	dec.knownFields = enable
}

// Decode reads the next YAML-encoded value from its input
// and stores it in the value pointed to by v.
//
// Deprecated: Use Loader.Load instead. Will be removed in v5.
func (dec *Decoder) Decode(v any) error {
	if dec.loader == nil {
		opt := V3
		if dec.knownFields {
			opt = Options(V3, WithKnownFields())
		}
		l, err := NewLoader(dec.r, opt)
		if err != nil {
			return err
		}
		dec.loader = l
	}
	return dec.loader.Load(v)
}

// An Encoder writes YAML values to an output stream.
//
// Deprecated: Use Dumper instead. Will be removed in v5.
type Encoder struct {
	dumper *Dumper
	w      io.Writer
	opts   []Option
}

// NewEncoder returns a new encoder that writes to w.
// The Encoder should be closed after use to flush all data
// to w.
//
// Deprecated: Use NewDumper instead. Will be removed in v5.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, opts: []Option{V3}}
}

// Encode writes the YAML encoding of v to the stream.
//
// Deprecated: Use Dumper.Dump instead. Will be removed in v5.
func (e *Encoder) Encode(v any) error {
	if e.dumper == nil {
		d, err := NewDumper(e.w, e.opts...)
		if err != nil {
			return err
		}
		e.dumper = d
	}
	return e.dumper.Dump(v)
}

// SetIndent changes the used indentation used when encoding.
//
// Deprecated: Use NewDumper with WithIndent option instead. Will be removed in v5.
func (e *Encoder) SetIndent(spaces int) {
	if spaces < 0 {
		panic("yaml: cannot indent to a negative number of spaces")
	}
	e.opts = append(e.opts, WithIndent(spaces))
}

// CompactSeqIndent makes it so that '- ' is considered part of the indentation.
//
// Deprecated: Use NewDumper with WithCompactSeqIndent option instead. Will be removed in v5.
func (e *Encoder) CompactSeqIndent() {
	e.opts = append(e.opts, WithCompactSeqIndent(true))
}

// DefaultSeqIndent makes it so that '- ' is not considered part of the indentation.
//
// Deprecated: This is the default behavior for Dumper. Will be removed in v5.
func (e *Encoder) DefaultSeqIndent() {
	e.opts = append(e.opts, WithCompactSeqIndent(false))
}

// Close closes the encoder by writing any remaining data.
// It does not write a stream terminating string "...".
//
// Deprecated: Use Dumper.Close instead. Will be removed in v5.
func (e *Encoder) Close() error {
	if e.dumper == nil {
		return nil
	}
	return e.dumper.Close()
}

//-----------------------------------------------------------------------------
// Unmarshal / Marshal API
//-----------------------------------------------------------------------------

// Unmarshal decodes the first document found within the in byte slice
// and assigns decoded values into the out value.
//
// Deprecated: Use Load instead. Will be removed in v5.
func Unmarshal(in []byte, out any) error {
	if u, ok := out.(Unmarshaler); ok {
		var n Node
		if err := Load(in, &n, V3); err != nil {
			return err
		}
		if n.IsZero() {
			return nil
		}
		return u.UnmarshalYAML(&n)
	}
	return Load(in, out, V3)
}

// Marshal serializes the value provided into a YAML document. The structure
// of the generated document will reflect the structure of the value itself.
// Maps and pointers (to struct, string, int, etc) are accepted as the in value.
//
// Struct fields are only marshaled if they are exported (have an upper case
// first letter), and are marshaled using the field name lowercased as the
// default key. Custom keys may be defined via the "yaml" name in the field
// tag: the content preceding the first comma is used as the key, and the
// following comma-separated options are used to tweak the marshaling process.
// Conflicting names result in a runtime error.
//
// The field tag format accepted is:
//
//	`(...) yaml:"[<key>][,<flag1>[,<flag2>]]" (...)`
//
// The following flags are currently supported:
//
//	omitempty    Only include the field if it's not set to the zero
//	             value for the type or to empty slices or maps.
//	             Zero valued structs will be omitted if all their public
//	             fields are zero, unless they implement an IsZero
//	             method (see the IsZeroer interface type), in which
//	             case the field will be excluded if IsZero returns true.
//
//	flow         Marshal using a flow style (useful for structs,
//	             sequences and maps).
//
//	inline       Inline the field, which must be a struct or a map,
//	             causing all of its fields or keys to be processed as if
//	             they were part of the outer struct. For maps, keys must
//	             not conflict with the yaml keys of other struct fields.
//
// In addition, if the key is "-", the field is ignored.
//
// Deprecated: Use Dump instead. Will be removed in v5.
func Marshal(in any) ([]byte, error) {
	return Dump(in, V3)
}
