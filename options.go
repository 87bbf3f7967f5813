//
// Copyright (c) 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0
//

package yaml

import (
	"errors"
	"fmt"

	"go.yaml.in/yamlcore/internal/core"
)

// LineBreak represents the line ending style for YAML output.
type LineBreak int

// Line break constants for different platforms.
const (
	LineBreakLN   LineBreak = iota // Unix-style \n (default)
	LineBreakCR                    // Old Mac-style \r
	LineBreakCRLN                  // Windows-style \r\n
)

// Options bundles every Loader/Dumper knob: the Deserializer Core's own
// DecodeOptions and Budget, plus the writer-facing settings from §6's
// SerializerOptions.
type Options struct {
	Scalar    core.ScalarOptions
	Duplicate core.DuplicatePolicy
	Budget    core.Budget

	KnownFields    bool
	SingleDocument bool
	WithSnippet    bool
	CropRadius     int

	IndentStep            int
	AnchorGenerator       func(id int) string
	MinFoldChars          int
	FoldedWrapChars       int
	EmptyAsBraces         bool
	PreferBlockScalars    bool
	QuoteAll              bool
	TaggedEnums           bool
	YAML12                bool
	CompactSeqIndent      bool
	LineWidth             int
	LineBreak             LineBreak
	ExplicitStart         bool
	ExplicitEnd           bool
	FlowSimpleCollections bool
	Canonical             bool
	Unicode               bool
	ZeroCopyStrings       bool

	// sliceBacked records whether the document came from a byte slice
	// the caller still holds (Load, LoadAll, Unmarshal), set internally
	// by those entry points rather than by a public Option. It's the
	// only case WithZeroCopyStrings's borrow check can ever satisfy.
	sliceBacked bool

	// err latches the first option-application failure (e.g. an
	// out-of-range indent) so NewLoader/NewDumper can surface it without
	// every With* function needing to return one.
	err error
}

// defaultOptions matches the conservative, spec-default configuration:
// duplicate keys are an error, the core schema is applied in full, and
// the budget monitor uses its documented defaults.
func defaultOptions() *Options {
	return &Options{
		Duplicate:  core.PolicyError,
		Budget:     core.DefaultBudget(),
		IndentStep: 2,
		LineWidth:  80,
		Unicode:    true,
		CropRadius: 40,
	}
}

// Option allows configuring YAML loading and dumping operations.
type Option func(*Options)

// Options combines multiple options into a single Option. This is useful
// for creating option presets or combining version defaults with custom
// options.
//
// Example:
//
//	opts := yaml.Options(yaml.V4, yaml.WithIndent(3))
//	yaml.Dump(&data, opts)
func Options(opts ...Option) Option {
	return func(o *Options) {
		for _, opt := range opts {
			opt(o)
		}
	}
}

func applyOptions(opts ...Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Options) decodeOptions(fields core.FieldResolver) core.DecodeOptions {
	do := core.DecodeOptions{
		Scalar:    o.Scalar,
		Duplicate: o.Duplicate,
		Fields:    fields,
		Variants:  variantResolver{},
		Borrow: core.BorrowPolicy{
			Enabled:      o.ZeroCopyStrings,
			InputIsSlice: o.sliceBacked,
		},
	}
	if o.KnownFields {
		do.UnknownField = func(path core.PathKeyVal, loc core.Location, key string) *core.Error {
			return &core.Error{
				Kind:       core.KindUnknownField,
				Message:    fmt.Sprintf("field %s not found", key),
				Referenced: loc,
				Key:        key,
			}
		}
	}
	return do
}

// WithIndent sets the number of spaces used for indentation when encoding.
func WithIndent(spaces int) Option {
	return func(o *Options) {
		if spaces < 2 || spaces > 9 {
			if o.err == nil {
				o.err = fmt.Errorf("yaml: indent must be between 2 and 9 spaces, got %d", spaces)
			}
			return
		}
		o.IndentStep = spaces
	}
}

// WithCompactSeqIndent makes '- ' count as part of the indentation.
func WithCompactSeqIndent(enable ...bool) Option {
	v := true
	if len(enable) > 0 {
		v = enable[0]
	}
	return func(o *Options) { o.CompactSeqIndent = v }
}

// WithKnownFields ensures that the keys in decoded mappings exist as fields
// in the struct being decoded into.
func WithKnownFields(enable ...bool) Option {
	v := true
	if len(enable) > 0 {
		v = enable[0]
	}
	return func(o *Options) { o.KnownFields = v }
}

// WithSingleDocument stops a Loader after its first document.
func WithSingleDocument() Option {
	return func(o *Options) { o.SingleDocument = true }
}

// WithLineWidth records a preferred output line width in
// Options.LineWidth. The Dumper does not pass it to the emitter, so it
// does not change where output lines wrap.
func WithLineWidth(width int) Option {
	return func(o *Options) { o.LineWidth = width }
}

// WithUnicode records in Options.Unicode whether non-ASCII characters
// may be emitted unescaped. The Dumper does not read this setting.
func WithUnicode(enable bool) Option {
	return func(o *Options) { o.Unicode = enable }
}

// WithUniqueKeys maps the legacy boolean knob onto the richer
// DuplicatePolicy: true means a duplicate mapping key is an error, false
// means the last occurrence silently wins.
func WithUniqueKeys(enable ...bool) Option {
	v := true
	if len(enable) > 0 {
		v = enable[0]
	}
	return func(o *Options) {
		if v {
			o.Duplicate = core.PolicyError
		} else {
			o.Duplicate = core.PolicyLastWins
		}
	}
}

// WithDuplicateKeys sets the duplicate-key policy directly.
func WithDuplicateKeys(policy core.DuplicatePolicy) Option {
	return func(o *Options) { o.Duplicate = policy }
}

// WithCanonical records a canonical-output request in Options.Canonical.
// The Dumper does not read this setting and never writes canonical form.
func WithCanonical(enable bool) Option {
	return func(o *Options) { o.Canonical = enable }
}

// WithLineBreak records a line ending style in Options.LineBreak. The
// Dumper does not read this setting; the emitter always writes "\n".
func WithLineBreak(lb LineBreak) Option {
	return func(o *Options) { o.LineBreak = lb }
}

// WithExplicitStart forces a leading "---" document marker.
func WithExplicitStart(enable ...bool) Option {
	v := true
	if len(enable) > 0 {
		v = enable[0]
	}
	return func(o *Options) { o.ExplicitStart = v }
}

// WithExplicitEnd forces a trailing "..." document marker.
func WithExplicitEnd(enable ...bool) Option {
	v := true
	if len(enable) > 0 {
		v = enable[0]
	}
	return func(o *Options) { o.ExplicitEnd = v }
}

// WithFlowSimpleCollections forces flow style "[...]"/"{...}" for every
// collection encoded from a Go value. It does not check whether a
// collection holds only scalars; Node values keep their own Style.
func WithFlowSimpleCollections(enable bool) Option {
	return func(o *Options) { o.FlowSimpleCollections = enable }
}

// WithStrictBooleans restricts boolean recognition to the YAML 1.2
// spellings (true/false), rejecting the YAML 1.1 yes/no/on/off forms.
func WithStrictBooleans(enable bool) Option {
	return func(o *Options) { o.Scalar.StrictBooleans = enable }
}

// WithLegacyOctalNumbers enables the legacy leading-0 octal spelling
// (e.g. 0755) in addition to the YAML 1.2 0o755 form.
func WithLegacyOctalNumbers(enable bool) Option {
	return func(o *Options) { o.Scalar.LegacyOctalNumbers = enable }
}

// WithNoSchema disables type inference for untagged plain scalars: every
// plain scalar decodes as a string unless explicitly tagged.
func WithNoSchema(enable bool) Option {
	return func(o *Options) { o.Scalar.NoSchema = enable }
}

// WithAngleConversions enables the domain extension recognizing !radians,
// !degrees, pi, tau, deg(x), and rad(x).
func WithAngleConversions(enable bool) Option {
	return func(o *Options) { o.Scalar.AngleConversions = enable }
}

// WithSnippet enables rendering a source snippet alongside decode errors.
func WithSnippet(enable bool) Option {
	return func(o *Options) { o.WithSnippet = enable }
}

// WithCropRadius sets the horizontal crop radius used when rendering an
// error snippet.
func WithCropRadius(radius int) Option {
	return func(o *Options) { o.CropRadius = radius }
}

// WithBudget replaces the full set of resource-exhaustion caps.
func WithBudget(b core.Budget) Option {
	return func(o *Options) { o.Budget = b }
}

// WithMaxReaderInputBytes caps the number of decoded bytes a reader-backed
// Loader will accept.
func WithMaxReaderInputBytes(max int) Option {
	return func(o *Options) { o.Budget.MaxReaderInputBytes = max }
}

// sliceBackedInput marks the document as decoded from a byte slice the
// caller still holds, the only case WithZeroCopyStrings can satisfy.
// Load/LoadAll append it after the caller's own options so user-supplied
// option lists can't accidentally clear it.
func sliceBackedInput() Option {
	return func(o *Options) { o.sliceBacked = true }
}

// WithZeroCopyStrings requires every string-typed scalar to clear the
// Zero-Copy Borrow Analyzer before it's assigned, failing decode with a
// CannotBorrowTransformedString error instead of silently copying when
// a scalar's style forces a transformation (block scalars, quoted
// scalars with escapes). It only ever succeeds when decoding from a
// byte slice the caller still holds (Load, LoadAll, Unmarshal); a
// Loader built over an arbitrary io.Reader can't satisfy it, since
// nothing then guarantees the decoded bytes stay addressable as the
// stable slice a borrow would reference.
func WithZeroCopyStrings(enable bool) Option {
	return func(o *Options) { o.ZeroCopyStrings = enable }
}

// WithAnchorGenerator overrides the default "a<id>" anchor naming scheme
// used when encoding shared-ownership sentinels.
func WithAnchorGenerator(fn func(id int) string) Option {
	return func(o *Options) { o.AnchorGenerator = fn }
}

// OptsYAML parses a YAML string containing option settings and returns an
// Option that can be combined with other options using Options().
//
// The YAML string can specify any of these fields:
//   - indent (int)
//   - compact-seq-indent (bool)
//   - line-width (int)
//   - unicode (bool)
//   - canonical (bool)
//   - line-break (string: ln, cr, crln)
//   - explicit-start (bool)
//   - explicit-end (bool)
//   - flow-simple-coll (bool)
//   - known-fields (bool)
//   - single-document (bool)
//   - unique-keys (bool)
//
// Only fields specified in the YAML will override other options when
// combined. Unspecified fields won't affect other options.
func OptsYAML(yamlStr string) (Option, error) {
	var cfg struct {
		Indent                *int    `yaml:"indent"`
		CompactSeqIndent      *bool   `yaml:"compact-seq-indent"`
		LineWidth             *int    `yaml:"line-width"`
		Unicode               *bool   `yaml:"unicode"`
		Canonical             *bool   `yaml:"canonical"`
		LineBreak             *string `yaml:"line-break"`
		ExplicitStart         *bool   `yaml:"explicit-start"`
		ExplicitEnd           *bool   `yaml:"explicit-end"`
		FlowSimpleCollections *bool   `yaml:"flow-simple-coll"`
		KnownFields           *bool   `yaml:"known-fields"`
		SingleDocument        *bool   `yaml:"single-document"`
		UniqueKeys            *bool   `yaml:"unique-keys"`
	}
	if err := Load([]byte(yamlStr), &cfg, WithKnownFields()); err != nil {
		return nil, err
	}

	var optList []Option
	if cfg.Indent != nil {
		optList = append(optList, WithIndent(*cfg.Indent))
	}
	if cfg.CompactSeqIndent != nil {
		optList = append(optList, WithCompactSeqIndent(*cfg.CompactSeqIndent))
	}
	if cfg.LineWidth != nil {
		optList = append(optList, WithLineWidth(*cfg.LineWidth))
	}
	if cfg.Unicode != nil {
		optList = append(optList, WithUnicode(*cfg.Unicode))
	}
	if cfg.ExplicitStart != nil {
		optList = append(optList, WithExplicitStart(*cfg.ExplicitStart))
	}
	if cfg.ExplicitEnd != nil {
		optList = append(optList, WithExplicitEnd(*cfg.ExplicitEnd))
	}
	if cfg.FlowSimpleCollections != nil {
		optList = append(optList, WithFlowSimpleCollections(*cfg.FlowSimpleCollections))
	}
	if cfg.KnownFields != nil {
		optList = append(optList, WithKnownFields(*cfg.KnownFields))
	}
	if cfg.SingleDocument != nil && *cfg.SingleDocument {
		optList = append(optList, WithSingleDocument())
	}
	if cfg.UniqueKeys != nil {
		optList = append(optList, WithUniqueKeys(*cfg.UniqueKeys))
	}
	if cfg.Canonical != nil {
		optList = append(optList, WithCanonical(*cfg.Canonical))
	}
	if cfg.LineBreak != nil {
		switch *cfg.LineBreak {
		case "ln":
			optList = append(optList, WithLineBreak(LineBreakLN))
		case "cr":
			optList = append(optList, WithLineBreak(LineBreakCR))
		case "crln":
			optList = append(optList, WithLineBreak(LineBreakCRLN))
		default:
			return nil, errors.New("yaml: invalid line-break value (use ln, cr, or crln)")
		}
	}

	return Options(optList...), nil
}

// V2 provides go-yaml v2 formatting defaults:
//   - 2-space indentation
//   - Non-compact sequence indentation
//   - 80-character line width
//   - Unicode enabled
//   - Unique keys enforced
var V2 = Options(
	WithIndent(2),
	WithCompactSeqIndent(false),
	WithLineWidth(80),
	WithUnicode(true),
	WithUniqueKeys(true),
)

// V3 provides go-yaml v3 formatting defaults:
//   - 4-space indentation (classic go-yaml v3 style)
//   - Non-compact sequence indentation
//   - 80-character line width
//   - Unicode enabled
//   - Unique keys enforced
var V3 = Options(
	WithIndent(4),
	WithCompactSeqIndent(false),
	WithLineWidth(80),
	WithUnicode(true),
	WithUniqueKeys(true),
)

// V4 provides go-yaml v4 formatting defaults:
//   - 2-space indentation (more compact than v3)
//   - Compact sequence indentation
//   - 80-character line width
//   - Unicode enabled
//   - Unique keys enforced
var V4 = Options(
	WithIndent(2),
	WithCompactSeqIndent(true),
	WithLineWidth(80),
	WithUnicode(true),
	WithUniqueKeys(true),
)
