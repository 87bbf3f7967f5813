package yaml

// -----------------------------------------------------------------------------
// Node-related types and constants
// -----------------------------------------------------------------------------

// Kind represents the type of YAML node.
type Kind int

// Kind constants define the different types of YAML nodes.
const (
	// DocumentNode represents the root of a YAML document.
	DocumentNode Kind = 1 << iota

	// SequenceNode represents a YAML sequence (list).
	SequenceNode

	// MappingNode represents a YAML mapping (dictionary).
	MappingNode

	// ScalarNode represents a YAML scalar value.
	ScalarNode

	// AliasNode represents a reference to an anchored node.
	AliasNode
)

// Style represents the formatting style of a YAML node.
type Style int

// Style constants define different formatting styles for YAML nodes.
const (
	// TaggedStyle explicitly shows the tag on the node.
	TaggedStyle Style = 1 << iota

	// DoubleQuotedStyle uses double quotes for scalar values.
	DoubleQuotedStyle

	// SingleQuotedStyle uses single quotes for scalar values.
	SingleQuotedStyle

	// LiteralStyle uses literal block scalar style (|).
	LiteralStyle

	// FoldedStyle uses folded block scalar style (>).
	FoldedStyle

	// FlowStyle uses flow style (inline) formatting.
	FlowStyle
)

// Node represents an element in the YAML document hierarchy.
//
// While documents are typically encoded and decoded into higher level
// types, such as structs and maps, Node is an intermediate representation
// that allows detailed control over the content being decoded or encoded.
//
// Values that make use of the Node type interact with the yaml package in
// the same way any other type would do, by encoding and decoding yaml data
// directly or indirectly into them.
//
// For example:
//
//	var person struct {
//	        Name    string
//	        Address yaml.Node
//	}
//	err := yaml.Load(data, &person)
type Node struct {
	// Kind describes the node's role in the document (document, sequence,
	// mapping, scalar, or alias).
	Kind Kind

	// Style lays out the formatting flags carried from the scalar's event
	// style, or requested for encoding.
	Style Style

	// Tag holds the node's resolved or explicit YAML tag.
	Tag string

	// Value holds the node's string value if it's a scalar.
	Value string

	// Anchor holds the anchor name, if any, declared on this node.
	Anchor string

	// Alias holds the node this node refers to, if it is an alias node.
	Alias *Node

	// Content holds contained nodes for sequences, mappings, and documents.
	Content []*Node

	// HeadComment, LineComment, and FootComment hold comment lines
	// positioned before, on the same line as, or after the node.
	HeadComment string
	LineComment string
	FootComment string

	Line   int
	Column int
}

// IsZero reports whether the node holds no content at all.
func (n *Node) IsZero() bool {
	return n == nil || (n.Kind == 0 && n.Style == 0 && n.Tag == "" && n.Value == "" &&
		n.Anchor == "" && n.Alias == nil && n.Content == nil)
}
