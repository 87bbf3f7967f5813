package yaml

import (
	"fmt"

	"go.yaml.in/yamlcore/internal/core"
)

// Load decodes v's serialized form into the value pointed to by v, using
// the node's own content as the source document. Options apply the same
// way they would to a fresh Loader.
func (n *Node) Load(v any, opts ...Option) error {
	data, err := Dump(n)
	if err != nil {
		return err
	}
	return Load(data, v, opts...)
}

// Dump replaces n with the Node tree produced by encoding value with the
// given options.
func (n *Node) Dump(value any, opts ...Option) error {
	data, err := Dump(value, opts...)
	if err != nil {
		return err
	}
	var doc Node
	if err := Load(data, &doc, opts...); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		*n = Node{}
		return nil
	}
	*n = *doc.Content[0]
	return nil
}

func logicalTag(t core.LogicalType) string {
	switch t {
	case core.LogicalNull:
		return "!!null"
	case core.LogicalBool:
		return "!!bool"
	case core.LogicalInt:
		return "!!int"
	case core.LogicalFloat:
		return "!!float"
	case core.LogicalBinary:
		return "!!binary"
	default:
		return "!!str"
	}
}

func scalarNodeStyle(s core.ScalarStyle) Style {
	switch s {
	case core.StyleSingleQuoted:
		return SingleQuotedStyle
	case core.StyleDoubleQuoted:
		return DoubleQuotedStyle
	case core.StyleLiteralBlock:
		return LiteralStyle
	case core.StyleFoldedBlock:
		return FoldedStyle
	default:
		return 0
	}
}

// decodeEventNode builds a single Node, and its descendants, from the
// event queue, starting at whatever event is peeked next. It does not
// consume the matching DocumentEnd; callers pull that themselves.
func decodeEventNode(q *core.EventQueue, scalarOpts core.ScalarOptions) (*Node, *core.Error) {
	ev, err := q.Next()
	if err != nil {
		return nil, err
	}
	switch ev.Kind {
	case core.Scalar:
		tag := ev.Tag
		if tag == "" {
			resolved, rerr := core.Resolve(ev.Location, ev.Value, ev.Style, ev.Tag, scalarOpts)
			if rerr != nil {
				return nil, rerr
			}
			tag = logicalTag(resolved.Type)
		}
		n := &Node{
			Kind:   ScalarNode,
			Style:  scalarNodeStyle(ev.Style),
			Tag:    tag,
			Value:  ev.Value,
			Line:   ev.Location.Line,
			Column: ev.Location.Column,
		}
		if ev.AnchorID != 0 {
			n.Anchor = fmt.Sprintf("a%d", ev.AnchorID)
		}
		return n, nil
	case core.Alias:
		return &Node{
			Kind:  AliasNode,
			Value: fmt.Sprintf("a%d", ev.AliasTarget),
		}, nil
	case core.SequenceStart:
		n := &Node{
			Kind:   SequenceNode,
			Tag:    ev.Tag,
			Line:   ev.Location.Line,
			Column: ev.Location.Column,
		}
		if n.Tag == "" {
			n.Tag = "!!seq"
		}
		if ev.AnchorID != 0 {
			n.Anchor = fmt.Sprintf("a%d", ev.AnchorID)
		}
		for {
			peek, perr := q.Peek()
			if perr != nil {
				return nil, perr
			}
			if peek.Kind == core.SequenceEnd {
				q.Next()
				break
			}
			c, cerr := decodeEventNode(q, scalarOpts)
			if cerr != nil {
				return nil, cerr
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case core.MappingStart:
		n := &Node{
			Kind:   MappingNode,
			Tag:    ev.Tag,
			Line:   ev.Location.Line,
			Column: ev.Location.Column,
		}
		if n.Tag == "" {
			n.Tag = "!!map"
		}
		if ev.AnchorID != 0 {
			n.Anchor = fmt.Sprintf("a%d", ev.AnchorID)
		}
		for {
			peek, perr := q.Peek()
			if perr != nil {
				return nil, perr
			}
			if peek.Kind == core.MappingEnd {
				q.Next()
				break
			}
			k, kerr := decodeEventNode(q, scalarOpts)
			if kerr != nil {
				return nil, kerr
			}
			v, verr := decodeEventNode(q, scalarOpts)
			if verr != nil {
				return nil, verr
			}
			n.Content = append(n.Content, k, v)
		}
		return n, nil
	default:
		return nil, &core.Error{Kind: core.KindUnexpected, Message: fmt.Sprintf("unexpected event while building node: %v", ev.Kind)}
	}
}
