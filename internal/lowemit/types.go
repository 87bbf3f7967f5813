package lowemit

import "go.yaml.in/yamlcore/internal/lowlevel"

// Aliases onto the low-level event/token vocabulary shared with the parser
// side, so the emitter state machine below can be lifted nearly verbatim.
type (
	Event             = lowlevel.Event
	EventType         = lowlevel.EventType
	Encoding          = lowlevel.Encoding
	VersionDirective  = lowlevel.VersionDirective
	TagDirective      = lowlevel.TagDirective
	YamlStyle         = lowlevel.YamlStyle
	YamlScalarStyle   = lowlevel.YamlScalarStyle
	YamlSequenceStyle = lowlevel.YamlSequenceStyle
	YamlMappingStyle  = lowlevel.YamlMappingStyle
	Position          = lowlevel.Position
)

const (
	ALIAS_EVENT          = lowlevel.ALIAS_EVENT
	SCALAR_EVENT         = lowlevel.SCALAR_EVENT
	SEQUENCE_START_EVENT = lowlevel.SEQUENCE_START_EVENT
	SEQUENCE_END_EVENT   = lowlevel.SEQUENCE_END_EVENT
	MAPPING_START_EVENT  = lowlevel.MAPPING_START_EVENT
	MAPPING_END_EVENT    = lowlevel.MAPPING_END_EVENT
	DOCUMENT_START_EVENT = lowlevel.DOCUMENT_START_EVENT
	DOCUMENT_END_EVENT   = lowlevel.DOCUMENT_END_EVENT
	STREAM_START_EVENT   = lowlevel.STREAM_START_EVENT
	STREAM_END_EVENT     = lowlevel.STREAM_END_EVENT

	ANY_ENCODING  = lowlevel.ANY_ENCODING
	UTF8_ENCODING = lowlevel.UTF8_ENCODING

	ANY_SCALAR_STYLE           = lowlevel.ANY_SCALAR_STYLE
	PLAIN_SCALAR_STYLE         = lowlevel.PLAIN_SCALAR_STYLE
	SINGLE_QUOTED_SCALAR_STYLE = lowlevel.SINGLE_QUOTED_SCALAR_STYLE
	DOUBLE_QUOTED_SCALAR_STYLE = lowlevel.DOUBLE_QUOTED_SCALAR_STYLE
	LITERAL_SCALAR_STYLE       = lowlevel.LITERAL_SCALAR_STYLE
	FOLDED_SCALAR_STYLE        = lowlevel.FOLDED_SCALAR_STYLE

	ANY_SEQUENCE_STYLE   = lowlevel.ANY_SEQUENCE_STYLE
	BLOCK_SEQUENCE_STYLE = lowlevel.BLOCK_SEQUENCE_STYLE
	FLOW_SEQUENCE_STYLE  = lowlevel.FLOW_SEQUENCE_STYLE

	ANY_MAPPING_STYLE   = lowlevel.ANY_MAPPING_STYLE
	BLOCK_MAPPING_STYLE = lowlevel.BLOCK_MAPPING_STYLE
	FLOW_MAPPING_STYLE  = lowlevel.FLOW_MAPPING_STYLE
)

var DefaultTagDirectives = lowlevel.DefaultTagDirectives

const (
	Initial_stack_size = lowlevel.Initial_stack_size
	Initial_queue_size = lowlevel.Initial_queue_size
)

var (
	Width     = lowlevel.Width
	Is_alpha  = lowlevel.Is_alpha
	Is_blank  = lowlevel.Is_blank
	Is_break  = lowlevel.Is_break
	Is_blankz = lowlevel.Is_blankz
	Is_space  = lowlevel.Is_space
	Is_bom    = lowlevel.Is_bom

	IsPrintable = lowlevel.IsPrintable
)

// Is_printable checks whether the character starting at b[i] can be written
// unescaped, mirroring the byte-at-offset form the scanner side uses.
func Is_printable(b []byte, i int) bool {
	return lowlevel.IsPrintable(b[i:])
}
