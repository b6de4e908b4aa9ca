// Package schema defines the normalized representation of one AI mentor
// answer and the normalizer that produces it from the raw upstream
// response. A Document is immutable once constructed and owned by the
// single chat message it was built for.
package schema

// Schema tags recorded in Meta.Schema.
const (
	SchemaV2      = "v2"      // versioned block-array response
	SchemaUnknown = "unknown" // legacy string / technical-mentoring pair
	SchemaError   = "error"   // unrecognizable shape
)

// BlockType tags one unit of renderable content.
type BlockType string

const (
	BlockMarkdown BlockType = "markdown"
	BlockList     BlockType = "list"
	BlockCode     BlockType = "code"
	BlockTable    BlockType = "table"
	BlockCallout  BlockType = "callout"
	BlockImage    BlockType = "image"
)

// Block is one typed unit of content. Which fields are meaningful
// depends on Type; unknown Type values are carried through and skipped
// at render time rather than treated as fatal.
type Block struct {
	Type BlockType `json:"type"`

	// markdown, list, code, callout
	Content string `json:"content,omitempty"`

	// code
	Language string `json:"language,omitempty"`

	// table
	Caption string     `json:"caption,omitempty"`
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	Dense   bool       `json:"dense,omitempty"`

	// image
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// SuggestedAction is a labeled follow-up control. Its payload is opaque
// here: interpretation belongs to the hosting application. Lifecycle is
// request-scoped: created with the document, discarded with it.
type SuggestedAction struct {
	Label   string `json:"label"`
	Payload string `json:"payload"`
}

// Meta carries response-level metadata.
type Meta struct {
	Schema           string            `json:"schema"`
	Emoji            string            `json:"emoji,omitempty"`
	Tier             string            `json:"tier,omitempty"`
	TokensUsed       int               `json:"tokens_used,omitempty"`
	SuggestedActions []SuggestedAction `json:"suggested_actions,omitempty"`
}

// Document is the normalized, renderable representation of one answer.
// Blocks render in array order; order is significant and preserved
// end-to-end.
type Document struct {
	Title   string  `json:"title,omitempty"`
	Summary string  `json:"summary,omitempty"`
	Blocks  []Block `json:"blocks"`
	Meta    Meta    `json:"meta"`
}

// IsLegacy reports whether the document was wrapped from a legacy shape
// and should receive section extraction before rendering.
func (d *Document) IsLegacy() bool {
	return d.Meta.Schema == SchemaUnknown
}
