package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Normalize turns the raw bytes of one upstream answer into a Document.
// It never returns an error and never panics: unrecognizable input
// degrades to an explicit schema-error document, and raw non-JSON text
// is tolerated as the legacy bare-string shape.
//
// Shape detection:
//  1. JSON object with a "blocks" array  -> schema "v2", pass-through.
//  2. JSON string                        -> one markdown block, "unknown".
//  3. Object with technical/mentoring   -> markdown + callout pair, "unknown".
//  4. Plain (non-JSON) UTF-8 text        -> treated as the bare string.
//  5. Everything else                    -> schema-error document.
func Normalize(raw []byte) *Document {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return errorDocument("empty response body")
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		// Legacy upstream delivered plain text bodies long before the
		// block schema existed. Keep tolerating them.
		if utf8.ValidString(trimmed) {
			return legacyTextDocument(trimmed)
		}
		return errorDocument("body is neither JSON nor text")
	}
	return NormalizeValue(decoded)
}

// NormalizeValue applies the same contract to an already-decoded value,
// for callers that hold a map[string]any rather than raw bytes.
func NormalizeValue(v any) *Document {
	switch value := v.(type) {
	case string:
		return legacyTextDocument(value)
	case map[string]any:
		if _, ok := value["blocks"].([]any); ok {
			return normalizeV2(value)
		}
		if doc, ok := normalizeLegacyPair(value); ok {
			return doc
		}
		return errorDocument("object has neither blocks nor technical/mentoring keys")
	default:
		return errorDocument("top-level value is not an object or string")
	}
}

// legacyTextDocument wraps a bare string answer in a single markdown
// block so downstream legacy section formatting still applies.
func legacyTextDocument(text string) *Document {
	return &Document{
		Blocks: []Block{{Type: BlockMarkdown, Content: strings.TrimSpace(text)}},
		Meta:   Meta{Schema: SchemaUnknown},
	}
}

// normalizeLegacyPair handles the two-part technical/mentoring object.
// The technical half carries the substance, so it becomes a markdown
// block; the mentoring half renders as a callout.
func normalizeLegacyPair(m map[string]any) (*Document, bool) {
	technical, hasTechnical := stringField(m, "technical")
	mentoring, hasMentoring := stringField(m, "mentoring")
	if !hasTechnical && !hasMentoring {
		return nil, false
	}

	var blocks []Block
	if technical != "" {
		blocks = append(blocks, Block{Type: BlockMarkdown, Content: technical})
	}
	if mentoring != "" {
		blocks = append(blocks, Block{Type: BlockCallout, Content: mentoring})
	}
	if len(blocks) == 0 {
		return errorDocument("technical/mentoring keys present but empty"), true
	}
	return &Document{Blocks: blocks, Meta: Meta{Schema: SchemaUnknown}}, true
}

// normalizeV2 passes a versioned block-array response through with
// minimal shape validation: missing title/summary/meta keys default,
// malformed block entries are skipped.
func normalizeV2(m map[string]any) *Document {
	doc := &Document{Meta: Meta{Schema: SchemaV2}}
	doc.Title, _ = stringField(m, "title")
	doc.Summary, _ = stringField(m, "summary")

	rawBlocks, _ := m["blocks"].([]any)
	doc.Blocks = make([]Block, 0, len(rawBlocks))
	for _, entry := range rawBlocks {
		bm, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		doc.Blocks = append(doc.Blocks, decodeBlock(bm))
	}

	if meta, ok := m["meta"].(map[string]any); ok {
		doc.Meta.Emoji, _ = stringField(meta, "emoji")
		doc.Meta.Tier, _ = stringField(meta, "tier")
		if tokens, ok := meta["tokens_used"].(float64); ok && tokens > 0 {
			doc.Meta.TokensUsed = int(tokens)
		}
		doc.Meta.SuggestedActions = decodeActions(meta["suggested_actions"])
	}
	return doc
}

// decodeBlock builds a Block from one blocks[] entry. The type tag is
// carried through verbatim; unknown tags are a renderer concern, not a
// normalizer error.
func decodeBlock(m map[string]any) Block {
	b := Block{}
	if t, ok := stringField(m, "type"); ok {
		b.Type = BlockType(t)
	}
	b.Content, _ = stringField(m, "content")
	b.Language, _ = stringField(m, "language")
	b.Caption, _ = stringField(m, "caption")
	b.Src, _ = stringField(m, "src")
	b.Alt, _ = stringField(m, "alt")
	b.Dense, _ = m["dense"].(bool)

	if headers, ok := m["headers"].([]any); ok {
		b.Headers = make([]string, 0, len(headers))
		for _, h := range headers {
			b.Headers = append(b.Headers, cellString(h))
		}
	}
	if rows, ok := m["rows"].([]any); ok {
		b.Rows = make([][]string, 0, len(rows))
		for _, r := range rows {
			cells, ok := r.([]any)
			if !ok {
				continue
			}
			row := make([]string, 0, len(cells))
			for _, c := range cells {
				row = append(row, cellString(c))
			}
			b.Rows = append(b.Rows, row)
		}
	}
	return b
}

func decodeActions(v any) []SuggestedAction {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	actions := make([]SuggestedAction, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		label, _ := stringField(m, "label")
		payload, _ := stringField(m, "payload")
		if label == "" {
			continue
		}
		actions = append(actions, SuggestedAction{Label: label, Payload: payload})
	}
	if len(actions) == 0 {
		return nil
	}
	return actions
}

// cellString renders a table cell value. The wire contract allows
// strings and numbers; anything else degrades to its JSON encoding.
func cellString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == math.Trunc(value) && math.Abs(value) < 1e15 {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// errorDocument is the fixed response to an unrecognizable shape: a
// one-block document that renders as a visible, labeled error card.
func errorDocument(reason string) *Document {
	return &Document{
		Title: "Unrecognized response",
		Blocks: []Block{{
			Type: BlockCallout,
			Content: "This answer arrived in a shape the renderer does not " +
				"recognize (" + reason + "). Nothing was lost upstream; " +
				"ask again or report the problem if it persists.",
		}},
		Meta: Meta{Schema: SchemaError},
	}
}
