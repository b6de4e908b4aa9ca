// Package sections parses legacy concatenated mentor text into named
// sections. The legacy upstream format marks sections with an emoji
// followed by a bolded name:
//
//	🔧 **Technical Answer**
//	💡 **Mentoring Insight**
//	🚀 **Next Steps**
//
// Real responses drift from that format, so each section is located
// through an ordered fallback chain: a strict line-start pattern, a
// relaxed anywhere pattern, then the bare bolded name. The three target
// sections are scanned independently against the same source text,
// deliberately not an if/else-if chain, so text that legitimately
// carries two or three markers yields all of them. Whatever matches
// none of the names is preserved verbatim in an additional bucket.
package sections

import (
	"regexp"
	"sort"
	"strings"
)

// Sections is the result of extracting one block of legacy text. A
// missing section is an empty string, not an error.
type Sections struct {
	Technical string
	Mentoring string

	// NextSteps keeps the raw section text for fallback markdown
	// rendering; Steps is the ordered numbered-list extraction of the
	// same text.
	NextSteps string
	Steps     []string

	// Additional holds source text that matched none of the three
	// names, preserved for rendering rather than discarded.
	Additional string
}

// Empty reports whether no named section was found.
func (s Sections) Empty() bool {
	return s.Technical == "" && s.Mentoring == "" && s.NextSteps == ""
}

type target struct {
	emoji string
	name  string

	// Fallback chain, tried in order: strict, relaxed, bare.
	patterns []*regexp.Regexp
}

func newTarget(emoji, name string) target {
	quoted := regexp.QuoteMeta(name)
	return target{
		emoji: emoji,
		name:  name,
		patterns: []*regexp.Regexp{
			// Strict: marker at line start (optionally behind a heading
			// prefix) immediately followed by the bolded name.
			regexp.MustCompile(`(?m)^[ \t]*(?:#{1,6}[ \t]*)?` + emoji + `[ \t]*\*\*` + quoted + `\*\*:?[ \t]*\n?`),
			// Relaxed: marker and name anywhere on one line.
			regexp.MustCompile(emoji + `[^\n]{0,40}?\*\*` + quoted + `\*\*:?[ \t]*\n?`),
			// Bare: just the bolded name.
			regexp.MustCompile(`\*\*` + quoted + `\*\*:?[ \t]*\n?`),
		},
	}
}

var (
	technicalTarget = newTarget("🔧", "Technical Answer")
	mentoringTarget = newTarget("💡", "Mentoring Insight")
	nextStepsTarget = newTarget("🚀", "Next Steps")

	// boundary marks where a section's content stops: the next
	// recognized marker emoji or bolded section name, else end of
	// string. Go's RE2 has no lookahead, so content capture is an
	// explicit scan from the header match to the next boundary.
	boundary = regexp.MustCompile(
		`🔧|💡|🚀|\*\*(?:Technical Answer|Mentoring Insight|Next Steps)\*\*`)

	// stepHead matches one entry of a numbered next-steps list. Step
	// text runs from the head to the next head or end of string.
	stepHead = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`)
)

type span struct{ start, end int }

// Extract scans source for the three named sections and the additional
// leftover bucket.
func Extract(source string) Sections {
	var out Sections
	var consumed []span

	if content, sp, ok := extractTarget(source, technicalTarget); ok {
		out.Technical = content
		consumed = append(consumed, sp)
	}
	if content, sp, ok := extractTarget(source, mentoringTarget); ok {
		out.Mentoring = content
		consumed = append(consumed, sp)
	}
	if content, sp, ok := extractTarget(source, nextStepsTarget); ok {
		out.NextSteps = content
		out.Steps = ExtractSteps(content)
		consumed = append(consumed, sp)
	}

	out.Additional = leftover(source, consumed)
	return out
}

// extractTarget tries the target's fallback chain in order and returns
// the section content, the consumed source span, and whether any
// pattern matched.
func extractTarget(source string, tg target) (string, span, bool) {
	for _, pattern := range tg.patterns {
		loc := pattern.FindStringIndex(source)
		if loc == nil {
			continue
		}
		contentStart := loc[1]
		contentEnd := len(source)
		if next := boundary.FindStringIndex(source[contentStart:]); next != nil {
			contentEnd = contentStart + next[0]
		}
		content := strings.TrimSpace(source[contentStart:contentEnd])
		return content, span{start: loc[0], end: contentEnd}, true
	}
	return "", span{}, false
}

// ExtractSteps pulls an ordered list of plain step strings out of
// numbered-list text ("1. Do X"). Each step runs until the next number
// or end of string, so multi-line steps stay intact.
func ExtractSteps(text string) []string {
	heads := stepHead.FindAllStringIndex(text, -1)
	if len(heads) == 0 {
		return nil
	}
	steps := make([]string, 0, len(heads))
	for i, head := range heads {
		end := len(text)
		if i+1 < len(heads) {
			end = heads[i+1][0]
		}
		step := strings.TrimSpace(text[head[1]:end])
		if step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}

// leftover removes the consumed spans from source and returns whatever
// text remains, trimmed. Spans may overlap when the relaxed or bare
// patterns fire, so they are merged first.
func leftover(source string, consumed []span) string {
	if len(consumed) == 0 {
		return strings.TrimSpace(source)
	}
	sort.Slice(consumed, func(i, j int) bool { return consumed[i].start < consumed[j].start })

	var rest strings.Builder
	cursor := 0
	for _, sp := range consumed {
		if sp.start > cursor {
			rest.WriteString(source[cursor:sp.start])
		}
		if sp.end > cursor {
			cursor = sp.end
		}
	}
	if cursor < len(source) {
		rest.WriteString(source[cursor:])
	}
	return strings.TrimSpace(rest.String())
}
