package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// The goldmark parser is configured once and shared: parsing state is
// per-call, so a single instance is safe across documents.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func parser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParser
}

// tableSink renders a table extracted from markdown prose. The engine
// never formats tables itself: routing them through the sink keeps one
// source of truth for what a table looks like, so a table typed as an
// explicit block and one embedded in prose get identical capability.
type tableSink func(headers []string, rows [][]string) string

// renderMarkdown converts markdown source into styled terminal text.
// A direct ast.Walk is used instead of goldmark's renderer interface
// because terminal output needs accumulate-then-wrap semantics: inline
// content collects in a buffer and is word-wrapped as a unit when its
// block closes.
func renderMarkdown(input string, st Styles, width int, sink tableSink) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	doc := parser().Parser().Parse(text.NewReader(source))

	eng := &markdownEngine{
		source: source,
		styles: st,
		width:  width,
		sink:   sink,
	}
	_ = ast.Walk(doc, eng.walk)
	return strings.TrimRight(eng.out.String(), "\n")
}

type markdownEngine struct {
	source []byte
	styles Styles
	width  int
	sink   tableSink

	out    strings.Builder
	inline strings.Builder

	// Prefix stack for nested containers (blockquotes, list bodies).
	prefixes    []prefixLevel
	linePrefix  string
	prefixWidth int

	// pendingBullet replaces the prefix for the first line of a list
	// item, then clears.
	pendingBullet string

	// Inline style counters; counters rather than booleans so nested
	// emphasis unwinds correctly.
	bold, italic, strike int

	lists []listLevel

	trailingNewlines int
}

type prefixLevel struct {
	text  string
	width int
}

type listLevel struct {
	ordered bool
	counter int
	tight   bool
}

func (e *markdownEngine) contentWidth() int {
	w := e.width - e.prefixWidth
	if w < 10 {
		w = 10
	}
	return w
}

func (e *markdownEngine) pushPrefix(text string, width int) {
	e.prefixes = append(e.prefixes, prefixLevel{text: text, width: width})
	e.linePrefix += text
	e.prefixWidth += width
}

func (e *markdownEngine) popPrefix() {
	if len(e.prefixes) == 0 {
		return
	}
	top := e.prefixes[len(e.prefixes)-1]
	e.prefixes = e.prefixes[:len(e.prefixes)-1]
	e.linePrefix = e.linePrefix[:len(e.linePrefix)-len(top.text)]
	e.prefixWidth -= top.width
}

func (e *markdownEngine) inTightList() bool {
	if len(e.lists) == 0 {
		return false
	}
	return e.lists[len(e.lists)-1].tight
}

func (e *markdownEngine) write(s string) {
	if s == "" {
		return
	}
	e.out.WriteString(s)

	trailing := 0
	allNewlines := true
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			trailing++
		} else {
			allNewlines = false
			break
		}
	}
	if allNewlines {
		e.trailingNewlines += trailing
	} else {
		e.trailingNewlines = trailing
	}
}

func (e *markdownEngine) ensureNewline() {
	if e.out.Len() == 0 {
		return
	}
	if e.trailingNewlines < 1 {
		e.write("\n")
	}
}

func (e *markdownEngine) ensureBlankLine() {
	if e.out.Len() == 0 {
		return
	}
	for e.trailingNewlines < 2 {
		e.write("\n")
	}
}

// consumePrefix returns the prefix for the current line, preferring a
// pending list bullet.
func (e *markdownEngine) consumePrefix() string {
	if e.pendingBullet != "" {
		bullet := e.pendingBullet
		e.pendingBullet = ""
		return bullet
	}
	return e.linePrefix
}

func (e *markdownEngine) applyPrefixes(content string) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i == 0 {
			b.WriteString(e.consumePrefix())
		} else {
			b.WriteString(e.linePrefix)
		}
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// flushInline word-wraps the accumulated inline content and prefixes
// each line. Resets the inline buffer.
func (e *markdownEngine) flushInline() string {
	content := e.inline.String()
	e.inline.Reset()
	if content == "" {
		return ""
	}
	return e.applyPrefixes(ansi.Wrap(content, e.contentWidth(), " ,.;-+|"))
}

func (e *markdownEngine) styledText(content string) string {
	style := e.styles.newStyle().Foreground(e.styles.Theme.Foreground)
	if e.bold > 0 {
		style = style.Bold(true)
	}
	if e.italic > 0 {
		style = style.Italic(true)
	}
	if e.strike > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// inlineContent collects a node's children into a string, saving and
// restoring the caller's inline buffer and style counters.
func (e *markdownEngine) inlineContent(node ast.Node) string {
	savedInline := e.inline.String()
	savedBold, savedItalic, savedStrike := e.bold, e.italic, e.strike

	e.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		_ = ast.Walk(child, e.walk)
	}
	result := e.inline.String()

	e.inline.Reset()
	e.inline.WriteString(savedInline)
	e.bold, e.italic, e.strike = savedBold, savedItalic, savedStrike
	return result
}

func (e *markdownEngine) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindDocument:

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			e.inline.Reset()
		} else if flushed := e.flushInline(); flushed != "" {
			e.write(flushed)
			e.ensureNewline()
			if !e.inTightList() {
				e.ensureBlankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			e.inline.Reset()
		} else {
			e.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			n := node.(*ast.FencedCodeBlock)
			e.writeCodeLines(e.nodeLines(node), string(n.Language(e.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			e.writeCodeLines(e.nodeLines(node), "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			e.pushPrefix("│ ", 2)
		} else {
			e.popPrefix()
			e.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			start := 0
			if list.IsOrdered() {
				start = list.Start
			}
			e.lists = append(e.lists, listLevel{ordered: list.IsOrdered(), counter: start, tight: list.IsTight})
		} else {
			if len(e.lists) > 0 {
				e.lists = e.lists[:len(e.lists)-1]
			}
			if !e.inTightList() {
				e.ensureBlankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			e.enterListItem()
		} else {
			e.popPrefix()
			if e.inTightList() {
				e.ensureNewline()
			} else {
				e.ensureBlankLine()
			}
		}

	case ast.KindThematicBreak:
		if entering {
			rule := e.styles.newStyle().Foreground(e.styles.Theme.Border).
				Render(strings.Repeat("─", e.contentWidth()))
			e.ensureBlankLine()
			e.write(e.applyPrefixes(rule))
			e.ensureNewline()
			e.ensureBlankLine()
		}

	case ast.KindHTMLBlock:
		if entering {
			stripped := strings.TrimSpace(stripTags(string(e.nodeLines(node))))
			if stripped != "" {
				e.write(e.applyPrefixes(e.styles.Muted.Render(stripped)))
				e.ensureNewline()
				e.ensureBlankLine()
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindText:
		if entering {
			n := node.(*ast.Text)
			e.inline.WriteString(e.styledText(string(n.Segment.Value(e.source))))
			if n.SoftLineBreak() {
				// Soft breaks become spaces so hard-wrapped source
				// reflows at any width.
				e.inline.WriteString(" ")
			}
			if n.HardLineBreak() {
				e.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			e.inline.WriteString(e.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		n := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if n.Level >= 2 {
			e.bold += delta
		} else {
			e.italic += delta
		}

	case extast.KindStrikethrough:
		if entering {
			e.strike++
		} else {
			e.strike--
		}

	case ast.KindCodeSpan:
		if entering {
			e.renderCodeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			n := node.(*ast.Link)
			e.inline.WriteString(e.inlineContent(node))
			if url := string(n.Destination); url != "" {
				e.inline.WriteString(" " + e.styles.Muted.Render("("+url+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(e.source))
			e.inline.WriteString(e.styles.Muted.Render(url))
		}

	case ast.KindImage:
		if entering {
			n := node.(*ast.Image)
			alt := ansi.Strip(e.inlineContent(node))
			e.inline.WriteString(e.styles.Muted.Render("[" + alt + "]"))
			if url := string(n.Destination); url != "" {
				e.inline.WriteString(" " + e.styles.Muted.Render("("+url+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML:
		if entering {
			n := node.(*ast.RawHTML)
			var html strings.Builder
			for i := 0; i < n.Segments.Len(); i++ {
				segment := n.Segments.At(i)
				html.Write(segment.Value(e.source))
			}
			if stripped := stripTags(html.String()); stripped != "" {
				e.inline.WriteString(e.styles.Muted.Render(stripped))
			}
		}

	case extast.KindTable:
		if entering {
			e.renderTable(node)
			return ast.WalkSkipChildren, nil
		}

	case extast.KindTaskCheckBox:
		if entering {
			if node.(*extast.TaskCheckBox).IsChecked {
				e.inline.WriteString(e.styledText("[x] "))
			} else {
				e.inline.WriteString(e.styledText("[ ] "))
			}
		}
	}

	return ast.WalkContinue, nil
}

func (e *markdownEngine) leaveHeading(heading *ast.Heading) {
	content := ansi.Strip(e.inline.String())
	e.inline.Reset()
	if content == "" {
		return
	}

	style := e.styles.newStyle().Bold(true)
	if heading.Level <= 2 {
		style = style.Foreground(e.styles.Theme.Primary)
	} else {
		style = style.Foreground(e.styles.Theme.Foreground)
	}

	wrapped := ansi.Wrap(style.Render(content), e.contentWidth(), " ,.;-+|")
	e.ensureBlankLine()
	e.write(e.applyPrefixes(wrapped))
	e.ensureNewline()
	e.ensureBlankLine()
}

func (e *markdownEngine) enterListItem() {
	if len(e.lists) == 0 {
		return
	}
	top := &e.lists[len(e.lists)-1]

	var bullet string
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	} else {
		bullet = "- "
	}

	continuation := strings.Repeat(" ", len(bullet))
	e.pendingBullet = e.linePrefix + bullet
	e.pushPrefix(continuation, len(bullet))
}

func (e *markdownEngine) nodeLines(node ast.Node) []byte {
	var buf strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(e.source))
	}
	return []byte(buf.String())
}

// writeCodeLines emits a code block line by line. Code is literal
// preformatted text, highlighted when the language is known, never
// evaluated.
func (e *markdownEngine) writeCodeLines(code []byte, language string) {
	highlighted := highlight(string(code), language, e.styles)
	e.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		e.write(e.consumePrefix() + line)
		e.ensureNewline()
	}
	e.ensureBlankLine()
}

func (e *markdownEngine) renderCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			code.Write(n.Segment.Value(e.source))
		case *ast.String:
			code.Write(n.Value)
		}
	}
	e.inline.WriteString(e.styles.Muted.Render(code.String()))
}

// renderTable extracts header and body cells and hands them to the
// table sink. The cells are stripped of inline styling: the table
// component owns the visual treatment.
func (e *markdownEngine) renderTable(node ast.Node) {
	var headers []string
	var rows [][]string

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case extast.KindTableHeader:
			headers = e.collectRow(child)
		case extast.KindTableRow:
			rows = append(rows, e.collectRow(child))
		}
	}
	if len(headers) == 0 && len(rows) == 0 {
		return
	}

	e.ensureBlankLine()
	rendered := e.sink(headers, rows)
	for _, line := range strings.Split(rendered, "\n") {
		e.write(e.linePrefix + line)
		e.ensureNewline()
	}
	e.ensureBlankLine()
}

func (e *markdownEngine) collectRow(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell.Kind() == extast.KindTableCell {
			cells = append(cells, ansi.Strip(e.inlineContent(cell)))
		}
	}
	return cells
}

// highlight runs chroma over code, falling back to muted plain text for
// unknown languages or highlighter errors. Chroma writes its own escape
// sequences, so it is skipped entirely on the plain profile.
func highlight(code, language string, st Styles) string {
	if language == "" || !st.colorized() {
		return st.Muted.Render(code)
	}
	var buf strings.Builder
	if err := quick.Highlight(&buf, code, language, "terminal256", "monokai"); err != nil {
		return st.Muted.Render(code)
	}
	return buf.String()
}

// stripTags drops HTML tags, keeping text content. Raw embedded markup
// is permitted in markdown blocks but a terminal cannot render it.
func stripTags(html string) string {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
