// Package render turns a normalized schema.Document into styled
// terminal output. It dispatches each block to a type-specific leaf
// renderer and routes every table, explicit blocks and tables embedded
// in markdown prose alike, through the table component, so all tables
// share the same affordances. Rendering is synchronous, touches no
// shared mutable state, and never returns an error to the host: bad
// input degrades to a visible card or an omitted block.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"mentordeck/internal/events"
	"mentordeck/internal/logging"
	"mentordeck/internal/schema"
	"mentordeck/internal/sections"
	"mentordeck/internal/table"
)

// Renderer renders documents at a fixed width with a fixed style set.
// Construct one per output target; it is cheap and carries no state
// between documents.
type Renderer struct {
	Styles Styles

	// Width is the render width in terminal cells. Values below 20 are
	// clamped.
	Width int

	// Breakpoint overrides the table card-view threshold when > 0.
	Breakpoint int

	// Zebra enables alternating-row striping in table grids.
	Zebra bool

	Bus *events.Bus
	Log *zap.Logger
}

// Result is one rendered document plus the table instances it produced,
// in render order, for the host to target with copy/export actions.
type Result struct {
	Text   string
	Tables []table.Model
}

func (r *Renderer) width() int {
	if r.Width < 20 {
		return 20
	}
	return r.Width
}

// Document renders title, summary, blocks in input order, suggested
// actions, and the meta footer.
func (r *Renderer) Document(doc *schema.Document) Result {
	run := &renderRun{r: r, isError: doc.Meta.Schema == schema.SchemaError}
	var parts []string

	if title := r.titleLine(doc); title != "" {
		parts = append(parts, title)
	}
	if doc.Summary != "" {
		parts = append(parts, r.Styles.Summary.Render(doc.Summary))
	}

	for _, b := range doc.Blocks {
		if rendered := run.block(b, doc.IsLegacy()); rendered != "" {
			parts = append(parts, rendered)
		}
	}

	dispatcher := ActionDispatcher{Bus: r.Bus, Log: r.Log}
	if controls := dispatcher.Controls(doc.Meta.SuggestedActions, r.Styles); controls != "" {
		parts = append(parts, controls)
	}
	if footer := r.metaFooter(doc.Meta); footer != "" {
		parts = append(parts, footer)
	}

	return Result{Text: strings.Join(parts, "\n\n"), Tables: run.tables}
}

func (r *Renderer) titleLine(doc *schema.Document) string {
	if doc.Title == "" {
		return ""
	}
	title := doc.Title
	if doc.Meta.Emoji != "" {
		title = doc.Meta.Emoji + " " + title
	}
	if doc.Meta.Schema == schema.SchemaError {
		return r.Styles.newStyle().Foreground(r.Styles.Theme.Error).Bold(true).Render(title)
	}
	return r.Styles.Title.Render(title)
}

func (r *Renderer) metaFooter(meta schema.Meta) string {
	var parts []string
	if meta.Tier != "" {
		parts = append(parts, meta.Tier)
	}
	if meta.TokensUsed > 0 {
		parts = append(parts, strconv.Itoa(meta.TokensUsed)+" tokens")
	}
	if len(parts) == 0 {
		return ""
	}
	return r.Styles.Muted.Render(strings.Join(parts, " · "))
}

// renderRun carries the per-document state: the tables produced while
// rendering, in order of appearance.
type renderRun struct {
	r       *Renderer
	isError bool
	tables  []table.Model
}

// block dispatches one block by its type tag. Unknown tags render
// nothing: forward compatible, never fatal.
func (run *renderRun) block(b schema.Block, legacy bool) string {
	switch b.Type {
	case schema.BlockMarkdown, schema.BlockList:
		if legacy {
			return run.legacyMarkdown(b.Content)
		}
		return run.markdown(b.Content)
	case schema.BlockCode:
		return run.code(b)
	case schema.BlockTable:
		return run.tableBlock(b)
	case schema.BlockCallout:
		return run.callout(b.Content)
	case schema.BlockImage:
		return run.image(b)
	default:
		logging.OrNop(run.r.Log).Debug("skipping unknown block type",
			zap.String("type", string(b.Type)))
		return ""
	}
}

func (run *renderRun) markdown(content string) string {
	return renderMarkdown(content, run.r.Styles, run.r.width(), run.tableFromMarkdown)
}

// tableFromMarkdown is the sink the markdown engine feeds extracted
// prose tables into.
func (run *renderRun) tableFromMarkdown(headers []string, rows [][]string) string {
	m := table.New("", headers, rows)
	m.Breakpoint = run.r.Breakpoint
	run.tables = append(run.tables, m)
	return m.Render(run.r.width(), run.r.Styles.tableStyles(run.r.Zebra))
}

func (run *renderRun) tableBlock(b schema.Block) string {
	m := table.New(b.Caption, b.Headers, b.Rows)
	m.Dense = b.Dense
	m.Breakpoint = run.r.Breakpoint
	run.tables = append(run.tables, m)
	return m.Render(run.r.width(), run.r.Styles.tableStyles(run.r.Zebra))
}

// code renders literal preformatted text inside the code-block frame.
// Content is never executed or evaluated.
func (run *renderRun) code(b schema.Block) string {
	body := highlight(strings.TrimRight(b.Content, "\n"), b.Language, run.r.Styles)
	frame := run.r.Styles.CodeBlock.Width(run.r.width() - 2)
	return frame.Render(body)
}

// callout renders a visually distinct contained region wrapping nested
// markdown. Schema-error documents use the error frame so the failure
// is a visible, labeled card rather than a blank screen.
func (run *renderRun) callout(content string) string {
	inner := renderMarkdown(content, run.r.Styles, run.r.width()-4, run.tableFromMarkdown)
	if run.isError {
		label := run.r.Styles.newStyle().Foreground(run.r.Styles.Theme.Error).Bold(true).Render("Error")
		return run.r.Styles.ErrorCard.Width(run.r.width() - 2).Render(label + "\n" + inner)
	}
	return run.r.Styles.Callout.Width(run.r.width() - 2).Render(inner)
}

// image renders a placeholder line; terminals have no inline images.
// Src and alt are both required, caption is optional and sits below.
func (run *renderRun) image(b schema.Block) string {
	if b.Src == "" || b.Alt == "" {
		logging.OrNop(run.r.Log).Debug("skipping image block missing src or alt",
			zap.String("src", b.Src))
		return ""
	}
	line := run.r.Styles.Muted.Render("[" + b.Alt + "] (" + b.Src + ")")
	if b.Caption != "" {
		line += "\n" + run.r.Styles.Muted.Italic(true).Render(b.Caption)
	}
	return line
}

// legacyMarkdown handles blocks wrapped from the legacy response
// shapes: the text is segmented into named sections first, and each
// present section renders as its own labeled panel. Text with no
// recognizable markers falls back to plain markdown.
func (run *renderRun) legacyMarkdown(content string) string {
	secs := sections.Extract(content)
	if secs.Empty() {
		return run.markdown(content)
	}

	var parts []string
	if secs.Technical != "" {
		parts = append(parts,
			run.r.Styles.SectionHeader.Render("🔧 Technical Answer")+"\n"+
				run.markdown(secs.Technical))
	}
	if secs.Mentoring != "" {
		parts = append(parts,
			run.r.Styles.SectionHeader.Render("💡 Mentoring Insight")+"\n"+
				run.callout(secs.Mentoring))
	}
	if secs.NextSteps != "" {
		parts = append(parts,
			run.r.Styles.SectionHeader.Render("🚀 Next Steps")+"\n"+
				run.nextSteps(secs))
	}
	if secs.Additional != "" {
		parts = append(parts, run.markdown(secs.Additional))
	}
	return strings.Join(parts, "\n\n")
}

// nextSteps prefers the extracted ordered steps; the raw section text
// is the fallback when the numbered-list scan found nothing.
func (run *renderRun) nextSteps(secs sections.Sections) string {
	if len(secs.Steps) == 0 {
		return run.markdown(secs.NextSteps)
	}
	var b strings.Builder
	for i, step := range secs.Steps {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, step))
		if i < len(secs.Steps)-1 {
			b.WriteString("\n")
		}
	}
	return run.markdown(b.String())
}
