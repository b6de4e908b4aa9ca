// Package table owns the tabular data model and its two presentations:
// a header-first grid for wide render targets and a stack of per-row
// label/value cards below the width breakpoint. It also serializes the
// data for the two export actions (clipboard copy, CSV file). Tables
// that appear inside markdown prose and tables typed explicitly as
// blocks both arrive here, so every table gets the same affordances.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

// DefaultBreakpoint is the render width, in terminal cells, below which
// the card presentation replaces the grid.
const DefaultBreakpoint = 72

const noDataLabel = "No data available"

// Model is one table instance. The ID is locally unique and exists only
// to correlate outbound copy/export events; it is never persisted.
type Model struct {
	ID      string
	Caption string
	Headers []string
	Rows    [][]string
	Dense   bool

	// Breakpoint overrides DefaultBreakpoint when > 0.
	Breakpoint int
}

// New builds a Model with a fresh instance id.
func New(caption string, headers []string, rows [][]string) Model {
	return Model{
		ID:      uuid.NewString()[:8],
		Caption: caption,
		Headers: headers,
		Rows:    rows,
	}
}

func (m Model) breakpoint() int {
	if m.Breakpoint > 0 {
		return m.Breakpoint
	}
	return DefaultBreakpoint
}

// columnCount is the table's arity: the header contract when present,
// else the first row's width, so headerless data still renders and
// serializes instead of being dropped.
func (m Model) columnCount() int {
	if len(m.Headers) > 0 {
		return len(m.Headers)
	}
	if len(m.Rows) > 0 {
		return len(m.Rows[0])
	}
	return 0
}

// cell returns the value at row index i, or "" when the row is shorter
// than the header contract. Short rows render as empty cells, never
// out-of-range panics.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// Render produces the presentation for the given width: the grid at or
// above the breakpoint, one card per row below it. The card view is a
// full substitution for the grid, not an additional view.
func (m Model) Render(width int, st Styles) string {
	if width < m.breakpoint() {
		return m.renderCards(width, st)
	}
	return m.renderGrid(width, st)
}

// --- Grid presentation ---

func (m Model) renderGrid(width int, st Styles) string {
	columns := m.columnCount()
	if columns == 0 {
		return ""
	}

	padding := 2
	if m.Dense {
		padding = 1
	}
	separator := strings.Repeat(" ", padding)

	widths := m.columnWidths(columns, width, padding)

	var sb strings.Builder
	if m.Caption != "" {
		sb.WriteString(st.Caption.Render(m.Caption))
		sb.WriteString("\n")
	}

	total := 0
	for _, w := range widths {
		total += w
	}
	total += padding * (columns - 1)

	// Header row first, pinned above a rule. The hosting viewport keeps
	// it visible while the body scrolls. Headerless data renders as a
	// bare grid.
	if len(m.Headers) > 0 {
		sb.WriteString(formatRow(m.Headers, widths, separator, st.Header))
		sb.WriteString("\n")
		sb.WriteString(st.Rule.Render(strings.Repeat("─", total)))
		sb.WriteString("\n")
	}

	if len(m.Rows) == 0 {
		// An explicit no-data row spanning all columns, never an empty body.
		gap := total - lipgloss.Width(noDataLabel)
		if gap < 0 {
			gap = 0
		}
		left := gap / 2
		sb.WriteString(st.Muted.Render(strings.Repeat(" ", left) + noDataLabel))
		return sb.String()
	}

	for i, row := range m.Rows {
		cells := make([]string, columns)
		for c := 0; c < columns; c++ {
			cells[c] = cell(row, c)
		}
		style := st.Cell
		if i%2 == 1 {
			style = st.ZebraCell
		}
		sb.WriteString(formatRow(cells, widths, separator, style))
		if i < len(m.Rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// columnWidths sizes columns to content, then shrinks proportionally
// when the table overflows the available width. Overflowing cells are
// truncated with an ellipsis at render time.
func (m Model) columnWidths(columns, width, padding int) []int {
	widths := make([]int, columns)
	for i := range widths {
		if i < len(m.Headers) {
			widths[i] = lipgloss.Width(m.Headers[i])
		}
	}
	for _, row := range m.Rows {
		for i := 0; i < columns; i++ {
			if w := lipgloss.Width(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := padding * (columns - 1)
	for _, w := range widths {
		total += w
	}
	if total <= width {
		return widths
	}

	usable := width - padding*(columns-1)
	if usable < columns*3 {
		usable = columns * 3
	}
	contentTotal := total - padding*(columns-1)
	for i := range widths {
		widths[i] = widths[i] * usable / contentTotal
		if widths[i] < 3 {
			widths[i] = 3
		}
	}
	return widths
}

func formatRow(cells []string, widths []int, separator string, style lipgloss.Style) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		c := ""
		if i < len(cells) {
			c = cells[i]
		}
		if lipgloss.Width(c) > w {
			c = ansi.Truncate(c, w, "…")
		}
		if pad := w - lipgloss.Width(c); pad > 0 {
			c += strings.Repeat(" ", pad)
		}
		parts[i] = c
	}
	return style.Render(strings.Join(parts, separator))
}

// --- Card presentation ---

func (m Model) renderCards(width int, st Styles) string {
	var sb strings.Builder
	if m.Caption != "" {
		sb.WriteString(st.Caption.Render(m.Caption))
		sb.WriteString("\n")
	}
	if len(m.Rows) == 0 {
		sb.WriteString(st.Muted.Render(noDataLabel))
		return sb.String()
	}

	cardWidth := width - 4
	if cardWidth < 16 {
		cardWidth = 16
	}

	columns := m.columnCount()
	cards := make([]string, 0, len(m.Rows))
	for _, row := range m.Rows {
		var body strings.Builder
		for i := 0; i < columns; i++ {
			line := cell(row, i)
			if i < len(m.Headers) {
				line = st.CardLabel.Render(m.Headers[i]+":") + " " + line
			}
			if lipgloss.Width(line) > cardWidth {
				line = ansi.Truncate(line, cardWidth, "…")
			}
			body.WriteString(line)
			if i < columns-1 {
				body.WriteString("\n")
			}
		}
		cards = append(cards, st.CardBlock.Render(body.String()))
	}
	sb.WriteString(strings.Join(cards, "\n"))
	return sb.String()
}

// --- Export serializations ---

// CopyText serializes [headers, rows...] as tab-separated values joined
// by newlines, the form expected by spreadsheet paste targets.
func (m Model) CopyText() string {
	columns := m.columnCount()
	lines := make([]string, 0, len(m.Rows)+1)
	if len(m.Headers) > 0 {
		lines = append(lines, strings.Join(m.Headers, "\t"))
	}
	for _, row := range m.Rows {
		cells := make([]string, columns)
		for i := range cells {
			cells[i] = cell(row, i)
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return strings.Join(lines, "\n")
}

// CSVFileName is the export file name carrying the instance id.
func (m Model) CSVFileName() string {
	return "table-" + m.ID + ".csv"
}
