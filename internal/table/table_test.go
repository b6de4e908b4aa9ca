package table

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AssignsUniqueIDs(t *testing.T) {
	a := New("", []string{"H"}, nil)
	b := New("", []string{"H"}, nil)
	require.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRender_GridHeadersAndRows(t *testing.T) {
	m := New("Latency", []string{"Region", "P99"}, [][]string{
		{"eu-west", "120ms"},
		{"us-east", "80ms"},
	})

	out := m.Render(100, DefaultStyles())
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)

	assert.Contains(t, lines[0], "Latency")
	assert.Contains(t, lines[1], "Region")
	assert.Contains(t, lines[1], "P99")
	assert.Contains(t, lines[2], "─")
	assert.Contains(t, lines[3], "eu-west")
	assert.Contains(t, lines[4], "us-east")
}

func TestRender_ShortRowsPadWithEmptyCells(t *testing.T) {
	m := New("", []string{"A", "B", "C"}, [][]string{{"only"}})

	var out string
	require.NotPanics(t, func() {
		out = m.Render(100, DefaultStyles())
	})
	assert.Contains(t, out, "only")
}

func TestRender_HeaderlessRowsAreNotDropped(t *testing.T) {
	m := New("", nil, [][]string{
		{"eu-west", "120ms"},
		{"us-east", "80ms"},
	})

	grid := m.Render(100, DefaultStyles())
	assert.Contains(t, grid, "eu-west")
	assert.Contains(t, grid, "us-east")
	assert.NotContains(t, grid, "─", "no header rule without headers")

	cards := m.Render(40, DefaultStyles())
	assert.Contains(t, ansi.Strip(cards), "eu-west")
	assert.Contains(t, ansi.Strip(cards), "80ms")
}

func TestCopyText_HeaderlessRows(t *testing.T) {
	m := New("", nil, [][]string{{"a", "b"}})
	assert.Equal(t, "a\tb", m.CopyText())
}

func TestCSV_HeaderlessRows(t *testing.T) {
	m := New("", nil, [][]string{{"1", "2"}})
	assert.Equal(t, "1,2\n", string(m.CSV()))
}

func TestRender_EmptyRowsShowNoDataRow(t *testing.T) {
	m := New("", []string{"A", "B"}, nil)

	wide := m.Render(100, DefaultStyles())
	assert.Contains(t, wide, "No data available")

	narrow := m.Render(40, DefaultStyles())
	assert.Contains(t, narrow, "No data available")
}

func TestRender_NarrowWidthRendersOneCardPerRow(t *testing.T) {
	m := New("", []string{"Name", "Role"}, [][]string{
		{"Ada", "Engineer"},
		{"Grace", "Admiral"},
	})

	out := m.Render(40, DefaultStyles())

	// One card per row, full substitution for the grid: the header text
	// appears per card as a label, never as a grid header row.
	assert.Equal(t, 2, strings.Count(out, "Name:"))
	assert.Equal(t, 2, strings.Count(out, "Role:"))

	// Header/value pairs appear in header order inside each card.
	nameIdx := strings.Index(out, "Name:")
	roleIdx := strings.Index(out, "Role:")
	require.GreaterOrEqual(t, nameIdx, 0)
	require.GreaterOrEqual(t, roleIdx, 0)
	assert.Less(t, nameIdx, roleIdx)
}

func TestRender_OverflowTruncatesWithEllipsis(t *testing.T) {
	long := strings.Repeat("verylongcell ", 12)
	m := New("", []string{"A", "B"}, [][]string{{long, long}})

	out := m.Render(80, DefaultStyles())
	assert.Contains(t, out, "…")
	for _, line := range strings.Split(out, "\n") {
		plain := ansi.Strip(line)
		assert.LessOrEqual(t, len([]rune(plain)), 82, "line overflows render width: %q", plain)
	}
}

func TestCopyText_TabSeparated(t *testing.T) {
	m := New("", []string{"H1", "H2"}, [][]string{{"a", "b"}})
	assert.Equal(t, "H1\tH2\na\tb", m.CopyText())
}

func TestCopyText_PadsShortRows(t *testing.T) {
	m := New("", []string{"H1", "H2"}, [][]string{{"a"}})
	assert.Equal(t, "H1\tH2\na\t", m.CopyText())
}

func TestCSV_RFC4180Quoting(t *testing.T) {
	m := New("", []string{"A,B", "C"}, [][]string{{"1", `"q"`}})

	lines := strings.Split(strings.TrimRight(string(m.CSV()), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"A,B",C`, lines[0])
	assert.Equal(t, `1,"""q"""`, lines[1])
}

func TestCSV_NewlineInField(t *testing.T) {
	m := New("", []string{"Note"}, [][]string{{"line1\nline2"}})
	assert.Equal(t, "Note\n\"line1\nline2\"\n", string(m.CSV()))
}

func TestCSVFileName_CarriesInstanceID(t *testing.T) {
	m := New("", []string{"A"}, nil)
	assert.Equal(t, "table-"+m.ID+".csv", m.CSVFileName())
}
