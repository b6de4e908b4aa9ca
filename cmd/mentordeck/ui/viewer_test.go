package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentordeck/internal/schema"
	"mentordeck/internal/table"
)

type fakeClipboard struct {
	text string
	fail bool
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.fail {
		return assert.AnError
	}
	c.text = text
	return nil
}

type fakeSaver struct {
	name string
	data []byte
}

func (s *fakeSaver) Save(name string, data []byte) (string, error) {
	s.name = name
	s.data = data
	return "/exports/" + name, nil
}

func testDoc() *schema.Document {
	return &schema.Document{
		Title: "Capacity",
		Blocks: []schema.Block{
			{Type: schema.BlockMarkdown, Content: "Two options."},
			{
				Type:    schema.BlockTable,
				Caption: "Options",
				Headers: []string{"Option", "Cost"},
				Rows:    [][]string{{"Vertical", "10"}, {"Horizontal", "25"}},
			},
		},
		Meta: schema.Meta{
			Schema: schema.SchemaV2,
			SuggestedActions: []schema.SuggestedAction{
				{Label: "Show YAML", Payload: "show the yaml"},
			},
		},
	}
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func TestViewer_RendersAfterWindowSize(t *testing.T) {
	m := sized(New(testDoc(), Options{}))

	require.True(t, m.ready)
	// The viewer always renders styled, so wrapped prose carries escape
	// sequences mid-line; strip them before matching text.
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Capacity")
	assert.Contains(t, view, "Two options.")
	assert.Contains(t, view, "q quit")
}

func TestViewer_QuitKeys(t *testing.T) {
	m := sized(New(testDoc(), Options{}))

	for _, key := range []string{"q", "ctrl+c", "esc"} {
		_, cmd := m.Update(keyMsg(key))
		require.NotNil(t, cmd, "key %q", key)
		assert.Equal(t, tea.QuitMsg{}, cmd(), "key %q", key)
	}
}

func TestViewer_TabSelectsTable(t *testing.T) {
	m := sized(New(testDoc(), Options{}))

	updated, _ := m.Update(keyMsg("tab"))
	m = updated.(Model)
	assert.Contains(t, m.status, "table 1/1")
	assert.Contains(t, m.status, "Options")
}

// runKey dispatches a key and, when it produces a command, feeds the
// command's message back through Update the way the tea runtime would.
func runKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	updated, cmd := m.Update(keyMsg(key))
	m = updated.(Model)
	if cmd != nil {
		updated, _ = m.Update(cmd())
		m = updated.(Model)
	}
	return m
}

func TestViewer_CopyPutsTSVOnClipboard(t *testing.T) {
	m := sized(New(testDoc(), Options{}))
	clip := &fakeClipboard{}
	m.exporter = table.Exporter{Clipboard: clip, Bus: m.bus}

	m = runKey(t, m, "c")

	assert.Equal(t, "table copied to clipboard", m.status)
	assert.Contains(t, clip.text, "Option\tCost")
	assert.Contains(t, clip.text, "Vertical\t10")
}

func TestViewer_CopyFailureIsContained(t *testing.T) {
	m := sized(New(testDoc(), Options{}))
	m.exporter = table.Exporter{Clipboard: &fakeClipboard{fail: true}, Bus: m.bus}

	m = runKey(t, m, "c")
	assert.Contains(t, m.status, "copy failed")
}

func TestViewer_ExportReportsPath(t *testing.T) {
	m := sized(New(testDoc(), Options{}))
	saver := &fakeSaver{}
	m.exporter = table.Exporter{Saver: saver, Bus: m.bus}

	m = runKey(t, m, "e")

	assert.Contains(t, m.status, "exported /exports/table-")
	assert.Contains(t, string(saver.data), "Option,Cost")
}

func TestViewer_NumberKeyActivatesAction(t *testing.T) {
	m := sized(New(testDoc(), Options{}))

	updated, _ := m.Update(keyMsg("1"))
	m = updated.(Model)
	assert.Equal(t, "follow-up: Show YAML", m.status)

	// Out of range does nothing.
	updated, _ = m.Update(keyMsg("9"))
	m = updated.(Model)
	assert.Equal(t, "follow-up: Show YAML", m.status)
}

func TestViewer_NoTablesKeysAreNoOps(t *testing.T) {
	doc := &schema.Document{
		Blocks: []schema.Block{{Type: schema.BlockMarkdown, Content: "prose only"}},
		Meta:   schema.Meta{Schema: schema.SchemaV2},
	}
	m := sized(New(doc, Options{}))

	for _, key := range []string{"c", "e", "tab"} {
		updated, _ := m.Update(keyMsg(key))
		m = updated.(Model)
	}
	assert.Empty(t, m.status)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
