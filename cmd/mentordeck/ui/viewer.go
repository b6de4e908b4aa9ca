// Package ui is the interactive full-screen viewer: a scrolling
// viewport over one rendered answer, with key-driven table copy/export
// and suggested-action activation.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mentordeck/internal/events"
	"mentordeck/internal/logging"
	"mentordeck/internal/platform"
	"mentordeck/internal/render"
	"mentordeck/internal/schema"
	"mentordeck/internal/table"
)

// Options configures the viewer.
type Options struct {
	Theme      string
	Breakpoint int
	Zebra      bool
	ExportDir  string
	Log        *zap.Logger
}

// Model is the bubbletea model for the viewer.
type Model struct {
	doc  *schema.Document
	opts Options

	bus      *events.Bus
	exporter table.Exporter
	actions  render.ActionDispatcher

	viewport viewport.Model
	result   render.Result
	selected int
	status   string
	ready    bool
	width    int
	height   int
}

// New builds a viewer for one normalized document.
func New(doc *schema.Document, opts Options) Model {
	bus := events.NewBus(16)
	return Model{
		doc:  doc,
		opts: opts,
		bus:  bus,
		exporter: table.Exporter{
			Clipboard: platform.SystemClipboard{},
			Saver:     platform.DirSaver{Dir: opts.ExportDir},
			Bus:       bus,
			Log:       opts.Log,
		},
		actions: render.ActionDispatcher{Bus: bus, Log: opts.Log},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			if n := len(m.result.Tables); n > 0 {
				m.selected = (m.selected + 1) % n
				m.status = fmt.Sprintf("table %d/%d: %s",
					m.selected+1, n, m.tableName(m.result.Tables[m.selected]))
			}
			return m, nil

		case "c":
			if t, ok := m.currentTable(); ok {
				return m, m.copyCmd(t)
			}
			return m, nil

		case "e":
			if t, ok := m.currentTable(); ok {
				return m, m.exportCmd(t)
			}
			return m, nil

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			index := int(key[0] - '1')
			actions := m.doc.Meta.SuggestedActions
			if m.actions.Activate(actions, index) {
				m.status = "follow-up: " + actions[index].Label
				m.drainEvents()
			}
			return m, nil
		}

	case actionDoneMsg:
		m.status = msg.status
		m.drainEvents()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - footerHeight
		}
		m.rerender()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.viewport.View() + "\n" + m.footer()
}

// actionDoneMsg carries a platform action's outcome back to Update.
type actionDoneMsg struct {
	status string
}

// copyCmd and exportCmd run the platform actions off the update loop so
// a slow clipboard or disk never stalls scrolling.
func (m Model) copyCmd(t table.Model) tea.Cmd {
	return func() tea.Msg {
		if m.exporter.Copy(t) {
			return actionDoneMsg{status: "table copied to clipboard"}
		}
		return actionDoneMsg{status: "copy failed (no clipboard available)"}
	}
}

func (m Model) exportCmd(t table.Model) tea.Cmd {
	return func() tea.Msg {
		if path, ok := m.exporter.ExportCSV(t); ok {
			return actionDoneMsg{status: "exported " + path}
		}
		return actionDoneMsg{status: "export failed"}
	}
}

// rerender re-runs the document through the renderer at the current
// width and loads the result into the viewport.
func (m *Model) rerender() {
	styles := render.NewStyles(render.PickTheme(m.opts.Theme), os.Stdout, true)
	r := &render.Renderer{
		Styles:     styles,
		Width:      m.width - 2,
		Breakpoint: m.opts.Breakpoint,
		Zebra:      m.opts.Zebra,
		Bus:        m.bus,
		Log:        m.opts.Log,
	}
	m.result = r.Document(m.doc)
	if m.selected >= len(m.result.Tables) {
		m.selected = 0
	}
	m.viewport.SetContent(m.result.Text)
}

func (m Model) currentTable() (table.Model, bool) {
	if len(m.result.Tables) == 0 {
		return table.Model{}, false
	}
	if m.selected < 0 || m.selected >= len(m.result.Tables) {
		return m.result.Tables[0], true
	}
	return m.result.Tables[m.selected], true
}

func (m Model) tableName(t table.Model) string {
	if t.Caption != "" {
		return t.Caption
	}
	return t.ID
}

// drainEvents forwards the outbound interaction events to the log. The
// viewer is its own host, so the log is where the event stream lands.
func (m Model) drainEvents() {
	log := logging.OrNop(m.opts.Log)
	for _, e := range m.bus.Drain() {
		log.Info("interaction event",
			zap.String("kind", string(e.Kind)),
			zap.String("table_id", e.TableID),
			zap.String("label", e.Label),
			zap.String("payload", e.Payload),
			zap.String("path", e.Path),
		)
	}
}

func (m Model) footer() string {
	status := m.status
	if status == "" {
		if n := len(m.result.Tables); n > 0 {
			status = fmt.Sprintf("%d table(s); tab selects, c copies, e exports", n)
		} else {
			status = "scroll with arrows or page keys"
		}
	}
	help := "c copy table | e export csv | tab next table | 1-9 follow-up | q quit"
	return status + "\n" + help
}
