package table

import "github.com/charmbracelet/lipgloss"

// Styles holds the visual treatment for both table presentations. The
// renderer derives these from its theme; DefaultStyles gives a usable
// standalone set.
type Styles struct {
	Caption   lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	ZebraCell lipgloss.Style
	Rule      lipgloss.Style
	Muted     lipgloss.Style
	CardBlock lipgloss.Style
	CardLabel lipgloss.Style
}

// DefaultStyles returns plain, theme-neutral table styles.
func DefaultStyles() Styles {
	return Styles{
		Caption:   lipgloss.NewStyle().Bold(true),
		Header:    lipgloss.NewStyle().Bold(true),
		Cell:      lipgloss.NewStyle(),
		ZebraCell: lipgloss.NewStyle().Faint(true),
		Rule:      lipgloss.NewStyle().Faint(true),
		Muted:     lipgloss.NewStyle().Faint(true),
		CardBlock: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		CardLabel: lipgloss.NewStyle().Bold(true),
	}
}
