package render

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"mentordeck/internal/table"
)

// Theme holds the color scheme for rendered documents.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	Error      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light color scheme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Primary:    lipgloss.Color("#101F38"),
		Accent:     lipgloss.Color("#8BC34A"),
		Muted:      lipgloss.Color("#6b7686"),
		Border:     lipgloss.Color("#dce0e5"),
		Card:       lipgloss.Color("#ffffff"),
		Error:      lipgloss.Color("#e53935"),
	}
}

// DarkTheme returns the dark color scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#8BC34A"),
		Accent:     lipgloss.Color("#8BC34A"),
		Muted:      lipgloss.Color("#8a93a5"),
		Border:     lipgloss.Color("#2a3850"),
		Card:       lipgloss.Color("#1a2536"),
		Error:      lipgloss.Color("#e53935"),
		IsDark:     true,
	}
}

// PickTheme maps a config theme name to a Theme. "auto" inspects the
// COLORFGBG convention and falls back to light.
func PickTheme(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	}
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
				if (bg >= 0 && bg <= 6) || bg == 8 {
					return DarkTheme()
				}
			}
		}
	}
	return LightTheme()
}

// Styles holds every style the document renderer uses. Styles are bound
// to a lipgloss renderer with an explicit color profile so output is
// deterministic: ANSI when styled, raw text when plain.
type Styles struct {
	Theme Theme

	lip *lipgloss.Renderer

	Title         lipgloss.Style
	Summary       lipgloss.Style
	Body          lipgloss.Style
	Muted         lipgloss.Style
	SectionHeader lipgloss.Style
	Callout       lipgloss.Style
	CodeBlock     lipgloss.Style
	ErrorCard     lipgloss.Style
	ActionKey     lipgloss.Style
	ActionLabel   lipgloss.Style
}

// NewStyles builds the style set against w. When styled is false the
// color profile is forced to Ascii, which strips color while keeping
// layout (borders, padding) intact. That is the non-TTY rendering mode.
func NewStyles(theme Theme, w io.Writer, styled bool) Styles {
	profile := termenv.Ascii
	if styled {
		profile = termenv.ANSI256
	}
	lip := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	lip.SetColorProfile(profile)

	return Styles{
		Theme: theme,
		lip:   lip,

		Title: lip.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Summary: lip.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lip.NewStyle().
			Foreground(theme.Foreground),

		Muted: lip.NewStyle().
			Foreground(theme.Muted),

		SectionHeader: lip.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Callout: lip.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		CodeBlock: lip.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		ErrorCard: lip.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Error).
			Padding(0, 1),

		ActionKey: lip.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		ActionLabel: lip.NewStyle().
			Foreground(theme.Foreground),
	}
}

// DefaultStyles returns plain-profile styles with the light theme,
// suitable for tests and non-TTY output.
func DefaultStyles() Styles {
	return NewStyles(LightTheme(), io.Discard, false)
}

// newStyle creates a style bound to the renderer's color profile.
func (s Styles) newStyle() lipgloss.Style {
	return s.lip.NewStyle()
}

// colorized reports whether this style set emits color at all. Plain
// output (Ascii profile) must stay free of escape sequences end to end,
// including paths that do not render through lipgloss.
func (s Styles) colorized() bool {
	return s.lip != nil && s.lip.ColorProfile() != termenv.Ascii
}

// tableStyles derives the table package's style set from this theme.
func (s Styles) tableStyles(zebra bool) table.Styles {
	ts := table.Styles{
		Caption:   s.newStyle().Foreground(s.Theme.Muted).Italic(true),
		Header:    s.newStyle().Foreground(s.Theme.Primary).Bold(true),
		Cell:      s.newStyle().Foreground(s.Theme.Foreground),
		ZebraCell: s.newStyle().Foreground(s.Theme.Foreground),
		Rule:      s.newStyle().Foreground(s.Theme.Border),
		Muted:     s.newStyle().Foreground(s.Theme.Muted),
		CardBlock: s.newStyle().Border(lipgloss.RoundedBorder()).BorderForeground(s.Theme.Border).Padding(0, 1),
		CardLabel: s.newStyle().Foreground(s.Theme.Primary).Bold(true),
	}
	if zebra {
		ts.ZebraCell = ts.ZebraCell.Background(s.Theme.Card)
	}
	return ts
}
