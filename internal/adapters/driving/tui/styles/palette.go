// Package styles holds the lipgloss palette and styles shared by the TUI
// components and views.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette assigns a colour to each role the search UI draws.
type Palette struct {
	Accent lipgloss.Color // brand, titles, selected rows
	Facet  lipgloss.Color // facet headings and links
	Match  lipgloss.Color // highlighted query terms
	Text   lipgloss.Color
	Faint  lipgloss.Color // summaries, hints, descriptions
	Rule   lipgloss.Color // borders and disabled controls
	Alert  lipgloss.Color
	Panel  lipgloss.Color // status bar background
}

// DefaultPalette is tuned for dark terminals.
func DefaultPalette() Palette {
	return Palette{
		Accent: lipgloss.Color("#2563EB"),
		Facet:  lipgloss.Color("#14B8A6"),
		Match:  lipgloss.Color("#F9E2AF"),
		Text:   lipgloss.Color("#CDD6F4"),
		Faint:  lipgloss.Color("#6C7086"),
		Rule:   lipgloss.Color("#45475A"),
		Alert:  lipgloss.Color("#F38BA8"),
		Panel:  lipgloss.Color("#181825"),
	}
}

// LightPalette is used when the terminal reports a light background.
func LightPalette() Palette {
	return Palette{
		Accent: lipgloss.Color("#1D4ED8"),
		Facet:  lipgloss.Color("#0F766E"),
		Match:  lipgloss.Color("#B45309"),
		Text:   lipgloss.Color("#1F2937"),
		Faint:  lipgloss.Color("#6B7280"),
		Rule:   lipgloss.Color("#D1D5DB"),
		Alert:  lipgloss.Color("#B91C1C"),
		Panel:  lipgloss.Color("#F3F4F6"),
	}
}

// Styles are the rendered forms of a Palette.
type Styles struct {
	palette Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style // results summary line
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Highlight wraps matched runs inside candidate and result text.
	Highlight lipgloss.Style
	// Dropdown frames the candidate list under the input.
	Dropdown lipgloss.Style
	Facet    lipgloss.Style
	// Disabled is for pagination controls that cannot be followed.
	Disabled lipgloss.Style
	Link     lipgloss.Style
}

// New renders a palette into styles.
func New(p Palette) *Styles {
	return &Styles{
		palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.Facet),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Faint),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Accent),
		Error:    lipgloss.NewStyle().Foreground(p.Alert),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Rule).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Faint).
			Background(p.Panel).
			Padding(0, 1),

		Highlight: lipgloss.NewStyle().Bold(true).Foreground(p.Match),
		Dropdown: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(false).
			BorderForeground(p.Rule).
			Padding(0, 1),
		Facet:    lipgloss.NewStyle().Bold(true).Foreground(p.Facet),
		Disabled: lipgloss.NewStyle().Foreground(p.Rule),
		Link:     lipgloss.NewStyle().Underline(true).Foreground(p.Facet),
	}
}

// Default picks the palette matching the terminal background.
func Default() *Styles {
	if lipgloss.HasDarkBackground() {
		return New(DefaultPalette())
	}
	return New(LightPalette())
}

// Mark renders one highlighted run; it has the func(string) string shape
// highlight.Render expects, which the variadic Style.Render does not.
func (s *Styles) Mark(text string) string {
	return s.Highlight.Render(text)
}

// Palette returns the colours these styles were built from.
func (s *Styles) Palette() Palette {
	return s.palette
}
