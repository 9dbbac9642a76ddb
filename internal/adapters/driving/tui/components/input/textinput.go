// Package input provides the query box shared by the widget and the
// results page.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/styles"
)

// CharLimit caps the query length.
const CharLimit = 256

// minFieldWidth keeps the box usable on very narrow terminals.
const minFieldWidth = 20

// Box is a bordered single-line query field with an optional label.
type Box struct {
	field  textinput.Model
	styles *styles.Styles
	label  string
	width  int
}

// Option configures a Box.
type Option func(*Box)

// WithLabel renders label to the left of the border.
func WithLabel(label string) Option {
	return func(b *Box) { b.label = label }
}

// WithPlaceholder sets the text shown while the box is empty.
func WithPlaceholder(text string) Option {
	return func(b *Box) { b.field.Placeholder = text }
}

// New returns a focused, empty box.
func New(s *styles.Styles, opts ...Option) *Box {
	if s == nil {
		s = styles.Default()
	}
	field := textinput.New()
	field.Prompt = "⌕ "
	field.CharLimit = CharLimit
	field.Placeholder = "Search…"
	field.Focus()

	b := &Box{field: field, styles: s}
	for _, opt := range opts {
		opt(b)
	}
	b.SetWidth(60)
	return b
}

// Init starts the cursor blinking.
func (b *Box) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the field and reports whether the text changed,
// so callers only restart the debounce on edits, not cursor moves.
func (b *Box) Update(msg tea.Msg) (tea.Cmd, bool) {
	before := b.field.Value()
	var cmd tea.Cmd
	b.field, cmd = b.field.Update(msg)
	return cmd, b.field.Value() != before
}

func (b *Box) View() string {
	box := b.styles.InputField.Render(b.field.View())
	if b.label == "" {
		return box
	}
	//nolint:misspell // lipgloss.Center is the library's spelling
	return lipgloss.JoinHorizontal(lipgloss.Center, b.styles.Title.Render(b.label), box)
}

// Height is the number of rows View occupies, border included.
func (b *Box) Height() int {
	return lipgloss.Height(b.View())
}

func (b *Box) Value() string {
	return b.field.Value()
}

// SetValue replaces the text and puts the cursor at the end, as after
// navigating to a results location.
func (b *Box) SetValue(value string) {
	b.field.SetValue(value)
	b.field.CursorEnd()
}

func (b *Box) Focus() tea.Cmd { return b.field.Focus() }
func (b *Box) Blur()          { b.field.Blur() }
func (b *Box) Focused() bool  { return b.field.Focused() }
func (b *Box) Reset()         { b.field.Reset() }

// SetWidth sizes the whole box; the label and border come out of width.
func (b *Box) SetWidth(width int) {
	b.width = width
	b.field.Width = max(minFieldWidth, width-lipgloss.Width(b.label)-6)
}

func (b *Box) Width() int {
	return b.width
}
