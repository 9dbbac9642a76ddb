// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/qsc-search/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	spinner  spinner.Model
	state    State
	message  string
	bindings []key.Binding
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, bindings []key.Binding) *Bar {
	if s == nil {
		s = styles.Default()
	}
	if bindings == nil {
		bindings = keymap.DefaultKeyMap().WidgetHelp()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = s.Muted

	return &Bar{
		styles:   s,
		spinner:  sp,
		state:    StateReady,
		bindings: bindings,
		width:    80,
	}
}

// Update advances the spinner while searching.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || s.state != StateSearching {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the status on the left and as many key hints as fit on the right.
func (s *Bar) View() string {
	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	left := s.renderLeft()
	right := s.renderHints(inner - lipgloss.Width(left) - 1)
	gap := max(1, inner-lipgloss.Width(left)-lipgloss.Width(right))
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		return s.spinner.View() + s.styles.Muted.Render(" Searching…")
	case StateError:
		msg := s.message
		if msg == "" {
			msg = "Error"
		}
		return s.styles.Error.Render(msg)
	case StateReady, StateResults:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
	}
	return s.styles.Muted.Render("Ready")
}

// renderHints drops trailing bindings until the hints fit in room columns.
func (s *Bar) renderHints(room int) string {
	hints := make([]string, 0, len(s.bindings))
	for _, b := range s.bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	for len(hints) > 0 && lipgloss.Width(strings.Join(hints, " | ")) > room {
		hints = hints[:len(hints)-1]
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state. Entering StateSearching returns the
// spinner's first tick.
func (s *Bar) SetState(state State) tea.Cmd {
	prev := s.state
	s.state = state
	if state == StateSearching && prev != StateSearching {
		return s.spinner.Tick
	}
	return nil
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
