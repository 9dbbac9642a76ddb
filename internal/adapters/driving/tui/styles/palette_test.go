package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPalettes_RolesDistinct(t *testing.T) {
	for name, p := range map[string]Palette{
		"dark":  DefaultPalette(),
		"light": LightPalette(),
	} {
		t.Run(name, func(t *testing.T) {
			roles := []lipgloss.Color{p.Accent, p.Facet, p.Match, p.Text, p.Faint, p.Rule, p.Alert, p.Panel}
			seen := make(map[lipgloss.Color]bool)
			for _, c := range roles {
				require.NotEmpty(t, string(c))
				assert.False(t, seen[c], "colour %s used for two roles", c)
				seen[c] = true
			}
		})
	}
}

func TestNew_KeepsPalette(t *testing.T) {
	p := LightPalette()
	s := New(p)

	assert.Equal(t, p, s.Palette())
}

func TestDefault_UsesKnownPalette(t *testing.T) {
	got := Default().Palette()

	assert.Contains(t, []Palette{DefaultPalette(), LightPalette()}, got)
}

func TestStyles_MatchAndLinkDiffer(t *testing.T) {
	s := New(DefaultPalette())

	assert.NotEqual(t, s.Highlight.GetForeground(), s.Link.GetForeground())
	assert.True(t, s.Highlight.GetBold())
	assert.True(t, s.Link.GetUnderline())
}

func TestStyles_DisabledUsesRule(t *testing.T) {
	p := DefaultPalette()
	s := New(p)

	assert.Equal(t, lipgloss.TerminalColor(p.Rule), s.Disabled.GetForeground())
}

func TestStyles_RenderPlainText(t *testing.T) {
	s := New(DefaultPalette())

	for name, st := range map[string]lipgloss.Style{
		"title":     s.Title,
		"highlight": s.Highlight,
		"facet":     s.Facet,
		"link":      s.Link,
	} {
		assert.Contains(t, st.Render("go"), "go", name)
	}
}

func TestStyles_MarkFeedsHighlightRender(t *testing.T) {
	s := New(DefaultPalette())

	var wrap func(string) string = s.Mark
	assert.Contains(t, wrap("api"), "api")
	assert.Equal(t, s.Highlight.Render("api"), s.Mark("api"))
}
