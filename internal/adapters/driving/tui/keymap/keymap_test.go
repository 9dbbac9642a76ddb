package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.Up.Keys(), "up")
	assert.Contains(t, km.Down.Keys(), "down")
	assert.Contains(t, km.Submit.Keys(), "enter")
	assert.Contains(t, km.Toggle.Keys(), " ")
	assert.Contains(t, km.NextPage.Keys(), "right")
	assert.Contains(t, km.PrevPage.Keys(), "left")
}

func TestDefaultKeyMap_QuitIsNotTypeable(t *testing.T) {
	km := DefaultKeyMap()

	// q must reach the query input.
	assert.False(t, Matches("q", km.Quit))
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.WidgetHelp())
	assert.NotEmpty(t, km.ResultsHelp())
	full := km.FullHelp()
	require.Len(t, full, 4)
	for _, group := range full {
		for _, b := range group {
			assert.NotEmpty(t, b.Help().Key)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		keyStr  string
		binding key.Binding
		want    bool
	}{
		{"match", "enter", key.NewBinding(key.WithKeys("enter")), true},
		{"second key", "j", key.NewBinding(key.WithKeys("down", "j")), true},
		{"no match", "x", key.NewBinding(key.WithKeys("enter")), false},
		{"empty binding", "x", key.NewBinding(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.keyStr, tt.binding))
		})
	}
}
