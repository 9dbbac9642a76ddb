package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Short key", input: "abc123", expected: "****"},
		{name: "Exactly 8 chars", input: "12345678", expected: "****"},
		{name: "Long key", input: "tok-1234567890abcdef", expected: "tok-...cdef"},
		{name: "Empty key", input: "", expected: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "Empty uses default", input: "", maxVal: 2, defaultVal: 1, expected: 1},
		{name: "Valid choice", input: "2", maxVal: 2, defaultVal: 1, expected: 2},
		{name: "Too large", input: "3", maxVal: 2, defaultVal: 1, expected: 1},
		{name: "Zero", input: "0", maxVal: 2, defaultVal: 1, expected: 1},
		{name: "Not a number", input: "abc", maxVal: 2, defaultVal: 1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestConfigCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range configCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set", "keys", "path", "init"}, names)
}

func TestConfigShowCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.Backend.APIToken = "secret-token-value"
	ts.settings.settings.Backend.Parameters = map[string]string{"site": "docs"}

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Endpoint: https://search.example.com/api")
	assert.Contains(t, out, "Suggest endpoint: (not set)")
	assert.Contains(t, out, "API token: secr...alue")
	assert.NotContains(t, out, "secret-token-value")
	assert.Contains(t, out, "site = docs")
	assert.Contains(t, out, "Widget lists: documents")
	assert.Contains(t, out, "Debounce: 300ms")
	assert.Contains(t, out, "Facet visible limit: 5")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestConfigShowCmd_InvalidWarns(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.Backend.Endpoint = ""

	out, err := execute(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "qsc config init")
}

func TestConfigSetCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "set", "widget.debounce", "250ms")

	require.NoError(t, err)
	assert.Equal(t, "250ms", ts.settings.set["widget.debounce"])
	assert.Contains(t, out, "Set widget.debounce")
}

func TestConfigSetCmd_RequiresTwoArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "config", "set", "widget.debounce")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestConfigSetCmd_Rejected(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.setErr = domain.ErrInvalidInput

	_, err := execute(t, "config", "set", "nope", "1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigKeysAndPath(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "config", "keys")
	require.NoError(t, err)
	assert.Equal(t, "backend.endpoint\nwidget.debounce\n", out)

	out, err = execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/qsc/config.toml\n", out)
}

func TestConfigCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(&Services{})
	defer SetServices(nil)

	for _, args := range [][]string{{"config", "show"}, {"config", "keys"}, {"config", "path"}, {"config", "set", "a", "b"}} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, ErrSettingsNotConfigured, "args %v", args)
	}
}

func TestConfigInitCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	input := "https://api.example.com/search\n" + // endpoint
		"\n" + // keep result key
		"https://api.example.com/suggest\n" +
		"tok-abcdef123456\n" +
		"2\n"

	out, err := executeWithInput(t, input, "config", "init")

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/search", ts.settings.set["backend.endpoint"])
	_, resultKeySet := ts.settings.set["backend.result_key"]
	assert.False(t, resultKeySet, "blank answers keep the current value")
	assert.Equal(t, "https://api.example.com/suggest", ts.settings.set["backend.suggest_endpoint"])
	assert.Equal(t, "tok-abcdef123456", ts.settings.set["backend.api_token"])
	assert.Equal(t, "results", ts.settings.set["widget.submit_policy"])
	assert.Contains(t, out, "Result key [docs]: ")
	assert.Contains(t, out, "Saved to /tmp/qsc/config.toml")
}

func TestConfigInitCmd_DefaultsOnEmptyInput(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := executeWithInput(t, "", "config", "init")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"widget.submit_policy": "direct"}, ts.settings.set)
}

func TestConfigInitCmd_SetFailure(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.setErr = errors.New("read-only file")

	_, err := executeWithInput(t, "https://api.example.com\n", "config", "init")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.endpoint")
}
