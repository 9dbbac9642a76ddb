package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qsc-search/internal/logger"
)

func TestTUICmd_Exists(t *testing.T) {
	var found bool
	for _, c := range rootCmd.Commands() {
		if c.Name() == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "Controls:")
	assert.Contains(t, tuiCmd.Long, "Toggle the highlighted facet value")
}

func TestTUICmd_LocationFlag(t *testing.T) {
	flag := tuiCmd.Flags().Lookup("location")
	require.NotNil(t, flag)
	assert.Equal(t, "/", flag.DefValue)
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	original := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = original }()

	_, err := execute(t, "tui")

	assert.ErrorIs(t, err, ErrNotTerminal)
}

func TestTUICmd_MissingServices(t *testing.T) {
	SetServices(&Services{})
	defer SetServices(nil)

	original := isTerminal
	isTerminal = func() bool { return true }
	defer func() { isTerminal = original }()

	_, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}

func TestRedirectLog(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	dir := t.TempDir()
	ts.settings.path = filepath.Join(dir, "config.toml")

	logger.SetVerbose(true)
	defer logger.SetVerbose(false)

	restore := redirectLog()
	logger.Info("hello from the tui")
	restore()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the tui")
}

func TestRedirectLog_NoSettings(t *testing.T) {
	SetServices(nil)

	restore := redirectLog()
	assert.NotNil(t, restore)
	restore()
}
