package cli

import "errors"

// Errors returned when a command runs without the services it needs.
var (
	ErrSearchNotConfigured   = errors.New("search service not configured")
	ErrHistoryNotConfigured  = errors.New("history service not configured")
	ErrSettingsNotConfigured = errors.New("settings service not configured")
	ErrActionsNotConfigured  = errors.New("result action service not configured")
	ErrNotTerminal           = errors.New("the interactive interface needs a terminal")
)
