package system

import (
	"os"

	"golang.org/x/term"

	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
)

// EnvNonInteractive forces non-interactive mode when set to any non-empty value.
const EnvNonInteractive = "QSC_NONINTERACTIVE"

// Environment is a fixed capability answer.
type Environment struct {
	interactive bool
}

var _ driven.Environment = Environment{}

// NewEnvironment returns an environment with a fixed answer.
func NewEnvironment(interactive bool) Environment {
	return Environment{interactive: interactive}
}

// DetectEnvironment is interactive unless QSC_NONINTERACTIVE is set.
// Scripts and sandboxes set it to keep the process off the network.
func DetectEnvironment() Environment {
	return Environment{interactive: os.Getenv(EnvNonInteractive) == ""}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Interactive reports whether network and window access are allowed.
func (e Environment) Interactive() bool {
	return e.interactive
}
