package system

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/qsc-search/internal/core/ports/driven"
)

const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Opener opens URLs with the platform's default handler.
type Opener struct {
	goos  string
	start func(name string, args ...string) error
	copy  func(text string) error
}

var _ driven.URLOpener = (*Opener)(nil)

// NewOpener creates an opener for the running platform.
func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
		copy: clipboard.WriteAll,
	}
}

// Open opens rawURL in the default browser without waiting for it.
func (o *Opener) Open(rawURL string) error {
	var (
		name string
		args []string
	)
	switch o.goos {
	case osDarwin:
		name, args = "open", []string{rawURL}
	case osLinux:
		name, args = "xdg-open", []string{rawURL}
	case osWindows:
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return fmt.Errorf("unsupported platform: %s", o.goos)
	}
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", rawURL, err)
	}
	return nil
}

// Copy places text on the system clipboard.
func (o *Opener) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	return o.copy(text)
}
