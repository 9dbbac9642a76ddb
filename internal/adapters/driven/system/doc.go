// Package system adapts the host operating system: terminal detection for
// driven.Environment and the default browser and clipboard for driven.URLOpener.
package system
