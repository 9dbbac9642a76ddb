// Package logger provides verbose logging for qsc.
// When verbose mode is enabled via the --verbose flag, messages are written
// to stderr (or to ~/.qsc/qsc.log while the TUI owns the terminal) so users
// can follow the query pipeline: debounced queries, fetches, discarded
// responses and failures.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu         sync.RWMutex
	verbose    bool
	timestamps bool
	output     io.Writer = os.Stderr
	now                  = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetTimestamps prefixes every line with an RFC 3339 timestamp.
// Used when logging to a file.
func SetTimestamps(v bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = v
}

// write formats one line (caller must hold the read lock).
func write(level, format string, args ...any) {
	if !verbose {
		return
	}
	prefix := ""
	if timestamps {
		prefix = now().Format(time.RFC3339) + " "
	}
	fmt.Fprintf(output, prefix+level+" "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	write("[DEBUG]", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	write("[INFO]", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	write("[WARN]", format, args...)
}

// Failure records a failed operation together with its error kind,
// e.g. Failure("suggest", "network", err).
func Failure(op, kind string, err error) {
	mu.RLock()
	defer mu.RUnlock()
	write("[WARN]", "%s failed kind=%s: %v", op, kind, err)
}
