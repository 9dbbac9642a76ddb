package driven

// Environment reports what the running process may touch.
// When Interactive is false (static pre-rendering, piped output) no network
// request and no window or browser access may be attempted.
type Environment interface {
	// Interactive reports whether network and window access are allowed.
	Interactive() bool
}

// URLOpener opens a URL outside the application, e.g. in the default browser.
type URLOpener interface {
	// Open opens the URL.
	Open(rawURL string) error

	// Copy places text on the system clipboard.
	Copy(text string) error
}
