package driven

import "net/url"

// Navigator is the client-side navigation primitive.
// It replaces direct access to a global location: the current URL is read
// through Location and changed through Push, which never reloads anything
// and lets observers re-derive their state from the new location.
type Navigator interface {
	// Location returns a copy of the current URL.
	Location() *url.URL

	// Push makes u the current location and records it in history.
	Push(u *url.URL) error
}
