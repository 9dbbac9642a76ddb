// Package driven declares what the core needs from the outside world.
//
// SearchBackend, ConfigStore and Environment are always supplied.
// HistoryStore and URLOpener may be nil, in which case nothing is recorded
// and submissions only navigate. Navigator is provided per request by the
// front end that owns the location (the TUI router or a web request).
//
// Only domain may be imported from here.
package driven
