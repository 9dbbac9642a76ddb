// Package sqlite stores the local query history in ~/.qsc/data/history.db
// using the pure Go modernc.org/sqlite driver.
//
// The schema is created by the numbered files under migrations/, applied in
// order and tracked in schema_migrations. The database runs in WAL mode so
// the TUI and a concurrent `qsc history` can share it.
package sqlite
