// Package faceted keeps the results page in sync with its URL.
//
// The URL is the single source of truth: State is parsed from the query
// string on every navigation, every user action computes the next State and
// pushes its encoding, and the resulting navigation triggers the next fetch.
// Reloading or sharing a URL therefore reproduces the same results view.
//
// URL surface: query, page, sort, and any number of f.<key>=<value> pairs.
// Backend surface: q, page, sort, and one <key>=<value> per filter.
package faceted
