// Package domain defines the values the search client passes between layers.
//
// Documents and facets arrive from the backend as Hit and ResultPage; the
// live dropdown shows Candidates; Settings carries the widget and page
// options; QueryRecord is one line of local history. The errors here are
// the sentinels every layer wraps.
//
// domain imports only the standard library.
package domain
