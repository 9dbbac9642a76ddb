// Package qsc implements driven.SearchBackend over HTTP for QSC-style
// search endpoints.
//
// Results endpoint response:
//
//	{"result": {"<resultKey>": {"documents": [...], "facets": [...],
//	  "paging": {...}, "sort": {"sort": [...]}, "total": N}}}
//
// Suggestion endpoint response: a top-level array of {"suggest": "..."}.
//
// Every failure is a *domain.FetchError whose kind is one of
// domain.ErrNetworkFailure, domain.ErrBadResponse or domain.ErrMalformedBody.
package qsc
