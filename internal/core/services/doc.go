// Package services holds the qsc use cases behind the driving ports:
// fetching candidates and result pages, resolving suggestions, recording
// history, opening results and editing settings.
//
// Services reach the network only through driven.SearchBackend and check
// driven.Environment before doing so.
package services
