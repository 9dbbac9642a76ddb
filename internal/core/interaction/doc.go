// Package interaction holds the state machines behind the live search widget:
// fetch epochs, selection and dropdown visibility, composed by Controller.
//
// Everything here is single-threaded and free of I/O. The caller owns the
// event loop: it feeds user events and fetch completions in, and performs
// the returned FetchRequest and Action values itself. This keeps every
// transition testable without a terminal, a browser or a network.
package interaction
