// Package logging provides the minimal logging capability the rest of the
// module consumes, and the process-wide resolution of which concrete
// backend provides it.
//
// Components obtain a named Logger through GetLogger. The first call, from
// whichever goroutine gets there first, resolves the active backend by
// trying an ordered list of candidates and memoizing the winner; every
// later call reads the memoized backend without locking.
//
// # Choosing a backend
//
// By default the resolver prefers a zerolog console backend and falls back
// to a plain text writer that is always available. Applications that want
// a specific backend set it before any logging occurs:
//
//	logging.SetProvider(logging.NewSlogProvider(slog.Default()))
//
// Setting a provider after the first GetLogger call has no effect on
// loggers that were already handed out and returns ErrAlreadyResolved:
// set it first, once, before any logging occurs.
//
// # Capture files
//
// CaptureProvider writes CBOR-encoded records to a file for later
// inspection; ReadRecords reads them back with optional filtering.
package logging
