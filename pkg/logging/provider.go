package logging

// Provider constructs named loggers for one concrete backend.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name identifies the backend, e.g. "zerolog".
	Name() string

	// NewLogger returns a logger with the given name. Must not fail;
	// backends whose sinks can fail verify them at construction time
	// instead (see Candidate).
	NewLogger(name string) Logger
}

// Candidate is one entry in the ordered backend candidate list.
// New either returns a working provider or an error; an error (including
// a failed probe of the backend's sink) means the resolver advances to
// the next candidate.
type Candidate struct {
	Name string
	New  func() (Provider, error)
}
