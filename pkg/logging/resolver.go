package logging

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Resolution errors.
var (
	// ErrAlreadyResolved indicates the backend was already chosen; loggers
	// handed out before the call keep using it.
	ErrAlreadyResolved = errors.New("logging backend already resolved")

	// ErrNilProvider indicates a nil provider was passed to SetProvider.
	ErrNilProvider = errors.New("nil provider")
)

// resolverName is the logger name for the resolver's own probe record.
const resolverName = "logging"

type resolverState uint8

const (
	stateUnresolved resolverState = iota
	stateResolving
	stateResolved
)

// resolvedBackend boxes the winning provider so it can be published
// through an atomic pointer.
type resolvedBackend struct {
	provider Provider
}

// Resolver selects exactly one logging backend from an ordered candidate
// list, on first demand, and memoizes it for the life of the process.
//
// Concurrent first-use callers block on each other during the one-time
// selection; once resolved, reads are lock-free.
type Resolver struct {
	mu         sync.Mutex
	state      resolverState
	candidates []Candidate
	resolved   atomic.Pointer[resolvedBackend]
}

// NewResolver returns a resolver over the given candidates, tried in
// order. The last candidate must never fail to construct; the resolver
// panics if every candidate fails.
func NewResolver(candidates ...Candidate) *Resolver {
	return &Resolver{candidates: candidates}
}

// Provider returns the active backend, selecting it on first call.
func (r *Resolver) Provider() Provider {
	if rb := r.resolved.Load(); rb != nil {
		return rb.provider
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have resolved while we waited for the lock.
	if rb := r.resolved.Load(); rb != nil {
		return rb.provider
	}

	r.state = stateResolving
	p := r.selectBackend()
	r.resolved.Store(&resolvedBackend{provider: p})
	r.state = stateResolved
	return p
}

// selectBackend tries each candidate in priority order. The winner logs
// a single record identifying itself; a candidate whose first write
// fails is skipped in favor of the next one. Called with mu held.
func (r *Resolver) selectBackend() Provider {
	for _, c := range r.candidates {
		p, err := c.New()
		if err != nil {
			continue
		}
		if announceBackend(p) {
			return p
		}
	}
	panic("logging: every backend candidate failed; the last candidate must always be constructible")
}

// announceBackend writes the one-time record identifying the chosen
// backend. A sink that breaks only on first write surfaces as a panic
// here; the failure is reported to the caller instead of escaping
// resolution.
func announceBackend(p Provider) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	p.NewLogger(resolverName).Log(SeverityDebug, "using "+p.Name()+" as the logging backend")
	return true
}

// Logger returns a named logger from the active backend, resolving the
// backend first if necessary.
func (r *Resolver) Logger(name string) Logger {
	return r.Provider().NewLogger(name)
}

// SetProvider installs p as the backend, bypassing candidate selection.
// Valid only before the first Logger or Provider call; afterwards it
// returns ErrAlreadyResolved and has no effect.
func (r *Resolver) SetProvider(p Provider) error {
	if p == nil {
		return ErrNilProvider
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateUnresolved {
		return ErrAlreadyResolved
	}
	r.resolved.Store(&resolvedBackend{provider: p})
	r.state = stateResolved
	return nil
}

// SetCandidates replaces the candidate list. Valid only before resolution.
func (r *Resolver) SetCandidates(candidates ...Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateUnresolved {
		return ErrAlreadyResolved
	}
	r.candidates = candidates
	return nil
}

// defaultResolver backs the package-level GetLogger and SetProvider.
var defaultResolver = NewResolver(DefaultCandidates()...)

// DefaultCandidates returns the default backend priority order: zerolog
// console output, then slog, then a plain stderr writer as the
// always-available last resort.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "zerolog", New: func() (Provider, error) { return NewConsoleProvider(), nil }},
		{Name: "slog", New: func() (Provider, error) { return NewSlogProvider(nil), nil }},
		{Name: "stderr", New: func() (Provider, error) { return NewStderrProvider(), nil }},
	}
}

// GetLogger returns a named logger from the process-wide backend,
// resolving the backend on first call.
func GetLogger(name string) Logger {
	return defaultResolver.Logger(name)
}

// SetProvider installs the process-wide backend. Must be called before
// any GetLogger call; afterwards it returns ErrAlreadyResolved.
func SetProvider(p Provider) error {
	return defaultResolver.SetProvider(p)
}

// SetCandidates replaces the process-wide candidate list. Must be called
// before any GetLogger call.
func SetCandidates(candidates ...Candidate) error {
	return defaultResolver.SetCandidates(candidates...)
}
