package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// WriterProvider writes plain text records to an io.Writer. It depends
// on nothing and never fails to construct, which makes it the guaranteed
// last-resort backend.
type WriterProvider struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterProvider returns a provider writing to w.
func NewWriterProvider(w io.Writer) *WriterProvider {
	return &WriterProvider{w: w}
}

// NewStderrProvider returns a provider writing to stderr.
func NewStderrProvider() *WriterProvider {
	return NewWriterProvider(os.Stderr)
}

// Name identifies the backend.
func (p *WriterProvider) Name() string { return "writer" }

// NewLogger returns a logger tagged with the given name.
func (p *WriterProvider) NewLogger(name string) Logger {
	return &writerLogger{p: p, name: name}
}

type writerLogger struct {
	p    *WriterProvider
	name string
}

// Enabled always returns true; the writer backend has no level filter.
func (l *writerLogger) Enabled(Severity) bool { return true }

func (l *writerLogger) Log(sev Severity, msg string) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	fmt.Fprintf(l.p.w, "%s %-5s %s %s\n", time.Now().Format(time.RFC3339), sev, l.name, msg)
}

func (l *writerLogger) LogCause(sev Severity, msg string, cause error) {
	l.p.mu.Lock()
	defer l.p.mu.Unlock()
	fmt.Fprintf(l.p.w, "%s %-5s %s %s: %v\n", time.Now().Format(time.RFC3339), sev, l.name, msg, cause)
}

// Compile-time interface satisfaction checks.
var (
	_ Provider = (*WriterProvider)(nil)
	_ Logger   = (*writerLogger)(nil)
)
