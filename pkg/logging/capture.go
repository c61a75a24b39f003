package logging

import (
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// CaptureProvider writes records to a file in CBOR format for later
// inspection with ReadRecords. It is safe for concurrent use from
// multiple goroutines.
type CaptureProvider struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
}

// NewCaptureProvider creates a provider appending to the file at path.
// A new file is stamped with a format version header so readers can
// verify compatibility. The file is created with permissions 0644 if it
// doesn't exist. An open failure makes the backend candidate fail over
// to the next one.
func NewCaptureProvider(path string) (*CaptureProvider, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	encoder := NewEncoder(f)
	if info.Size() == 0 {
		if err := EncodeFileHeader(encoder); err != nil {
			f.Close()
			return nil, err
		}
	}
	return &CaptureProvider{
		file:    f,
		encoder: encoder,
	}, nil
}

// Name identifies the backend.
func (p *CaptureProvider) Name() string { return "capture" }

// NewLogger returns a logger tagged with the given name.
func (p *CaptureProvider) NewLogger(name string) Logger {
	return &captureLogger{p: p, name: name}
}

// Close closes the capture file. It is safe to call Close multiple
// times. After Close, records are silently dropped.
func (p *CaptureProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.file.Close()
}

func (p *CaptureProvider) write(rec Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	// Ignore encoding errors - logging must not disrupt the application
	_ = p.encoder.Encode(rec)
}

type captureLogger struct {
	p    *CaptureProvider
	name string
}

// Enabled always returns true; filtering happens when reading the file.
func (l *captureLogger) Enabled(Severity) bool { return true }

func (l *captureLogger) Log(sev Severity, msg string) {
	l.p.write(Record{
		Timestamp: time.Now(),
		Logger:    l.name,
		Severity:  sev,
		Message:   msg,
	})
}

func (l *captureLogger) LogCause(sev Severity, msg string, cause error) {
	rec := Record{
		Timestamp: time.Now(),
		Logger:    l.name,
		Severity:  sev,
		Message:   msg,
	}
	if cause != nil {
		rec.Cause = cause.Error()
	}
	l.p.write(rec)
}

// Compile-time interface satisfaction checks.
var (
	_ Provider = (*CaptureProvider)(nil)
	_ Logger   = (*captureLogger)(nil)
)
