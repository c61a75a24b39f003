package logging

import (
	"context"
	"log/slog"
)

// SlogProvider adapts a log/slog logger as a backend.
type SlogProvider struct {
	root *slog.Logger
}

// NewSlogProvider returns a provider whose loggers derive from root.
// A nil root means slog.Default().
func NewSlogProvider(root *slog.Logger) *SlogProvider {
	if root == nil {
		root = slog.Default()
	}
	return &SlogProvider{root: root}
}

// Name identifies the backend.
func (p *SlogProvider) Name() string { return "slog" }

// NewLogger returns a logger tagged with the given name.
func (p *SlogProvider) NewLogger(name string) Logger {
	return &slogLogger{l: p.root.With(slog.String("logger", name))}
}

type slogLogger struct {
	l *slog.Logger
}

// slog has no trace level; trace maps below debug so handlers can opt in.
func slogLevel(sev Severity) slog.Level {
	switch sev {
	case SeverityTrace:
		return slog.LevelDebug - 4
	case SeverityDebug:
		return slog.LevelDebug
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarn:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func (s *slogLogger) Enabled(sev Severity) bool {
	return s.l.Enabled(context.Background(), slogLevel(sev))
}

func (s *slogLogger) Log(sev Severity, msg string) {
	s.l.Log(context.Background(), slogLevel(sev), msg)
}

func (s *slogLogger) LogCause(sev Severity, msg string, cause error) {
	s.l.Log(context.Background(), slogLevel(sev), msg, slog.Any("cause", cause))
}

// Compile-time interface satisfaction checks.
var (
	_ Provider = (*SlogProvider)(nil)
	_ Logger   = (*slogLogger)(nil)
)
