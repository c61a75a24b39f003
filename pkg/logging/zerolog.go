package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologProvider adapts a zerolog root logger as a backend.
type ZerologProvider struct {
	root zerolog.Logger
}

// NewZerologProvider returns a provider whose loggers derive from root.
func NewZerologProvider(root zerolog.Logger) *ZerologProvider {
	return &ZerologProvider{root: root}
}

// NewConsoleProvider returns a ZerologProvider writing human-readable
// output to stderr. This is the default preferred backend.
func NewConsoleProvider() *ZerologProvider {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return NewZerologProvider(zerolog.New(w).With().Timestamp().Logger())
}

// Name identifies the backend.
func (p *ZerologProvider) Name() string { return "zerolog" }

// NewLogger returns a logger tagged with the given name.
func (p *ZerologProvider) NewLogger(name string) Logger {
	return &zerologLogger{l: p.root.With().Str("logger", name).Logger()}
}

type zerologLogger struct {
	l zerolog.Logger
}

func zerologLevel(sev Severity) zerolog.Level {
	switch sev {
	case SeverityTrace:
		return zerolog.TraceLevel
	case SeverityDebug:
		return zerolog.DebugLevel
	case SeverityInfo:
		return zerolog.InfoLevel
	case SeverityWarn:
		return zerolog.WarnLevel
	case SeverityError:
		return zerolog.ErrorLevel
	default:
		return zerolog.DebugLevel
	}
}

func (z *zerologLogger) Enabled(sev Severity) bool {
	lvl := zerologLevel(sev)
	return lvl >= z.l.GetLevel() && lvl >= zerolog.GlobalLevel()
}

func (z *zerologLogger) Log(sev Severity, msg string) {
	z.l.WithLevel(zerologLevel(sev)).Msg(msg)
}

func (z *zerologLogger) LogCause(sev Severity, msg string, cause error) {
	z.l.WithLevel(zerologLevel(sev)).Err(cause).Msg(msg)
}

// Compile-time interface satisfaction checks.
var (
	_ Provider = (*ZerologProvider)(nil)
	_ Logger   = (*zerologLogger)(nil)
)
