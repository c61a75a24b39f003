package logging

import "strings"

// MultiProvider fans records out to multiple backends. Useful when you
// want both console output and a capture file simultaneously.
type MultiProvider struct {
	providers []Provider
}

// NewMultiProvider returns a provider that sends records to all provided
// backends.
func NewMultiProvider(providers ...Provider) *MultiProvider {
	return &MultiProvider{providers: providers}
}

// Name joins the names of the underlying backends.
func (m *MultiProvider) Name() string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return strings.Join(names, "+")
}

// NewLogger returns a logger that forwards to a logger from each backend.
func (m *MultiProvider) NewLogger(name string) Logger {
	loggers := make([]Logger, len(m.providers))
	for i, p := range m.providers {
		loggers[i] = p.NewLogger(name)
	}
	return &multiLogger{loggers: loggers}
}

type multiLogger struct {
	loggers []Logger
}

// Enabled reports true if any underlying logger is enabled at sev.
func (m *multiLogger) Enabled(sev Severity) bool {
	for _, l := range m.loggers {
		if l.Enabled(sev) {
			return true
		}
	}
	return false
}

func (m *multiLogger) Log(sev Severity, msg string) {
	for _, l := range m.loggers {
		l.Log(sev, msg)
	}
}

func (m *multiLogger) LogCause(sev Severity, msg string, cause error) {
	for _, l := range m.loggers {
		l.LogCause(sev, msg, cause)
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Provider = (*MultiProvider)(nil)
	_ Logger   = (*multiLogger)(nil)
)
