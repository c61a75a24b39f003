package logging

// Logger is the capability a logging backend must provide.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Enabled reports whether records at the given severity are produced.
	// Callers use this to skip building record text that would be dropped.
	Enabled(sev Severity) bool

	// Log records a message at the given severity.
	Log(sev Severity, msg string)

	// LogCause records a message together with the error that caused it.
	LogCause(sev Severity, msg string, cause error)
}

// NopLogger discards all records and reports every severity disabled.
// NopLogger is safe for concurrent use and usable as a zero value.
type NopLogger struct{}

// Enabled always returns false.
func (NopLogger) Enabled(Severity) bool { return false }

// Log discards the record.
func (NopLogger) Log(Severity, string) {}

// LogCause discards the record.
func (NopLogger) LogCause(Severity, string, error) {}

// Compile-time interface satisfaction check.
var _ Logger = NopLogger{}
