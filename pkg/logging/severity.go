package logging

import (
	"errors"
	"fmt"
	"strings"
)

// Severity is the ordered importance level gating whether a record is
// produced.
type Severity uint8

const (
	// SeverityTrace is the most verbose level.
	SeverityTrace Severity = iota

	// SeverityDebug is the default level for event tap output.
	SeverityDebug

	// SeverityInfo is for normal operational records.
	SeverityInfo

	// SeverityWarn is for unusual but non-fatal conditions.
	SeverityWarn

	// SeverityError is the most severe level.
	SeverityError
)

// ErrUnknownSeverity indicates a severity name that does not parse.
var ErrUnknownSeverity = errors.New("unknown severity")

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	return s <= SeverityError
}

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityTrace:
		return "TRACE"
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity parses a severity name, case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return SeverityTrace, nil
	case "DEBUG":
		return SeverityDebug, nil
	case "INFO":
		return SeverityInfo, nil
	case "WARN", "WARNING":
		return SeverityWarn, nil
	case "ERROR":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
	}
}
