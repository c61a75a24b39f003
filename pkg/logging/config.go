package logging

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config errors.
var (
	ErrUnknownBackend = errors.New("unknown logging backend")
	ErrNoCapturePath  = errors.New("capture backend requires capture_path")
)

// Config describes the logging setup loadable from a YAML file:
//
//	level: debug
//	backends:
//	  - capture
//	  - console
//	capture_path: /var/log/tapline/events.tlog
//
// Backends are tried in the listed order; the first one that constructs
// wins. A plain stderr writer is always appended as the last resort, so
// resolution is guaranteed to terminate.
type Config struct {
	// Level is the severity name for event tap output (default "debug").
	Level string `yaml:"level"`

	// Backends lists backend names in priority order. Known names:
	// "console" (zerolog), "slog", "stderr", "capture".
	Backends []string `yaml:"backends"`

	// CapturePath is the capture file path, required when the capture
	// backend is listed.
	CapturePath string `yaml:"capture_path"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Level:    "debug",
		Backends: []string{"console"},
	}
}

// LoadConfig reads a Config from the YAML file at path. Fields absent
// from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read logging config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse logging config: %w", err)
	}
	return cfg, nil
}

// Severity parses the configured level.
func (c Config) Severity() (Severity, error) {
	return ParseSeverity(c.Level)
}

// Candidates translates the configured backend list into resolver
// candidates, appending the stderr writer as the guaranteed last resort.
func (c Config) Candidates() ([]Candidate, error) {
	var out []Candidate
	for _, name := range c.Backends {
		switch name {
		case "console":
			out = append(out, Candidate{Name: "zerolog", New: func() (Provider, error) {
				return NewConsoleProvider(), nil
			}})
		case "slog":
			out = append(out, Candidate{Name: "slog", New: func() (Provider, error) {
				return NewSlogProvider(nil), nil
			}})
		case "stderr":
			out = append(out, Candidate{Name: "stderr", New: func() (Provider, error) {
				return NewStderrProvider(), nil
			}})
		case "capture":
			if c.CapturePath == "" {
				return nil, ErrNoCapturePath
			}
			path := c.CapturePath
			out = append(out, Candidate{Name: "capture", New: func() (Provider, error) {
				return NewCaptureProvider(path)
			}})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
		}
	}

	out = append(out, Candidate{Name: "stderr", New: func() (Provider, error) {
		return NewStderrProvider(), nil
	}})
	return out, nil
}
