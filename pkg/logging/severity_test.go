package logging

import (
	"errors"
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{sev: SeverityTrace, want: "TRACE"},
		{sev: SeverityDebug, want: "DEBUG"},
		{sev: SeverityInfo, want: "INFO"},
		{sev: SeverityWarn, want: "WARN"},
		{sev: SeverityError, want: "ERROR"},
		{sev: Severity(42), want: "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestSeverityValid(t *testing.T) {
	for s := SeverityTrace; s <= SeverityError; s++ {
		if !s.Valid() {
			t.Errorf("Severity(%d) should be valid", s)
		}
	}
	if Severity(5).Valid() {
		t.Error("Severity(5) should be invalid")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{in: "trace", want: SeverityTrace},
		{in: "DEBUG", want: SeverityDebug},
		{in: " info ", want: SeverityInfo},
		{in: "warn", want: SeverityWarn},
		{in: "warning", want: SeverityWarn},
		{in: "Error", want: SeverityError},
	}

	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if err != nil {
			t.Errorf("ParseSeverity(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSeverityUnknown(t *testing.T) {
	_, err := ParseSeverity("verbose")
	if !errors.Is(err, ErrUnknownSeverity) {
		t.Errorf("ParseSeverity(verbose) = %v, want ErrUnknownSeverity", err)
	}
}
