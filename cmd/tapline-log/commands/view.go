// Package commands implements the tapline-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/tapline-io/tapline-go/pkg/logging"
)

// RunView streams records from the capture file to output in a
// human-readable format.
func RunView(path string, filter logging.Filter, output io.Writer) error {
	reader, err := logging.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		formatRecord(output, rec)
	}
	return nil
}

// formatRecord writes one record. Multi-line messages (hex dumps) keep
// their first line on the header line and indent the rest.
func formatRecord(w io.Writer, rec logging.Record) {
	ts := rec.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	lines := strings.SplitN(rec.Message, "\n", 2)
	fmt.Fprintf(w, "%s %-5s [%s] %s\n", ts, rec.Severity, rec.Logger, lines[0])
	if len(lines) == 2 {
		for _, line := range strings.Split(lines[1], "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	if rec.Cause != "" {
		fmt.Fprintf(w, "  Cause: %s\n", rec.Cause)
	}
}
