package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tapline-io/tapline-go/pkg/logging"
)

// RunExport exports the capture file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := logging.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

type jsonRecord struct {
	Timestamp string `json:"timestamp"`
	Logger    string `json:"logger"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Cause     string `json:"cause,omitempty"`
}

func exportJSONL(reader *logging.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		out := jsonRecord{
			Timestamp: rec.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			Logger:    rec.Logger,
			Severity:  rec.Severity.String(),
			Message:   rec.Message,
			Cause:     rec.Cause,
		}
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *logging.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "logger", "severity", "message", "cause"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}

		row := []string{
			rec.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			rec.Logger,
			rec.Severity.String(),
			rec.Message,
			rec.Cause,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
