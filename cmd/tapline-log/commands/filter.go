package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tapline-io/tapline-go/pkg/logging"
)

// FilterOptions specifies criteria for the filter command.
type FilterOptions struct {
	// Output is the destination capture file (required).
	Output string

	// Logger filters by exact logger name.
	Logger string

	// MinLevel filters records at or above this severity name.
	MinLevel string

	// TimeStart and TimeEnd bound the time window (RFC3339).
	TimeStart string
	TimeEnd   string

	// WithCause keeps only records carrying a cause.
	WithCause bool
}

// buildFilter translates the flag values into a record filter.
func buildFilter(opts FilterOptions) (logging.Filter, error) {
	filter := logging.Filter{
		Logger:    opts.Logger,
		WithCause: opts.WithCause,
	}

	if opts.MinLevel != "" {
		sev, err := logging.ParseSeverity(opts.MinLevel)
		if err != nil {
			return logging.Filter{}, err
		}
		filter.MinSeverity = &sev
	}
	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return logging.Filter{}, fmt.Errorf("invalid time-start: %w", err)
		}
		filter.TimeStart = &t
	}
	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return logging.Filter{}, fmt.Errorf("invalid time-end: %w", err)
		}
		filter.TimeEnd = &t
	}
	return filter, nil
}

// RunFilter reads the capture file, keeps the records matching the
// options and writes them to a new capture file.
func RunFilter(path string, opts FilterOptions) error {
	filter, err := buildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := logging.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	out, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	encoder := logging.NewEncoder(out)
	if err := logging.EncodeFileHeader(encoder); err != nil {
		return fmt.Errorf("failed to write capture header: %w", err)
	}

	kept := 0
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		if err := encoder.Encode(rec); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		kept++
	}

	fmt.Printf("Wrote %d records to %s\n", kept, opts.Output)
	return nil
}
