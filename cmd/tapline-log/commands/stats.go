package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tapline-io/tapline-go/pkg/logging"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalRecords      int
	RecordsBySeverity map[logging.Severity]int
	Loggers           map[string]*LoggerStats
	Causes            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// LoggerStats holds statistics for a single logger name.
type LoggerStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Records   int
	Causes    int
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := logging.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		RecordsBySeverity: make(map[logging.Severity]int),
		Loggers:           make(map[string]*LoggerStats),
	}

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}

		stats.TotalRecords++
		stats.RecordsBySeverity[rec.Severity]++

		if stats.TimeRange.Start.IsZero() || rec.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = rec.Timestamp
		}
		if rec.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = rec.Timestamp
		}

		ls, ok := stats.Loggers[rec.Logger]
		if !ok {
			ls = &LoggerStats{FirstSeen: rec.Timestamp, LastSeen: rec.Timestamp}
			stats.Loggers[rec.Logger] = ls
		}
		ls.Records++
		if rec.Timestamp.After(ls.LastSeen) {
			ls.LastSeen = rec.Timestamp
		}
		if rec.Cause != "" {
			ls.Causes++
			stats.Causes++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Tapline Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalRecords > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Records: %d\n", stats.TotalRecords)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Records by Severity:")
	for s := logging.SeverityTrace; s <= logging.SeverityError; s++ {
		if count := stats.RecordsBySeverity[s]; count > 0 {
			fmt.Fprintf(w, "  %-7s %d\n", s.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Loggers: %d\n", len(stats.Loggers))
	if len(stats.Loggers) > 0 {
		names := make([]string, 0, len(stats.Loggers))
		for name := range stats.Loggers {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			return stats.Loggers[names[i]].FirstSeen.Before(stats.Loggers[names[j]].FirstSeen)
		})

		fmt.Fprintln(w)
		for _, name := range names {
			ls := stats.Loggers[name]
			duration := ls.LastSeen.Sub(ls.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d records, duration %s\n", name, ls.Records, duration)
			if ls.Causes > 0 {
				fmt.Fprintf(w, "           Causes: %d\n", ls.Causes)
			}
		}
	}

	if stats.Causes > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Records with Causes: %d\n", stats.Causes)
	}
}
