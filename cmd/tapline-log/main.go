// Command tapline-log is a tool for viewing and analyzing tapline
// capture files.
//
// Capture files are created by configuring the "capture" logging
// backend, either programmatically or through a logging config file.
//
// Usage:
//
//	tapline-log <command> [flags] <file.tlog>
//
// Commands:
//
//	view     View capture file in human-readable format
//	export   Export capture file to JSON or CSV format
//	filter   Filter capture file and write to new file
//	stats    Show statistics about the capture file
//
// Examples:
//
//	# View all records
//	tapline-log view events.tlog
//
//	# View only records from the transport logger
//	tapline-log view --logger transport events.tlog
//
//	# Export to JSONL
//	tapline-log export --format jsonl events.tlog
//
//	# Keep only warnings and above in a new file
//	tapline-log filter --min-level warn -o warnings.tlog events.tlog
//
//	# Show statistics
//	tapline-log stats events.tlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tapline-io/tapline-go/cmd/tapline-log/commands"
	"github.com/tapline-io/tapline-go/pkg/logging"
	"github.com/tapline-io/tapline-go/pkg/version"
)

const usage = `tapline-log - Tapline Capture Analyzer

Usage:
  tapline-log <command> [flags] <file.tlog>

Commands:
  view     View capture file in human-readable format
  export   Export capture file to JSON or CSV format
  filter   Filter capture file and write to new file
  stats    Show statistics about the capture file

Use "tapline-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "version", "-version", "--version":
		fmt.Println("tapline-log " + version.Current)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `tapline-log view - View capture file in human-readable format

Usage:
  tapline-log view [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	logger := fs.String("logger", "", "Filter by logger name")
	minLevel := fs.String("min-level", "", "Filter by minimum severity (trace, debug, info, warn, error)")
	withCause := fs.Bool("with-cause", false, "Show only records carrying a cause")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter := logging.Filter{Logger: *logger, WithCause: *withCause}
	if *minLevel != "" {
		sev, err := logging.ParseSeverity(*minLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.MinSeverity = &sev
	}

	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `tapline-log export - Export capture file to JSON or CSV format

Usage:
  tapline-log export [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `tapline-log filter - Filter capture file and write to new file

Usage:
  tapline-log filter [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	logger := fs.String("logger", "", "Filter by logger name")
	minLevel := fs.String("min-level", "", "Filter by minimum severity")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	withCause := fs.Bool("with-cause", false, "Keep only records carrying a cause")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:    *output,
		Logger:    *logger,
		MinLevel:  *minLevel,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		WithCause: *withCause,
	}

	if err := commands.RunFilter(fs.Arg(0), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `tapline-log stats - Show statistics about the capture file

Usage:
  tapline-log stats <file.tlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
