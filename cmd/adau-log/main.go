// Command adau-log is a tool for viewing and analyzing ADAU19xx register
// trace files.
//
// Trace files are written by adau-ctl with the -trace flag, or by any program
// that passes a log.FileLogger as codec.Config.Trace.
//
// Usage:
//
//	adau-log <command> [flags] <file.alog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON, CSV or a replay script
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	adau-log view session.alog
//
//	# View only transactions that bypassed the cache
//	adau-log view --path bypass session.alog
//
//	# View everything that touched the PLL register
//	adau-log view --register pll session.alog
//
//	# Export to JSONL
//	adau-log export --format jsonl session.alog
//
//	# Turn a bring-up into a script for the adau-ctl "source" command
//	adau-log export --format debug -o bringup.txt session.alog
//
//	# Filter by session and save to new file
//	adau-log filter --session-id 5f0c2a9e-... -o filtered.alog session.alog
//
//	# Show statistics
//	adau-log stats session.alog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/adau-codec/adau-go/cmd/adau-log/commands"
)

const usage = `adau-log - ADAU19xx Register Trace Analyzer

Usage:
  adau-log <command> [flags] <file.alog>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON, CSV or a replay script
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "adau-log <command> -help" for more information about a command.
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
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `adau-log view - View trace file in human-readable format

Usage:
  adau-log view [flags] <file.alog>

Flags:
`)
		fs.PrintDefaults()
	}

	direction := fs.String("direction", "", "Filter by direction (read, write)")
	path := fs.String("path", "", "Filter by access path (cache, bus, bypass)")
	category := fs.String("category", "", "Filter by category (register, state, error)")
	register := fs.String("register", "", "Filter by register (name or address)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	// Build filter
	var filter commands.ViewFilter

	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fail(err)
		}
		filter.Direction = &d
	}

	if *path != "" {
		p, err := commands.ParsePathFlag(*path)
		if err != nil {
			fail(err)
		}
		filter.Path = &p
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if *register != "" {
		a, err := commands.ParseRegisterFlag(*register)
		if err != nil {
			fail(err)
		}
		filter.Address = &a
	}

	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `adau-log export - Export trace file to JSON, CSV or a replay script

Usage:
  adau-log export [flags] <file.alog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv, debug)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `adau-log filter - Filter trace file and write to new file

Usage:
  adau-log filter [flags] <file.alog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	sessionID := fs.String("session-id", "", "Filter by session ID")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	direction := fs.String("direction", "", "Filter by direction (read, write)")
	path := fs.String("path", "", "Filter by access path (cache, bus, bypass)")
	category := fs.String("category", "", "Filter by category (register, state, error)")
	register := fs.String("register", "", "Filter by register (name or address)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
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
		SessionID: *sessionID,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Direction: *direction,
		Path:      *path,
		Category:  *category,
		Register:  *register,
	}

	n, err := commands.RunFilter(fs.Arg(0), opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `adau-log stats - Show statistics about the trace file

Usage:
  adau-log stats <file.alog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fail(err)
	}
}
