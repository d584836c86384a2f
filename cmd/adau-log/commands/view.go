// Package commands implements the adau-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/adau-codec/adau-go/pkg/inspect"
	"github.com/adau-codec/adau-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Direction *log.Direction
	Path      *log.Path
	Category  *log.Category
	Address   *uint8
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{
		Direction: f.Direction,
		Path:      f.Path,
		Category:  f.Category,
		Address:   f.Address,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] variant label
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessID := shortenSessionID(event.SessionID)

	var header string
	switch {
	case event.Register != nil:
		header = fmt.Sprintf("%-5s %-6s %s", event.Direction, event.Path, regLabel(event.Register.Address))
	case event.StateChange != nil:
		header = "STATE " + event.StateChange.Entity.String()
	case event.Error != nil:
		header = fmt.Sprintf("ERROR %-5s %s", event.Direction, event.Path)
	default:
		header = "Unknown"
	}

	variant := event.Variant
	if variant == "" {
		variant = "-"
	}
	fmt.Fprintf(w, "%s [sess:%s] %s %s\n", ts, sessID, variant, header)

	// Type-specific details
	switch {
	case event.Register != nil:
		formatRegisterDetails(w, event.Register)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func regLabel(addr uint8) string {
	if name := inspect.RegisterName(addr); name != "" {
		return fmt.Sprintf("REG[0x%02x]:%s", addr, name)
	}
	return fmt.Sprintf("REG[0x%02x]", addr)
}

// formatRegisterDetails writes register transaction details.
func formatRegisterDetails(w io.Writer, reg *log.RegisterEvent) {
	fmt.Fprintf(w, "  Value: 0x%02x (%08b)\n", reg.Value, reg.Value)
	if reg.Mask != nil {
		fmt.Fprintf(w, "  Mask:  0x%02x (%08b)\n", *reg.Mask, *reg.Mask)
	}
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Address != nil {
		fmt.Fprintf(w, "  Register: %s\n", regLabel(*err.Address))
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "read":
		return log.DirectionRead, nil
	case "write":
		return log.DirectionWrite, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be read or write)", s)
	}
}

// ParsePathFlag parses an access path string from command-line flag (case-insensitive).
func ParsePathFlag(s string) (log.Path, error) {
	return parsePath(s)
}

// parsePath parses an access path string (case-insensitive).
func parsePath(s string) (log.Path, error) {
	switch strings.ToLower(s) {
	case "cache":
		return log.PathCache, nil
	case "bus":
		return log.PathBus, nil
	case "bypass":
		return log.PathBypass, nil
	default:
		return 0, fmt.Errorf("invalid path: %s (must be cache, bus, or bypass)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "register":
		return log.CategoryRegister, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be register, state, or error)", s)
	}
}

// ParseRegisterFlag parses a register name or number from command-line flag.
func ParseRegisterFlag(s string) (uint8, error) {
	addr, err := inspect.ParseRegister(s)
	if err != nil {
		return 0, fmt.Errorf("invalid register: %w", err)
	}
	return addr, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
