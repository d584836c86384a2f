package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/adau-codec/adau-go/pkg/log"
)

// topRegisters is how many registers the stats report lists.
const topRegisters = 5

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByPath      map[log.Path]int
	EventsByDirection map[log.Direction]int
	Registers         map[uint8]int
	Sessions          map[string]*SessionStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single codec session.
type SessionStats struct {
	FirstSeen  time.Time
	LastSeen   time.Time
	Events     int
	Variant    string
	Reads      int
	Writes     int
	PowerState string
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByPath:      make(map[log.Path]int),
		EventsByDirection: make(map[log.Direction]int),
		Registers:         make(map[uint8]int),
		Sessions:          make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	// Track time range
	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	// Track session stats
	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}
	if event.Variant != "" && sess.Variant == "" {
		sess.Variant = event.Variant
	}

	switch {
	case event.Register != nil:
		s.EventsByPath[event.Path]++
		s.EventsByDirection[event.Direction]++
		s.Registers[event.Register.Address]++
		if event.Direction == log.DirectionWrite {
			sess.Writes++
		} else {
			sess.Reads++
		}
	case event.StateChange != nil:
		if event.StateChange.Entity == log.StateEntityPower {
			sess.PowerState = event.StateChange.NewState
		}
	case event.Error != nil:
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== ADAU19xx Register Trace Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryRegister, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Register transactions by path
	fmt.Fprintln(w, "Transactions by Path:")
	for _, p := range []log.Path{log.PathCache, log.PathBus, log.PathBypass} {
		if count := stats.EventsByPath[p]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", p.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Register transactions by direction
	fmt.Fprintln(w, "Transactions by Direction:")
	for _, dir := range []log.Direction{log.DirectionRead, log.DirectionWrite} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Busiest registers
	if len(stats.Registers) > 0 {
		addrs := make([]uint8, 0, len(stats.Registers))
		for addr := range stats.Registers {
			addrs = append(addrs, addr)
		}
		sort.Slice(addrs, func(i, j int) bool {
			ci, cj := stats.Registers[addrs[i]], stats.Registers[addrs[j]]
			if ci != cj {
				return ci > cj
			}
			return addrs[i] < addrs[j]
		})
		if len(addrs) > topRegisters {
			addrs = addrs[:topRegisters]
		}
		fmt.Fprintln(w, "Busiest Registers:")
		for _, addr := range addrs {
			fmt.Fprintf(w, "  %-28s %d\n", regLabel(addr)+":", stats.Registers[addr])
		}
		fmt.Fprintln(w)
	}

	// Sessions
	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		// Sort by first seen time
		type sessInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenSessionID(s.id), s.stats.Events, duration)
			if s.stats.Variant != "" {
				fmt.Fprintf(w, "           Variant: %s\n", s.stats.Variant)
			}
			fmt.Fprintf(w, "           Reads: %d, Writes: %d\n", s.stats.Reads, s.stats.Writes)
			if s.stats.PowerState != "" {
				fmt.Fprintf(w, "           Power: %s\n", s.stats.PowerState)
			}
		}
	}

	// Errors
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
