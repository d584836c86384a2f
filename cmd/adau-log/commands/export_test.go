package commands

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adau-codec/adau-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test"+log.Extension)

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sessionTrace is a short power-up followed by a failed read.
func sessionTrace(ts time.Time) []log.Event {
	mask := uint8(0x01)
	addr := uint8(0x11)
	return []log.Event{
		{
			Timestamp: ts,
			SessionID: "5f0c2a9e-1111-2222-3333-444455556666",
			Variant:   "adau1977",
			Category:  log.CategoryState,
			StateChange: &log.StateChangeEvent{
				Entity:   log.StateEntityPower,
				OldState: "DISABLED",
				NewState: "RESETTING",
				Reason:   "power enable",
			},
		},
		{
			Timestamp: ts.Add(time.Millisecond),
			SessionID: "5f0c2a9e-1111-2222-3333-444455556666",
			Variant:   "adau1977",
			Direction: log.DirectionWrite,
			Path:      log.PathBypass,
			Category:  log.CategoryRegister,
			Register:  &log.RegisterEvent{Address: 0x00, Value: 0x80},
		},
		{
			Timestamp: ts.Add(2 * time.Millisecond),
			SessionID: "5f0c2a9e-1111-2222-3333-444455556666",
			Variant:   "adau1977",
			Direction: log.DirectionWrite,
			Path:      log.PathBus,
			Category:  log.CategoryRegister,
			Register:  &log.RegisterEvent{Address: 0x00, Value: 0x01, Mask: &mask},
		},
		{
			Timestamp: ts.Add(3 * time.Millisecond),
			SessionID: "5f0c2a9e-1111-2222-3333-444455556666",
			Variant:   "adau1977",
			Direction: log.DirectionRead,
			Path:      log.PathBus,
			Category:  log.CategoryError,
			Error:     &log.ErrorEventData{Message: "no acknowledge", Address: &addr, Context: "read"},
		},
	}
}

func TestExportToJSONL(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	path := createTestLogFile(t, sessionTrace(ts))
	outPath := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}

	var first record
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if first.Category != "STATE" || first.Detail != "POWER DISABLED->RESETTING" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Direction != "" || first.Register != "" {
		t.Errorf("state record carries register fields: %+v", first)
	}

	var masked record
	if err := json.Unmarshal([]byte(lines[2]), &masked); err != nil {
		t.Fatalf("line 3 is not valid JSON: %v", err)
	}
	if masked.Register != "0x00" || masked.Name != "POWER" || masked.Mask != "0x01" {
		t.Errorf("masked write exported as %+v", masked)
	}
	if !masked.Timestamp.Equal(ts.Add(2 * time.Millisecond)) {
		t.Errorf("timestamp = %v", masked.Timestamp)
	}
}

func TestExportToCSV(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	path := createTestLogFile(t, sessionTrace(ts))
	outPath := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header + 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][6] != "register" || rows[0][7] != "name" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	want := []string{"2026-01-28T10:15:32.125456Z", "5f0c2a9e-1111-2222-3333-444455556666", "adau1977", "REGISTER", "WRITE", "BUS", "0x00", "POWER", "0x01", "0x01", ""}
	for i, w := range want {
		if rows[3][i] != w {
			t.Errorf("row 3 column %d = %q, want %q", i, rows[3][i], w)
		}
	}

	if rows[1][10] != "POWER DISABLED->RESETTING" {
		t.Errorf("state detail = %q", rows[1][10])
	}
	if rows[4][6] != "0x11" || rows[4][7] != "STATUS1" || rows[4][10] != "no acknowledge" {
		t.Errorf("error row = %v", rows[4])
	}
}

func TestExportDebugScript(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	events := sessionTrace(ts)
	events = append(events, log.Event{
		Timestamp: ts.Add(4 * time.Millisecond),
		SessionID: "5f0c2a9e-1111-2222-3333-444455556666",
		Direction: log.DirectionWrite,
		Path:      log.PathCache,
		Category:  log.CategoryRegister,
		Register:  &log.RegisterEvent{Address: 0x05, Value: 0x42},
	})
	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "replay.txt")

	if err := RunExport(path, "debug", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	want := "# session 5f0c2a9e-1111-2222-3333-444455556666 adau1977\n" +
		"debug 10080  # write 0x80 to REG[0x00]:POWER\n" +
		"debug 10001  # write 0x01 to REG[0x00]:POWER\n"
	if string(data) != want {
		t.Errorf("debug export =\n%s\nwant\n%s", data, want)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, nil)
	err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out.xml"))
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestExportMissingFile(t *testing.T) {
	if err := RunExport(filepath.Join(t.TempDir(), "missing.alog"), "jsonl", ""); err == nil {
		t.Error("expected error for missing file")
	}
}
