package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/adau-codec/adau-go/pkg/log"
)

func TestFormatRegisterEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	mask := uint8(0xc0)
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Variant:   "adau1979",
		Direction: log.DirectionWrite,
		Path:      log.PathBus,
		Category:  log.CategoryRegister,
		Register:  &log.RegisterEvent{Address: 0x04, Value: 0xfd, Mask: &mask},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[sess:abc12345]",
		"adau1979",
		"WRITE",
		"BUS",
		"REG[0x04]:BLOCK_POWER_SAI",
		"Value: 0xfd (11111101)",
		"Mask:  0xc0 (11000000)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestFormatStateChangeEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC),
		SessionID: "abc",
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityClock,
			NewState: "mclk@12288000",
			Reason:   "32000,48000,96000",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "[sess:abc] - STATE CLOCK") {
		t.Errorf("unexpected header: %s", output)
	}
	if !strings.Contains(output, "  -> mclk@12288000") {
		t.Errorf("expected new state, got: %s", output)
	}
	if !strings.Contains(output, "Reason: 32000,48000,96000") {
		t.Errorf("expected reason, got: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	addr := uint8(0x2c)
	event := log.Event{
		Timestamp: time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC),
		Direction: log.DirectionRead,
		Path:      log.PathBypass,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Message: "invalid register", Address: &addr, Context: "read"},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{"ERROR READ  BYPASS", "Message: invalid register", "Register: REG[0x2c]:ADC_TWEAK", "Context: read"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestRunViewFilters(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	path := createTestLogFile(t, sessionTrace(ts))

	tests := []struct {
		name   string
		filter ViewFilter
		want   int
	}{
		{"all", ViewFilter{}, 4},
		{"category", ViewFilter{Category: ptr(log.CategoryRegister)}, 2},
		{"path", ViewFilter{Path: ptr(log.PathBypass)}, 1},
		{"direction", ViewFilter{Direction: ptr(log.DirectionRead)}, 2},
		{"address", ViewFilter{Address: ptr(uint8(0x00))}, 2},
		{"error address", ViewFilter{Address: ptr(uint8(0x11))}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := RunView(path, tt.filter, &buf); err != nil {
				t.Fatalf("RunView failed: %v", err)
			}
			if got := strings.Count(buf.String(), "[sess:"); got != tt.want {
				t.Errorf("got %d events, want %d:\n%s", got, tt.want, buf.String())
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	if d, err := ParseDirectionFlag("WRITE"); err != nil || d != log.DirectionWrite {
		t.Errorf("ParseDirectionFlag(WRITE) = %v, %v", d, err)
	}
	if _, err := ParseDirectionFlag("in"); err == nil {
		t.Error("expected error for direction 'in'")
	}
	if p, err := ParsePathFlag("Bypass"); err != nil || p != log.PathBypass {
		t.Errorf("ParsePathFlag(Bypass) = %v, %v", p, err)
	}
	if _, err := ParsePathFlag("dma"); err == nil {
		t.Error("expected error for path 'dma'")
	}
	if c, err := ParseCategoryFlag("state"); err != nil || c != log.CategoryState {
		t.Errorf("ParseCategoryFlag(state) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("message"); err == nil {
		t.Error("expected error for category 'message'")
	}
	if a, err := ParseRegisterFlag("pll"); err != nil || a != 0x01 {
		t.Errorf("ParseRegisterFlag(pll) = %v, %v", a, err)
	}
	if a, err := ParseRegisterFlag("0x19"); err != nil || a != 0x19 {
		t.Errorf("ParseRegisterFlag(0x19) = %v, %v", a, err)
	}
	if _, err := ParseRegisterFlag("volume"); err == nil {
		t.Error("expected error for register 'volume'")
	}
}

func ptr[T any](v T) *T {
	return &v
}
