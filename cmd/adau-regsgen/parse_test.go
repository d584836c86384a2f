package main

import (
	"strings"
	"testing"
)

func TestParseRegisterMap(t *testing.T) {
	data := []byte(`
registers:
  - name: PLL
    address: 0x01
    description: PLL control
  - name: POWER
    address: 0x00
    description: Power
  - name: STATUS1
    address: 0x11
    volatile: true
  - name: TWEAK1
    address: 0x1b
    toolOnly: true
`)
	m, err := ParseRegisterMap(data)
	if err != nil {
		t.Fatalf("ParseRegisterMap failed: %v", err)
	}
	if len(m.Registers) != 4 {
		t.Fatalf("got %d registers, want 4", len(m.Registers))
	}
	if m.Registers[0].Name != "POWER" || m.Registers[1].Name != "PLL" {
		t.Errorf("registers not sorted by address: %v", m.Registers)
	}
	if !m.Registers[2].Volatile {
		t.Error("STATUS1 should be volatile")
	}
	if !m.Registers[3].ToolOnly || m.Registers[3].Address != 0x1b {
		t.Errorf("TWEAK1 = %+v", m.Registers[3])
	}
}

func TestParseRegisterMapRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "registers: []", "empty"},
		{"lower case name", "registers:\n  - {name: pll, address: 0x01}", "invalid name"},
		{"duplicate name", "registers:\n  - {name: PLL, address: 0x01}\n  - {name: PLL, address: 0x02}", "defined at"},
		{"duplicate address", "registers:\n  - {name: PLL, address: 0x01}\n  - {name: PLL2, address: 0x01}", "used by"},
		{"volatile tool register", "registers:\n  - {name: X, address: 0x2c, volatile: true, toolOnly: true}", "cannot be volatile"},
		{"address overflow", "registers:\n  - {name: X, address: 0x100}", "parsing"},
		{"bad yaml", "registers: [", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegisterMap([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
