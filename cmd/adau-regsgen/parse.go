package main

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// RawRegisterMap is the top-level register map document.
type RawRegisterMap struct {
	Registers []RawRegisterDef `yaml:"registers"`
}

// RawRegisterDef represents one register loaded from YAML.
type RawRegisterDef struct {
	Name        string `yaml:"name"`
	Address     uint8  `yaml:"address"`
	Description string `yaml:"description"`
	Volatile    bool   `yaml:"volatile"`
	ToolOnly    bool   `yaml:"toolOnly"`
}

var validName = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// ParseRegisterMap parses and validates a register map. Registers are
// returned in ascending address order.
func ParseRegisterMap(data []byte) (*RawRegisterMap, error) {
	var m RawRegisterMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing register map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	sort.Slice(m.Registers, func(i, j int) bool {
		return m.Registers[i].Address < m.Registers[j].Address
	})
	return &m, nil
}

// LoadRegisterMap loads and parses a register map from a file.
func LoadRegisterMap(path string) (*RawRegisterMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseRegisterMap(data)
}

// Validate checks names are upper-case identifiers and that names and
// addresses are unique.
func (m *RawRegisterMap) Validate() error {
	if len(m.Registers) == 0 {
		return fmt.Errorf("register map is empty")
	}

	names := make(map[string]uint8, len(m.Registers))
	addrs := make(map[uint8]string, len(m.Registers))
	for _, r := range m.Registers {
		if !validName.MatchString(r.Name) {
			return fmt.Errorf("register 0x%02X: invalid name %q", r.Address, r.Name)
		}
		if prev, ok := names[r.Name]; ok {
			return fmt.Errorf("register %s defined at 0x%02X and 0x%02X", r.Name, prev, r.Address)
		}
		if prev, ok := addrs[r.Address]; ok {
			return fmt.Errorf("address 0x%02X used by %s and %s", r.Address, prev, r.Name)
		}
		if r.Volatile && r.ToolOnly {
			return fmt.Errorf("register %s: toolOnly registers cannot be volatile", r.Name)
		}
		names[r.Name] = r.Address
		addrs[r.Address] = r.Name
	}
	return nil
}
