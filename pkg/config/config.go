// Package config loads board descriptions for codec sessions.
//
// A board file is YAML and names the chip variant, how its clocks are wired,
// the serial format the board uses and any register values to stage before
// power-up:
//
//	variant: adau1977
//	clock:
//	  source: mclk
//	  frequency: 12288000
//	format:
//	  role: controller
//	  polarity: nb-nf
//	  scheme: i2s
//	slotWidth: 32
//	registers:
//	  - register: POST_ADC_GAIN1
//	    value: 0xa8
//	stream:
//	  rate: 48000
//	  width: 24
//	traceFile: /var/log/adau/session.alog
//	stateFile: /var/lib/adau/session.json
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adau-codec/adau-go/pkg/clock"
	"github.com/adau-codec/adau-go/pkg/codec"
	"github.com/adau-codec/adau-go/pkg/daifmt"
	"github.com/adau-codec/adau-go/pkg/inspect"
	"github.com/adau-codec/adau-go/pkg/regmap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for board files that fail validation.
var ErrInvalidConfig = errors.New("invalid board config")

// Board describes one board's codec wiring.
type Board struct {
	Variant           string           `yaml:"variant"`
	MaxControllerRate uint32           `yaml:"maxControllerRate"`
	Clock             ClockConfig      `yaml:"clock"`
	Format            *FormatConfig    `yaml:"format,omitempty"`
	SlotWidth         int              `yaml:"slotWidth,omitempty"`
	Registers         []RegisterConfig `yaml:"registers,omitempty"`
	Stream            *StreamConfig    `yaml:"stream,omitempty"`

	// TraceFile receives register transactions when set.
	TraceFile string `yaml:"traceFile,omitempty"`

	// StateFile persists session snapshots when set.
	StateFile string `yaml:"stateFile,omitempty"`
}

// ClockConfig is the PLL reference. A zero Frequency leaves the reference
// clock unset.
type ClockConfig struct {
	Source    string `yaml:"source"`
	Frequency uint32 `yaml:"frequency,omitempty"`
}

// FormatConfig is the serial format, see daifmt.ParseRole, ParsePolarity and
// ParseScheme for accepted values.
type FormatConfig struct {
	Role     string `yaml:"role"`
	Polarity string `yaml:"polarity"`
	Scheme   string `yaml:"scheme"`
}

// RegisterConfig stages one register value. Register is a name or a number.
type RegisterConfig struct {
	Register string `yaml:"register"`
	Value    uint8  `yaml:"value"`
}

// StreamConfig is the stream configured once the board is up.
type StreamConfig struct {
	Rate      uint32 `yaml:"rate"`
	Width     int    `yaml:"width"`
	SlotWidth int    `yaml:"slotWidth,omitempty"`
}

// Default returns the board used when no file is given: an ADAU1977 on a
// 12.288 MHz master clock.
func Default() *Board {
	return &Board{
		Variant:           "adau1977",
		MaxControllerRate: codec.DefaultMaxControllerRate,
		Clock: ClockConfig{
			Source:    clock.SourceMCLK.String(),
			Frequency: 12288000,
		},
	}
}

// Load reads and validates a board file.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board config: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse decodes and validates a board description. Fields missing from data
// keep their Default values. Unknown keys are rejected.
func Parse(data []byte) (*Board, error) {
	b := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(b); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the board against the variant's register map and the
// clock and format rules.
func (b *Board) Validate() error {
	cfg, err := b.CodecConfig()
	if err != nil {
		return err
	}
	variant, _ := codec.LookupVariant(cfg.Variant)

	var rates clock.RateSet
	if b.Clock.Frequency != 0 {
		if rates, err = clock.Constraints(cfg.ClockSource, b.Clock.Frequency); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if _, _, err := b.SerialFormat(); err != nil {
		return err
	}

	if err := validSlotWidth(b.SlotWidth); err != nil {
		return err
	}

	if _, err := b.StagedRegisters(variant); err != nil {
		return err
	}

	if s := b.Stream; s != nil {
		if b.Clock.Frequency == 0 {
			return fmt.Errorf("%w: stream needs a clock frequency", ErrInvalidConfig)
		}
		if !rates.Contains(s.Rate) {
			return fmt.Errorf("%w: stream rate %d not in %s", ErrInvalidConfig, s.Rate, rates)
		}
		switch s.Width {
		case 16, 24, 32:
		default:
			return fmt.Errorf("%w: stream width %d", ErrInvalidConfig, s.Width)
		}
		if err := validSlotWidth(s.SlotWidth); err != nil {
			return err
		}
	}
	return nil
}

func validSlotWidth(w int) error {
	switch w {
	case 0, 16, 24, 32:
		return nil
	}
	return fmt.Errorf("%w: slot width %d", ErrInvalidConfig, w)
}

// CodecConfig returns the session configuration for the board.
func (b *Board) CodecConfig() (codec.Config, error) {
	source, err := clock.ParseSource(b.Clock.Source)
	if err != nil {
		return codec.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg := codec.Config{
		Variant:           b.Variant,
		ClockSource:       source,
		MaxControllerRate: b.MaxControllerRate,
	}
	if err := cfg.Validate(); err != nil {
		return codec.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// SerialFormat returns the board's serial format. ok is false when the board
// does not name one.
func (b *Board) SerialFormat() (f daifmt.Format, ok bool, err error) {
	if b.Format == nil {
		return daifmt.Format{}, false, nil
	}
	f, err = daifmt.ParseFormat(b.Format.Role + "/" + b.Format.Polarity + "/" + b.Format.Scheme)
	if err != nil {
		return daifmt.Format{}, false, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := daifmt.Negotiate(f); err != nil {
		return daifmt.Format{}, false, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return f, true, nil
}

// StagedRegisters resolves the board's register list against variant.
// Registers outside the variant's map and volatile registers are rejected.
func (b *Board) StagedRegisters(variant codec.Variant) ([]regmap.Value, error) {
	volatile := make(map[uint8]bool, len(variant.Volatile))
	for _, addr := range variant.Volatile {
		volatile[addr] = true
	}

	out := make([]regmap.Value, 0, len(b.Registers))
	for _, r := range b.Registers {
		addr, err := inspect.ParseRegister(r.Register)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if addr > variant.MaxRegister {
			return nil, fmt.Errorf("%w: register %s outside %s map", ErrInvalidConfig, r.Register, variant.Name)
		}
		if volatile[addr] {
			return nil, fmt.Errorf("%w: register %s is volatile", ErrInvalidConfig, r.Register)
		}
		out = append(out, regmap.Value{Address: addr, Value: r.Value})
	}
	return out, nil
}

// Apply stages the board's registers, reference clock, format, slot width and
// stream onto s. On a powered-down session everything lands in the register
// cache and reaches the chip on PowerEnable.
func (b *Board) Apply(s *codec.Session) error {
	regs, err := b.StagedRegisters(s.Variant())
	if err != nil {
		return err
	}
	for _, r := range regs {
		if err := s.Registers().Write(r.Address, r.Value); err != nil {
			return fmt.Errorf("stage register 0x%02x: %w", r.Address, err)
		}
	}

	if b.Clock.Frequency != 0 {
		source, _ := clock.ParseSource(b.Clock.Source)
		if _, err := s.SetReferenceClock(source, b.Clock.Frequency); err != nil {
			return err
		}
	}

	f, ok, err := b.SerialFormat()
	if err != nil {
		return err
	}
	if ok {
		if err := s.NegotiateFormat(f.Role, f.Polarity, f.Scheme); err != nil {
			return err
		}
	}

	if err := s.SetSlotWidth(b.SlotWidth); err != nil {
		return err
	}

	if st := b.Stream; st != nil {
		return s.ConfigureStream(codec.StreamParams{Rate: st.Rate, Width: st.Width, SlotWidth: st.SlotWidth})
	}
	return nil
}
