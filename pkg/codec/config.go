package codec

import (
	"fmt"
	"log/slog"

	"github.com/adau-codec/adau-go/pkg/clock"
	"github.com/adau-codec/adau-go/pkg/log"
	"github.com/adau-codec/adau-go/pkg/regmap"
)

// DefaultMaxControllerRate is the highest rate the chip generates as clock
// controller.
const DefaultMaxControllerRate uint32 = 192000

// Config configures a Session.
type Config struct {
	// Variant is the chip name, e.g. "adau1977".
	Variant string

	// ClockSource is the PLL reference the board wires up.
	ClockSource clock.Source

	// MaxControllerRate caps StreamConstraints when the session drives the
	// serial clocks.
	MaxControllerRate uint32

	// ResetLine is the optional reset/power-down pin.
	ResetLine regmap.ResetLine

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Trace receives register transactions and state changes.
	// If nil, tracing is disabled.
	Trace log.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Variant:           "adau1977",
		ClockSource:       clock.SourceMCLK,
		MaxControllerRate: DefaultMaxControllerRate,
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if _, err := LookupVariant(c.Variant); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.ClockSource != clock.SourceMCLK && c.ClockSource != clock.SourceLRCLK {
		return fmt.Errorf("%w: clock source %s", ErrInvalidConfig, c.ClockSource)
	}
	if c.MaxControllerRate < clock.Rates[0] || c.MaxControllerRate > DefaultMaxControllerRate {
		return fmt.Errorf("%w: max controller rate %d", ErrInvalidConfig, c.MaxControllerRate)
	}
	return nil
}
