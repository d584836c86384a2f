package regmap

import (
	"fmt"

	"github.com/adau-codec/adau-go/pkg/log"
)

// Config describes the register layout of a chip and the trace settings of a
// Store.
type Config struct {
	// MaxRegister is the highest valid register address.
	MaxRegister uint8

	// Defaults are the power-on values used to seed the cache.
	Defaults map[uint8]uint8

	// Volatile lists registers that are never cached.
	Volatile []uint8

	// Trace receives one event per register transaction. Nil disables tracing.
	Trace log.Logger

	// SessionID and Variant tag trace events.
	SessionID string
	Variant   string
}

// Validate checks the layout for consistency.
func (c Config) Validate() error {
	for addr := range c.Defaults {
		if addr > c.MaxRegister {
			return fmt.Errorf("%w: default for 0x%02x above max register 0x%02x", ErrInvalidConfig, addr, c.MaxRegister)
		}
	}
	for _, addr := range c.Volatile {
		if addr > c.MaxRegister {
			return fmt.Errorf("%w: volatile register 0x%02x above max register 0x%02x", ErrInvalidConfig, addr, c.MaxRegister)
		}
		if _, ok := c.Defaults[addr]; ok {
			return fmt.Errorf("%w: volatile register 0x%02x has a default", ErrInvalidConfig, addr)
		}
	}
	return nil
}
