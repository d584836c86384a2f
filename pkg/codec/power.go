package codec

import "fmt"

// PowerState is the power sequencer state.
type PowerState uint8

const (
	// StateDisabled - chip powered down, register writes staged in cache.
	StateDisabled PowerState = iota

	// StateResetting - software reset in progress.
	StateResetting

	// StateAwaitingLock - powered up, cache flush and PLL check pending.
	StateAwaitingLock

	// StateEnabled - chip running with the cache in sync.
	StateEnabled
)

// String returns the state name.
func (p PowerState) String() string {
	switch p {
	case StateDisabled:
		return "DISABLED"
	case StateResetting:
		return "RESETTING"
	case StateAwaitingLock:
		return "AWAITING_LOCK"
	case StateEnabled:
		return "ENABLED"
	default:
		return "UNKNOWN"
	}
}

// PowerEnable brings the chip out of reset, powers it up, flushes staged
// register values and re-latches the PLL setting if it reads back unlocked.
// It does nothing when already enabled.
//
// A failed software reset leaves the session disabled. A failure after the
// reset leaves it in StateAwaitingLock. Retrying from that state starts
// over and replays the whole cache.
func (s *Session) PowerEnable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttached(); err != nil {
		return err
	}
	if s.state == StateEnabled {
		return nil
	}
	if s.state != StateDisabled {
		s.regs.MarkDirty()
	}

	s.setState(StateResetting, "power enable")
	if s.reset != nil {
		s.reset.SetLevel(true)
	}
	s.regs.SetCacheOnly(false)

	err := s.regs.ScopedBypass(func() error {
		return s.regs.Write(RegPower, PowerResetCommand)
	})
	if err != nil {
		if s.reset != nil {
			s.reset.SetLevel(false)
		}
		s.regs.SetCacheOnly(true)
		s.setState(StateDisabled, "software reset failed")
		return fmt.Errorf("software reset: %w", err)
	}

	s.setState(StateAwaitingLock, "reset complete")

	if err := s.regs.UpdateFields(FieldPowerUp.SetBool(true)); err != nil {
		return fmt.Errorf("power up: %w", err)
	}
	if err := s.regs.Sync(); err != nil {
		return fmt.Errorf("register sync: %w", err)
	}

	err = s.regs.ScopedBypass(func() error {
		pll, err := s.regs.Read(RegPLL)
		if err != nil {
			return fmt.Errorf("read pll: %w", err)
		}
		if pll != PLLRelatchValue {
			return nil
		}
		s.debugLog("pll relatch", "value", fmt.Sprintf("0x%02x", pll))
		if err := s.regs.Write(RegPLL, PLLRelatchValue); err != nil {
			return fmt.Errorf("relatch pll: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.setState(StateEnabled, "pll checked")
	return nil
}

// PowerDisable clears the power-up bit, marks the cache dirty, puts the chip
// back into reset and switches the store to cache-only. It does nothing when
// already disabled. If clearing the power-up bit fails the state is kept.
func (s *Session) PowerDisable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDisabled {
		return nil
	}

	if err := s.regs.UpdateFields(FieldPowerUp.SetBool(false)); err != nil {
		return fmt.Errorf("power down: %w", err)
	}
	s.regs.MarkDirty()
	if s.reset != nil {
		s.reset.SetLevel(false)
	}
	s.regs.SetCacheOnly(true)

	s.setState(StateDisabled, "power disable")
	return nil
}
