package codec

import (
	"fmt"

	"github.com/adau-codec/adau-go/pkg/clock"
	"github.com/adau-codec/adau-go/pkg/daifmt"
	"github.com/adau-codec/adau-go/pkg/persistence"
)

// Snapshot captures the session's clock, format, slot width and cached
// register values.
func (s *Session) Snapshot() *persistence.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &persistence.SessionState{
		SessionID: s.id,
		Variant:   s.variant.Name,
		SlotWidth: s.slotWidth,
	}
	if s.constraints != 0 {
		state.Clock = &persistence.ClockState{Source: s.source.String(), Frequency: s.sysclk}
	}
	if s.format != nil {
		state.Format = &persistence.FormatState{
			Role:     s.format.Role.String(),
			Polarity: s.format.Polarity.String(),
			Scheme:   s.format.Scheme.String(),
		}
	}
	for _, v := range s.regs.Snapshot() {
		state.Registers = append(state.Registers, persistence.RegisterValue{Address: v.Address, Value: v.Value})
	}
	return state
}

// Restore stages a snapshot into a powered-down session. Register values land
// in the cache and reach the chip on the next PowerEnable. The snapshot must
// come from the same variant.
func (s *Session) Restore(state *persistence.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttached(); err != nil {
		return err
	}
	if s.state != StateDisabled {
		return fmt.Errorf("restore: %w", ErrPoweredUp)
	}
	if state.Variant != s.variant.Name {
		return fmt.Errorf("%w: snapshot for %q, session is %q", ErrInvalidConfig, state.Variant, s.variant.Name)
	}

	var (
		source clock.Source
		freq   uint32
		set    clock.RateSet
	)
	if state.Clock != nil {
		var err error
		if source, err = clock.ParseSource(state.Clock.Source); err != nil {
			return err
		}
		freq = state.Clock.Frequency
		if set, err = clock.Constraints(source, freq); err != nil {
			return err
		}
	}

	var (
		format *daifmt.Format
		fr     daifmt.Fragments
	)
	if state.Format != nil {
		f, err := daifmt.ParseFormat(state.Format.Role + "/" + state.Format.Polarity + "/" + state.Format.Scheme)
		if err != nil {
			return err
		}
		if fr, err = daifmt.Negotiate(f); err != nil {
			return err
		}
		format = &f
	}

	switch state.SlotWidth {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("%w: slot width %d", daifmt.ErrInvalidFormat, state.SlotWidth)
	}

	for _, r := range state.Registers {
		if s.regs.IsVolatile(r.Address) {
			continue
		}
		if err := s.regs.Write(r.Address, r.Value); err != nil {
			return fmt.Errorf("restore register 0x%02x: %w", r.Address, err)
		}
	}

	if state.Clock != nil {
		s.source, s.sysclk, s.constraints = source, freq, set
	}
	if format != nil {
		s.format = format
		s.controller = fr.Controller
		s.rightJustified = fr.RightJustified
	}
	s.slotWidth = state.SlotWidth

	s.debugLog("snapshot restored", "registers", len(state.Registers), "from_session", state.SessionID)
	return nil
}
