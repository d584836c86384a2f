package codec

import (
	"fmt"

	"github.com/adau-codec/adau-go/pkg/clock"
	"github.com/adau-codec/adau-go/pkg/daifmt"
	"github.com/adau-codec/adau-go/pkg/log"
	"github.com/adau-codec/adau-go/pkg/regmap"
)

// StreamParams are the parameters of one capture stream.
type StreamParams struct {
	// Rate is the sample rate in Hz.
	Rate uint32

	// Width is the sample width in bits (16, 24 or 32).
	Width int

	// SlotWidth overrides the session's fixed TDM slot width when non-zero.
	SlotWidth int
}

// ConfigureStream programs the sample-rate band, the MCLK multiplier and,
// depending on role and justification, the data width and bit clock rate.
// All validation happens before the first register write.
func (s *Session) ConfigureStream(p StreamParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttached(); err != nil {
		return err
	}

	fs, err := clock.LookupFS(p.Rate)
	if err != nil {
		return err
	}

	var mcs clock.MCSCode
	if s.source == clock.SourceMCLK {
		mcs, err = clock.LookupMCS(s.sysclk, p.Rate, fs)
		if err != nil {
			return err
		}
	}

	ctrl0 := []regmap.FieldValue{FieldFS.Set(uint8(fs))}
	if s.rightJustified {
		code, err := daifmt.RightJustifiedCode(p.Width)
		if err != nil {
			return err
		}
		ctrl0 = append(ctrl0, FieldFormat.Set(code))
	}

	var ctrl1 []regmap.FieldValue
	if s.controller {
		var dataWidth uint8
		var slotWidth int
		switch p.Width {
		case 16:
			dataWidth, slotWidth = DataWidth16, 16
		case 24, 32:
			dataWidth, slotWidth = DataWidth24, 32
		default:
			return fmt.Errorf("%w: %d-bit samples as clock controller", daifmt.ErrInvalidFormat, p.Width)
		}

		fixed := p.SlotWidth
		if fixed == 0 {
			fixed = s.slotWidth
		}
		if fixed != 0 {
			slotWidth = fixed
		}

		rate := BCLKRate32
		if slotWidth == 16 {
			rate = BCLKRate16
		}
		ctrl1 = []regmap.FieldValue{FieldDataWidth.Set(dataWidth), FieldBCLKRate.Set(rate)}
	}

	if ctrl1 != nil {
		if err := s.regs.UpdateFields(ctrl1...); err != nil {
			return fmt.Errorf("write data width: %w", err)
		}
	}
	if err := s.regs.UpdateFields(ctrl0...); err != nil {
		return fmt.Errorf("write sample rate: %w", err)
	}
	if err := s.regs.UpdateFields(FieldMCS.Set(uint8(mcs))); err != nil {
		return fmt.Errorf("write mclk multiplier: %w", err)
	}

	s.debugLog("stream configured", "rate", p.Rate, "width", p.Width, "fs", fs, "mcs", mcs)
	s.emitState(log.StateEntityStream, "", fmt.Sprintf("%dHz/%dbit", p.Rate, p.Width), "")
	return nil
}

// Mute sets or clears the master mute of all channels.
func (s *Session) Mute(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttached(); err != nil {
		return err
	}
	if err := s.regs.UpdateFields(FieldMasterMute.SetBool(on)); err != nil {
		return fmt.Errorf("mute: %w", err)
	}
	s.debugLog("mute", "on", on)
	return nil
}
