package codec

import (
	"fmt"

	"github.com/adau-codec/adau-go/pkg/daifmt"
	"github.com/adau-codec/adau-go/pkg/log"
)

// NegotiateFormat configures the serial port for role, polarity and scheme.
// Fragments are written in order BLOCK_POWER_SAI, SAI_CTRL0, SAI_CTRL1. A bus
// failure stops the sequence with earlier writes applied.
func (s *Session) NegotiateFormat(role daifmt.Role, polarity daifmt.Polarity, scheme daifmt.Scheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttached(); err != nil {
		return err
	}

	f := daifmt.Format{Role: role, Polarity: polarity, Scheme: scheme}
	fr, err := daifmt.Negotiate(f)
	if err != nil {
		return err
	}

	s.controller = fr.Controller
	s.rightJustified = fr.RightJustified
	s.format = nil

	if err := s.regs.UpdateFields(
		FieldLRPolarity.SetBool(fr.InvertFrameClock),
		FieldBCLKEdge.SetBool(fr.InvertBitClock),
	); err != nil {
		return fmt.Errorf("write polarity: %w", err)
	}
	if err := s.regs.UpdateFields(FieldFormat.Set(fr.FormatCode)); err != nil {
		return fmt.Errorf("write format: %w", err)
	}
	if err := s.regs.UpdateFields(
		FieldMaster.SetBool(fr.Controller),
		FieldLRCLKPulse.SetBool(fr.FramePulse),
	); err != nil {
		return fmt.Errorf("write role: %w", err)
	}

	s.format = &f
	s.debugLog("serial format", "format", f.String(), "fragments", fmt.Sprintf("%+v", fr))
	s.emitState(log.StateEntityFormat, "", f.String(), "")
	return nil
}

// SetSlotWidth fixes the TDM slot width in bit clocks. Zero clears it and
// lets ConfigureStream derive the slot width from the sample width.
func (s *Session) SetSlotWidth(width int) error {
	switch width {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("%w: slot width %d", daifmt.ErrInvalidFormat, width)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slotWidth = width
	return nil
}

// SlotWidth returns the fixed TDM slot width (0 = none).
func (s *Session) SlotWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slotWidth
}
