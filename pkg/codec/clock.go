package codec

import (
	"fmt"

	"github.com/adau-codec/adau-go/pkg/clock"
	"github.com/adau-codec/adau-go/pkg/log"
)

// SetReferenceClock selects the PLL reference and its frequency and returns
// the sample rates it supports. The PLL source bit is written before the
// session adopts the new clock; on error the previous clock is kept.
func (s *Session) SetReferenceClock(source clock.Source, freq uint32) (clock.RateSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkAttached(); err != nil {
		return 0, err
	}

	set, err := clock.Constraints(source, freq)
	if err != nil {
		return 0, err
	}

	if err := s.regs.UpdateFields(FieldClockS.SetBool(source == clock.SourceLRCLK)); err != nil {
		return 0, fmt.Errorf("select clock source: %w", err)
	}

	prev := fmt.Sprintf("%s@%d", s.source, s.sysclk)
	s.source = source
	s.sysclk = freq
	s.constraints = set

	s.debugLog("reference clock", "source", source.String(), "freq", freq, "rates", set.String())
	s.emitState(log.StateEntityClock, prev, fmt.Sprintf("%s@%d", source, freq), set.String())
	return set, nil
}

// StreamConstraints returns the rates a stream may use with the current
// reference clock. As clock controller the chip tops out at the configured
// maximum controller rate.
func (s *Session) StreamConstraints() clock.RateSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.constraints
	if s.controller {
		set = set.Limit(clock.Rates[0], s.maxControllerRate)
	}
	return set
}
