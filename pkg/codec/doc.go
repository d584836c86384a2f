// Package codec drives an ADAU1977/ADAU1978/ADAU1979 ADC through its control
// registers.
//
// A Session owns the register cache of one chip and sequences power-up and
// power-down, reference clock selection, serial format negotiation and
// per-stream rate/width setup. Callers serialize access to a Session; the
// register store underneath keeps each masked update atomic.
//
// Typical use:
//
//	s, err := codec.Attach(bus, codec.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer s.Detach()
//
//	if _, err := s.SetReferenceClock(clock.SourceMCLK, 12288000); err != nil {
//		return err
//	}
//	if err := s.NegotiateFormat(daifmt.RoleController, daifmt.NormalBitNormalFrame, daifmt.SchemeI2S); err != nil {
//		return err
//	}
//	return s.ConfigureStream(codec.StreamParams{Rate: 48000, Width: 24})
package codec
