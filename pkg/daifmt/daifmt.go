// Package daifmt translates a serial audio interface configuration into the
// register fragments the codec expects.
package daifmt

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned for an unsupported role, polarity, scheme or
// sample width.
var ErrInvalidFormat = errors.New("invalid serial format")

// Role selects which side drives the bit and frame clocks.
type Role uint8

const (
	// RolePeripheral receives BCLK and LRCLK from the host.
	RolePeripheral Role = iota + 1
	// RoleController drives BCLK and LRCLK.
	RoleController
)

// Polarity combines bit clock and frame clock inversion.
type Polarity uint8

const (
	NormalBitNormalFrame Polarity = iota + 1
	InvertedBitNormalFrame
	NormalBitInvertedFrame
	InvertedBitInvertedFrame
)

// Scheme is the data justification on the serial bus.
type Scheme uint8

const (
	SchemeI2S Scheme = iota + 1
	SchemeLeftJustified
	SchemeRightJustified
	SchemeDSPA
	SchemeDSPB
)

// Format codes of the SAI_CTRL0 FMT field.
const (
	FormatI2S  uint8 = 0
	FormatLJ   uint8 = 1
	FormatRJ24 uint8 = 2
	FormatRJ16 uint8 = 3
)

// Format is a complete serial interface request.
type Format struct {
	Role     Role
	Polarity Polarity
	Scheme   Scheme
}

// Fragments are the register-level results of negotiating a Format.
type Fragments struct {
	Controller       bool
	InvertFrameClock bool
	InvertBitClock   bool
	FormatCode       uint8
	FramePulse       bool
	RightJustified   bool
}

// Negotiate derives register fragments from f.
// Left- and right-justified schemes define frame clock polarity opposite to
// I2S, so they flip the frame inversion. DSP schemes use a one-cycle frame
// pulse and never invert it.
func Negotiate(f Format) (Fragments, error) {
	var fr Fragments

	switch f.Role {
	case RolePeripheral:
	case RoleController:
		fr.Controller = true
	default:
		return Fragments{}, fmt.Errorf("%w: role %s", ErrInvalidFormat, f.Role)
	}

	switch f.Polarity {
	case NormalBitNormalFrame:
	case InvertedBitNormalFrame:
		fr.InvertBitClock = true
	case NormalBitInvertedFrame:
		fr.InvertFrameClock = true
	case InvertedBitInvertedFrame:
		fr.InvertBitClock = true
		fr.InvertFrameClock = true
	default:
		return Fragments{}, fmt.Errorf("%w: polarity %s", ErrInvalidFormat, f.Polarity)
	}

	switch f.Scheme {
	case SchemeI2S:
		fr.FormatCode = FormatI2S
	case SchemeLeftJustified:
		fr.FormatCode = FormatLJ
		fr.InvertFrameClock = !fr.InvertFrameClock
	case SchemeRightJustified:
		fr.FormatCode = FormatRJ24
		fr.RightJustified = true
		fr.InvertFrameClock = !fr.InvertFrameClock
	case SchemeDSPA:
		fr.FormatCode = FormatI2S
		fr.FramePulse = true
		fr.InvertFrameClock = false
	case SchemeDSPB:
		fr.FormatCode = FormatLJ
		fr.FramePulse = true
		fr.InvertFrameClock = false
	default:
		return Fragments{}, fmt.Errorf("%w: scheme %s", ErrInvalidFormat, f.Scheme)
	}

	return fr, nil
}

// RightJustifiedCode returns the RJ format code for a sample width.
func RightJustifiedCode(width int) (uint8, error) {
	switch width {
	case 16:
		return FormatRJ16, nil
	case 24:
		return FormatRJ24, nil
	}
	return 0, fmt.Errorf("%w: %d-bit right-justified", ErrInvalidFormat, width)
}
