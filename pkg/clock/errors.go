package clock

import "errors"

var (
	// ErrUnsupportedRate is returned when a rate has no FS band or no
	// multiplier encoding for the reference clock.
	ErrUnsupportedRate = errors.New("unsupported sample rate")

	// ErrInvalidClockConfig is returned when the reference clock supports no
	// rate family, lies outside the MCLK range, or names an unknown source.
	ErrInvalidClockConfig = errors.New("invalid clock configuration")
)
