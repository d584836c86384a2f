package codec

import "errors"

// Codec errors.
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrUnknownVariant = errors.New("unknown chip variant")
	ErrDetached       = errors.New("session detached")
	ErrPoweredUp      = errors.New("session is powered up")
)
