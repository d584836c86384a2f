package regmap

import "errors"

// Register store errors.
var (
	// ErrBus wraps every failure reported by the underlying Bus.
	ErrBus = errors.New("register bus error")

	// ErrInvalidRegister is returned for addresses above the maximum register.
	ErrInvalidRegister = errors.New("invalid register address")

	// ErrCacheOnly is returned when a cache-only store has no cached value
	// for a non-volatile register and hardware may not be consulted.
	ErrCacheOnly = errors.New("register not cached while cache-only")

	// ErrFieldMismatch is returned when UpdateFields is given fields of
	// different registers.
	ErrFieldMismatch = errors.New("fields belong to different registers")

	// ErrInvalidConfig is returned by NewStore for an unusable Config.
	ErrInvalidConfig = errors.New("invalid register map config")
)
