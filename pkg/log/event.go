package log

import (
	"time"
)

// Event represents a trace event emitted by a codec session.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the codec session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates whether the register was read or written.
	Direction Direction `cbor:"3,keyasint"`

	// Path indicates how the access was served.
	Path Path `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Variant is the chip variant name (e.g. "adau1977").
	Variant string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Register    *RegisterEvent    `cbor:"10,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"`
}

// Direction indicates the direction of a register access.
type Direction uint8

const (
	// DirectionRead indicates a register read.
	DirectionRead Direction = 0
	// DirectionWrite indicates a register write.
	DirectionWrite Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionRead:
		return "READ"
	case DirectionWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// Path indicates how a register access was served.
type Path uint8

const (
	// PathCache means the access was satisfied by the register cache only.
	PathCache Path = 0
	// PathBus means the access reached hardware through the normal cache path
	// (write-through, cache miss or volatile register).
	PathBus Path = 1
	// PathBypass means the access reached hardware with the cache bypassed.
	PathBypass Path = 2
)

// String returns the path name.
func (p Path) String() string {
	switch p {
	case PathCache:
		return "CACHE"
	case PathBus:
		return "BUS"
	case PathBypass:
		return "BYPASS"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRegister indicates a register transaction.
	CategoryRegister Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRegister:
		return "REGISTER"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RegisterEvent captures a single register transaction.
type RegisterEvent struct {
	// Address is the register address.
	Address uint8 `cbor:"1,keyasint"`

	// Value is the value read or written.
	Value uint8 `cbor:"2,keyasint"`

	// Mask is set for the write half of a masked update.
	Mask *uint8 `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures session lifecycle and negotiation changes.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityPower indicates a power sequencer state change.
	StateEntityPower StateEntity = 0
	// StateEntityClock indicates a reference clock change.
	StateEntityClock StateEntity = 1
	// StateEntityFormat indicates a serial format change.
	StateEntityFormat StateEntity = 2
	// StateEntityStream indicates a stream parameter change.
	StateEntityStream StateEntity = 3
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityPower:
		return "POWER"
	case StateEntityClock:
		return "CLOCK"
	case StateEntityFormat:
		return "FORMAT"
	case StateEntityStream:
		return "STREAM"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures failed transactions and negotiations.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Address is the register involved (if applicable).
	Address *uint8 `cbor:"2,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
