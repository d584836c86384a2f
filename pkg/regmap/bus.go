package regmap

// Bus is the raw register-access port to the chip.
// Implementations perform exactly one transaction per call and neither retry
// nor time out; a failure is reported as-is.
type Bus interface {
	ReadRegister(addr uint8) (uint8, error)
	WriteRegister(addr uint8, value uint8) error
}

// ResetLine drives the chip's external reset/power-down pin.
// High releases the chip from reset.
type ResetLine interface {
	SetLevel(high bool)
}
