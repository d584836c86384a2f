package regmap

import "fmt"

// Field is a contiguous bit range inside one register.
type Field struct {
	Name  string
	Reg   uint8
	Shift uint8
	Width uint8
}

// NewBit returns a single-bit field.
func NewBit(name string, reg, bit uint8) Field {
	return Field{Name: name, Reg: reg, Shift: bit, Width: 1}
}

// Mask returns the in-register mask covered by the field.
func (f Field) Mask() uint8 {
	return uint8((1<<f.Width)-1) << f.Shift
}

// Encode positions v inside the register, dropping bits wider than the field.
func (f Field) Encode(v uint8) uint8 {
	return (v << f.Shift) & f.Mask()
}

// Decode extracts the field from a full register value.
func (f Field) Decode(reg uint8) uint8 {
	return (reg & f.Mask()) >> f.Shift
}

// Set returns a FieldValue assigning v to the field.
func (f Field) Set(v uint8) FieldValue {
	return FieldValue{Field: f, Value: v}
}

// SetBool returns a FieldValue setting every bit of the field when on and
// clearing it otherwise.
func (f Field) SetBool(on bool) FieldValue {
	if on {
		return FieldValue{Field: f, Value: f.Mask() >> f.Shift}
	}
	return FieldValue{Field: f}
}

// String returns the field name and bit range.
func (f Field) String() string {
	if f.Width == 1 {
		return fmt.Sprintf("%s[0x%02x:%d]", f.Name, f.Reg, f.Shift)
	}
	return fmt.Sprintf("%s[0x%02x:%d..%d]", f.Name, f.Reg, f.Shift+f.Width-1, f.Shift)
}

// FieldValue is a value to be merged into a field.
type FieldValue struct {
	Field Field
	Value uint8
}

// Value is a register address with its contents.
type Value struct {
	Address uint8
	Value   uint8
}

// merge folds field values of one register into a mask/value pair.
func merge(values []FieldValue) (reg, mask, value uint8, err error) {
	reg = values[0].Field.Reg
	for _, fv := range values {
		if fv.Field.Reg != reg {
			return 0, 0, 0, fmt.Errorf("%w: %s and %s", ErrFieldMismatch, values[0].Field, fv.Field)
		}
		mask |= fv.Field.Mask()
		value = (value &^ fv.Field.Mask()) | fv.Field.Encode(fv.Value)
	}
	return reg, mask, value, nil
}
