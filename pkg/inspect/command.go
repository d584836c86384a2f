package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCommand is returned for malformed debug commands.
var ErrInvalidCommand = errors.New("invalid debug command")

// maxCommand is the largest encodable command: flag nibble, register byte,
// value byte.
const maxCommand = 0xfffff

// Command is a parsed debug command.
//
// The wire form is one hex number laid out as flag|reg|val: bits 16..19
// carry the flag, bits 8..15 the register and bits 0..7 the value. A non-zero
// flag writes val to reg. A zero flag reads reg through reg+val.
type Command struct {
	Write    bool
	Register uint8

	// Value is the byte to write, or for reads the number of registers
	// following Register to read as well.
	Value uint8
}

// ParseDebugCommand parses a hex debug command such as "10080" (write 0x80
// to register 0x00) or "0001a" (read registers 0x00 through 0x1a). An
// optional 0x prefix is accepted.
func ParseDebugCommand(input string) (Command, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return Command{}, fmt.Errorf("%w: empty", ErrInvalidCommand)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q is not a hex number", ErrInvalidCommand, input)
	}
	if v > maxCommand {
		return Command{}, fmt.Errorf("%w: %q exceeds flag|reg|val", ErrInvalidCommand, input)
	}

	return Command{
		Write:    (v>>16)&0xf != 0,
		Register: uint8(v >> 8),
		Value:    uint8(v),
	}, nil
}

// String renders the command in its hex wire form.
func (c Command) String() string {
	flag := 0
	if c.Write {
		flag = 1
	}
	return fmt.Sprintf("%x%02x%02x", flag, c.Register, c.Value)
}

// Describe renders the command for humans.
func (c Command) Describe() string {
	if c.Write {
		return fmt.Sprintf("write 0x%02x to %s", c.Value, regLabel(c.Register))
	}
	last := int(c.Register) + int(c.Value)
	if last > 0xff {
		last = 0xff
	}
	return fmt.Sprintf("read %s through REG[0x%02x]", regLabel(c.Register), last)
}
