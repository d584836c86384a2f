// Package inspect provides register inspection and debug access utilities.
//
// The inspect package offers a unified interface for:
//   - Resolving register names to addresses
//   - Parsing and executing "flag|reg|val" debug commands
//   - Dumping the register cache with field decoding
//   - Formatting output for display
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Address errors.
var (
	ErrEmptyRegister   = errors.New("empty register")
	ErrUnknownRegister = errors.New("unknown register")
)

// ParseRegister parses a register reference: a register name (see
// ResolveRegisterName) or a number. Numbers can be decimal or hex (0x prefix).
func ParseRegister(input string) (uint8, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, ErrEmptyRegister
	}

	if addr, ok := ResolveRegisterName(input); ok {
		return addr, nil
	}

	n, err := strconv.ParseUint(input, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRegister, input)
	}
	return uint8(n), nil
}
