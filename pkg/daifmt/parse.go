package daifmt

import (
	"fmt"
	"strings"
)

var roleNames = map[Role]string{
	RolePeripheral: "peripheral",
	RoleController: "controller",
}

var polarityNames = map[Polarity]string{
	NormalBitNormalFrame:     "nb-nf",
	InvertedBitNormalFrame:   "ib-nf",
	NormalBitInvertedFrame:   "nb-if",
	InvertedBitInvertedFrame: "ib-if",
}

var schemeNames = map[Scheme]string{
	SchemeI2S:            "i2s",
	SchemeLeftJustified:  "left-j",
	SchemeRightJustified: "right-j",
	SchemeDSPA:           "dsp-a",
	SchemeDSPB:           "dsp-b",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

func (p Polarity) String() string {
	if s, ok := polarityNames[p]; ok {
		return s
	}
	return fmt.Sprintf("polarity(%d)", uint8(p))
}

func (s Scheme) String() string {
	if n, ok := schemeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("scheme(%d)", uint8(s))
}

// String renders the format as "role/polarity/scheme".
func (f Format) String() string {
	return f.Role.String() + "/" + f.Polarity.String() + "/" + f.Scheme.String()
}

// ParseRole accepts "controller" or "peripheral" (case-insensitive).
func ParseRole(s string) (Role, error) {
	return parse(s, roleNames, "role")
}

// ParsePolarity accepts "nb-nf", "ib-nf", "nb-if" or "ib-if".
func ParsePolarity(s string) (Polarity, error) {
	return parse(s, polarityNames, "polarity")
}

// ParseScheme accepts "i2s", "left-j", "right-j", "dsp-a" or "dsp-b".
func ParseScheme(s string) (Scheme, error) {
	return parse(s, schemeNames, "scheme")
}

func parse[T comparable](s string, names map[T]string, kind string) (T, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, name := range names {
		if name == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: unknown %s %q", ErrInvalidFormat, kind, s)
}

// ParseFormat parses "role/polarity/scheme", as produced by Format.String.
func ParseFormat(s string) (Format, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Format{}, fmt.Errorf("%w: %q is not role/polarity/scheme", ErrInvalidFormat, s)
	}
	role, err := ParseRole(parts[0])
	if err != nil {
		return Format{}, err
	}
	pol, err := ParsePolarity(parts[1])
	if err != nil {
		return Format{}, err
	}
	scheme, err := ParseScheme(parts[2])
	if err != nil {
		return Format{}, err
	}
	return Format{Role: role, Polarity: pol, Scheme: scheme}, nil
}
