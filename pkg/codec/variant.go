package codec

import (
	"fmt"
	"strings"

	"github.com/adau-codec/adau-go/pkg/regmap"
)

// Variant describes one supported chip.
type Variant struct {
	// Name is the lower-case part name, e.g. "adau1977".
	Name string

	// Channels is the number of ADC channels.
	Channels int

	// MicBias reports whether the chip has the boost converter and
	// microphone bias generator.
	MicBias bool

	// MaxRegister is the highest valid register address.
	MaxRegister uint8

	// Defaults are the power-on register values.
	Defaults map[uint8]uint8

	// Volatile lists registers that must never be cached.
	Volatile []uint8
}

// adau19xxDefaults are the power-on values shared by the family.
var adau19xxDefaults = map[uint8]uint8{
	RegPower:          0x00,
	RegPLL:            0x41,
	RegBoost:          0x4a,
	RegMicBias:        0x7d,
	RegBlockPowerSAI:  0x3d,
	RegSAICtrl0:       0x02,
	RegSAICtrl1:       0x00,
	RegCMap12:         0x10,
	RegCMap34:         0x32,
	RegSAIOvertemp:    0xf0,
	RegPostADCGain(0): 0xa0,
	RegPostADCGain(1): 0xa0,
	RegPostADCGain(2): 0xa0,
	RegPostADCGain(3): 0xa0,
	RegMiscControl:    0x02,
	RegDiagControl:    0x0f,
	RegDiagIRQ1:       0x20,
	RegDiagIRQ2:       0x00,
	RegAdjust1:        0x00,
	RegAdjust2:        0x00,
	RegDCHPFCal:       0x00,
}

var adau19xxVolatile = []uint8{
	RegStatus(0), RegStatus(1), RegStatus(2), RegStatus(3),
	RegADCClip,
}

// Variants lists the supported chips.
var Variants = []Variant{
	{Name: "adau1977", Channels: 4, MicBias: true, MaxRegister: RegDCHPFCal, Defaults: adau19xxDefaults, Volatile: adau19xxVolatile},
	{Name: "adau1978", Channels: 4, MaxRegister: RegDCHPFCal, Defaults: adau19xxDefaults, Volatile: adau19xxVolatile},
	{Name: "adau1979", Channels: 4, MaxRegister: RegDCHPFCal, Defaults: adau19xxDefaults, Volatile: adau19xxVolatile},
}

// LookupVariant finds a variant by name (case-insensitive).
func LookupVariant(name string) (Variant, error) {
	for _, v := range Variants {
		if strings.EqualFold(v.Name, name) {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// RegmapConfig returns the register store layout of the variant.
func (v Variant) RegmapConfig() regmap.Config {
	return regmap.Config{
		MaxRegister: v.MaxRegister,
		Defaults:    v.Defaults,
		Volatile:    v.Volatile,
		Variant:     v.Name,
	}
}
