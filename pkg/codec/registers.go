package codec

import "github.com/adau-codec/adau-go/pkg/regmap"

// Register addresses.
const (
	RegPower         uint8 = 0x00
	RegPLL           uint8 = 0x01
	RegBoost         uint8 = 0x02
	RegMicBias       uint8 = 0x03
	RegBlockPowerSAI uint8 = 0x04
	RegSAICtrl0      uint8 = 0x05
	RegSAICtrl1      uint8 = 0x06
	RegCMap12        uint8 = 0x07
	RegCMap34        uint8 = 0x08
	RegSAIOvertemp   uint8 = 0x09
	RegPostADCGain0  uint8 = 0x0a
	RegMiscControl   uint8 = 0x0e
	RegDiagControl   uint8 = 0x10
	RegStatus0       uint8 = 0x11
	RegDiagIRQ1      uint8 = 0x15
	RegDiagIRQ2      uint8 = 0x16
	RegAdjust1       uint8 = 0x17
	RegAdjust2       uint8 = 0x18
	RegADCClip       uint8 = 0x19
	RegDCHPFCal      uint8 = 0x1a
)

// RegPostADCGain returns the gain register of channel ch (0..3).
func RegPostADCGain(ch uint8) uint8 { return RegPostADCGain0 + ch }

// RegStatus returns the diagnostic status register of channel ch (0..3).
func RegStatus(ch uint8) uint8 { return RegStatus0 + ch }

// POWER
var (
	FieldPowerUp = regmap.NewBit("PWUP", RegPower, 0)
	FieldReset   = regmap.NewBit("S_RST", RegPower, 7)
)

// PowerResetCommand is the POWER value that starts a software reset.
// The reset bit clears itself.
const PowerResetCommand uint8 = 0x80

// PLL
var (
	FieldMCS     = regmap.Field{Name: "MCS", Reg: RegPLL, Shift: 0, Width: 3}
	FieldClockS  = regmap.NewBit("CLK_S", RegPLL, 4)
	FieldPLLLock = regmap.NewBit("PLL_LOCK", RegPLL, 7)
)

// PLLRelatchValue is the PLL value that must be written back after power-up
// when read: MCLK source at 256 x fs with the lock bit still clear.
const PLLRelatchValue uint8 = 0x41

// BLOCK_POWER_SAI
var (
	FieldLRPolarity = regmap.NewBit("LR_POL", RegBlockPowerSAI, 7)
	FieldBCLKEdge   = regmap.NewBit("BCLK_EDGE", RegBlockPowerSAI, 6)
	FieldLDOEnable  = regmap.NewBit("LDO_EN", RegBlockPowerSAI, 5)
)

// SAI_CTRL0
var (
	FieldFormat  = regmap.Field{Name: "SDATA_FMT", Reg: RegSAICtrl0, Shift: 6, Width: 2}
	FieldSAIMode = regmap.Field{Name: "SAI", Reg: RegSAICtrl0, Shift: 3, Width: 3}
	FieldFS      = regmap.Field{Name: "FS", Reg: RegSAICtrl0, Shift: 0, Width: 3}
)

// SAI_CTRL1
var (
	FieldSlotWidth  = regmap.Field{Name: "SLOT_WIDTH", Reg: RegSAICtrl1, Shift: 5, Width: 2}
	FieldDataWidth  = regmap.NewBit("DATA_WIDTH", RegSAICtrl1, 4)
	FieldLRCLKPulse = regmap.NewBit("LR_MODE", RegSAICtrl1, 3)
	FieldMSB        = regmap.NewBit("SAI_MSB", RegSAICtrl1, 2)
	FieldBCLKRate   = regmap.NewBit("BCLKRATE", RegSAICtrl1, 1)
	FieldMaster     = regmap.NewBit("SAI_MS", RegSAICtrl1, 0)
)

// SAI_CTRL1 field values.
const (
	DataWidth24 uint8 = 0
	DataWidth16 uint8 = 1

	BCLKRate32 uint8 = 0
	BCLKRate16 uint8 = 1
)

// MISC_CONTROL
var (
	FieldMasterMute = regmap.NewBit("MMUTE", RegMiscControl, 4)
	FieldSumMode    = regmap.Field{Name: "SUM_MODE", Reg: RegMiscControl, Shift: 6, Width: 2}
)

// Fields lists every named field, for register decoding in tools.
var Fields = []regmap.Field{
	FieldReset, FieldPowerUp,
	FieldPLLLock, FieldClockS, FieldMCS,
	FieldLRPolarity, FieldBCLKEdge, FieldLDOEnable,
	FieldFormat, FieldSAIMode, FieldFS,
	FieldSlotWidth, FieldDataWidth, FieldLRCLKPulse, FieldMSB, FieldBCLKRate, FieldMaster,
	FieldSumMode, FieldMasterMute,
}

// FieldsOf returns the named fields of register addr in descending bit order.
func FieldsOf(addr uint8) []regmap.Field {
	var out []regmap.Field
	for _, f := range Fields {
		if f.Reg == addr {
			out = append(out, f)
		}
	}
	return out
}
