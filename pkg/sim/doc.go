// Package sim models an ADAU19xx register file for tests and the control
// tool.
//
// A Chip implements regmap.Bus and regmap.ResetLine. It keeps the power-on
// defaults of a register layout, honors the self-clearing software reset,
// refuses all traffic while its reset line is held low, and reports the PLL
// as locked only after the PLL register is written while powered up. Every
// transaction is recorded, and faults can be injected per register.
package sim
