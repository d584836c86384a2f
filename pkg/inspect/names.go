package inspect

//go:generate go run ../../cmd/adau-regsgen -input ../../docs/registers.yaml -output names_gen.go -package inspect

import (
	"strings"
)

// RegisterDef describes one register known to the debug tools.
type RegisterDef struct {
	Address     uint8
	Name        string
	Description string

	// Volatile registers are never cached.
	Volatile bool

	// ToolOnly registers are outside the driver's register map. They have
	// a name for display but the store rejects access to them.
	ToolOnly bool
}

// Name tables for resolving register names to addresses.
// Tables are populated by generated code in names_gen.go.
var (
	registerDefs   []RegisterDef
	registerNames  map[string]uint8
	registerByAddr map[uint8]RegisterDef
)

// namePrefix is accepted in front of register names, so names copied from
// the chip datasheet or driver sources resolve too.
const namePrefix = "adau19xx_reg_"

func init() {
	registerDefs = generatedRegisters()
	registerNames = make(map[string]uint8, len(registerDefs))
	registerByAddr = make(map[uint8]RegisterDef, len(registerDefs))
	for _, def := range registerDefs {
		registerNames[strings.ToLower(def.Name)] = def.Address
		registerByAddr[def.Address] = def
	}
}

// ResolveRegisterName resolves a register name to its address (case-insensitive).
func ResolveRegisterName(name string) (uint8, bool) {
	lname := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), namePrefix)
	addr, ok := registerNames[lname]
	return addr, ok
}

// RegisterName returns the name of the register at addr, or "" if unknown.
func RegisterName(addr uint8) string {
	return registerByAddr[addr].Name
}

// LookupRegister returns the definition of the register at addr.
func LookupRegister(addr uint8) (RegisterDef, bool) {
	def, ok := registerByAddr[addr]
	return def, ok
}

// Registers returns all known registers in address order.
func Registers() []RegisterDef {
	out := make([]RegisterDef, len(registerDefs))
	copy(out, registerDefs)
	return out
}
