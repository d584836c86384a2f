package inspect

import (
	"github.com/adau-codec/adau-go/pkg/codec"
	"github.com/adau-codec/adau-go/pkg/log"
	"github.com/adau-codec/adau-go/pkg/regmap"
)

// Inspector provides debug access to a session's register store.
// Reads and writes issued through the Inspector bypass the cache.
type Inspector struct {
	regs *regmap.Store
}

// NewInspector creates a new Inspector for the given register store.
func NewInspector(regs *regmap.Store) *Inspector {
	return &Inspector{regs: regs}
}

// Store returns the underlying register store.
func (i *Inspector) Store() *regmap.Store {
	return i.regs
}

// Access is the outcome of one debug transaction.
type Access struct {
	Direction log.Direction
	Address   uint8
	Value     uint8
	Err       error
}

// RegisterInfo represents a register value for display.
type RegisterInfo struct {
	Address  uint8
	Name     string
	Value    uint8
	Volatile bool
	Fields   []FieldInfo
}

// FieldInfo represents a decoded register field for display.
type FieldInfo struct {
	Name  string
	Width uint8
	Value uint8
}

// Read reads a register from hardware, bypassing the cache.
func (i *Inspector) Read(addr uint8) Access {
	a := Access{Direction: log.DirectionRead, Address: addr}
	a.Err = i.regs.ScopedBypass(func() error {
		v, err := i.regs.Read(addr)
		a.Value = v
		return err
	})
	return a
}

// Write writes a register in hardware, bypassing the cache. The cached
// value is left as it was.
func (i *Inspector) Write(addr, value uint8) Access {
	a := Access{Direction: log.DirectionWrite, Address: addr, Value: value}
	a.Err = i.regs.ScopedBypass(func() error {
		return i.regs.Write(addr, value)
	})
	return a
}

// Execute runs a debug command and returns one Access per transaction.
// Read ranges stop at register 0xff.
func (i *Inspector) Execute(cmd Command) []Access {
	if cmd.Write {
		return []Access{i.Write(cmd.Register, cmd.Value)}
	}

	var out []Access
	for n := 0; n <= int(cmd.Value) && int(cmd.Register)+n <= 0xff; n++ {
		out = append(out, i.Read(cmd.Register+uint8(n)))
	}
	return out
}

// Dump returns every cached register with its fields decoded.
// Volatile registers are never cached and do not appear.
func (i *Inspector) Dump() []RegisterInfo {
	values := i.regs.Snapshot()
	out := make([]RegisterInfo, 0, len(values))
	for _, v := range values {
		out = append(out, Describe(v.Address, v.Value))
	}
	return out
}

// Describe decodes value as the content of the register at addr.
func Describe(addr, value uint8) RegisterInfo {
	def, _ := LookupRegister(addr)
	info := RegisterInfo{
		Address:  addr,
		Name:     def.Name,
		Value:    value,
		Volatile: def.Volatile,
	}
	for _, f := range codec.FieldsOf(addr) {
		info.Fields = append(info.Fields, FieldInfo{
			Name:  f.Name,
			Width: f.Width,
			Value: f.Decode(value),
		})
	}
	return info
}
