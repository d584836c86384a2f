package inspect

import (
	"fmt"
	"strings"

	"github.com/adau-codec/adau-go/pkg/log"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowFields includes decoded register fields
	ShowFields bool

	// ShowBinary includes the binary form of register values
	ShowBinary bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowFields:  true,
		ShowBinary:  false,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// regLabel renders an address as REG[0x05]:SAI_CTRL0, dropping the name for
// unknown registers.
func regLabel(addr uint8) string {
	if name := RegisterName(addr); name != "" {
		return fmt.Sprintf("REG[0x%02x]:%s", addr, name)
	}
	return fmt.Sprintf("REG[0x%02x]", addr)
}

// FormatAccess formats the outcome of one debug transaction.
func (f *Formatter) FormatAccess(a Access) string {
	op := "read"
	if a.Direction == log.DirectionWrite {
		op = "write"
	}
	if a.Err != nil {
		return fmt.Sprintf("%s %s failed: %v", regLabel(a.Address), op, a.Err)
	}
	return fmt.Sprintf("%s %s %s", regLabel(a.Address), op, f.FormatByte(a.Value))
}

// FormatAccesses formats a sequence of transactions, one per line.
func (f *Formatter) FormatAccesses(accesses []Access) string {
	var sb strings.Builder
	for _, a := range accesses {
		sb.WriteString(f.FormatAccess(a))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatByte formats a register value.
func (f *Formatter) FormatByte(v uint8) string {
	if f.ShowBinary {
		return fmt.Sprintf("0x%02x (%d) [%08b]", v, v, v)
	}
	return fmt.Sprintf("0x%02x (%d)", v, v)
}

// FormatRegister formats a register and, if enabled, its fields.
func (f *Formatter) FormatRegister(info RegisterInfo) string {
	var sb strings.Builder
	name := info.Name
	if name == "" {
		name = "?"
	}
	sb.WriteString(fmt.Sprintf("0x%02x %-16s = %s", info.Address, name, f.FormatByte(info.Value)))
	if info.Volatile {
		sb.WriteString(" volatile")
	}
	sb.WriteString("\n")

	if f.ShowFields {
		for _, field := range info.Fields {
			sb.WriteString(f.Indent(1, f.formatField(field)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (f *Formatter) formatField(field FieldInfo) string {
	if field.Width == 1 {
		return fmt.Sprintf("%s: %d", field.Name, field.Value)
	}
	return fmt.Sprintf("%s: %d (%0*b)", field.Name, field.Value, int(field.Width), field.Value)
}

// FormatDump formats a register dump.
func (f *Formatter) FormatDump(infos []RegisterInfo) string {
	if len(infos) == 0 {
		return f.Indent(1, "(cache empty)") + "\n"
	}
	var sb strings.Builder
	for _, info := range infos {
		sb.WriteString(f.FormatRegister(info))
	}
	return sb.String()
}
