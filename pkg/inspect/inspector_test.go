package inspect

import (
	"errors"
	"testing"

	"github.com/adau-codec/adau-go/pkg/codec"
	"github.com/adau-codec/adau-go/pkg/log"
	"github.com/adau-codec/adau-go/pkg/regmap"
	"github.com/adau-codec/adau-go/pkg/sim"
)

// createTestSession attaches an ADAU1977 session to a simulated chip.
func createTestSession(t *testing.T) (*codec.Session, *sim.Chip) {
	t.Helper()
	v, err := codec.LookupVariant("adau1977")
	if err != nil {
		t.Fatal(err)
	}
	chip := sim.New(v.RegmapConfig())
	s, err := codec.Attach(chip, codec.DefaultConfig())
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	chip.ResetTransactions()
	return s, chip
}

func TestNewInspector(t *testing.T) {
	s, _ := createTestSession(t)
	insp := NewInspector(s.Registers())

	if insp == nil {
		t.Fatal("NewInspector returned nil")
	}
	if insp.Store() != s.Registers() {
		t.Error("Store() should return the underlying store")
	}
}

func TestInspectorReadRange(t *testing.T) {
	s, chip := createTestSession(t)
	insp := NewInspector(s.Registers())

	cmd, _ := ParseDebugCommand("0001a")
	accesses := insp.Execute(cmd)

	if len(accesses) != 0x1b {
		t.Fatalf("got %d accesses, want %d", len(accesses), 0x1b)
	}
	for i, a := range accesses {
		if a.Address != uint8(i) {
			t.Errorf("access %d address = 0x%02x", i, a.Address)
		}
		if a.Err != nil {
			t.Errorf("read 0x%02x: %v", a.Address, a.Err)
		}
		if a.Value != chip.Peek(a.Address) {
			t.Errorf("read 0x%02x = 0x%02x, chip has 0x%02x", a.Address, a.Value, chip.Peek(a.Address))
		}
	}

	// PLL reads back locked, which only the bus can tell.
	if accesses[codec.RegPLL].Value&0x80 == 0 {
		t.Errorf("PLL = 0x%02x, want lock bit", accesses[codec.RegPLL].Value)
	}
	if got := len(chip.Transactions()); got != 0x1b {
		t.Errorf("chip saw %d transactions, want %d", got, 0x1b)
	}
}

func TestInspectorWriteBypassesCache(t *testing.T) {
	s, chip := createTestSession(t)
	insp := NewInspector(s.Registers())

	cmd, _ := ParseDebugCommand("10e12")
	accesses := insp.Execute(cmd)

	if len(accesses) != 1 || accesses[0].Err != nil {
		t.Fatalf("Execute = %+v", accesses)
	}
	if accesses[0].Direction != log.DirectionWrite {
		t.Errorf("Direction = %v, want WRITE", accesses[0].Direction)
	}
	if chip.Peek(codec.RegMiscControl) != 0x12 {
		t.Errorf("chip MISC = 0x%02x, want 0x12", chip.Peek(codec.RegMiscControl))
	}
	if v, _ := s.Registers().Cached(codec.RegMiscControl); v != 0x02 {
		t.Errorf("cached MISC = 0x%02x, want 0x02", v)
	}
	if s.Registers().Bypassed() {
		t.Error("store left in bypass")
	}
}

func TestInspectorRejectsToolOnlyRegisters(t *testing.T) {
	s, chip := createTestSession(t)
	insp := NewInspector(s.Registers())

	a := insp.Read(0x2c)
	if !errors.Is(a.Err, regmap.ErrInvalidRegister) {
		t.Errorf("Read(0x2c) error = %v, want ErrInvalidRegister", a.Err)
	}
	if len(chip.Transactions()) != 0 {
		t.Error("rejected read must not reach the bus")
	}
}

func TestInspectorReadRangeStopsAtTop(t *testing.T) {
	s, _ := createTestSession(t)
	insp := NewInspector(s.Registers())

	accesses := insp.Execute(Command{Register: 0xfe, Value: 0x10})
	if len(accesses) != 2 {
		t.Fatalf("got %d accesses, want 2", len(accesses))
	}
	if accesses[1].Address != 0xff {
		t.Errorf("last address = 0x%02x, want 0xff", accesses[1].Address)
	}
}

func TestInspectorReadBusError(t *testing.T) {
	s, chip := createTestSession(t)
	insp := NewInspector(s.Registers())

	chip.InjectFault(sim.Fault{Op: sim.OpRead, Address: codec.RegPower, Count: 1})
	a := insp.Read(codec.RegPower)
	if !errors.Is(a.Err, regmap.ErrBus) {
		t.Errorf("error = %v, want ErrBus", a.Err)
	}
}

func TestInspectorDump(t *testing.T) {
	s, _ := createTestSession(t)
	insp := NewInspector(s.Registers())

	dump := insp.Dump()
	if len(dump) == 0 {
		t.Fatal("Dump returned nothing")
	}

	byAddr := map[uint8]RegisterInfo{}
	for _, info := range dump {
		if info.Volatile {
			t.Errorf("volatile register 0x%02x in dump", info.Address)
		}
		byAddr[info.Address] = info
	}

	power, ok := byAddr[codec.RegPower]
	if !ok {
		t.Fatal("POWER missing from dump")
	}
	if power.Name != "POWER" || power.Value != 0x01 {
		t.Errorf("POWER = %+v", power)
	}

	ctrl1 := byAddr[codec.RegSAICtrl1]
	if len(ctrl1.Fields) != 6 {
		t.Fatalf("SAI_CTRL1 has %d fields, want 6", len(ctrl1.Fields))
	}
	if ctrl1.Fields[0].Name != "SLOT_WIDTH" || ctrl1.Fields[0].Width != 2 {
		t.Errorf("first field = %+v", ctrl1.Fields[0])
	}
}

func TestDescribe(t *testing.T) {
	info := Describe(codec.RegSAICtrl0, 0x42)
	if info.Name != "SAI_CTRL0" {
		t.Errorf("Name = %q", info.Name)
	}
	want := []FieldInfo{
		{Name: "SDATA_FMT", Width: 2, Value: 1},
		{Name: "SAI", Width: 3, Value: 0},
		{Name: "FS", Width: 3, Value: 2},
	}
	if len(info.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(info.Fields), len(want))
	}
	for i := range want {
		if info.Fields[i] != want[i] {
			t.Errorf("field %d = %+v, want %+v", i, info.Fields[i], want[i])
		}
	}

	if clip := Describe(codec.RegADCClip, 0); !clip.Volatile || len(clip.Fields) != 0 {
		t.Errorf("ADC_CLIP = %+v", clip)
	}
}
