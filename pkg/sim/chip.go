package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/adau-codec/adau-go/pkg/regmap"
)

// ErrNoAck is returned for transactions the chip does not acknowledge.
var ErrNoAck = errors.New("no acknowledge")

// Register layout constants the model relies on.
const (
	regPower uint8 = 0x00
	regPLL   uint8 = 0x01

	powerReset uint8 = 0x80
	powerUp    uint8 = 0x01
	pllLock    uint8 = 0x80
)

// Op is a transaction direction.
type Op uint8

const (
	OpRead Op = iota
	OpWrite
)

// String returns "read" or "write".
func (o Op) String() string {
	if o == OpWrite {
		return "write"
	}
	return "read"
}

// Transaction is one recorded bus access.
type Transaction struct {
	Op      Op
	Address uint8
	Value   uint8
	Err     error
}

func (t Transaction) String() string {
	s := fmt.Sprintf("%s 0x%02x=0x%02x", t.Op, t.Address, t.Value)
	if t.Err != nil {
		s += " (" + t.Err.Error() + ")"
	}
	return s
}

// Fault makes matching transactions fail. Count limits how many times it
// fires; zero means forever.
type Fault struct {
	Op      Op
	Address uint8
	Err     error
	Count   int
}

// Chip is an in-memory ADAU19xx.
type Chip struct {
	mu sync.Mutex

	layout   regmap.Config
	volatile map[uint8]bool
	regs     map[uint8]uint8

	inReset bool
	locked  bool

	txns   []Transaction
	faults []*Fault
}

// New creates a chip with the given register layout, out of reset.
func New(layout regmap.Config) *Chip {
	c := &Chip{
		layout:   layout,
		volatile: make(map[uint8]bool, len(layout.Volatile)),
	}
	for _, addr := range layout.Volatile {
		c.volatile[addr] = true
	}
	c.loadDefaults()
	return c
}

// NewWithResetLine creates a chip whose reset pin is wired up and starts low,
// so the chip ignores the bus until SetLevel(true).
func NewWithResetLine(layout regmap.Config) *Chip {
	c := New(layout)
	c.inReset = true
	return c
}

func (c *Chip) loadDefaults() {
	c.regs = make(map[uint8]uint8, len(c.layout.Defaults))
	for addr, v := range c.layout.Defaults {
		c.regs[addr] = v
	}
	c.locked = false
}

// ReadRegister implements regmap.Bus.
func (c *Chip) ReadRegister(addr uint8) (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(OpRead, addr); err != nil {
		c.record(OpRead, addr, 0, err)
		return 0, err
	}

	v := c.regs[addr]
	if addr == regPLL && c.locked {
		v |= pllLock
	}
	c.record(OpRead, addr, v, nil)
	return v, nil
}

// WriteRegister implements regmap.Bus.
func (c *Chip) WriteRegister(addr, value uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.check(OpWrite, addr); err != nil {
		c.record(OpWrite, addr, value, err)
		return err
	}
	c.record(OpWrite, addr, value, nil)

	switch addr {
	case regPower:
		if value&powerReset != 0 {
			c.loadDefaults()
			return nil
		}
		c.regs[addr] = value
		if value&powerUp == 0 {
			c.locked = false
		}
	case regPLL:
		c.regs[addr] = value &^ pllLock
		c.locked = c.regs[regPower]&powerUp != 0
	default:
		c.regs[addr] = value
	}
	return nil
}

// SetLevel implements regmap.ResetLine. Driving the line low resets the
// register file and makes the chip ignore the bus.
func (c *Chip) SetLevel(high bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !high {
		c.loadDefaults()
	}
	c.inReset = !high
}

func (c *Chip) check(op Op, addr uint8) error {
	if c.inReset {
		return fmt.Errorf("%w: chip held in reset", ErrNoAck)
	}
	if addr > c.layout.MaxRegister {
		return fmt.Errorf("%w: register 0x%02x", ErrNoAck, addr)
	}
	for i, f := range c.faults {
		if f.Op != op || f.Address != addr {
			continue
		}
		if f.Count > 0 {
			f.Count--
			if f.Count == 0 {
				c.faults = append(c.faults[:i], c.faults[i+1:]...)
			}
		}
		return f.Err
	}
	return nil
}

func (c *Chip) record(op Op, addr, value uint8, err error) {
	c.txns = append(c.txns, Transaction{Op: op, Address: addr, Value: value, Err: err})
}

// InjectFault adds a fault.
func (c *Chip) InjectFault(f Fault) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Err == nil {
		f.Err = ErrNoAck
	}
	c.faults = append(c.faults, &f)
}

// ClearFaults removes all injected faults.
func (c *Chip) ClearFaults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faults = nil
}

// Transactions returns a copy of the recorded transactions.
func (c *Chip) Transactions() []Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Transaction(nil), c.txns...)
}

// ResetTransactions clears the transaction record.
func (c *Chip) ResetTransactions() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txns = nil
}

// Peek returns a register value without recording a transaction.
func (c *Chip) Peek(addr uint8) uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.regs[addr]
	if addr == regPLL && c.locked {
		v |= pllLock
	}
	return v
}

// Poke sets a register without recording a transaction, e.g. to raise a
// status or clip bit.
func (c *Chip) Poke(addr, value uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regs[addr] = value
}

// PLLLocked reports whether the PLL is locked.
func (c *Chip) PLLLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// InReset reports whether the reset line currently holds the chip.
func (c *Chip) InReset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inReset
}

var (
	_ regmap.Bus       = (*Chip)(nil)
	_ regmap.ResetLine = (*Chip)(nil)
)
