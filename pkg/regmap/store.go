package regmap

import (
	"fmt"
	"sync"
	"time"

	"github.com/adau-codec/adau-go/pkg/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Store is a cached register file in front of a Bus.
type Store struct {
	mu sync.Mutex

	bus      Bus
	max      uint8
	volatile map[uint8]struct{}
	cache    map[uint8]uint8

	cacheOnly bool
	bypass    bool
	dirty     bool

	trace     log.Logger
	sessionID string
	variant   string
}

// NewStore creates a store seeded with cfg.Defaults.
// The store starts with cache-only, bypass and dirty all clear.
func NewStore(bus Bus, cfg Config) (*Store, error) {
	if bus == nil {
		return nil, fmt.Errorf("%w: nil bus", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		bus:       bus,
		max:       cfg.MaxRegister,
		volatile:  make(map[uint8]struct{}, len(cfg.Volatile)),
		cache:     maps.Clone(cfg.Defaults),
		trace:     cfg.Trace,
		sessionID: cfg.SessionID,
		variant:   cfg.Variant,
	}
	if s.cache == nil {
		s.cache = make(map[uint8]uint8)
	}
	for _, addr := range cfg.Volatile {
		s.volatile[addr] = struct{}{}
	}
	return s, nil
}

// Read returns the value of a register.
// Volatile registers and bypassed reads always reach hardware. A cache miss
// on a non-volatile register is filled from hardware, unless the store is
// cache-only.
func (s *Store) Read(addr uint8) (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(addr)
}

// Write sets a register.
// Volatile registers and bypassed writes go straight to hardware without
// touching the cache. Other writes update the cache and, unless the store is
// cache-only, are written through to hardware. A cache-only write marks the
// cache dirty so the next Sync flushes it.
func (s *Store) Write(addr, value uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(addr, value, nil)
}

// UpdateBits replaces the bits of mask in a register with those of value and
// preserves the rest. For a cached register no write is issued when the
// result equals the cached value. Volatile registers and bypassed access
// always write the merged value back.
func (s *Store) UpdateBits(addr, mask, value uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateBits(addr, mask, value)
}

// UpdateFields merges several field values of one register into a single
// UpdateBits. Fields of different registers fail with ErrFieldMismatch.
func (s *Store) UpdateFields(values ...FieldValue) error {
	if len(values) == 0 {
		return nil
	}
	reg, mask, value, err := merge(values)
	if err != nil {
		return err
	}
	return s.UpdateBits(reg, mask, value)
}

// ReadField reads the register holding f and decodes the field.
func (s *Store) ReadField(f Field) (uint8, error) {
	v, err := s.Read(f.Reg)
	if err != nil {
		return 0, err
	}
	return f.Decode(v), nil
}

// ScopedBypass runs fn with bypass forced on and restores the previous
// bypass setting afterwards, including when fn fails or panics.
// The store lock is not held while fn runs.
func (s *Store) ScopedBypass(fn func() error) error {
	s.mu.Lock()
	prev := s.bypass
	s.bypass = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.bypass = prev
		s.mu.Unlock()
	}()

	return fn()
}

// MarkDirty flags the cache as newer than hardware.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Sync writes every cached non-volatile register to hardware in ascending
// address order when the cache is dirty, then clears the dirty flag.
// It does nothing when the cache is clean. On failure the cache stays dirty.
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	for _, addr := range s.cachedAddresses() {
		if err := s.busWrite(addr, s.cache[addr], log.PathBus, nil); err != nil {
			return fmt.Errorf("sync register 0x%02x: %w", addr, err)
		}
	}
	s.dirty = false
	return nil
}

// SetCacheOnly toggles whether non-bypassed writes reach hardware.
func (s *Store) SetCacheOnly(on bool) {
	s.mu.Lock()
	s.cacheOnly = on
	s.mu.Unlock()
}

// CacheOnly reports whether the store is cache-only.
func (s *Store) CacheOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacheOnly
}

// Bypassed reports whether the cache is currently bypassed.
func (s *Store) Bypassed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bypass
}

// Dirty reports whether a Sync is pending.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// IsVolatile reports whether addr is never cached.
func (s *Store) IsVolatile(addr uint8) bool {
	_, ok := s.volatile[addr]
	return ok
}

// Cached returns the cached value of addr without any hardware access.
func (s *Store) Cached(addr uint8) (uint8, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache[addr]
	return v, ok
}

// Snapshot returns the cache contents in ascending address order.
func (s *Store) Snapshot() []Value {
	s.mu.Lock()
	defer s.mu.Unlock()

	addrs := s.cachedAddresses()
	values := make([]Value, 0, len(addrs))
	for _, addr := range addrs {
		values = append(values, Value{Address: addr, Value: s.cache[addr]})
	}
	return values
}

// MaxRegister returns the highest valid register address.
func (s *Store) MaxRegister() uint8 {
	return s.max
}

func (s *Store) cachedAddresses() []uint8 {
	addrs := maps.Keys(s.cache)
	slices.Sort(addrs)
	return addrs
}

func (s *Store) check(addr uint8) error {
	if addr > s.max {
		return fmt.Errorf("%w: 0x%02x (max 0x%02x)", ErrInvalidRegister, addr, s.max)
	}
	return nil
}

func (s *Store) read(addr uint8) (uint8, error) {
	if err := s.check(addr); err != nil {
		return 0, err
	}

	if s.bypass {
		return s.busRead(addr, log.PathBypass)
	}
	if s.IsVolatile(addr) {
		return s.busRead(addr, log.PathBus)
	}
	if v, ok := s.cache[addr]; ok {
		s.emitRegister(log.DirectionRead, log.PathCache, addr, v, nil)
		return v, nil
	}
	if s.cacheOnly {
		return 0, fmt.Errorf("%w: 0x%02x", ErrCacheOnly, addr)
	}

	v, err := s.busRead(addr, log.PathBus)
	if err != nil {
		return 0, err
	}
	s.cache[addr] = v
	return v, nil
}

func (s *Store) write(addr, value uint8, mask *uint8) error {
	if err := s.check(addr); err != nil {
		return err
	}

	if s.bypass {
		return s.busWrite(addr, value, log.PathBypass, mask)
	}
	if s.IsVolatile(addr) {
		return s.busWrite(addr, value, log.PathBus, mask)
	}
	if s.cacheOnly {
		s.cache[addr] = value
		s.dirty = true
		s.emitRegister(log.DirectionWrite, log.PathCache, addr, value, mask)
		return nil
	}

	if err := s.busWrite(addr, value, log.PathBus, mask); err != nil {
		return err
	}
	s.cache[addr] = value
	return nil
}

func (s *Store) updateBits(addr, mask, value uint8) error {
	cur, err := s.read(addr)
	if err != nil {
		return err
	}

	next := (cur &^ mask) | (value & mask)
	if next == cur && !s.bypass && !s.IsVolatile(addr) {
		return nil
	}
	return s.write(addr, next, &mask)
}

func (s *Store) busRead(addr uint8, path log.Path) (uint8, error) {
	v, err := s.bus.ReadRegister(addr)
	if err != nil {
		s.emitError(log.DirectionRead, path, addr, err)
		return 0, fmt.Errorf("%w: read 0x%02x: %w", ErrBus, addr, err)
	}
	s.emitRegister(log.DirectionRead, path, addr, v, nil)
	return v, nil
}

func (s *Store) busWrite(addr, value uint8, path log.Path, mask *uint8) error {
	if err := s.bus.WriteRegister(addr, value); err != nil {
		s.emitError(log.DirectionWrite, path, addr, err)
		return fmt.Errorf("%w: write 0x%02x: %w", ErrBus, addr, err)
	}
	s.emitRegister(log.DirectionWrite, path, addr, value, mask)
	return nil
}

func (s *Store) emitRegister(dir log.Direction, path log.Path, addr, value uint8, mask *uint8) {
	if s.trace == nil {
		return
	}
	s.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.sessionID,
		Direction: dir,
		Path:      path,
		Category:  log.CategoryRegister,
		Variant:   s.variant,
		Register:  &log.RegisterEvent{Address: addr, Value: value, Mask: mask},
	})
}

func (s *Store) emitError(dir log.Direction, path log.Path, addr uint8, err error) {
	if s.trace == nil {
		return
	}
	s.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.sessionID,
		Direction: dir,
		Path:      path,
		Category:  log.CategoryError,
		Variant:   s.variant,
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Address: &addr,
			Context: "register " + dir.String(),
		},
	})
}
