package regmap_test

import (
	"errors"
	"testing"

	"github.com/adau-codec/adau-go/pkg/log"
	"github.com/adau-codec/adau-go/pkg/regmap"
	"github.com/adau-codec/adau-go/pkg/regmap/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type txn struct {
	write bool
	addr  uint8
	value uint8
}

// spyBus is a register file that records every transaction.
type spyBus struct {
	regs    map[uint8]uint8
	txns    []txn
	failOn  map[uint8]error
	readErr error
}

func newSpyBus() *spyBus {
	return &spyBus{regs: make(map[uint8]uint8), failOn: make(map[uint8]error)}
}

func (b *spyBus) ReadRegister(addr uint8) (uint8, error) {
	b.txns = append(b.txns, txn{addr: addr})
	if b.readErr != nil {
		return 0, b.readErr
	}
	return b.regs[addr], nil
}

func (b *spyBus) WriteRegister(addr, value uint8) error {
	b.txns = append(b.txns, txn{write: true, addr: addr, value: value})
	if err := b.failOn[addr]; err != nil {
		return err
	}
	b.regs[addr] = value
	return nil
}

func (b *spyBus) writes() []txn {
	var out []txn
	for _, t := range b.txns {
		if t.write {
			out = append(out, t)
		}
	}
	return out
}

type recorder struct {
	events []log.Event
}

func (r *recorder) Log(e log.Event) { r.events = append(r.events, e) }

func testConfig() regmap.Config {
	return regmap.Config{
		MaxRegister: 0x1a,
		Defaults:    map[uint8]uint8{0x00: 0x00, 0x01: 0x41, 0x05: 0x02, 0x06: 0x00},
		Volatile:    []uint8{0x11, 0x12, 0x13, 0x14, 0x19},
	}
}

func newStore(t *testing.T, bus regmap.Bus) *regmap.Store {
	t.Helper()
	s, err := regmap.NewStore(bus, testConfig())
	require.NoError(t, err)
	return s
}

func TestNewStoreValidation(t *testing.T) {
	_, err := regmap.NewStore(nil, testConfig())
	assert.ErrorIs(t, err, regmap.ErrInvalidConfig)

	cfg := testConfig()
	cfg.Defaults[0x20] = 0x00
	_, err = regmap.NewStore(newSpyBus(), cfg)
	assert.ErrorIs(t, err, regmap.ErrInvalidConfig)

	cfg = testConfig()
	cfg.Defaults[0x11] = 0x00
	_, err = regmap.NewStore(newSpyBus(), cfg)
	assert.ErrorIs(t, err, regmap.ErrInvalidConfig)
}

func TestStoreInitialFlags(t *testing.T) {
	s := newStore(t, newSpyBus())
	assert.False(t, s.CacheOnly())
	assert.False(t, s.Bypassed())
	assert.False(t, s.Dirty())
	assert.Equal(t, uint8(0x1a), s.MaxRegister())

	v, ok := s.Cached(0x01)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x41), v)
}

func TestReadCachedRegisterSkipsBus(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)

	v, err := s.Read(0x01)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x41), v)
	assert.Empty(t, bus.txns)
}

func TestReadVolatileAlwaysHitsBus(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)
	s.SetCacheOnly(true)

	for _, addr := range []uint8{0x11, 0x12, 0x13, 0x14, 0x19} {
		bus.regs[addr] = addr ^ 0xff
		v, err := s.Read(addr)
		require.NoError(t, err)
		assert.Equal(t, addr^0xff, v)
		assert.True(t, s.IsVolatile(addr))
		_, cached := s.Cached(addr)
		assert.False(t, cached)
	}
	assert.Len(t, bus.txns, 5)
}

func TestReadMissFillsCache(t *testing.T) {
	bus := newSpyBus()
	bus.regs[0x0e] = 0x02
	s := newStore(t, bus)

	v, err := s.Read(0x0e)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x02), v)

	_, err = s.Read(0x0e)
	require.NoError(t, err)
	assert.Len(t, bus.txns, 1)
}

func TestReadMissWhileCacheOnly(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)
	s.SetCacheOnly(true)

	_, err := s.Read(0x0e)
	assert.ErrorIs(t, err, regmap.ErrCacheOnly)
	assert.Empty(t, bus.txns)
}

func TestInvalidRegister(t *testing.T) {
	s := newStore(t, newSpyBus())

	_, err := s.Read(0x1b)
	assert.ErrorIs(t, err, regmap.ErrInvalidRegister)
	assert.ErrorIs(t, s.Write(0x2c, 0x00), regmap.ErrInvalidRegister)
	assert.ErrorIs(t, s.UpdateBits(0xff, 0x01, 0x01), regmap.ErrInvalidRegister)
}

func TestWriteThrough(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)

	require.NoError(t, s.Write(0x05, 0x42))
	assert.Equal(t, []txn{{write: true, addr: 0x05, value: 0x42}}, bus.txns)

	v, ok := s.Cached(0x05)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x42), v)
}

func TestWriteCacheOnlyStagesValue(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)
	s.SetCacheOnly(true)

	require.NoError(t, s.Write(0x05, 0x42))
	v, err := s.Read(0x05)
	require.NoError(t, err)

	assert.Equal(t, uint8(0x42), v)
	assert.Empty(t, bus.txns)
	assert.True(t, s.Dirty())
}

func TestWriteVolatileIgnoresCacheOnly(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)
	s.SetCacheOnly(true)

	require.NoError(t, s.Write(0x19, 0xff))
	assert.Equal(t, []txn{{write: true, addr: 0x19, value: 0xff}}, bus.txns)
}

func TestWriteBusFailureLeavesCache(t *testing.T) {
	bus := newSpyBus()
	bus.failOn[0x05] = errors.New("nack")
	s := newStore(t, bus)

	err := s.Write(0x05, 0x42)
	assert.ErrorIs(t, err, regmap.ErrBus)

	v, _ := s.Cached(0x05)
	assert.Equal(t, uint8(0x02), v)
}

func TestBypassSkipsCache(t *testing.T) {
	bus := newSpyBus()
	bus.regs[0x01] = 0xc1
	s := newStore(t, bus)
	s.SetCacheOnly(true)

	err := s.ScopedBypass(func() error {
		v, err := s.Read(0x01)
		if err != nil {
			return err
		}
		assert.Equal(t, uint8(0xc1), v)
		return s.Write(0x00, 0x80)
	})
	require.NoError(t, err)

	assert.Len(t, bus.txns, 2)
	v, _ := s.Cached(0x00)
	assert.Equal(t, uint8(0x00), v, "bypassed write must not reach the cache")
	v, _ = s.Cached(0x01)
	assert.Equal(t, uint8(0x41), v, "bypassed read must not reach the cache")
	assert.True(t, s.CacheOnly())
}

func TestScopedBypassRestores(t *testing.T) {
	s := newStore(t, newSpyBus())
	boom := errors.New("boom")

	err := s.ScopedBypass(func() error {
		assert.True(t, s.Bypassed())
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Bypassed())

	require.NoError(t, s.ScopedBypass(func() error { return nil }))
	assert.False(t, s.Bypassed())

	assert.Panics(t, func() {
		_ = s.ScopedBypass(func() error { panic("inner") })
	})
	assert.False(t, s.Bypassed())
}

func TestScopedBypassNested(t *testing.T) {
	s := newStore(t, newSpyBus())

	err := s.ScopedBypass(func() error {
		err := s.ScopedBypass(func() error { return nil })
		assert.True(t, s.Bypassed(), "outer bypass must survive inner scope")
		return err
	})
	require.NoError(t, err)
	assert.False(t, s.Bypassed())
}

func TestUpdateBitsPreservesOtherBits(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)

	require.NoError(t, s.UpdateBits(0x01, 0x07, 0x03))
	v, _ := s.Cached(0x01)
	assert.Equal(t, uint8(0x43), v)
	assert.Equal(t, []txn{{write: true, addr: 0x01, value: 0x43}}, bus.txns)
}

func TestUpdateBitsSkipsUnchanged(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)

	require.NoError(t, s.UpdateBits(0x01, 0x40, 0x40))
	assert.Empty(t, bus.txns)
}

func TestUpdateBitsVolatileReadsHardware(t *testing.T) {
	bus := newSpyBus()
	bus.regs[0x19] = 0xf0
	s := newStore(t, bus)

	require.NoError(t, s.UpdateBits(0x19, 0x0f, 0x01))
	assert.Equal(t, []txn{{addr: 0x19}, {write: true, addr: 0x19, value: 0xf1}}, bus.txns)
}

func TestUpdateBitsVolatileWritesUnchanged(t *testing.T) {
	bus := newSpyBus()
	bus.regs[0x19] = 0x01
	s := newStore(t, bus)

	require.NoError(t, s.UpdateBits(0x19, 0x01, 0x01))
	assert.Equal(t, []txn{{addr: 0x19}, {write: true, addr: 0x19, value: 0x01}}, bus.txns)
}

func TestUpdateBitsBypassWritesUnchanged(t *testing.T) {
	bus := newSpyBus()
	bus.regs[0x01] = 0x41
	s := newStore(t, bus)

	require.NoError(t, s.ScopedBypass(func() error {
		return s.UpdateBits(0x01, 0x40, 0x40)
	}))
	assert.Equal(t, []txn{{addr: 0x01}, {write: true, addr: 0x01, value: 0x41}}, bus.txns)
}

func TestUpdateBitsBusReadFailure(t *testing.T) {
	bus := newSpyBus()
	bus.readErr = errors.New("timeout")
	s := newStore(t, bus)

	err := s.UpdateBits(0x19, 0x01, 0x01)
	assert.ErrorIs(t, err, regmap.ErrBus)
	assert.Len(t, bus.writes(), 0)
}

func TestUpdateFields(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)

	master := regmap.NewBit("MASTER", 0x06, 0)
	pulse := regmap.NewBit("LRCLK_PULSE", 0x06, 3)
	require.NoError(t, s.UpdateFields(master.SetBool(true), pulse.SetBool(true)))

	v, err := s.ReadField(pulse)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), v)
	assert.Equal(t, []txn{{write: true, addr: 0x06, value: 0x09}}, bus.txns)

	require.NoError(t, s.UpdateFields())
	assert.ErrorIs(t, s.UpdateFields(master.Set(1), regmap.NewBit("PWUP", 0x00, 0).Set(1)), regmap.ErrFieldMismatch)
}

func TestSyncWritesAscendingOnceWhenDirty(t *testing.T) {
	bus := newSpyBus()
	s := newStore(t, bus)

	require.NoError(t, s.Sync())
	assert.Empty(t, bus.txns, "clean cache must not sync")

	s.SetCacheOnly(true)
	require.NoError(t, s.Write(0x06, 0x01))
	require.NoError(t, s.Write(0x03, 0x7d))
	s.MarkDirty()
	s.SetCacheOnly(false)

	require.NoError(t, s.Sync())
	assert.Equal(t, []txn{
		{write: true, addr: 0x00, value: 0x00},
		{write: true, addr: 0x01, value: 0x41},
		{write: true, addr: 0x03, value: 0x7d},
		{write: true, addr: 0x05, value: 0x02},
		{write: true, addr: 0x06, value: 0x01},
	}, bus.txns)
	assert.False(t, s.Dirty())

	require.NoError(t, s.Sync())
	assert.Len(t, bus.txns, 5)
}

func TestSyncFailureKeepsDirty(t *testing.T) {
	bus := newSpyBus()
	bus.failOn[0x05] = errors.New("nack")
	s := newStore(t, bus)
	s.MarkDirty()

	err := s.Sync()
	assert.ErrorIs(t, err, regmap.ErrBus)
	assert.True(t, s.Dirty())
}

func TestSnapshotAscending(t *testing.T) {
	s := newStore(t, newSpyBus())

	assert.Equal(t, []regmap.Value{
		{Address: 0x00, Value: 0x00},
		{Address: 0x01, Value: 0x41},
		{Address: 0x05, Value: 0x02},
		{Address: 0x06, Value: 0x00},
	}, s.Snapshot())
}

func TestStoreWithMockBus(t *testing.T) {
	bus := mocks.NewMockBus(t)
	bus.EXPECT().ReadRegister(uint8(0x12)).Return(uint8(0x5a), nil).Once()
	bus.EXPECT().WriteRegister(uint8(0x00), uint8(0x80)).Return(nil).Once()

	s := newStore(t, bus)

	v, err := s.Read(0x12)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x5a), v)

	require.NoError(t, s.ScopedBypass(func() error {
		return s.Write(0x00, 0x80)
	}))
}

func TestStoreBusErrorWrapsCause(t *testing.T) {
	cause := errors.New("i2c nack")
	bus := mocks.NewMockBus(t)
	bus.EXPECT().WriteRegister(mock.Anything, mock.Anything).Return(cause).Once()

	s := newStore(t, bus)
	err := s.Write(0x05, 0x00)
	assert.ErrorIs(t, err, regmap.ErrBus)
	assert.ErrorIs(t, err, cause)
}

func TestStoreTrace(t *testing.T) {
	bus := newSpyBus()
	bus.failOn[0x06] = errors.New("nack")
	rec := &recorder{}

	cfg := testConfig()
	cfg.Trace = rec
	cfg.SessionID = "sess"
	cfg.Variant = "adau1977"
	s, err := regmap.NewStore(bus, cfg)
	require.NoError(t, err)

	_, _ = s.Read(0x01)
	_ = s.UpdateBits(0x00, 0x01, 0x01)
	_ = s.ScopedBypass(func() error { return s.Write(0x00, 0x80) })
	_ = s.Write(0x06, 0x01)

	require.Len(t, rec.events, 5)

	assert.Equal(t, log.PathCache, rec.events[0].Path)
	assert.Equal(t, log.DirectionRead, rec.events[0].Direction)

	assert.Equal(t, log.PathCache, rec.events[1].Path, "read half of update")
	assert.Equal(t, log.PathBus, rec.events[2].Path)
	require.NotNil(t, rec.events[2].Register.Mask)
	assert.Equal(t, uint8(0x01), *rec.events[2].Register.Mask)

	assert.Equal(t, log.PathBypass, rec.events[3].Path)
	assert.Equal(t, uint8(0x80), rec.events[3].Register.Value)

	assert.Equal(t, log.CategoryError, rec.events[4].Category)
	assert.Equal(t, "sess", rec.events[4].SessionID)
	assert.Equal(t, "adau1977", rec.events[4].Variant)
	require.NotNil(t, rec.events[4].Error.Address)
	assert.Equal(t, uint8(0x06), *rec.events[4].Error.Address)
}
