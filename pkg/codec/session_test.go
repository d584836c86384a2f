package codec_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/adau-codec/adau-go/pkg/clock"
	"github.com/adau-codec/adau-go/pkg/codec"
	"github.com/adau-codec/adau-go/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []log.Event
}

func (r *recorder) Log(e log.Event) { r.events = append(r.events, e) }

func (r *recorder) states(entity log.StateEntity) []string {
	var out []string
	for _, e := range r.events {
		if e.StateChange != nil && e.StateChange.Entity == entity {
			out = append(out, e.StateChange.NewState)
		}
	}
	return out
}

func TestConfigValidate(t *testing.T) {
	cfg := codec.DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := []func(c *codec.Config){
		func(c *codec.Config) { c.Variant = "" },
		func(c *codec.Config) { c.ClockSource = clock.Source(7) },
		func(c *codec.Config) { c.MaxControllerRate = 0 },
		func(c *codec.Config) { c.MaxControllerRate = 384000 },
	}
	for i, mutate := range bad {
		c := codec.DefaultConfig()
		mutate(&c)
		assert.ErrorIs(t, c.Validate(), codec.ErrInvalidConfig, "case %d", i)
	}
}

func TestLookupVariant(t *testing.T) {
	for _, name := range []string{"adau1977", "ADAU1978", "Adau1979"} {
		v, err := codec.LookupVariant(name)
		require.NoError(t, err)
		assert.Equal(t, 4, v.Channels)
		assert.Equal(t, codec.RegDCHPFCal, v.MaxRegister)
	}

	v, _ := codec.LookupVariant("adau1977")
	assert.True(t, v.MicBias)

	_, err := codec.LookupVariant("adau1761")
	assert.ErrorIs(t, err, codec.ErrUnknownVariant)
}

func TestFieldsOf(t *testing.T) {
	fields := codec.FieldsOf(codec.RegSAICtrl1)
	require.Len(t, fields, 6)
	assert.Equal(t, "SLOT_WIDTH", fields[0].Name)
	assert.Equal(t, "SAI_MS", fields[5].Name)
	assert.Empty(t, codec.FieldsOf(codec.RegADCClip))
}

func TestSessionTrace(t *testing.T) {
	rec := &recorder{}
	cfg := codec.DefaultConfig()
	cfg.Trace = rec

	s, _ := attach(t, cfg)
	_, err := s.SetReferenceClock(clock.SourceMCLK, 12288000)
	require.NoError(t, err)
	require.NoError(t, s.PowerDisable())

	assert.Equal(t, []string{"RESETTING", "AWAITING_LOCK", "ENABLED", "DISABLED"}, rec.states(log.StateEntityPower))
	assert.Equal(t, []string{"mclk@12288000"}, rec.states(log.StateEntityClock))

	var registers int
	for _, e := range rec.events {
		assert.Equal(t, s.ID(), e.SessionID)
		assert.Equal(t, "adau1977", e.Variant)
		if e.Category == log.CategoryRegister {
			registers++
		}
	}
	assert.Positive(t, registers)
}

func TestSessionDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	cfg := codec.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, _ := attach(t, cfg)
	out := buf.String()
	assert.True(t, strings.Contains(out, "power state"), out)
	assert.True(t, strings.Contains(out, "session="+s.ID()), out)
	assert.True(t, strings.Contains(out, "pll relatch"), out)
}

func TestDetachBlocksOperations(t *testing.T) {
	s, _ := attach(t, codec.DefaultConfig())
	require.NoError(t, s.Detach())

	assert.Equal(t, codec.StateDisabled, s.State())
	assert.ErrorIs(t, s.Mute(true), codec.ErrDetached)
	_, err := s.SetReferenceClock(clock.SourceMCLK, 12288000)
	assert.ErrorIs(t, err, codec.ErrDetached)
	assert.NoError(t, s.PowerDisable())
}
