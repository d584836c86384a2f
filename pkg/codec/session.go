package codec

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/adau-codec/adau-go/pkg/clock"
	"github.com/adau-codec/adau-go/pkg/daifmt"
	"github.com/adau-codec/adau-go/pkg/log"
	"github.com/adau-codec/adau-go/pkg/regmap"
	"github.com/google/uuid"
)

// Session is the control state of one attached chip.
type Session struct {
	mu sync.Mutex

	id      string
	variant Variant
	regs    *regmap.Store
	reset   regmap.ResetLine
	logger  *slog.Logger
	trace   log.Logger

	state    PowerState
	detached bool

	source      clock.Source
	sysclk      uint32
	constraints clock.RateSet

	format         *daifmt.Format
	controller     bool
	rightJustified bool
	slotWidth      int

	maxControllerRate uint32
}

// NewSession creates a powered-down session for the chip behind bus.
// The register store starts cache-only, so writes are staged until
// PowerEnable.
func NewSession(bus regmap.Bus, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	variant, _ := LookupVariant(cfg.Variant)

	s := &Session{
		id:                uuid.New().String(),
		variant:           variant,
		reset:             cfg.ResetLine,
		logger:            cfg.Logger,
		trace:             cfg.Trace,
		source:            cfg.ClockSource,
		maxControllerRate: cfg.MaxControllerRate,
	}

	rcfg := variant.RegmapConfig()
	rcfg.Trace = cfg.Trace
	rcfg.SessionID = s.id
	regs, err := regmap.NewStore(bus, rcfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	regs.SetCacheOnly(true)
	s.regs = regs

	s.debugLog("session created", "variant", variant.Name, "source", cfg.ClockSource.String())
	return s, nil
}

// Attach creates a session and powers the chip up.
// If power-up fails the chip is powered down again and the error returned.
func Attach(bus regmap.Bus, cfg Config) (*Session, error) {
	s, err := NewSession(bus, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.PowerEnable(); err != nil {
		if derr := s.PowerDisable(); derr != nil {
			s.debugLog("power down after failed attach", "error", derr)
		}
		return nil, fmt.Errorf("attach %s: %w", s.variant.Name, err)
	}
	return s, nil
}

// Detach powers the chip down. The session is unusable afterwards.
func (s *Session) Detach() error {
	if err := s.PowerDisable(); err != nil {
		return err
	}
	s.mu.Lock()
	s.detached = true
	s.mu.Unlock()
	s.debugLog("session detached")
	return nil
}

// ID returns the session's UUID, used to tag trace events.
func (s *Session) ID() string {
	return s.id
}

// Variant returns the chip variant.
func (s *Session) Variant() Variant {
	return s.variant
}

// Registers returns the session's register store, for tools that need raw
// register access.
func (s *Session) Registers() *regmap.Store {
	return s.regs
}

// State returns the current power state.
func (s *Session) State() PowerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Format returns the last negotiated serial format, if any.
func (s *Session) Format() (daifmt.Format, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.format == nil {
		return daifmt.Format{}, false
	}
	return *s.format, true
}

// ReferenceClock returns the configured clock source and frequency.
func (s *Session) ReferenceClock() (clock.Source, uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source, s.sysclk
}

func (s *Session) checkAttached() error {
	if s.detached {
		return ErrDetached
	}
	return nil
}

// setState records a transition. Callers hold s.mu.
func (s *Session) setState(next PowerState, reason string) {
	prev := s.state
	if prev == next {
		return
	}
	s.state = next
	s.debugLog("power state", "from", prev.String(), "to", next.String(), "reason", reason)
	s.emitState(log.StateEntityPower, prev.String(), next.String(), reason)
}

func (s *Session) emitState(entity log.StateEntity, oldState, newState, reason string) {
	if s.trace == nil {
		return
	}
	s.trace.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Category:  log.CategoryState,
		Variant:   s.variant.Name,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (s *Session) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, append([]any{"session", s.id}, args...)...)
	}
}
