package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ErrUnsupportedVersion is returned when a state file was written by a newer
// format version.
var ErrUnsupportedVersion = errors.New("unsupported state file version")

// SessionState contains the restorable state of one codec session.
type SessionState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// SessionID is the ID of the session that produced the snapshot.
	SessionID string `json:"session_id,omitempty"`

	// Variant is the chip variant name (adau1977, adau1978, adau1979).
	Variant string `json:"variant"`

	// Clock is the reference clock, if one was set.
	Clock *ClockState `json:"clock,omitempty"`

	// Format is the negotiated serial format, if any.
	Format *FormatState `json:"format,omitempty"`

	// SlotWidth is the fixed TDM slot width (0 = none).
	SlotWidth int `json:"slot_width,omitempty"`

	// Registers are the cached register values in ascending address order.
	Registers []RegisterValue `json:"registers,omitempty"`
}

// ClockState records the reference clock.
type ClockState struct {
	// Source is "mclk" or "lrclk".
	Source string `json:"source"`

	// Frequency is the reference frequency in Hz.
	Frequency uint32 `json:"frequency"`
}

// FormatState records the serial format using its text spellings.
type FormatState struct {
	Role     string `json:"role"`
	Polarity string `json:"polarity"`
	Scheme   string `json:"scheme"`
}

// RegisterValue is one cached register.
type RegisterValue struct {
	Address uint8 `json:"address"`
	Value   uint8 `json:"value"`
}

// SessionStateStore manages persistence of session state to a JSON file.
type SessionStateStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStateStore creates a new session state store.
func NewSessionStateStore(path string) *SessionStateStore {
	return &SessionStateStore{path: path}
}

// Path returns the state file path.
func (s *SessionStateStore) Path() string {
	return s.path
}

// Save persists the session state to disk.
func (s *SessionStateStore) Save(state *SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the session state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *SessionStateStore) Load() (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &SessionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Version > StateVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, state.Version)
	}

	return state, nil
}

// Clear removes the state file.
func (s *SessionStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
