package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful during bring-up when register traffic should appear on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	if event.Variant != "" {
		attrs = append(attrs, slog.String("variant", event.Variant))
	}

	switch {
	case event.Register != nil:
		attrs = append(attrs,
			slog.String("direction", event.Direction.String()),
			slog.String("path", event.Path.String()),
			slog.String("reg", hexByte(event.Register.Address)),
			slog.String("value", hexByte(event.Register.Value)),
		)
		if event.Register.Mask != nil {
			attrs = append(attrs, slog.String("mask", hexByte(*event.Register.Mask)))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("path", event.Path.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Address != nil {
			attrs = append(attrs, slog.String("reg", hexByte(*event.Error.Address)))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "regtrace", attrs...)
}

func hexByte(v uint8) string {
	return fmt.Sprintf("0x%02x", v)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
