// Package log provides structured register-transaction tracing for ADAU19xx
// codec sessions.
//
// This package defines the Logger interface and Event types for capturing
// every register access a session performs (cache hits, bus transfers and
// bypassed transfers) together with power, clock and format state changes.
// It is separate from operational logging (slog) - the trace is a complete
// machine-readable record for debugging bring-up problems on real boards.
//
// # Basic Usage
//
// Sessions are configured with a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Trace = log.NewSlogAdapter(slog.Default())
//
//	// For bring-up: write to binary file
//	cfg.Trace, _ = log.NewFileLogger("/var/log/adau/codec0.alog")
//
//	// Both: use MultiLogger
//	cfg.Trace = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// A nil Logger disables tracing and has no effect on register traffic.
//
// # Event Types
//
// Events carry exactly one payload:
//   - Register: a single read or write (RegisterEvent)
//   - State: a power, clock, format or stream state change (StateChangeEvent)
//   - Error: a failed transaction or negotiation (ErrorEventData)
//
// # File Format
//
// Trace files use CBOR encoding with the .alog extension. The adau-log CLI
// tool provides viewing, filtering, and export capabilities.
package log
