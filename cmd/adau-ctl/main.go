// Command adau-ctl brings up an ADAU19xx codec session from a board file and
// offers an interactive register shell on top of it.
//
// The session runs against a simulated chip, which makes adau-ctl useful for
// checking a board configuration and for replaying bring-up sequences with
// injected bus faults.
//
// Usage:
//
//	adau-ctl [flags]
//
// Flags:
//
//	-config string     Board configuration file (YAML)
//	-variant string    Override the board's chip variant
//	-trace string      Write a register trace (.alog) to this file
//	-state string      Load and save the session snapshot at this path
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-interactive       Start the interactive shell (default true)
//
// Examples:
//
//	# Bring up the default board and dump its registers
//	adau-ctl -interactive=false
//
//	# Interactive shell with a trace for adau-log
//	adau-ctl -config board.yaml -trace bringup.alog
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adau-codec/adau-go/cmd/adau-ctl/interactive"
	"github.com/adau-codec/adau-go/pkg/codec"
	"github.com/adau-codec/adau-go/pkg/config"
	"github.com/adau-codec/adau-go/pkg/inspect"
	alog "github.com/adau-codec/adau-go/pkg/log"
	"github.com/adau-codec/adau-go/pkg/persistence"
	"github.com/adau-codec/adau-go/pkg/sim"
)

// Config holds the command line configuration.
type Config struct {
	ConfigFile  string
	Variant     string
	TraceFile   string
	StateFile   string
	LogLevel    string
	Interactive bool
}

var cfg Config

func init() {
	flag.StringVar(&cfg.ConfigFile, "config", "", "Board configuration file (YAML)")
	flag.StringVar(&cfg.Variant, "variant", "", "Override the board's chip variant")
	flag.StringVar(&cfg.TraceFile, "trace", "", "Write a register trace (.alog) to this file")
	flag.StringVar(&cfg.StateFile, "state", "", "Load and save the session snapshot at this path")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&cfg.Interactive, "interactive", true, "Start the interactive shell")
}

func main() {
	flag.Parse()

	setupLogging(cfg.LogLevel)

	log.Println("ADAU19xx Control")
	log.Println("================")

	board, err := loadBoard()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("Variant: %s", board.Variant)
	log.Printf("Clock:   %s @ %d Hz", board.Clock.Source, board.Clock.Frequency)

	codecCfg, err := board.CodecConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	variant, _ := codec.LookupVariant(codecCfg.Variant)

	chip := sim.NewWithResetLine(variant.RegmapConfig())
	codecCfg.ResetLine = chip
	codecCfg.Logger = newSlogLogger(cfg.LogLevel)

	trace, closeTrace, err := setupTrace(board.TraceFile, codecCfg.Logger)
	if err != nil {
		log.Fatalf("Failed to open trace: %v", err)
	}
	defer closeTrace()
	codecCfg.Trace = trace

	session, err := codec.NewSession(chip, codecCfg)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	log.Printf("Session: %s", session.ID())

	var store *persistence.SessionStateStore
	if board.StateFile != "" {
		store = persistence.NewSessionStateStore(board.StateFile)
		if err := restoreState(session, store); err != nil {
			log.Fatalf("Failed to restore state: %v", err)
		}
	}

	if err := board.Apply(session); err != nil {
		log.Fatalf("Failed to apply board: %v", err)
	}
	if err := session.PowerEnable(); err != nil {
		log.Fatalf("Failed to power up: %v", err)
	}
	log.Printf("Power: %s (rates: %s)", session.State(), session.StreamConstraints())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Interactive {
		sh, err := interactive.New(session, interactive.Options{Chip: chip, State: store})
		if err != nil {
			log.Fatalf("Failed to create interactive shell: %v", err)
		}
		// Redirect log output through readline to avoid interfering with input
		log.SetOutput(sh.Stdout())
		go sh.Run(ctx, cancel)
	} else {
		fmt.Print(inspect.NewFormatter().FormatDump(inspect.NewInspector(session.Registers()).Dump()))
		cancel()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")

	if store != nil {
		log.Println("Saving state...")
		if err := store.Save(session.Snapshot()); err != nil {
			log.Printf("Warning: Failed to save state: %v", err)
		}
	}

	if err := session.Detach(); err != nil {
		log.Printf("Error detaching session: %v", err)
	}

	log.Println("Goodbye!")
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

// logWriter forwards to the standard logger's current output, so slog
// follows the redirect into readline.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	return log.Writer().Write(p)
}

func newSlogLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(logWriter{}, &slog.HandlerOptions{Level: l}))
}

func loadBoard() (*config.Board, error) {
	board := config.Default()
	if cfg.ConfigFile != "" {
		var err error
		if board, err = config.Load(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	if cfg.Variant != "" {
		board.Variant = cfg.Variant
	}
	if cfg.TraceFile != "" {
		board.TraceFile = cfg.TraceFile
	}
	if cfg.StateFile != "" {
		board.StateFile = cfg.StateFile
	}
	return board, board.Validate()
}

// setupTrace opens the trace file and mirrors events into logger at debug
// level. The returned func closes the file.
func setupTrace(path string, logger *slog.Logger) (alog.Logger, func(), error) {
	var loggers []alog.Logger
	closer := func() {}

	if path != "" {
		fl, err := alog.NewFileLogger(path)
		if err != nil {
			return nil, closer, err
		}
		log.Printf("Trace:   %s", path)
		loggers = append(loggers, fl)
		closer = func() {
			if err := fl.Close(); err != nil {
				log.Printf("Error closing trace: %v", err)
			}
			log.Printf("Trace:   %d events written", fl.Written())
		}
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, alog.NewSlogAdapter(logger))
	}

	switch len(loggers) {
	case 0:
		return nil, closer, nil
	case 1:
		return loggers[0], closer, nil
	default:
		return alog.NewMultiLogger(loggers...), closer, nil
	}
}

func restoreState(s *codec.Session, store *persistence.SessionStateStore) error {
	state, err := store.Load()
	if err != nil {
		return err
	}
	if state == nil {
		return nil
	}
	if state.Variant != s.Variant().Name {
		return fmt.Errorf("state file is for %s, board is %s", state.Variant, s.Variant().Name)
	}
	if err := s.Restore(state); err != nil {
		return fmt.Errorf("%s: %w", store.Path(), err)
	}
	log.Printf("Restored state from %s", store.Path())
	return nil
}
