package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adau-codec/adau-go/pkg/inspect"
	"github.com/adau-codec/adau-go/pkg/log"
)

// record is the flat, text-only form of an event used by the jsonl and csv
// exports.
type record struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Variant   string    `json:"variant,omitempty"`
	Category  string    `json:"category"`
	Direction string    `json:"direction,omitempty"`
	Path      string    `json:"path,omitempty"`
	Register  string    `json:"register,omitempty"`
	Name      string    `json:"name,omitempty"`
	Value     string    `json:"value,omitempty"`
	Mask      string    `json:"mask,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

var csvHeader = []string{"timestamp", "session_id", "variant", "category", "direction", "path", "register", "name", "value", "mask", "detail"}

func (r record) row() []string {
	return []string{
		r.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		r.SessionID,
		r.Variant,
		r.Category,
		r.Direction,
		r.Path,
		r.Register,
		r.Name,
		r.Value,
		r.Mask,
		r.Detail,
	}
}

func hex8(v uint8) string { return fmt.Sprintf("0x%02x", v) }

func newRecord(e log.Event) record {
	r := record{
		Timestamp: e.Timestamp,
		SessionID: e.SessionID,
		Variant:   e.Variant,
		Category:  e.Category.String(),
	}

	addr := func(a uint8) {
		r.Register = hex8(a)
		r.Name = inspect.RegisterName(a)
	}

	switch {
	case e.Register != nil:
		r.Direction, r.Path = e.Direction.String(), e.Path.String()
		addr(e.Register.Address)
		r.Value = hex8(e.Register.Value)
		if e.Register.Mask != nil {
			r.Mask = hex8(*e.Register.Mask)
		}
	case e.StateChange != nil:
		r.Detail = fmt.Sprintf("%s %s->%s", e.StateChange.Entity, e.StateChange.OldState, e.StateChange.NewState)
	case e.Error != nil:
		r.Direction, r.Path = e.Direction.String(), e.Path.String()
		if e.Error.Address != nil {
			addr(*e.Error.Address)
		}
		r.Detail = e.Error.Message
	}
	return r
}

// RunExport exports the trace file to the specified format.
//
// Formats:
//   - jsonl: one flat JSON object per event
//   - csv: the same fields as a table
//   - debug: every register write that reached the chip as an adau-ctl
//     "debug" command, for replaying a bring-up on another board
func RunExport(path, format, output string) error {
	var export func(*log.Reader, io.Writer) error
	switch format {
	case "jsonl":
		export = exportJSONL
	case "csv":
		export = exportCSV
	case "debug":
		export = exportDebug
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv, debug)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return export(reader, w)
}

// each calls fn for every event until the reader is exhausted.
func each(reader *log.Reader, fn func(log.Event) error) error {
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	return each(reader, func(e log.Event) error {
		return enc.Encode(newRecord(e))
	})
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	err := each(reader, func(e log.Event) error {
		return cw.Write(newRecord(e).row())
	})
	cw.Flush()
	if err != nil {
		return err
	}
	return cw.Error()
}

func exportDebug(reader *log.Reader, w io.Writer) error {
	var session string
	return each(reader, func(e log.Event) error {
		if e.Category != log.CategoryRegister || e.Direction != log.DirectionWrite || e.Path == log.PathCache {
			return nil
		}
		if e.SessionID != session {
			session = e.SessionID
			if _, err := fmt.Fprintf(w, "# session %s %s\n", session, e.Variant); err != nil {
				return err
			}
		}
		cmd := inspect.Command{Write: true, Register: e.Register.Address, Value: e.Register.Value}
		_, err := fmt.Fprintf(w, "debug %s  # %s\n", cmd, cmd.Describe())
		return err
	})
}
