// Package interactive provides the interactive command-line interface
// for adau-ctl.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/adau-codec/adau-go/pkg/clock"
	"github.com/adau-codec/adau-go/pkg/codec"
	"github.com/adau-codec/adau-go/pkg/daifmt"
	"github.com/adau-codec/adau-go/pkg/inspect"
	"github.com/adau-codec/adau-go/pkg/persistence"
	"github.com/adau-codec/adau-go/pkg/sim"
	"github.com/chzyer/readline"
)

// Options wires optional collaborators into the shell.
type Options struct {
	// Chip enables fault injection when the session runs on a simulated bus.
	Chip *sim.Chip

	// State enables the save command.
	State *persistence.SessionStateStore
}

// Shell handles interactive mode for adau-ctl.
type Shell struct {
	session   *codec.Session
	opts      Options
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	rl        *readline.Instance
}

// New creates a new interactive shell for s.
func New(s *codec.Session, opts Options) (*Shell, error) {
	sh := newShell(s, opts)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("%s> ", s.Variant().Name),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	sh.rl = rl
	return sh, nil
}

func newShell(s *codec.Session, opts Options) *Shell {
	return &Shell{
		session:   s,
		opts:      opts,
		inspector: inspect.NewInspector(s.Registers()),
		formatter: inspect.NewFormatter(),
	}
}

// Stdout returns a writer that doesn't interfere with the prompt.
func (sh *Shell) Stdout() io.Writer {
	return sh.rl.Stdout()
}

func completer() *readline.PrefixCompleter {
	var regs []readline.PrefixCompleterInterface
	for _, def := range inspect.Registers() {
		regs = append(regs, readline.PcItem(strings.ToLower(def.Name)))
	}
	onOff := []readline.PrefixCompleterInterface{readline.PcItem("on"), readline.PcItem("off")}

	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("status"),
		readline.PcItem("dump"),
		readline.PcItem("debug"),
		readline.PcItem("read", regs...),
		readline.PcItem("write", regs...),
		readline.PcItem("power", onOff...),
		readline.PcItem("mute", onOff...),
		readline.PcItem("clock", readline.PcItem("mclk"), readline.PcItem("lrclk")),
		readline.PcItem("format"),
		readline.PcItem("slot"),
		readline.PcItem("stream"),
		readline.PcItem("rates"),
		readline.PcItem("fault", readline.PcItem("read", regs...), readline.PcItem("write", regs...), readline.PcItem("clear")),
		readline.PcItem("save"),
		readline.PcItem("source"),
		readline.PcItem("quit"),
	)
}

// Run starts the interactive command loop.
func (sh *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer sh.rl.Close()

	sh.printHelp(sh.rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := sh.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(sh.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		if sh.Execute(line, sh.rl.Stdout()) {
			fmt.Fprintln(sh.rl.Stdout(), "Exiting...")
			cancel()
			return
		}
	}
}

// Execute runs one command line, writing output to w. It reports whether
// the command asked to quit.
func (sh *Shell) Execute(line string, w io.Writer) bool {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		sh.printHelp(w)

	case "status", "s":
		sh.cmdStatus(w)

	case "dump":
		fmt.Fprint(w, sh.formatter.FormatDump(sh.inspector.Dump()))

	case "debug", "d":
		err = sh.cmdDebug(w, args)

	case "read", "r":
		err = sh.cmdRead(w, args)

	case "write", "w":
		err = sh.cmdWrite(w, args)

	case "power":
		err = sh.cmdPower(w, args)

	case "clock":
		err = sh.cmdClock(w, args)

	case "format":
		err = sh.cmdFormat(w, args)

	case "slot":
		err = sh.cmdSlot(w, args)

	case "stream":
		err = sh.cmdStream(w, args)

	case "rates":
		fmt.Fprintf(w, "Rates: %s\n", orNone(sh.session.StreamConstraints().String()))

	case "mute":
		err = sh.cmdMute(w, args)

	case "fault":
		err = sh.cmdFault(w, args)

	case "save":
		err = sh.cmdSave(w)

	case "source":
		var quit bool
		quit, err = sh.cmdSource(w, args)
		if quit {
			return true
		}

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return false
}

func (sh *Shell) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
ADAU19xx Commands:
  Registers:
    dump                      - Show every cached register with fields
    read <reg>                - Read a register through the cache
    write <reg> <val>         - Write a register through the cache
    debug <flag|reg|val>      - Raw hex command, bypasses the cache
                                e.g. 0001a reads 0x00..0x1a, 10080 resets

  Codec:
    power on|off              - Power sequencer
    clock mclk|lrclk [hz]     - Set the PLL reference
    format <role/pol/scheme>  - e.g. controller/nb-nf/i2s
    slot <0|16|24|32>         - Fixed TDM slot width
    stream <rate> <width> [slot] - Configure a capture stream
    rates                     - Rates the current clock supports
    mute on|off               - Master mute

  Simulation:
    fault read|write <reg> [count] - Fail the next bus access(es)
    fault clear               - Remove injected faults

  General:
    status                    - Show session status
    save                      - Persist a session snapshot
    source <file>             - Run commands from a file (see adau-log export -format debug)
    help                      - Show this help
    quit                      - Exit

  Registers can be given by name (pll, sai_ctrl0) or number (0x05).`)
}

func (sh *Shell) cmdStatus(w io.Writer) {
	s := sh.session
	source, freq := s.ReferenceClock()

	fmt.Fprintf(w, "Session:   %s\n", s.ID())
	fmt.Fprintf(w, "Variant:   %s\n", s.Variant().Name)
	fmt.Fprintf(w, "Power:     %s\n", s.State())
	fmt.Fprintf(w, "Clock:     %s @ %d Hz\n", source, freq)
	fmt.Fprintf(w, "Rates:     %s\n", orNone(s.StreamConstraints().String()))
	if f, ok := s.Format(); ok {
		fmt.Fprintf(w, "Format:    %s\n", f)
	} else {
		fmt.Fprintln(w, "Format:    (not negotiated)")
	}
	fmt.Fprintf(w, "Slot:      %d\n", s.SlotWidth())
	fmt.Fprintf(w, "Cache:     cache-only=%v dirty=%v\n", s.Registers().CacheOnly(), s.Registers().Dirty())
}

func (sh *Shell) cmdDebug(w io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: debug <flag|reg|val>")
	}
	cmd, err := inspect.ParseDebugCommand(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# %s\n", cmd.Describe())
	fmt.Fprint(w, sh.formatter.FormatAccesses(sh.inspector.Execute(cmd)))
	return nil
}

func (sh *Shell) cmdRead(w io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: read <reg>")
	}
	addr, err := inspect.ParseRegister(args[0])
	if err != nil {
		return err
	}
	v, err := sh.session.Registers().Read(addr)
	if err != nil {
		return err
	}
	fmt.Fprint(w, sh.formatter.FormatRegister(inspect.Describe(addr, v)))
	return nil
}

func (sh *Shell) cmdWrite(w io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: write <reg> <val>")
	}
	addr, err := inspect.ParseRegister(args[0])
	if err != nil {
		return err
	}
	v, err := parseByte(args[1])
	if err != nil {
		return err
	}
	if err := sh.session.Registers().Write(addr, v); err != nil {
		return err
	}
	fmt.Fprint(w, sh.formatter.FormatRegister(inspect.Describe(addr, v)))
	return nil
}

func (sh *Shell) cmdPower(w io.Writer, args []string) error {
	on, err := parseOnOff("power", args)
	if err != nil {
		return err
	}
	if on {
		err = sh.session.PowerEnable()
	} else {
		err = sh.session.PowerDisable()
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Power: %s\n", sh.session.State())
	return nil
}

func (sh *Shell) cmdClock(w io.Writer, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: clock mclk|lrclk [hz]")
	}
	source, err := clock.ParseSource(args[0])
	if err != nil {
		return err
	}
	var freq uint64
	if len(args) == 2 {
		if freq, err = strconv.ParseUint(args[1], 10, 32); err != nil {
			return fmt.Errorf("invalid frequency %q", args[1])
		}
	}
	rates, err := sh.session.SetReferenceClock(source, uint32(freq))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Rates: %s\n", orNone(rates.String()))
	return nil
}

func (sh *Shell) cmdFormat(w io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: format <role/polarity/scheme>")
	}
	f, err := daifmt.ParseFormat(args[0])
	if err != nil {
		return err
	}
	if err := sh.session.NegotiateFormat(f.Role, f.Polarity, f.Scheme); err != nil {
		return err
	}
	fmt.Fprintf(w, "Format: %s\n", f)
	return nil
}

func (sh *Shell) cmdSlot(w io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: slot <0|16|24|32>")
	}
	width, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid slot width %q", args[0])
	}
	if err := sh.session.SetSlotWidth(width); err != nil {
		return err
	}
	fmt.Fprintf(w, "Slot: %d\n", width)
	return nil
}

func (sh *Shell) cmdStream(w io.Writer, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: stream <rate> <width> [slot]")
	}
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid number %q", a)
		}
		nums[i] = n
	}
	p := codec.StreamParams{Rate: uint32(nums[0]), Width: nums[1]}
	if len(nums) == 3 {
		p.SlotWidth = nums[2]
	}
	if err := sh.session.ConfigureStream(p); err != nil {
		return err
	}
	fmt.Fprintf(w, "Stream: %d Hz, %d bit\n", p.Rate, p.Width)
	return nil
}

func (sh *Shell) cmdMute(w io.Writer, args []string) error {
	on, err := parseOnOff("mute", args)
	if err != nil {
		return err
	}
	if err := sh.session.Mute(on); err != nil {
		return err
	}
	fmt.Fprintf(w, "Mute: %v\n", on)
	return nil
}

func (sh *Shell) cmdFault(w io.Writer, args []string) error {
	if sh.opts.Chip == nil {
		return errors.New("fault injection needs a simulated chip")
	}
	if len(args) == 1 && args[0] == "clear" {
		sh.opts.Chip.ClearFaults()
		fmt.Fprintln(w, "Faults cleared")
		return nil
	}
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: fault read|write <reg> [count] | fault clear")
	}

	var op sim.Op
	switch args[0] {
	case "read":
		op = sim.OpRead
	case "write":
		op = sim.OpWrite
	default:
		return fmt.Errorf("invalid fault op %q", args[0])
	}
	addr, err := inspect.ParseRegister(args[1])
	if err != nil {
		return err
	}
	count := 1
	if len(args) == 3 {
		if count, err = strconv.Atoi(args[2]); err != nil || count < 0 {
			return fmt.Errorf("invalid count %q", args[2])
		}
	}

	sh.opts.Chip.InjectFault(sim.Fault{Op: op, Address: addr, Count: count})
	fmt.Fprintf(w, "Fault armed: %s REG[0x%02x] x%d\n", args[0], addr, count)
	return nil
}

func (sh *Shell) cmdSave(w io.Writer) error {
	if sh.opts.State == nil {
		return errors.New("no state file configured")
	}
	if err := sh.opts.State.Save(sh.session.Snapshot()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved to %s\n", sh.opts.State.Path())
	return nil
}

func (sh *Shell) cmdSource(w io.Writer, args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("usage: source <file>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		fmt.Fprintf(w, "> %s\n", strings.TrimSpace(line))
		if sh.Execute(line, w) {
			return true, nil
		}
	}
	return false, nil
}

func parseOnOff(cmd string, args []string) (bool, error) {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "on":
			return true, nil
		case "off":
			return false, nil
		}
	}
	return false, fmt.Errorf("usage: %s on|off", cmd)
}

func parseByte(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return uint8(n), nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
