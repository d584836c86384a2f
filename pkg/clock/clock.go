package clock

import "fmt"

// Source selects the reference the PLL locks to.
type Source uint8

const (
	// SourceMCLK locks the PLL to the external master clock.
	SourceMCLK Source = iota
	// SourceLRCLK locks the PLL to the serial frame clock.
	SourceLRCLK
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceMCLK:
		return "mclk"
	case SourceLRCLK:
		return "lrclk"
	default:
		return fmt.Sprintf("source(%d)", uint8(s))
	}
}

// ParseSource accepts "mclk" or "lrclk".
func ParseSource(s string) (Source, error) {
	switch s {
	case "mclk":
		return SourceMCLK, nil
	case "lrclk":
		return SourceLRCLK, nil
	}
	return 0, fmt.Errorf("%w: unknown clock source %q", ErrInvalidClockConfig, s)
}

// MCLK frequency window accepted by the PLL.
const (
	MinMCLK uint32 = 4000000
	MaxMCLK uint32 = 36864000
)

// FSCode is the 3-bit sample-rate band written to SAI_CTRL0.
type FSCode uint8

// MCSCode is the 3-bit MCLK multiplier code written to the PLL register.
type MCSCode uint8

// familyBase maps each base rate to the rates it generates.
var familyBase = []struct {
	base uint32
	mask RateSet
}{
	{32000, Family32k},
	{44100, Family44k1},
	{48000, Family48k},
}

// mcsCodes encodes the multipliers implemented in silicon; 5 is missing.
var mcsCodes = map[uint32]MCSCode{
	1: 0, // 128 x fs
	2: 1, // 256 x fs
	3: 2, // 384 x fs
	4: 3, // 512 x fs
	6: 4, // 768 x fs
}

// Fits reports whether mclk is 128*base times a supported multiplier.
func Fits(mclk, base uint32) bool {
	if base == 0 {
		return false
	}
	div := 128 * uint64(base)
	if uint64(mclk)%div != 0 {
		return false
	}
	_, ok := mcsCodes[uint32(uint64(mclk)/div)]
	return ok
}

// Constraints returns the rates reachable from a reference clock.
// The frame clock reaches FrameClockRates at any frequency. An MCLK must lie
// within [MinMCLK, MaxMCLK] and fit at least one family base rate.
func Constraints(source Source, freq uint32) (RateSet, error) {
	switch source {
	case SourceLRCLK:
		return FrameClockRates, nil
	case SourceMCLK:
	default:
		return 0, fmt.Errorf("%w: unknown clock source %s", ErrInvalidClockConfig, source)
	}

	if freq < MinMCLK || freq > MaxMCLK {
		return 0, fmt.Errorf("%w: mclk %d Hz outside [%d, %d]", ErrInvalidClockConfig, freq, MinMCLK, MaxMCLK)
	}

	var set RateSet
	for _, f := range familyBase {
		if Fits(freq, f.base) {
			set |= f.mask
		}
	}
	if set == 0 {
		return 0, fmt.Errorf("%w: mclk %d Hz fits no rate family", ErrInvalidClockConfig, freq)
	}
	return set, nil
}

// fsBands are inclusive rate ranges indexed by FS code.
var fsBands = [...]struct{ lo, hi uint32 }{
	{8000, 12000},
	{16000, 24000},
	{32000, 48000},
	{64000, 96000},
	{128000, 192000},
}

// LookupFS returns the band containing rate.
func LookupFS(rate uint32) (FSCode, error) {
	for i, b := range fsBands {
		if rate >= b.lo && rate <= b.hi {
			return FSCode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %d Hz is in no fs band", ErrUnsupportedRate, rate)
}

// LookupMCS returns the multiplier code relating mclk to rate within band fs.
func LookupMCS(mclk, rate uint32, fs FSCode) (MCSCode, error) {
	if int(fs) >= len(fsBands) {
		return 0, fmt.Errorf("%w: fs code %d", ErrUnsupportedRate, fs)
	}
	scaled := uint64(rate) * uint64(512>>fs)
	if scaled == 0 || uint64(mclk)%scaled != 0 {
		return 0, fmt.Errorf("%w: mclk %d Hz is not a multiple of %d Hz", ErrUnsupportedRate, mclk, scaled)
	}
	m := uint64(mclk) / scaled
	code, ok := mcsCodes[uint32(m)]
	if !ok {
		return 0, fmt.Errorf("%w: mclk multiplier %d not supported", ErrUnsupportedRate, m)
	}
	return code, nil
}

// Multiplier returns the MCLK multiplier an MCS code selects.
func (c MCSCode) Multiplier() uint32 {
	for m, code := range mcsCodes {
		if code == c {
			return m
		}
	}
	return 0
}
