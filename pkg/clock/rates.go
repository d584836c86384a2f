package clock

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Rates is the fixed list of sample rates a RateSet indexes, grouped by
// family. Bit i of a RateSet refers to Rates[i].
var Rates = [...]uint32{
	8000, 16000, 32000, 64000, 128000,
	11025, 22050, 44100, 88200, 176400,
	12000, 24000, 48000, 96000, 192000,
}

// RateSet is a bitmask over Rates.
type RateSet uint16

// Family masks and the fixed set reachable from the frame clock.
const (
	Family32k  RateSet = 0x001f
	Family44k1 RateSet = 0x03e0
	Family48k  RateSet = 0x7c00

	// FrameClockRates holds every rate of 32 kHz and above.
	FrameClockRates RateSet = 0x739c

	AllRates = Family32k | Family44k1 | Family48k
)

// Contains reports whether rate is a member of the set.
func (s RateSet) Contains(rate uint32) bool {
	for i, r := range Rates {
		if r == rate {
			return s&(1<<i) != 0
		}
	}
	return false
}

// Rates returns the members of the set in ascending order.
func (s RateSet) Rates() []uint32 {
	var out []uint32
	for i, r := range Rates {
		if s&(1<<i) != 0 {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return out
}

// Intersect returns the rates present in both sets.
func (s RateSet) Intersect(o RateSet) RateSet {
	return s & o
}

// Limit removes rates outside [min, max].
func (s RateSet) Limit(min, max uint32) RateSet {
	out := s
	for i, r := range Rates {
		if r < min || r > max {
			out &^= 1 << i
		}
	}
	return out
}

// String lists the member rates, for example "32000,44100,48000".
func (s RateSet) String() string {
	rates := s.Rates()
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = strconv.FormatUint(uint64(r), 10)
	}
	return strings.Join(parts, ",")
}
