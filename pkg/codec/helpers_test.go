package codec_test

import (
	"testing"

	"github.com/adau-codec/adau-go/pkg/codec"
	"github.com/adau-codec/adau-go/pkg/sim"
	"github.com/stretchr/testify/require"
)

func newChip(t *testing.T, variant string) *sim.Chip {
	t.Helper()
	v, err := codec.LookupVariant(variant)
	require.NoError(t, err)
	return sim.New(v.RegmapConfig())
}

// attach returns an enabled session with an empty transaction record.
func attach(t *testing.T, cfg codec.Config) (*codec.Session, *sim.Chip) {
	t.Helper()
	chip := newChip(t, cfg.Variant)
	s, err := codec.Attach(chip, cfg)
	require.NoError(t, err)
	chip.ResetTransactions()
	return s, chip
}

func writes(txns []sim.Transaction) []sim.Transaction {
	var out []sim.Transaction
	for _, tx := range txns {
		if tx.Op == sim.OpWrite {
			out = append(out, tx)
		}
	}
	return out
}

func write(addr, value uint8) sim.Transaction {
	return sim.Transaction{Op: sim.OpWrite, Address: addr, Value: value}
}

func read(addr, value uint8) sim.Transaction {
	return sim.Transaction{Op: sim.OpRead, Address: addr, Value: value}
}
