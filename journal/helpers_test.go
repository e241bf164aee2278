package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 10, 17, 9, 30, 0, 0, time.UTC)

func mustTrade(t *testing.T, id string, at time.Time, ticker string, dir Direction, entry, exit float64, qty int) Trade {
	t.Helper()

	tr, err := NewCalculator(nil).NewTrade(Entry{
		ID:         id,
		Time:       at,
		Ticker:     ticker,
		Direction:  dir,
		EntryPrice: entry,
		ExitPrice:  exit,
		Quantity:   qty,
	})
	require.NoError(t, err)
	return tr
}

func ptr(v float64) *float64 { return &v }
