package journal

import (
	"errors"
	"math"
	"testing"

	"github.com/rustyeddy/ledger/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePnL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		entry      float64
		exit       float64
		qty        int
		dir        Direction
		ticker     string
		want       string
		profitable bool
	}{
		{"long_win_nq", 100, 110, 1, Long, "NQ", "200", true},
		{"short_loss_nq", 100, 110, 1, Short, "NQ", "-200", false},
		{"breakeven_es", 100, 100, 5, Long, "ES", "0", true},
		{"unknown_ticker_uses_default", 100, 110, 1, Long, "UNKNOWN_TICKER", "200", true},
		{"lowercase_ticker", 4000, 4001.25, 2, Long, "mes", "12.5", true},
		{"short_win_mym", 42000, 41990, 3, Short, "MYM", "15", true},
		{"long_loss_ym", 8000, 2000, 1, Long, "YM", "-30000", false},
		{"zero_prices", 0, 0, 1, Long, "ES", "0", true},
		{"negative_prices", -5, -2, 1, Long, "MGC", "3", true},
		{"zero_quantity", 100, 90, 0, Long, "NQ", "0", true},
		{"fractional_points", 18250.25, 18250.5, 1, Long, "MNQ", "0.5", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ComputePnL(tt.entry, tt.exit, tt.qty, tt.dir, tt.ticker)
			require.NoError(t, err)
			assert.True(t, got.PnL.Equal(decimal.RequireFromString(tt.want)), "pnl = %s, want %s", got.PnL, tt.want)
			assert.Equal(t, tt.profitable, got.IsProfitable)
		})
	}
}

func TestComputePnLUnknownTickerMatchesNQ(t *testing.T) {
	t.Parallel()

	a, err := ComputePnL(18000, 17950.75, 3, Short, "UNKNOWN_TICKER")
	require.NoError(t, err)
	b, err := ComputePnL(18000, 17950.75, 3, Short, "NQ")
	require.NoError(t, err)
	assert.True(t, a.PnL.Equal(b.PnL))
}

func TestComputePnLRejectsBadDirection(t *testing.T) {
	t.Parallel()

	for _, d := range []Direction{"", "long", "Sideways"} {
		_, err := ComputePnL(100, 110, 1, d, "NQ")
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "direction", verr.Field)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestComputePnLRejectsNonFinite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry float64
		exit  float64
		field string
	}{
		{"nan_entry", math.NaN(), 1, "entryPrice"},
		{"inf_exit", 1, math.Inf(1), "exitPrice"},
		{"neg_inf_entry", math.Inf(-1), 1, "entryPrice"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ComputePnL(tt.entry, tt.exit, 1, Long, "NQ")
			require.Error(t, err)

			var ierr *InvalidInputError
			require.True(t, errors.As(err, &ierr))
			assert.Equal(t, tt.field, ierr.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCalculatorUsesRegistry(t *testing.T) {
	t.Parallel()

	reg, err := market.NewRegistry(map[string]float64{"CL": 1000})
	require.NoError(t, err)

	got, err := NewCalculator(reg).ComputePnL(70.10, 70.25, 2, Long, "cl")
	require.NoError(t, err)
	assert.True(t, got.PnL.Equal(decimal.NewFromInt(300)), "pnl = %s", got.PnL)
}

func TestNewTrade(t *testing.T) {
	t.Parallel()

	c := NewCalculator(nil)

	tr, err := c.NewTrade(Entry{
		ID:         "001",
		Time:       baseTime,
		Ticker:     " nq ",
		Direction:  Long,
		EntryPrice: 18000,
		ExitPrice:  18012.5,
		Quantity:   2,
		StopLoss:   ptr(17990),
		TakeProfit: ptr(18030),
		Notes:      "opening drive",
	})
	require.NoError(t, err)

	assert.Equal(t, "NQ", tr.Ticker)
	assert.True(t, tr.PnL.Equal(decimal.NewFromInt(500)))
	assert.True(t, tr.IsProfitable)
	assert.NoError(t, c.Verify(tr))
}

func TestNewTradeValidation(t *testing.T) {
	t.Parallel()

	c := NewCalculator(nil)
	valid := Entry{Time: baseTime, Ticker: "ES", Direction: Short, EntryPrice: 5000, ExitPrice: 4990, Quantity: 1}

	tests := []struct {
		name   string
		mutate func(e *Entry)
		field  string
		is     error
	}{
		{"missing_ticker", func(e *Entry) { e.Ticker = "  " }, "ticker", ErrValidation},
		{"zero_quantity", func(e *Entry) { e.Quantity = 0 }, "quantity", ErrValidation},
		{"negative_quantity", func(e *Entry) { e.Quantity = -2 }, "quantity", ErrValidation},
		{"bad_direction", func(e *Entry) { e.Direction = "Flat" }, "direction", ErrValidation},
		{"nan_stop", func(e *Entry) { e.StopLoss = ptr(math.NaN()) }, "stopLoss", ErrInvalidInput},
		{"inf_take", func(e *Entry) { e.TakeProfit = ptr(math.Inf(1)) }, "takeProfit", ErrInvalidInput},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := valid
			tt.mutate(&e)
			_, err := c.NewTrade(e)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	t.Parallel()

	c := NewCalculator(nil)
	tr := mustTrade(t, "007", baseTime, "ES", Long, 5000, 5010, 1)
	require.NoError(t, c.Verify(tr))

	tr.PnL = tr.PnL.Add(decimal.NewFromInt(1))
	err := c.Verify(tr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trade 007")
}

func TestRecomputeIsDeterministic(t *testing.T) {
	t.Parallel()

	c := NewCalculator(nil)
	trades := []Trade{
		mustTrade(t, "1", baseTime, "NQ", Long, 18001.25, 18003.5, 3),
		mustTrade(t, "2", baseTime, "MYM", Short, 42001.1, 42007.3, 7),
		mustTrade(t, "3", baseTime, "MES", Long, 0.1, 0.3, 1),
		mustTrade(t, "4", baseTime, "GC", Short, 2400.7, 2400.7, 4),
	}
	for _, tr := range trades {
		assert.NoError(t, c.Verify(tr))
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	d, err := ParseDirection("LONG")
	require.NoError(t, err)
	assert.Equal(t, Long, d)

	d, err = ParseDirection(" short ")
	require.NoError(t, err)
	assert.Equal(t, Short, d)

	_, err = ParseDirection("both")
	assert.ErrorIs(t, err, ErrValidation)

	var dir Direction
	assert.Error(t, dir.UnmarshalText([]byte("up")))
	assert.NoError(t, dir.UnmarshalText([]byte("long")))
	assert.Equal(t, Long, dir)
}
