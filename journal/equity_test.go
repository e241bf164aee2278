package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEquityCurveEmpty(t *testing.T) {
	t.Parallel()

	curve := BuildEquityCurve(nil, decimal.NewFromInt(10000))
	require.Len(t, curve, 1)
	assert.Equal(t, AnchorID, curve[0].TradeID)
	assert.True(t, curve[0].Equity.Equal(decimal.NewFromInt(10000)))
	assert.Nil(t, curve[0].PnL)
}

func TestBuildEquityCurve(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		mustTrade(t, "001", baseTime, "NQ", Long, 100, 110, 1),
		mustTrade(t, "002", baseTime.Add(time.Hour), "NQ", Short, 100, 110, 1),
		mustTrade(t, "003", baseTime.Add(2*time.Hour), "ES", Long, 10, 12, 1),
	}

	curve := BuildEquityCurve(trades, decimal.NewFromInt(10000))
	require.Len(t, curve, 4)

	want := []struct {
		id     string
		equity int64
		pnl    int64
	}{
		{"001", 10200, 200},
		{"002", 10000, -200},
		{"003", 10100, 100},
	}
	for i, w := range want {
		p := curve[i+1]
		assert.Equal(t, w.id, p.TradeID)
		assert.True(t, p.Equity.Equal(decimal.NewFromInt(w.equity)), "point %d equity %s", i+1, p.Equity)
		require.NotNil(t, p.PnL)
		assert.True(t, p.PnL.Equal(decimal.NewFromInt(w.pnl)))
	}
}

func TestBuildEquityCurveSortsChronologically(t *testing.T) {
	t.Parallel()

	// newest first, the way a paginated log returns them
	trades := []Trade{
		mustTrade(t, "1000", baseTime, "MES", Long, 10, 11, 1),
		mustTrade(t, "999", baseTime, "MES", Long, 10, 12, 1),
		mustTrade(t, "002", baseTime, "MES", Long, 10, 13, 1),
	}

	curve := BuildEquityCurve(trades, decimal.Zero)
	require.Len(t, curve, 4)
	assert.Equal(t, []string{AnchorID, "002", "999", "1000"}, ids(curve))

	// input left untouched
	assert.Equal(t, "1000", trades[0].ID)
}

func TestBuildEquityCurveLastPointIsSum(t *testing.T) {
	t.Parallel()

	start := decimal.RequireFromString("10000.55")
	sum := decimal.Zero
	var trades []Trade
	for i := 0; i < 25; i++ {
		tr := mustTrade(t, "", baseTime.Add(time.Duration(25-i)*time.Minute), "MYM", Short, 42000.3, 42000.3+float64(i%5)-2, 1+i%3)
		trades = append(trades, tr)
		sum = sum.Add(tr.PnL)
	}

	curve := BuildEquityCurve(trades, start)
	require.Len(t, curve, len(trades)+1)
	assert.True(t, curve[len(curve)-1].Equity.Equal(start.Add(sum)))
}

func TestCompareIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"001", "002", -1},
		{"999", "1000", -1},
		{"010", "10", 0},
		{"7", "abc", -1},
		{"abc", "7", 1},
		{"abc", "abd", -1},
		{"", "", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareIDs(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		mustTrade(t, "1", baseTime, "ES", Long, 100, 120, 1),
		mustTrade(t, "2", baseTime.Add(time.Hour), "ES", Long, 100, 78, 1),
		mustTrade(t, "3", baseTime.Add(2*time.Hour), "ES", Long, 100, 98, 1),
		mustTrade(t, "4", baseTime.Add(3*time.Hour), "ES", Long, 100, 130, 1),
	}

	dd := MaxDrawdown(BuildEquityCurve(trades, decimal.NewFromInt(10000)))
	assert.True(t, dd.Amount.Equal(decimal.NewFromInt(1200)), "dd = %s", dd.Amount)
	assert.Equal(t, "1", dd.PeakID)
	assert.Equal(t, "3", dd.TroughID)
	assert.InDelta(t, 10.909090909, dd.Percent, 1e-6)

	flat := MaxDrawdown(BuildEquityCurve(nil, decimal.NewFromInt(10000)))
	assert.True(t, flat.Amount.IsZero())
	assert.Zero(t, flat.Percent)
}

func ids(curve []EquitySnapshot) []string {
	out := make([]string, len(curve))
	for i, p := range curve {
		out[i] = p.TradeID
	}
	return out
}
