package journal

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// BuildEquityCurve returns the running balance after each trade, oldest
// first, preceded by an anchor point at startingBalance. The result always
// has len(trades)+1 points; the input slice is not reordered.
func BuildEquityCurve(trades []Trade, startingBalance decimal.Decimal) []EquitySnapshot {
	sorted := SortChronological(trades)

	curve := make([]EquitySnapshot, 0, len(sorted)+1)
	curve = append(curve, EquitySnapshot{TradeID: AnchorID, Equity: startingBalance})

	equity := startingBalance
	for _, t := range sorted {
		pnl := t.PnL
		equity = equity.Add(pnl)
		curve = append(curve, EquitySnapshot{TradeID: t.ID, Equity: equity, PnL: &pnl})
	}
	return curve
}

// SortChronological returns a copy of trades ordered by time, then by id.
// Numeric ids compare by value so "1000" sorts after "999" and gaps are
// harmless. The sort is stable.
func SortChronological(trades []Trade) []Trade {
	out := slices.Clone(trades)
	slices.SortStableFunc(out, func(a, b Trade) int {
		if c := a.Time.Compare(b.Time); c != 0 {
			return c
		}
		return CompareIDs(a.ID, b.ID)
	})
	return out
}

// CompareIDs orders trade ids. All-digit ids compare numerically, other
// ids lexically, and numeric ids sort before non-numeric ones.
func CompareIDs(a, b string) int {
	an, bn := isDigits(a), isDigits(b)
	switch {
	case an && bn:
		a, b = strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case an:
		return -1
	case bn:
		return 1
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Drawdown is the largest peak-to-trough drop of an equity curve.
type Drawdown struct {
	Amount   decimal.Decimal `json:"amount"`
	Percent  float64         `json:"percent"`
	PeakID   string          `json:"peakId"`
	TroughID string          `json:"troughId"`
}

// MaxDrawdown scans curve in order. A curve that never falls below a
// previous peak has a zero drawdown.
func MaxDrawdown(curve []EquitySnapshot) Drawdown {
	dd := Drawdown{Amount: decimal.Zero}
	if len(curve) == 0 {
		return dd
	}

	peak := curve[0]
	for _, p := range curve[1:] {
		if p.Equity.GreaterThan(peak.Equity) {
			peak = p
			continue
		}
		drop := peak.Equity.Sub(p.Equity)
		if drop.GreaterThan(dd.Amount) {
			dd.Amount = drop
			dd.PeakID = peak.TradeID
			dd.TroughID = p.TradeID
			if peak.Equity.IsPositive() {
				dd.Percent = drop.Mul(hundred).Div(peak.Equity).InexactFloat64()
			}
		}
	}
	return dd
}
