package journal

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DirectionStats breaks wins, losses and PnL down for one side.
type DirectionStats struct {
	Wins     int             `json:"wins"`
	Losses   int             `json:"losses"`
	TotalPnL decimal.Decimal `json:"totalPnL"`
	WinRate  float64         `json:"winRate"`
}

// Statistics summarizes a set of trades. It is derived on demand and
// never stored.
type Statistics struct {
	WinRate       float64         `json:"winRate"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	AvgWinProfit  decimal.Decimal `json:"avgWinProfit"`
	TotalTrades   int             `json:"totalTrades"`
	WinningTrades int             `json:"winningTrades"`
	LosingTrades  int             `json:"losingTrades"`
	LongStats     DirectionStats  `json:"longStats"`
	ShortStats    DirectionStats  `json:"shortStats"`

	GrossProfit  decimal.Decimal `json:"grossProfit"`
	GrossLoss    decimal.Decimal `json:"grossLoss"`
	ProfitFactor float64         `json:"profitFactor"`
	AvgLoss      decimal.Decimal `json:"avgLoss"`
	LargestWin   decimal.Decimal `json:"largestWin"`
	LargestLoss  decimal.Decimal `json:"largestLoss"`
}

// ComputeStatistics aggregates trades. An empty slice yields all zeros.
//
// Winners are trades with IsProfitable set, so breakeven trades count as
// wins. AvgWinProfit averages the absolute PnL of winners.
func ComputeStatistics(trades []Trade) Statistics {
	var (
		s       Statistics
		winSum  = decimal.Zero
		lossSum = decimal.Zero
	)
	s.TotalProfit = decimal.Zero
	s.LongStats.TotalPnL = decimal.Zero
	s.ShortStats.TotalPnL = decimal.Zero
	s.LargestWin = decimal.Zero
	s.LargestLoss = decimal.Zero

	for _, t := range trades {
		s.TotalTrades++
		s.TotalProfit = s.TotalProfit.Add(t.PnL)

		ds := &s.ShortStats
		if t.Direction == Long {
			ds = &s.LongStats
		}
		ds.TotalPnL = ds.TotalPnL.Add(t.PnL)

		if t.IsProfitable {
			s.WinningTrades++
			ds.Wins++
			winSum = winSum.Add(t.PnL.Abs())
			if t.PnL.GreaterThan(s.LargestWin) {
				s.LargestWin = t.PnL
			}
		} else {
			s.LosingTrades++
			ds.Losses++
			lossSum = lossSum.Add(t.PnL.Abs())
			if t.PnL.LessThan(s.LargestLoss) {
				s.LargestLoss = t.PnL
			}
		}
	}

	s.WinRate = percent(s.WinningTrades, s.TotalTrades)
	s.AvgWinProfit = mean(winSum, s.WinningTrades)
	s.AvgLoss = mean(lossSum, s.LosingTrades)
	s.LongStats.WinRate = percent(s.LongStats.Wins, s.LongStats.Wins+s.LongStats.Losses)
	s.ShortStats.WinRate = percent(s.ShortStats.Wins, s.ShortStats.Wins+s.ShortStats.Losses)

	s.GrossProfit = winSum
	s.GrossLoss = lossSum
	if lossSum.IsPositive() {
		s.ProfitFactor = winSum.Div(lossSum).InexactFloat64()
	}
	return s
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(n)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).InexactFloat64()
}

func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}
