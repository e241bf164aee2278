package risk

import (
	"github.com/shopspring/decimal"
)

// Plan is the dollar risk and reward implied by a trade's stop loss and
// take profit. Zero values mean the level was not set.
type Plan struct {
	Risk   decimal.Decimal `json:"risk"`
	Reward decimal.Decimal `json:"reward"`
	RR     float64         `json:"rr"`
}

// PlannedRisk is the dollar loss if the stop is hit:
// |entry - stop| * quantity * pointValue.
func PlannedRisk(entry, stop float64, quantity int, pointValue decimal.Decimal) decimal.Decimal {
	return distance(entry, stop).Mul(decimal.NewFromInt(int64(quantity))).Mul(pointValue)
}

// PlannedReward is the dollar gain if the target is hit.
func PlannedReward(entry, takeProfit float64, quantity int, pointValue decimal.Decimal) decimal.Decimal {
	return distance(entry, takeProfit).Mul(decimal.NewFromInt(int64(quantity))).Mul(pointValue)
}

// RR is reward divided by risk in price terms, or 0 when the stop equals
// the entry.
func RR(entry, stop, takeProfit float64) float64 {
	risk := distance(entry, stop)
	if risk.IsZero() {
		return 0
	}
	return distance(takeProfit, entry).Div(risk).InexactFloat64()
}

// NewPlan builds a Plan; nil levels are skipped.
func NewPlan(entry float64, stop, takeProfit *float64, quantity int, pointValue decimal.Decimal) Plan {
	p := Plan{Risk: decimal.Zero, Reward: decimal.Zero}
	if stop != nil {
		p.Risk = PlannedRisk(entry, *stop, quantity, pointValue)
	}
	if takeProfit != nil {
		p.Reward = PlannedReward(entry, *takeProfit, quantity, pointValue)
	}
	if stop != nil && takeProfit != nil {
		p.RR = RR(entry, *stop, *takeProfit)
	}
	return p
}

// RMultiple expresses a realized PnL in units of planned risk. It is 0
// when there is no planned risk.
func RMultiple(pnl, plannedRisk decimal.Decimal) float64 {
	if !plannedRisk.IsPositive() {
		return 0
	}
	return pnl.Div(plannedRisk).InexactFloat64()
}

func distance(a, b float64) decimal.Decimal {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
}
