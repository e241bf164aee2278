package risk

import (
	"github.com/shopspring/decimal"
)

type Inputs struct {
	Balance    decimal.Decimal
	RiskPct    float64 // 0.01 for 1%
	EntryPrice float64
	StopPrice  float64
	PointValue decimal.Decimal
}

type Result struct {
	Contracts  int             `json:"contracts"`
	StopPoints decimal.Decimal `json:"stopPoints"`
	RiskAmount decimal.Decimal `json:"riskAmount"`
	// Dollar loss at the stop for the sized position.
	ActualRisk decimal.Decimal `json:"actualRisk"`
}

// Calculate sizes a position so the loss at the stop does not exceed
// Balance * RiskPct. Contracts round down; a stop at the entry sizes to 0.
func Calculate(in Inputs) Result {
	stopPoints := distance(in.EntryPrice, in.StopPrice)
	riskAmt := in.Balance.Mul(decimal.NewFromFloat(in.RiskPct))

	res := Result{StopPoints: stopPoints, RiskAmount: riskAmt, ActualRisk: decimal.Zero}

	perContract := stopPoints.Mul(in.PointValue)
	if !perContract.IsPositive() || !riskAmt.IsPositive() {
		return res
	}

	res.Contracts = int(riskAmt.Div(perContract).Floor().IntPart())
	res.ActualRisk = perContract.Mul(decimal.NewFromInt(int64(res.Contracts)))
	return res
}
