package journal

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/ledger/market"
	"github.com/shopspring/decimal"
)

// PointValuer resolves the dollar value of one point for a ticker.
// *market.Registry satisfies it.
type PointValuer interface {
	PointValue(ticker string) decimal.Decimal
}

// Result is the outcome of a PnL computation. A breakeven trade is
// profitable.
type Result struct {
	PnL          decimal.Decimal `json:"pnl"`
	IsProfitable bool            `json:"isProfitable"`
}

// Calculator computes trade PnL against an instrument table.
type Calculator struct {
	Instruments PointValuer
}

// NewCalculator returns a calculator backed by pv, or by the built-in
// instrument table when pv is nil.
func NewCalculator(pv PointValuer) *Calculator {
	if pv == nil {
		pv = market.DefaultRegistry()
	}
	return &Calculator{Instruments: pv}
}

var defaultCalculator = NewCalculator(nil)

// ComputePnL uses the built-in instrument table.
func ComputePnL(entryPrice, exitPrice float64, quantity int, direction Direction, ticker string) (Result, error) {
	return defaultCalculator.ComputePnL(entryPrice, exitPrice, quantity, direction, ticker)
}

// ComputePnL returns (points moved in the trade's favor) * quantity *
// point value. Prices and quantity are not range checked; only the
// direction and finiteness of the prices are.
func (c *Calculator) ComputePnL(entryPrice, exitPrice float64, quantity int, direction Direction, ticker string) (Result, error) {
	if err := finite("entryPrice", entryPrice); err != nil {
		return Result{}, err
	}
	if err := finite("exitPrice", exitPrice); err != nil {
		return Result{}, err
	}

	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)

	var points decimal.Decimal
	switch direction {
	case Long:
		points = exit.Sub(entry)
	case Short:
		points = entry.Sub(exit)
	default:
		return Result{}, &ValidationError{Field: "direction", Value: direction, Reason: "must be Long or Short"}
	}

	pnl := points.Mul(decimal.NewFromInt(int64(quantity))).Mul(c.Instruments.PointValue(ticker))
	return Result{PnL: pnl, IsProfitable: !pnl.IsNegative()}, nil
}

// NewTrade validates e and derives its PnL.
func (c *Calculator) NewTrade(e Entry) (Trade, error) {
	e.Ticker = strings.ToUpper(strings.TrimSpace(e.Ticker))
	if e.Ticker == "" {
		return Trade{}, &ValidationError{Field: "ticker", Value: e.Ticker, Reason: "is required"}
	}
	if e.Quantity <= 0 {
		return Trade{}, &ValidationError{Field: "quantity", Value: e.Quantity, Reason: "must be positive"}
	}
	if e.StopLoss != nil {
		if err := finite("stopLoss", *e.StopLoss); err != nil {
			return Trade{}, err
		}
	}
	if e.TakeProfit != nil {
		if err := finite("takeProfit", *e.TakeProfit); err != nil {
			return Trade{}, err
		}
	}

	res, err := c.ComputePnL(e.EntryPrice, e.ExitPrice, e.Quantity, e.Direction, e.Ticker)
	if err != nil {
		return Trade{}, err
	}
	return Trade{Entry: e, PnL: res.PnL, IsProfitable: res.IsProfitable}, nil
}

// Verify recomputes t's PnL and reports a mismatch with the stored value.
func (c *Calculator) Verify(t Trade) error {
	res, err := c.ComputePnL(t.EntryPrice, t.ExitPrice, t.Quantity, t.Direction, t.Ticker)
	if err != nil {
		return err
	}
	if !res.PnL.Equal(t.PnL) || res.IsProfitable != t.IsProfitable {
		return fmt.Errorf("trade %s: stored pnl %s (profitable=%t), computed %s (profitable=%t)",
			t.ID, t.PnL, t.IsProfitable, res.PnL, res.IsProfitable)
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidInputError{Field: field, Value: v}
	}
	return nil
}
