package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rustyeddy/ledger/journal"
	"github.com/rustyeddy/ledger/risk"
	"github.com/rustyeddy/ledger/store"
	"github.com/rustyeddy/ledger/tracing"
)

// TradeDetail is a trade with its planned risk and reward.
type TradeDetail struct {
	journal.Trade
	Plan      risk.Plan `json:"plan"`
	RMultiple float64   `json:"rMultiple"`
}

// Dashboard is the statistics block over the whole journal.
type Dashboard struct {
	journal.Statistics
	StartingBalance decimal.Decimal  `json:"startingBalance"`
	Equity          decimal.Decimal  `json:"equity"`
	MaxDrawdown     journal.Drawdown `json:"maxDrawdown"`
}

// DaySummary is the trades of one calendar day and their statistics.
type DaySummary struct {
	Date       string             `json:"date"`
	Trades     []journal.Trade    `json:"trades"`
	Statistics journal.Statistics `json:"statistics"`
}

// LogTrade derives the PnL of e and stores it. A zero time is set to now
// and an empty id gets the next sequential id.
func (l *Ledger) LogTrade(ctx context.Context, e journal.Entry) (_ journal.Trade, err error) {
	ctx, span := tracing.Start(ctx, "ledger.LogTrade")
	defer func() { tracing.End(span, err) }()

	if e.Time.IsZero() {
		e.Time = l.now()
	}
	t, err := l.calc.NewTrade(e)
	if err != nil {
		return journal.Trade{}, err
	}

	t, err = l.store.InsertTrade(ctx, t)
	if err != nil {
		l.log.Error("insert trade failed", zap.String("id", e.ID), zap.String("ticker", e.Ticker), zap.Error(err))
		return journal.Trade{}, err
	}
	span.SetAttributes(
		attribute.String("trade.id", t.ID),
		attribute.String("trade.ticker", t.Ticker),
		attribute.String("trade.pnl", t.PnL.String()),
	)

	l.log.Info("trade logged",
		zap.String("id", t.ID),
		zap.String("ticker", t.Ticker),
		zap.String("direction", t.Direction.String()),
		zap.Int("quantity", t.Quantity),
		zap.String("pnl", t.PnL.String()),
	)
	return t, nil
}

// Trade returns one trade with its plan.
func (l *Ledger) Trade(ctx context.Context, id string) (TradeDetail, error) {
	t, err := l.store.GetTrade(ctx, id)
	if err != nil {
		return TradeDetail{}, err
	}
	if err := l.calc.Verify(t); err != nil {
		// a changed point value table, not a storage fault
		l.log.Warn("stored pnl differs from current instrument table", zap.String("id", t.ID), zap.Error(err))
	}
	return l.detail(t), nil
}

func (l *Ledger) detail(t journal.Trade) TradeDetail {
	pv := l.registry.PointValue(t.Ticker)
	plan := risk.NewPlan(t.EntryPrice, t.StopLoss, t.TakeProfit, t.Quantity, pv)
	return TradeDetail{
		Trade:     t,
		Plan:      plan,
		RMultiple: risk.RMultiple(t.PnL, plan.Risk),
	}
}

// Trades returns one page of the log, newest first.
func (l *Ledger) Trades(ctx context.Context, q store.Query) (store.Page, error) {
	return l.store.ListTrades(ctx, q)
}

// Dashboard aggregates every trade in the journal.
func (l *Ledger) Dashboard(ctx context.Context) (_ Dashboard, err error) {
	ctx, span := tracing.Start(ctx, "ledger.Dashboard")
	defer func() { tracing.End(span, err) }()

	trades, err := l.store.AllTrades(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	span.SetAttributes(attribute.Int("trades", len(trades)))
	curve := journal.BuildEquityCurve(trades, l.startingBalance)
	return Dashboard{
		Statistics:      journal.ComputeStatistics(trades),
		StartingBalance: l.startingBalance,
		Equity:          curve[len(curve)-1].Equity,
		MaxDrawdown:     journal.MaxDrawdown(curve),
	}, nil
}

// EquityCurve builds the curve over every trade. A nil startingBalance
// uses the configured one.
func (l *Ledger) EquityCurve(ctx context.Context, startingBalance *decimal.Decimal) ([]journal.EquitySnapshot, error) {
	trades, err := l.store.AllTrades(ctx)
	if err != nil {
		return nil, err
	}
	start := l.startingBalance
	if startingBalance != nil {
		start = *startingBalance
	}
	return journal.BuildEquityCurve(trades, start), nil
}

// Day summarizes the trades on day's calendar date in day's location.
func (l *Ledger) Day(ctx context.Context, day time.Time) (DaySummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	trades, err := l.store.ListTradesBetween(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return DaySummary{}, err
	}
	return DaySummary{
		Date:       start.Format(time.DateOnly),
		Trades:     trades,
		Statistics: journal.ComputeStatistics(trades),
	}, nil
}

// PositionSize sizes a position in ticker so the loss at stop is at most
// riskPct of the balance. A zero balance uses the starting balance.
func (l *Ledger) PositionSize(ticker string, balance decimal.Decimal, riskPct, entry, stop float64) risk.Result {
	if balance.IsZero() {
		balance = l.startingBalance
	}
	return risk.Calculate(risk.Inputs{
		Balance:    balance,
		RiskPct:    riskPct,
		EntryPrice: entry,
		StopPrice:  stop,
		PointValue: l.registry.PointValue(ticker),
	})
}
