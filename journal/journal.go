// journal/journal.go
package journal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of a trade. Only Long and Short are valid.
type Direction string

const (
	Long  Direction = "Long"
	Short Direction = "Short"
)

// ParseDirection accepts "long" or "short" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long":
		return Long, nil
	case "short":
		return Short, nil
	}
	return "", &ValidationError{Field: "direction", Value: s, Reason: "must be Long or Short"}
}

func (d Direction) Valid() bool { return d == Long || d == Short }

func (d Direction) String() string { return string(d) }

// UnmarshalText rejects anything other than Long or Short.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Entry holds the caller-supplied fields of a trade. PnL is never part of
// an Entry; it is always derived.
type Entry struct {
	ID         string    `json:"id,omitempty"`
	Time       time.Time `json:"time"`
	Ticker     string    `json:"ticker"`
	Direction  Direction `json:"direction"`
	EntryPrice float64   `json:"entryPrice"`
	ExitPrice  float64   `json:"exitPrice"`
	Quantity   int       `json:"quantity"`

	// Informational only, never used for PnL.
	StopLoss   *float64 `json:"stopLoss,omitempty"`
	TakeProfit *float64 `json:"takeProfit,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// Trade is a journaled trade with its derived PnL. Trades are not edited
// once recorded.
type Trade struct {
	Entry

	PnL          decimal.Decimal `json:"pnl"`
	IsProfitable bool            `json:"isProfitable"`
}

// Period is "AM" or "PM" for the trade's local time of day.
func (t Trade) Period() string {
	return t.Time.Format("PM")
}

// EquitySnapshot is one point on an equity curve. The anchor point has no
// PnL.
type EquitySnapshot struct {
	TradeID string           `json:"tradeId"`
	Equity  decimal.Decimal  `json:"equity"`
	PnL     *decimal.Decimal `json:"pnl,omitempty"`
}

// AnchorID is the trade id of the first point of every equity curve.
const AnchorID = "000"
