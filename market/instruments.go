// market/instruments.go
package market

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPointValue is used for any symbol missing from the table. It
// matches NQ.
var DefaultPointValue = decimal.NewFromInt(20)

// InstrumentMeta describes a futures contract: the dollar value of one
// point of price movement.
type InstrumentMeta struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name,omitempty"`
	PointValue decimal.Decimal `json:"pointValue"`
}

var Instruments = map[string]InstrumentMeta{
	// Regular contracts
	"NQ": {Symbol: "NQ", Name: "E-mini Nasdaq-100", PointValue: decimal.NewFromInt(20)},
	"YM": {Symbol: "YM", Name: "E-mini Dow", PointValue: decimal.NewFromInt(5)},
	"ES": {Symbol: "ES", Name: "E-mini S&P 500", PointValue: decimal.NewFromInt(50)},
	"GC": {Symbol: "GC", Name: "Gold", PointValue: decimal.NewFromInt(10)},

	// Micro contracts
	"MNQ": {Symbol: "MNQ", Name: "Micro E-mini Nasdaq-100", PointValue: decimal.NewFromInt(2)},
	"MYM": {Symbol: "MYM", Name: "Micro E-mini Dow", PointValue: decimal.RequireFromString("0.5")},
	"MES": {Symbol: "MES", Name: "Micro E-mini S&P 500", PointValue: decimal.NewFromInt(5)},
	"MGC": {Symbol: "MGC", Name: "Micro Gold", PointValue: decimal.NewFromInt(1)},
}

// Registry resolves ticker symbols to point values. The zero value is not
// usable; build one with NewRegistry.
type Registry struct {
	table    map[string]InstrumentMeta
	fallback decimal.Decimal
}

// NewRegistry returns a registry seeded with Instruments. Overrides add
// new symbols or replace the point value of existing ones; keys are
// case-insensitive.
func NewRegistry(overrides map[string]float64) (*Registry, error) {
	r := &Registry{
		table:    make(map[string]InstrumentMeta, len(Instruments)+len(overrides)),
		fallback: DefaultPointValue,
	}
	for sym, meta := range Instruments {
		r.table[sym] = meta
	}
	for sym, pv := range overrides {
		if err := r.Set(sym, decimal.NewFromFloat(pv)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry is the built-in table with no overrides.
func DefaultRegistry() *Registry {
	r, _ := NewRegistry(nil)
	return r
}

// Set adds or replaces a symbol.
func (r *Registry) Set(symbol string, pointValue decimal.Decimal) error {
	sym := normalize(symbol)
	if sym == "" {
		return fmt.Errorf("instrument symbol is required")
	}
	if !pointValue.IsPositive() {
		return fmt.Errorf("instrument %s: point value must be positive, got %s", sym, pointValue)
	}
	meta := r.table[sym]
	meta.Symbol = sym
	meta.PointValue = pointValue
	r.table[sym] = meta
	return nil
}

// PointValue returns the dollar value of one point for ticker. Unknown
// tickers resolve to DefaultPointValue; this is not an error.
func (r *Registry) PointValue(ticker string) decimal.Decimal {
	if meta, ok := r.table[normalize(ticker)]; ok {
		return meta.PointValue
	}
	return r.fallback
}

// Lookup reports whether ticker is a known symbol.
func (r *Registry) Lookup(ticker string) (InstrumentMeta, bool) {
	meta, ok := r.table[normalize(ticker)]
	return meta, ok
}

// Symbols returns the known symbols in sorted order.
func (r *Registry) Symbols() []string {
	out := make([]string, 0, len(r.table))
	for sym := range r.table {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
