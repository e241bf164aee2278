package journal

import (
	"strings"
)

// Filter narrows a trade log by side and time of day. Zero fields match
// everything.
type Filter struct {
	Direction Direction
	Period    string // "AM" or "PM"
}

// ParseFilter builds a Filter from query-style values; "" and "all" mean
// no restriction.
func ParseFilter(direction, period string) (Filter, error) {
	var f Filter
	if d := strings.TrimSpace(direction); d != "" && !strings.EqualFold(d, "all") {
		v, err := ParseDirection(d)
		if err != nil {
			return Filter{}, err
		}
		f.Direction = v
	}
	if p := strings.ToUpper(strings.TrimSpace(period)); p != "" && p != "ALL" {
		if p != "AM" && p != "PM" {
			return Filter{}, &ValidationError{Field: "period", Value: period, Reason: "must be AM or PM"}
		}
		f.Period = p
	}
	return f, nil
}

func (f Filter) Match(t Trade) bool {
	if f.Direction != "" && f.Direction != t.Direction {
		return false
	}
	if f.Period != "" && f.Period != t.Period() {
		return false
	}
	return true
}

// Apply returns the matching trades in their original order.
func (f Filter) Apply(trades []Trade) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
