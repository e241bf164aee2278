// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"strconv"
)

// DateTimeLayout is how trade times appear in exports.
const DateTimeLayout = "01/02/2006 03:04 PM"

var csvHeader = []string{"Trade ID", "Date/Time", "Ticker", "Direction", "Entry", "Exit", "Qty", "P&L", "Notes"}

// CSVJournal writes a trade log export.
type CSVJournal struct {
	trades *csv.Writer
}

// NewCSV writes the header row to w.
func NewCSV(w io.Writer) (*CSVJournal, error) {
	tw := csv.NewWriter(w)
	if err := tw.Write(csvHeader); err != nil {
		return nil, err
	}
	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	return &CSVJournal{trades: tw}, nil
}

func (j *CSVJournal) RecordTrade(t Trade) error {
	err := j.trades.Write([]string{
		"#" + t.ID,
		t.Time.Format(DateTimeLayout),
		t.Ticker,
		t.Direction.String(),
		f(t.EntryPrice),
		f(t.ExitPrice),
		strconv.Itoa(t.Quantity),
		t.PnL.StringFixed(2),
		t.Notes,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	return j.trades.Error()
}

// WriteCSV exports trades in the order given.
func WriteCSV(w io.Writer, trades []Trade) error {
	j, err := NewCSV(w)
	if err != nil {
		return err
	}
	for _, t := range trades {
		if err := j.RecordTrade(t); err != nil {
			return err
		}
	}
	return j.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
