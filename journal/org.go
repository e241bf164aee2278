package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/ledger/risk"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in the PROPERTIES drawer; the narrative headings are left blank.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Ticker, t.Direction, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", t.Time.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":TICKER: %s\n", t.Ticker))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":QUANTITY: %d\n", t.Quantity))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.2f\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.2f\n", t.ExitPrice))
	if t.StopLoss != nil {
		b.WriteString(fmt.Sprintf(":STOP_LOSS: %.2f\n", *t.StopLoss))
	}
	if t.TakeProfit != nil {
		b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.2f\n", *t.TakeProfit))
	}
	if t.StopLoss != nil && t.TakeProfit != nil {
		b.WriteString(fmt.Sprintf(":PLANNED_RR: %.2f\n", risk.RR(t.EntryPrice, *t.StopLoss, *t.TakeProfit)))
	}
	b.WriteString(fmt.Sprintf(":PNL: %s\n", t.PnL.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":OUTCOME: %s\n", outcome(t)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	if t.Notes != "" {
		b.WriteString(t.Notes)
		b.WriteString("\n\n")
	}
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func outcome(t Trade) string {
	if t.IsProfitable {
		return "win"
	}
	return "loss"
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
