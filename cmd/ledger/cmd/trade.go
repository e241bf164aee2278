package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ledger/journal"
	"github.com/rustyeddy/ledger/store"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Log and query trades",
	Long: `Log closed trades and query the trade log.

Subcommands:
  add   - Log a closed trade
  list  - Page through the trade log, newest first
  show  - Show one trade as an Org-mode block
  day   - List trades on a given day (default today)

Examples:
  ledger trade add --ticker NQ --direction long --entry 18000 --exit 18012.5 --qty 2
  ledger trade list --page 2 --direction short
  ledger trade show 007
  ledger trade day 2025-10-17`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a closed trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "Page through the trade log",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show one trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeDayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "List trades on a day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTradeDay,
}

var (
	addTicker     string
	addDirection  string
	addEntry      float64
	addExit       float64
	addQty        int
	addStop       float64
	addTake       float64
	addNotes      string
	addTime       string
	addID         string
	listPage      int
	listLimit     int
	listDirection string
	listPeriod    string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeShowCmd)
	tradeCmd.AddCommand(tradeDayCmd)

	f := tradeAddCmd.Flags()
	f.StringVarP(&addTicker, "ticker", "t", "", "instrument symbol, e.g. NQ (required)")
	f.StringVar(&addDirection, "direction", "", "long or short (required)")
	f.Float64Var(&addEntry, "entry", 0, "entry price (required)")
	f.Float64Var(&addExit, "exit", 0, "exit price (required)")
	f.IntVarP(&addQty, "qty", "q", 1, "number of contracts")
	f.Float64Var(&addStop, "stop", 0, "planned stop loss")
	f.Float64Var(&addTake, "take", 0, "planned take profit")
	f.StringVarP(&addNotes, "notes", "n", "", "free-form notes")
	f.StringVar(&addTime, "time", "", "trade time, RFC3339 or \"2006-01-02 15:04\" local (default now)")
	f.StringVar(&addID, "id", "", "trade id (default next sequential id)")
	for _, name := range []string{"ticker", "direction", "entry", "exit"} {
		_ = tradeAddCmd.MarkFlagRequired(name)
	}

	tradeListCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	tradeListCmd.Flags().IntVarP(&listLimit, "limit", "l", store.DefaultPageSize, "trades per page")
	tradeListCmd.Flags().StringVar(&listDirection, "direction", "", "long, short or all")
	tradeListCmd.Flags().StringVar(&listPeriod, "period", "", "AM, PM or all")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	dir, err := journal.ParseDirection(addDirection)
	if err != nil {
		return err
	}
	at, err := parseTradeTime(addTime)
	if err != nil {
		return err
	}

	e := journal.Entry{
		ID:         addID,
		Time:       at,
		Ticker:     addTicker,
		Direction:  dir,
		EntryPrice: addEntry,
		ExitPrice:  addExit,
		Quantity:   addQty,
		Notes:      addNotes,
	}
	if cmd.Flags().Changed("stop") {
		v := addStop
		e.StopLoss = &v
	}
	if cmd.Flags().Changed("take") {
		v := addTake
		e.TakeProfit = &v
	}

	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := l.LogTrade(cmd.Context(), e)
	if err != nil {
		return fmt.Errorf("log trade: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged trade #%s: %s %s x%d  P&L %s\n",
		t.ID, t.Direction, t.Ticker, t.Quantity, t.PnL.StringFixed(2))
	return nil
}

func parseTradeTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q: want RFC3339 or \"2006-01-02 15:04\"", s)
	}
	return t, nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	filter, err := journal.ParseFilter(listDirection, listPeriod)
	if err != nil {
		return err
	}

	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	page, err := l.Trades(cmd.Context(), store.Query{Page: listPage, Limit: listLimit, Filter: filter})
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	out := cmd.OutOrStdout()
	writeTradeTable(out, page.Trades)
	fmt.Fprintf(out, "\npage %d of %d (%d trades)\n", page.Page, max(page.TotalPages, 1), page.Total)
	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	d, err := l.Trade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, journal.FormatTradeOrg(d.Trade))
	if d.Plan.Risk.IsPositive() {
		fmt.Fprintf(out, "Planned risk %s, reward %s, R multiple %.2f\n",
			d.Plan.Risk.StringFixed(2), d.Plan.Reward.StringFixed(2), d.RMultiple)
	}
	return nil
}

func runTradeDay(cmd *cobra.Command, args []string) error {
	day := time.Now()
	if len(args) == 1 {
		t, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		day = t
	}

	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	sum, err := l.Day(cmd.Context(), day)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n", sum.Date)
	writeTradeTable(out, sum.Trades)
	fmt.Fprintln(out)
	writeStats(out, sum.Statistics)
	return nil
}

func writeTradeTable(w io.Writer, trades []journal.Trade) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tTICKER\tDIR\tENTRY\tEXIT\tQTY\tP&L")
	for _, t := range trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%d\t%s\n",
			t.ID, t.Time.Format(journal.DateTimeLayout), t.Ticker, t.Direction,
			t.EntryPrice, t.ExitPrice, t.Quantity, t.PnL.StringFixed(2))
	}
	_ = tw.Flush()
}
