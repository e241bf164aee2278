package cmd

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/ledger/journal"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Print the equity curve",
	Long: `Print the running balance after every trade, oldest first. The first
row is the starting balance.

Example:
  ledger equity --starting-balance 25000`,
	Args: cobra.NoArgs,
	RunE: runEquity,
}

var equityStart float64

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(equityCmd)
	equityCmd.Flags().Float64Var(&equityStart, "starting-balance", 0, "starting balance (default account.starting_balance)")
}

func runStats(cmd *cobra.Command, args []string) error {
	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	d, err := l.Dashboard(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeStats(out, d.Statistics)
	fmt.Fprintf(out, "Equity:         %s (start %s)\n", d.Equity.StringFixed(2), d.StartingBalance.StringFixed(2))
	fmt.Fprintf(out, "Max drawdown:   %s (%.1f%%)\n", d.MaxDrawdown.Amount.StringFixed(2), d.MaxDrawdown.Percent)
	return nil
}

func writeStats(w io.Writer, s journal.Statistics) {
	fmt.Fprintf(w, "Trades:         %d (%d won, %d lost)\n", s.TotalTrades, s.WinningTrades, s.LosingTrades)
	fmt.Fprintf(w, "Win rate:       %.1f%%\n", s.WinRate)
	fmt.Fprintf(w, "Total P&L:      %s\n", s.TotalProfit.StringFixed(2))
	fmt.Fprintf(w, "Avg win:        %s\n", s.AvgWinProfit.StringFixed(2))
	fmt.Fprintf(w, "Avg loss:       %s\n", s.AvgLoss.StringFixed(2))
	fmt.Fprintf(w, "Profit factor:  %.2f\n", s.ProfitFactor)
	fmt.Fprintf(w, "Long:           %d/%d  %.1f%%  %s\n", s.LongStats.Wins, s.LongStats.Wins+s.LongStats.Losses, s.LongStats.WinRate, s.LongStats.TotalPnL.StringFixed(2))
	fmt.Fprintf(w, "Short:          %d/%d  %.1f%%  %s\n", s.ShortStats.Wins, s.ShortStats.Wins+s.ShortStats.Losses, s.ShortStats.WinRate, s.ShortStats.TotalPnL.StringFixed(2))
}

func runEquity(cmd *cobra.Command, args []string) error {
	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	var start *decimal.Decimal
	if cmd.Flags().Changed("starting-balance") {
		v := decimal.NewFromFloat(equityStart)
		start = &v
	}
	curve, err := l.EquityCurve(cmd.Context(), start)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range curve {
		pnl := ""
		if p.PnL != nil {
			pnl = p.PnL.StringFixed(2)
		}
		fmt.Fprintf(out, "%-6s %14s %12s\n", p.TradeID, p.Equity.StringFixed(2), pnl)
	}
	return nil
}
