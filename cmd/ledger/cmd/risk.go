package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Position sizing",
}

var riskSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a position for a risk budget",
	Long: `Compute how many contracts keep the loss at the stop within
--risk of the balance.

Example:
  ledger risk size --ticker ES --entry 5000 --stop 4990 --risk 0.01`,
	Args: cobra.NoArgs,
	RunE: runRiskSize,
}

var (
	sizeTicker  string
	sizeEntry   float64
	sizeStop    float64
	sizeRisk    float64
	sizeBalance float64
)

func init() {
	rootCmd.AddCommand(riskCmd)
	riskCmd.AddCommand(riskSizeCmd)

	f := riskSizeCmd.Flags()
	f.StringVarP(&sizeTicker, "ticker", "t", "", "instrument symbol (required)")
	f.Float64Var(&sizeEntry, "entry", 0, "entry price (required)")
	f.Float64Var(&sizeStop, "stop", 0, "stop price (required)")
	f.Float64Var(&sizeRisk, "risk", 0.01, "fraction of balance to risk, 0.01 for 1%")
	f.Float64Var(&sizeBalance, "balance", 0, "account balance (default account.starting_balance)")
	for _, name := range []string{"ticker", "entry", "stop"} {
		_ = riskSizeCmd.MarkFlagRequired(name)
	}
}

func runRiskSize(cmd *cobra.Command, args []string) error {
	if sizeRisk <= 0 || sizeRisk > 1 {
		return fmt.Errorf("risk %v: must be in (0, 1]", sizeRisk)
	}

	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	res := l.PositionSize(sizeTicker, decimal.NewFromFloat(sizeBalance), sizeRisk, sizeEntry, sizeStop)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Contracts:    %d\n", res.Contracts)
	fmt.Fprintf(out, "Stop points:  %s\n", res.StopPoints.String())
	fmt.Fprintf(out, "Risk budget:  %s\n", res.RiskAmount.StringFixed(2))
	fmt.Fprintf(out, "Actual risk:  %s\n", res.ActualRisk.StringFixed(2))
	return nil
}
