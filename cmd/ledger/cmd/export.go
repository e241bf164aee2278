package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ledger/journal"
	"github.com/rustyeddy/ledger/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the trade log",
	Long: `Write the trade log, oldest first, as CSV or Org-mode. --direction
and --period narrow the export the same way they narrow "trade list".

Examples:
  ledger export csv -o trades.csv
  ledger export csv --direction short --period PM
  ledger export org > trades.org`,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export trades as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, (*service.Ledger).ExportCSV)
	},
}

var exportOrgCmd = &cobra.Command{
	Use:   "org",
	Short: "Export trades as Org-mode headings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, (*service.Ledger).ExportOrg)
	},
}

var (
	exportOutput    string
	exportDirection string
	exportPeriod    string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportOrgCmd)
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.PersistentFlags().StringVar(&exportDirection, "direction", "", "long, short or all")
	exportCmd.PersistentFlags().StringVar(&exportPeriod, "period", "", "AM, PM or all")
}

func runExport(cmd *cobra.Command, export func(*service.Ledger, context.Context, io.Writer, journal.Filter) error) error {
	filter, err := journal.ParseFilter(exportDirection, exportPeriod)
	if err != nil {
		return err
	}

	l, _, _, cleanup, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	if exportOutput == "" {
		return export(l, cmd.Context(), cmd.OutOrStdout(), filter)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := export(l, cmd.Context(), f, filter); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported trades to %s\n", exportOutput)
	return nil
}
