package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ledger/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	Long: `Start the HTTP API on server.http_addr (or --addr).

Example:
  ledger serve --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.http_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if logLevel == "" {
		logLevel = "info"
	}
	l, cfg, log, cleanup, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := cfg.Server.HTTPAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	return server.Run(ctx, addr, server.New(l, log, cfg.Server.Mode), log)
}
