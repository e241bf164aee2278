package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/ledger/config"
	"github.com/rustyeddy/ledger/logger"
	"github.com/rustyeddy/ledger/service"
	"github.com/rustyeddy/ledger/tracing"
)

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "A futures trading journal with P&L, statistics and reflections",
	Long: `Ledger records closed futures trades, derives their P&L from the
instrument point value table and summarizes the journal.

It provides tools for:
  - Logging trades and browsing the trade log
  - Win rate, profit and per-direction statistics
  - Equity curves and drawdown
  - Rotating daily reflection prompts
  - CSV and Org-mode exports
  - A JSON HTTP API (ledger serve)

Configuration is read from --config (YAML or JSON), LEDGER_* environment
variables and a .env file in the working directory.`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	dbPath   string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides store.db_path)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides log.level)")
}

// loadConfig applies the persistent flags on top of the loaded config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Store.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// openLedger loads the config and opens the ledger it describes. CLI
// commands log at warn unless --log-level says otherwise.
func openLedger(ctx context.Context) (*service.Ledger, *config.Config, *zap.Logger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("config: %w", err)
	}
	if logLevel == "" {
		cfg.Log.Level = "warn"
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("logger: %w", err)
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Trace, version)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	}

	l, closeFn, err := service.Open(ctx, cfg, log)
	if err != nil {
		_ = shutdownTracing(context.Background())
		_ = log.Sync()
		return nil, nil, nil, nil, fmt.Errorf("open ledger: %w", err)
	}

	cleanup := func() {
		if err := closeFn(); err != nil {
			log.Warn("close ledger", zap.Error(err))
		}
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("flush traces", zap.Error(err))
		}
		_ = log.Sync()
	}
	return l, cfg, log, cleanup, nil
}
