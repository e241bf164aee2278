package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/ledger/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create, check or print ledger settings",
	Long: `Ledger settings come from three layers, later ones winning:
built-in defaults, the file named by --config and LEDGER_* environment
variables (LEDGER_STORE_DB_PATH, LEDGER_ACCOUNT_STARTING_BALANCE, ...).

  init      write the defaults to a new file
  validate  load a file and report problems
  show      print the settings the other commands would run with`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default settings file",
	Long: `Write the built-in defaults to a file. YAML is used unless the name
ends in .json. An existing file is left alone unless --force is given.

  ledger config init
  ledger config init -o ~/.config/ledger.json --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a settings file",
	Long: `Load a settings file, apply environment overrides and run every
check a command would run at startup. Without an argument the --config
file is checked.

  ledger config validate ledger.yaml
  ledger --config ledger.yaml config validate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var (
	configInitOutput string
	configInitForce  bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "ledger.yaml", "file to write")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if !configInitForce {
		if _, err := os.Stat(configInitOutput); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configInitOutput)
		}
	}
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n  next: ledger --config %s serve\n", configInitOutput, configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no file to check: pass one or set --config")
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s is valid\n", path)
	fmt.Fprintf(out, "  account %q, %s %.2f starting balance\n", cfg.Account.ID, cfg.Account.Currency, cfg.Account.StartingBalance)
	fmt.Fprintf(out, "  journal at %s, prompt state in %s\n", cfg.Store.DBPath, cfg.PromptState.Backend)
	if n := len(cfg.Instruments); n > 0 {
		fmt.Fprintf(out, "  %d instrument point value override(s)\n", n)
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.PromptState.RedisPassword != "" {
		cfg.PromptState.RedisPassword = "********"
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
