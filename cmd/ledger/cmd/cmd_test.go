package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args. Flag variables are package
// level, so tests in this file do not run in parallel.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTradeAddListStats(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.sqlite")

	out, err := run(t, "--db", db, "trade", "add",
		"--ticker", "nq", "--direction", "long", "--entry", "18000", "--exit", "18012.5", "--qty", "2",
		"--time", "2025-10-17T09:45:00-04:00")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Logged trade #001: Long NQ x2  P&L 500.00")

	out, err = run(t, "--db", db, "trade", "add",
		"--ticker", "ES", "--direction", "short", "--entry", "5000", "--exit", "5004", "--qty", "1",
		"--time", "2025-10-17T14:05:00-04:00")
	require.NoError(t, err)
	assert.Contains(t, out, "#002")
	assert.Contains(t, out, "-200.00")

	out, err = run(t, "--db", db, "trade", "list", "--direction", "all", "--period", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "NQ")
	assert.Contains(t, out, "ES")
	assert.Contains(t, out, "page 1 of 1 (2 trades)")

	out, err = run(t, "--db", db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Trades:         2 (1 won, 1 lost)")
	assert.Contains(t, out, "Win rate:       50.0%")
	assert.Contains(t, out, "Total P&L:      300.00")

	out, err = run(t, "--db", db, "equity", "--starting-balance", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "000")
	assert.Contains(t, out, "1500.00")
	assert.Contains(t, out, "1300.00")

	out, err = run(t, "--db", db, "trade", "show", "001")
	require.NoError(t, err)
	assert.Contains(t, out, "NQ Long")

	_, err = run(t, "--db", db, "trade", "show", "999")
	assert.Error(t, err)
}

func TestTradeAddRejectsBadDirection(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.sqlite")

	_, err := run(t, "--db", db, "trade", "add",
		"--ticker", "NQ", "--direction", "sideways", "--entry", "1", "--exit", "2", "--qty", "1")
	assert.Error(t, err)
}

func TestReflectCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.sqlite")

	out, err := run(t, "--db", db, "reflect", "prompt")
	require.NoError(t, err)
	assert.Contains(t, out, "[Self Awareness & Emotions]")

	out, err = run(t, "--db", db, "reflect", "answer", "Calm", "all", "day.")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Saved reflection")
	assert.Contains(t, out, "[Discipline & Process]")

	out, err = run(t, "--db", db, "reflect", "skip")
	require.NoError(t, err)
	assert.Contains(t, out, "[Performance & Improvement]")

	out, err = run(t, "--db", db, "reflect", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Calm all day.")
}

func TestRiskSize(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.sqlite")

	out, err := run(t, "--db", db, "risk", "size", "--ticker", "ES", "--entry", "5000", "--stop", "4990",
		"--risk", "0.01", "--balance", "25000")
	require.NoError(t, err)
	// 250 budget, 10 points * 50 = 500 per contract
	assert.Contains(t, out, "Contracts:    0")
	assert.Contains(t, out, "Risk budget:  250.00")
}

func TestConfigInitValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote "+path)

	_, err = run(t, "config", "init", "-o", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", "-o", path, "--force")
	require.NoError(t, err)
	configInitForce = false

	out, err = run(t, "config", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+path+" is valid")
	assert.Contains(t, out, `account "default", USD 10000.00 starting balance`)

	_, err = run(t, "config", "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account:\n  id: desk-2\n  starting_balance: 25000\n"), 0o644))
	t.Cleanup(func() { cfgFile = "" })

	out, err := run(t, "--config", path, "--db", filepath.Join(dir, "j.sqlite"), "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "id: desk-2")
	assert.Contains(t, out, "starting_balance: 25000")
	assert.Contains(t, out, "db_path: "+filepath.Join(dir, "j.sqlite"))
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ledger.sqlite")

	_, err := run(t, "--db", db, "trade", "add",
		"--ticker", "CL", "--direction", "long", "--entry", "70", "--exit", "71", "--qty", "1",
		"--time", "2025-10-17T10:00:00-04:00")
	require.NoError(t, err)

	_, err = run(t, "--db", db, "trade", "add",
		"--ticker", "ES", "--direction", "short", "--entry", "5000", "--exit", "4999", "--qty", "1",
		"--time", "2025-10-17T11:00:00-04:00")
	require.NoError(t, err)

	exportOutput = ""
	out, err := run(t, "--db", db, "export", "csv", "--direction", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "Trade ID,Date/Time,Ticker")
	assert.Contains(t, out, "CL,Long")
	assert.Contains(t, out, "ES,Short")

	out, err = run(t, "--db", db, "export", "csv", "--direction", "short")
	require.NoError(t, err)
	assert.Contains(t, out, "ES,Short")
	assert.NotContains(t, out, "CL,Long")

	_, err = run(t, "--db", db, "export", "csv", "--direction", "up")
	assert.Error(t, err)
	exportDirection = ""
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ledger version "+version)
}
