// store/schema.go
package store

// Schema is applied on every Open. Times are kept twice: as RFC3339 text,
// which preserves the trader's UTC offset, and as unix nanoseconds for
// ordering and range queries. pnl is exact decimal text.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	trade_id TEXT NOT NULL UNIQUE,
	traded_at TEXT NOT NULL,
	traded_unix INTEGER NOT NULL,
	ticker TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	quantity INTEGER NOT NULL,
	stop_loss REAL,
	take_profit REAL,
	notes TEXT NOT NULL DEFAULT '',
	pnl TEXT NOT NULL,
	is_profitable INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(traded_unix);

CREATE TABLE IF NOT EXISTS reflections (
	id TEXT PRIMARY KEY,
	reflected_at TEXT NOT NULL,
	reflected_unix INTEGER NOT NULL,
	grp TEXT NOT NULL,
	prompt TEXT NOT NULL,
	answer TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reflections_time ON reflections(reflected_unix);

CREATE TABLE IF NOT EXISTS prompt_state (
	account TEXT PRIMARY KEY,
	state TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`
