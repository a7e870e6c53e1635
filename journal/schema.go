// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	entry_date DATETIME NOT NULL,
	exit_date DATETIME NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	shares INTEGER NOT NULL,
	pnl REAL NOT NULL,
	pnl_pct REAL NOT NULL,
	exit_reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	cash REAL NOT NULL,
	positions_value REAL NOT NULL,
	total_value REAL NOT NULL,
	open_positions INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS signals (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	type TEXT NOT NULL,
	confidence REAL NOT NULL,
	executed INTEGER NOT NULL,
	rejection_reason TEXT
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_equity_run_date ON equity(run_id, date);
CREATE INDEX IF NOT EXISTS idx_signals_run_date ON signals(run_id, date);
`
