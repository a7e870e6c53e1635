package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Journal backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, symbol, entry_date, exit_date, entry_price, exit_price, shares, pnl, pnl_pct, exit_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Symbol, t.EntryDate, t.ExitDate,
		t.EntryPrice, t.ExitPrice, t.Shares, t.PnL, t.PnLPct, t.ExitReason,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, date, cash, positions_value, total_value, open_positions)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Date, e.Cash, e.PositionsValue, e.TotalValue, e.OpenPositions,
	)
	return err
}

func (j *SQLite) RecordSignal(s SignalEntry) error {
	_, err := j.db.Exec(`
		INSERT INTO signals
		(run_id, date, symbol, type, confidence, executed, rejection_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Date, s.Symbol, s.Type, s.Confidence, s.Executed, s.RejectionReason,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
