package journal

import (
	"database/sql"
	"fmt"
)

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord

	row := j.db.QueryRow(`
		SELECT trade_id, run_id, symbol, entry_date, exit_date, entry_price, exit_price, shares, pnl, pnl_pct, exit_reason
		FROM trades
		WHERE trade_id = ?`, tradeID)

	err := scanTrade(row, &rec)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesByRun returns a run's trades ordered by exit date.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, run_id, symbol, entry_date, exit_date, entry_price, exit_price, shares, pnl, pnl_pct, exit_reason
		FROM trades
		WHERE run_id = ?
		ORDER BY exit_date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := scanTrade(rows, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRejectedSignals returns a run's vetoed signals with their reasons,
// ordered by date.
func (j *SQLite) ListRejectedSignals(runID string) ([]SignalEntry, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, symbol, type, confidence, executed, COALESCE(rejection_reason, '')
		FROM signals
		WHERE run_id = ? AND executed = 0
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SignalEntry
	for rows.Next() {
		var rec SignalEntry
		if err := rows.Scan(
			&rec.RunID,
			&rec.Date,
			&rec.Symbol,
			&rec.Type,
			&rec.Confidence,
			&rec.Executed,
			&rec.RejectionReason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityByRun returns a run's equity curve in date order.
func (j *SQLite) ListEquityByRun(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, cash, positions_value, total_value, open_positions
		FROM equity
		WHERE run_id = ?
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var rec EquitySnapshot
		if err := rows.Scan(
			&rec.RunID,
			&rec.Date,
			&rec.Cash,
			&rec.PositionsValue,
			&rec.TotalValue,
			&rec.OpenPositions,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner, rec *TradeRecord) error {
	return s.Scan(
		&rec.TradeID,
		&rec.RunID,
		&rec.Symbol,
		&rec.EntryDate,
		&rec.ExitDate,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.Shares,
		&rec.PnL,
		&rec.PnLPct,
		&rec.ExitReason,
	)
}
