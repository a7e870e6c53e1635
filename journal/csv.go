package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV is a Journal that writes three flat files: trades, equity, signals.
type CSV struct {
	trades  *csv.Writer
	equity  *csv.Writer
	signals *csv.Writer
	files   []*os.File
}

func NewCSV(tradesPath, equityPath, signalsPath string) (*CSV, error) {
	j := &CSV{}

	for _, spec := range []struct {
		path   string
		header []string
		dst    **csv.Writer
	}{
		{tradesPath, []string{"trade_id", "run_id", "symbol", "entry_date", "exit_date", "entry_price", "exit_price", "shares", "pnl", "pnl_pct", "exit_reason"}, &j.trades},
		{equityPath, []string{"run_id", "date", "cash", "positions_value", "total_value", "open_positions"}, &j.equity},
		{signalsPath, []string{"run_id", "date", "symbol", "type", "confidence", "executed", "rejection_reason"}, &j.signals},
	} {
		f, err := os.Create(spec.path)
		if err != nil {
			j.Close()
			return nil, err
		}
		j.files = append(j.files, f)

		w := csv.NewWriter(f)
		if err := w.Write(spec.header); err != nil {
			j.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			j.Close()
			return nil, err
		}
		*spec.dst = w
	}

	return j, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	j.trades.Write([]string{
		t.TradeID,
		t.RunID,
		t.Symbol,
		t.EntryDate.Format(time.DateOnly),
		t.ExitDate.Format(time.DateOnly),
		f(t.EntryPrice),
		f(t.ExitPrice),
		strconv.Itoa(t.Shares),
		f(t.PnL),
		f(t.PnLPct),
		t.ExitReason,
	})
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordEquity(e EquitySnapshot) error {
	j.equity.Write([]string{
		e.RunID,
		e.Date.Format(time.DateOnly),
		f(e.Cash),
		f(e.PositionsValue),
		f(e.TotalValue),
		strconv.Itoa(e.OpenPositions),
	})
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSV) RecordSignal(s SignalEntry) error {
	j.signals.Write([]string{
		s.RunID,
		s.Date.Format(time.DateOnly),
		s.Symbol,
		s.Type,
		f(s.Confidence),
		strconv.FormatBool(s.Executed),
		s.RejectionReason,
	})
	j.signals.Flush()
	return j.signals.Error()
}

func (j *CSV) Close() error {
	var firstErr error
	for _, f := range j.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
