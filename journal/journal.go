package journal

import "time"

// TradeRecord is one closed round-trip as persisted.
type TradeRecord struct {
	TradeID    string
	RunID      string
	Symbol     string
	EntryDate  time.Time
	ExitDate   time.Time
	EntryPrice float64
	ExitPrice  float64
	Shares     int
	PnL        float64
	PnLPct     float64
	ExitReason string
}

// EquitySnapshot is one end-of-day portfolio valuation.
type EquitySnapshot struct {
	RunID          string
	Date           time.Time
	Cash           float64
	PositionsValue float64
	TotalValue     float64
	OpenPositions  int
}

// SignalEntry is one row of the decision audit trail: every candidate
// signal the governor ruled on, accepted or not.
type SignalEntry struct {
	RunID           string
	Date            time.Time
	Symbol          string
	Type            string
	Confidence      float64
	Executed        bool
	RejectionReason string
}

// Journal persists a run's trades, equity curve and signal audit trail.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	RecordSignal(SignalEntry) error
	Close() error
}

// Nop is a Journal that discards everything. Useful for tests and
// walk-forward windows that only need in-memory results.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error     { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) RecordSignal(SignalEntry) error    { return nil }
func (Nop) Close() error                      { return nil }
