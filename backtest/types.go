package backtest

import (
	"time"

	"github.com/rustyeddy/swingtrader/market"
	"github.com/rustyeddy/swingtrader/risk"
)

// Exit reasons recorded on closed trades.
const (
	ExitReasonStop   = "STOP"
	ExitReasonSignal = "SIGNAL"
)

// Signal is one candidate entry or exit produced by a SignalSource.
// Shares and StopPrice are optional for entries; the engine falls back to
// 100 shares and an 8% protective stop. DecayedConfidence is optional and
// only consulted by the governor for exits.
type Signal struct {
	Type       risk.SignalType
	Symbol     string
	Sector     string
	Confidence float64
	Shares     int
	StopPrice  float64

	DecayedConfidence *float64
}

// SignalSource produces candidate signals from the previous trading day's
// bars and the current open positions. It never sees the execution day's
// bars; that is what keeps the simulation free of lookahead bias.
type SignalSource interface {
	Generate(prevDay []market.Bar, open []Position) []Signal
}

// SourceFunc adapts a plain function to SignalSource.
type SourceFunc func(prevDay []market.Bar, open []Position) []Signal

func (f SourceFunc) Generate(prevDay []market.Bar, open []Position) []Signal {
	return f(prevDay, open)
}

// Arbiter rules on each candidate signal. risk.Governor implements it.
type Arbiter interface {
	Run(risk.Request) (risk.Verdict, string)
}

// Position is an open holding. It is owned exclusively by one Engine for
// one run; its stop is only ever advanced through the exits package.
type Position struct {
	Symbol     string
	Sector     string
	EntryDate  time.Time
	EntryPrice float64
	Shares     int
	StopPrice  float64
	Confidence float64 // entry-time confidence, the decay baseline

	lastClose float64 // most recent mark, carried over missing bars
}

// AgeDays returns the position's age in calendar days at the given date.
func (p Position) AgeDays(date time.Time) int {
	return int(date.Sub(p.EntryDate).Hours() / 24)
}

// Trade is an immutable record of a closed round-trip.
type Trade struct {
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

// EquityPoint is one end-of-day valuation of the portfolio.
type EquityPoint struct {
	Date           time.Time
	Cash           float64
	PositionsValue float64
	TotalValue     float64
	OpenPositions  int
}

// SignalRecord is the audit-trail row for one evaluated candidate signal.
type SignalRecord struct {
	Date            time.Time
	Symbol          string
	Type            risk.SignalType
	Confidence      float64
	Executed        bool
	RejectionReason string
}

// Metrics summarizes a completed run.
type Metrics struct {
	TotalReturnPct float64
	FinalValue     float64
	TotalTrades    int
	WinningTrades  int
	LosingTrades   int
	WinRatePct     float64
	AvgWin         float64
	AvgLoss        float64
}

// Result bundles everything a run produced.
type Result struct {
	RunID       string
	Trades      []Trade
	EquityCurve []EquityPoint
	SignalLog   []SignalRecord
	Metrics     Metrics
}
