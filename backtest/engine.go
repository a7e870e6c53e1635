// Package backtest simulates a daily equity-trading strategy against
// historical bars. The engine owns the cash/position ledger for one run and
// processes each day in four ordered phases: stop checks, signal
// generation, governance and execution, then accounting. Decisions are
// always derived from data dated strictly before the execution day; only
// fills and stop triggers touch the day's own open and low.
package backtest

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/swingtrader/exits"
	"github.com/rustyeddy/swingtrader/indicators"
	"github.com/rustyeddy/swingtrader/journal"
	"github.com/rustyeddy/swingtrader/market"
	"github.com/rustyeddy/swingtrader/pkg/id"
	"github.com/rustyeddy/swingtrader/risk"
)

const (
	defaultSignalShares = 100
	defaultStopPct      = 0.08 // protective stop when a signal carries none
	atrPeriod           = 14
	smaPeriod           = 20
)

// Config controls one Engine.
type Config struct {
	InitialCapital float64

	// TrailStops enables end-of-day stop advancement through the exits
	// package. When false, entry stops stay fixed for the life of the
	// position.
	TrailStops bool
	Stops      exits.StopParams

	// Journal, when set, receives every trade, equity point and signal
	// record under this run's ID.
	Journal journal.Journal
}

// Engine is the daily backtest state machine. One Engine owns one run's
// ledger; concurrent runs need separate instances.
type Engine struct {
	cfg Config

	runID     string
	cash      float64
	positions map[string]*Position
	trades    []Trade
	equity    []EquityPoint
	signalLog []SignalRecord
	current   time.Time

	// per-symbol indicator streams fed only from already-processed days
	atrs map[string]*indicators.ATR
	smas map[string]*indicators.SMA
}

func NewEngine(cfg Config) *Engine {
	if cfg.InitialCapital == 0 {
		cfg.InitialCapital = 100_000
	}
	if cfg.Stops == (exits.StopParams{}) {
		cfg.Stops = exits.DefaultStops()
	}
	return &Engine{cfg: cfg}
}

// Run executes the backtest over the full table. Business-rule failures
// (insufficient cash, missing price rows, duplicate positions, governor
// vetoes) are recorded in the signal log and never abort the run;
// structurally invalid input does.
func (e *Engine) Run(table *market.Table, source SignalSource, gov Arbiter) (*Result, error) {
	if table == nil || table.Len() == 0 {
		return nil, fmt.Errorf("backtest: price table is empty")
	}
	if source == nil {
		return nil, fmt.Errorf("backtest: signal source is required")
	}
	if gov == nil {
		return nil, fmt.Errorf("backtest: governor is required")
	}

	e.reset()
	dates := table.Dates()

	for i, date := range dates {
		e.current = date

		// Phase 1: stop checks against the day's intraday lows.
		e.processStops(table, date)

		// Phase 2+3: signals from yesterday's bars, ruled on and filled at
		// today's open. The first day has no yesterday, so no signals.
		if i > 0 {
			prev := table.Day(dates[i-1])
			for _, sig := range source.Generate(prev, e.openPositions()) {
				e.processSignal(sig, table, date, gov)
			}
		}

		// Phase 4: mark to close and append one equity point.
		e.updateEquity(table, date)

		// Advance indicator streams and trail stops off today's closes;
		// both only influence decisions from tomorrow on.
		e.updateIndicators(table.Day(date))
		if e.cfg.TrailStops {
			e.trailStops(table, date)
		}
	}

	return e.results(), nil
}

func (e *Engine) reset() {
	e.runID = id.New()
	e.cash = e.cfg.InitialCapital
	e.positions = make(map[string]*Position)
	e.trades = nil
	e.equity = nil
	e.signalLog = nil
	e.atrs = make(map[string]*indicators.ATR)
	e.smas = make(map[string]*indicators.SMA)
}

// processStops closes every position whose stop was touched by the day's
// low. Fills happen at the stop price, not the day's open or close.
func (e *Engine) processStops(table *market.Table, date time.Time) {
	for _, sym := range e.sortedSymbols() {
		pos := e.positions[sym]
		bar, ok := table.Get(date, sym)
		if !ok {
			continue
		}
		if bar.Low <= pos.StopPrice {
			e.closePosition(pos, date, pos.StopPrice, ExitReasonStop)
		}
	}
}

func (e *Engine) processSignal(sig Signal, table *market.Table, date time.Time, gov Arbiter) {
	rec := SignalRecord{
		Date:       date,
		Symbol:     sig.Symbol,
		Type:       sig.Type,
		Confidence: sig.Confidence,
	}

	var executed bool
	var reason string

	switch sig.Type {
	case risk.Entry:
		executed, reason = e.processEntry(sig, table, date, gov)
	case risk.ExitSignal:
		executed, reason = e.processExit(sig, table, date, gov)
	default:
		reason = fmt.Sprintf("unknown signal type: %s", sig.Type)
	}

	rec.Executed = executed
	if !executed {
		rec.RejectionReason = reason
	}
	e.signalLog = append(e.signalLog, rec)

	if e.cfg.Journal != nil {
		e.cfg.Journal.RecordSignal(journal.SignalEntry{
			RunID:           e.runID,
			Date:            rec.Date,
			Symbol:          rec.Symbol,
			Type:            string(rec.Type),
			Confidence:      rec.Confidence,
			Executed:        rec.Executed,
			RejectionReason: rec.RejectionReason,
		})
	}
}

func (e *Engine) processEntry(sig Signal, table *market.Table, date time.Time, gov Arbiter) (bool, string) {
	if _, exists := e.positions[sig.Symbol]; exists {
		return false, "already have position"
	}

	bar, ok := table.Get(date, sig.Symbol)
	if !ok {
		return false, "no price data"
	}

	shares := sig.Shares
	if shares <= 0 {
		shares = defaultSignalShares
	}
	sector := sig.Sector
	if sector == "" {
		sector = bar.Sector
	}

	verdict, reason := gov.Run(risk.Request{
		Type:        risk.Entry,
		Symbol:      sig.Symbol,
		Price:       bar.Open,
		Confidence:  sig.Confidence,
		Size:        shares,
		Sector:      sector,
		DailyVolume: bar.Volume,
		Existing:    e.positionRefs(),
	})
	if verdict != risk.Enter {
		return false, fmt.Sprintf("governor rejected: %s", reason)
	}

	// Next-open fill: today's open is the first tradable price after the
	// signal's data.
	entryPrice := bar.Open
	cost := entryPrice * float64(shares)
	if cost > e.cash {
		return false, "insufficient cash"
	}

	stop := sig.StopPrice
	if stop <= 0 {
		stop = entryPrice * (1 - defaultStopPct)
	}

	e.positions[sig.Symbol] = &Position{
		Symbol:     sig.Symbol,
		Sector:     sector,
		EntryDate:  date,
		EntryPrice: entryPrice,
		Shares:     shares,
		StopPrice:  stop,
		Confidence: sig.Confidence,
		lastClose:  bar.Close,
	}
	e.cash -= cost
	return true, ""
}

func (e *Engine) processExit(sig Signal, table *market.Table, date time.Time, gov Arbiter) (bool, string) {
	pos, ok := e.positions[sig.Symbol]
	if !ok {
		return false, "no position to exit"
	}

	bar, ok := table.Get(date, sig.Symbol)
	if !ok {
		return false, "no price data"
	}

	pnlPct := (bar.Open - pos.EntryPrice) / pos.EntryPrice * 100

	// Exits carry no meaningful entry confidence; feed a mid-range value
	// through validation.
	conf := sig.Confidence
	if conf == 0 {
		conf = 70
	}

	verdict, reason := gov.Run(risk.Request{
		Type:              risk.ExitSignal,
		Symbol:            sig.Symbol,
		Price:             bar.Open,
		Confidence:        conf,
		Sector:            pos.Sector,
		DailyVolume:       bar.Volume,
		PnLPct:            &pnlPct,
		DecayedConfidence: sig.DecayedConfidence,
	})
	if verdict != risk.Exit {
		return false, fmt.Sprintf("governor rejected: %s", reason)
	}

	e.closePosition(pos, date, bar.Open, ExitReasonSignal)
	return true, ""
}

func (e *Engine) closePosition(pos *Position, date time.Time, exitPrice float64, reason string) {
	pnl := (exitPrice - pos.EntryPrice) * float64(pos.Shares)
	pnlPct := (exitPrice - pos.EntryPrice) / pos.EntryPrice * 100

	trade := Trade{
		Symbol:     pos.Symbol,
		EntryDate:  pos.EntryDate,
		ExitDate:   date,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  exitPrice,
		Shares:     pos.Shares,
		PnL:        pnl,
		PnLPct:     pnlPct,
		ExitReason: reason,
	}
	e.trades = append(e.trades, trade)
	e.cash += exitPrice * float64(pos.Shares)
	delete(e.positions, pos.Symbol)

	if e.cfg.Journal != nil {
		e.cfg.Journal.RecordTrade(journal.TradeRecord{
			TradeID:    id.New(),
			RunID:      e.runID,
			Symbol:     trade.Symbol,
			EntryDate:  trade.EntryDate,
			ExitDate:   trade.ExitDate,
			EntryPrice: trade.EntryPrice,
			ExitPrice:  trade.ExitPrice,
			Shares:     trade.Shares,
			PnL:        trade.PnL,
			PnLPct:     trade.PnLPct,
			ExitReason: trade.ExitReason,
		})
	}
}

// updateEquity marks every open position to the day's close. A symbol with
// no bar today is carried at its last known close so cash plus position
// value always reconciles exactly with total value.
func (e *Engine) updateEquity(table *market.Table, date time.Time) {
	positionsValue := 0.0
	for _, sym := range e.sortedSymbols() {
		pos := e.positions[sym]
		if bar, ok := table.Get(date, sym); ok {
			pos.lastClose = bar.Close
		}
		positionsValue += pos.lastClose * float64(pos.Shares)
	}

	point := EquityPoint{
		Date:           date,
		Cash:           e.cash,
		PositionsValue: positionsValue,
		TotalValue:     e.cash + positionsValue,
		OpenPositions:  len(e.positions),
	}
	e.equity = append(e.equity, point)

	if e.cfg.Journal != nil {
		e.cfg.Journal.RecordEquity(journal.EquitySnapshot{
			RunID:          e.runID,
			Date:           point.Date,
			Cash:           point.Cash,
			PositionsValue: point.PositionsValue,
			TotalValue:     point.TotalValue,
			OpenPositions:  point.OpenPositions,
		})
	}
}

func (e *Engine) updateIndicators(day []market.Bar) {
	for _, bar := range day {
		atr, ok := e.atrs[bar.Symbol]
		if !ok {
			atr = indicators.NewATR(atrPeriod)
			e.atrs[bar.Symbol] = atr
		}
		atr.Update(bar)

		sma, ok := e.smas[bar.Symbol]
		if !ok {
			sma = indicators.NewSMA(smaPeriod)
			e.smas[bar.Symbol] = sma
		}
		sma.Update(bar.Close)
	}
}

// trailStops ratchets each open position's stop off today's close. The new
// level only matters from tomorrow's stop check on.
func (e *Engine) trailStops(table *market.Table, date time.Time) {
	for _, sym := range e.sortedSymbols() {
		pos := e.positions[sym]
		bar, ok := table.Get(date, sym)
		if !ok {
			continue
		}

		atr, sma := e.atrs[sym], e.smas[sym]
		if atr == nil || sma == nil || !atr.Ready() || !sma.Ready() {
			continue
		}

		existing := pos.StopPrice
		res := exits.Update(e.cfg.Stops, exits.StopInputs{
			CurrentPrice: bar.Close,
			EntryPrice:   pos.EntryPrice,
			ATR:          atr.Value(),
			SMA20:        sma.Value(),
			ExistingStop: &existing,
			AgeDays:      pos.AgeDays(date),
		})
		pos.StopPrice = res.StopPrice
	}
}

func (e *Engine) sortedSymbols() []string {
	syms := make([]string, 0, len(e.positions))
	for s := range e.positions {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return syms
}

func (e *Engine) openPositions() []Position {
	out := make([]Position, 0, len(e.positions))
	for _, sym := range e.sortedSymbols() {
		out = append(out, *e.positions[sym])
	}
	return out
}

func (e *Engine) positionRefs() []risk.PositionRef {
	refs := make([]risk.PositionRef, 0, len(e.positions))
	for _, sym := range e.sortedSymbols() {
		refs = append(refs, risk.PositionRef{
			Symbol: sym,
			Sector: e.positions[sym].Sector,
		})
	}
	return refs
}

func (e *Engine) results() *Result {
	return &Result{
		RunID:       e.runID,
		Trades:      e.trades,
		EquityCurve: e.equity,
		SignalLog:   e.signalLog,
		Metrics:     e.metrics(),
	}
}

func (e *Engine) metrics() Metrics {
	m := Metrics{
		FinalValue:  e.cfg.InitialCapital,
		TotalTrades: len(e.trades),
	}
	if len(e.equity) > 0 {
		m.FinalValue = e.equity[len(e.equity)-1].TotalValue
	}
	m.TotalReturnPct = (m.FinalValue - e.cfg.InitialCapital) / e.cfg.InitialCapital * 100

	var winSum, lossSum float64
	for _, t := range e.trades {
		switch {
		case t.PnL > 0:
			m.WinningTrades++
			winSum += t.PnL
		case t.PnL < 0:
			m.LosingTrades++
			lossSum += t.PnL
		}
	}
	if m.TotalTrades > 0 {
		m.WinRatePct = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	}
	if m.WinningTrades > 0 {
		m.AvgWin = winSum / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = lossSum / float64(m.LosingTrades)
	}
	return m
}
