// Package walkforward validates strategy robustness across rolling,
// non-overlapping train/test windows. Parameters are frozen for the whole
// sweep: nothing is re-fitted on test data.
package walkforward

import (
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/swingtrader/backtest"
	"github.com/rustyeddy/swingtrader/kpi"
	"github.com/rustyeddy/swingtrader/market"
)

// Params is the opaque frozen-parameter map. The tester passes it through
// to every window unmodified.
type Params map[string]float64

// BacktestFunc runs one window's backtest over the test slice with the
// frozen parameters.
type BacktestFunc func(test *market.Table, frozen Params) (*backtest.Result, error)

// Tester drives repeated backtests across rolling windows.
type Tester struct {
	TrainDays int
	TestDays  int
	StepDays  int

	// Workers > 1 runs windows concurrently. Windows share no mutable
	// state, and results are keyed by window ID, so the report is
	// identical regardless of completion order.
	Workers int

	Backtest BacktestFunc
}

// New returns a Tester with the standard 1-year train / 3-month test /
// 1-month step configuration.
func New(fn BacktestFunc) *Tester {
	return &Tester{
		TrainDays: 252,
		TestDays:  63,
		StepDays:  21,
		Workers:   1,
		Backtest:  fn,
	}
}

// WindowResult is one window's outcome.
type WindowResult struct {
	Window          Window
	TestDaysActual  int
	KPIs            kpi.Report
	TradeCount      int
	FinalValue      float64
	TotalReturnPct  float64
}

// Aggregate averages KPIs across windows that produced trades.
type Aggregate struct {
	AvgExpectancy     float64
	AvgWinRatePct     float64
	AvgMaxDrawdownPct float64
	WindowsWithTrades int
	TotalWindows      int
}

// Robustness measures cross-window consistency.
type Robustness struct {
	ConsistencyScore     float64
	ProfitableWindowsPct float64
	ExpectancyStd        float64
	ExpectancyMin        float64
	ExpectancyMax        float64
}

// Report is the full sweep output.
type Report struct {
	Windows      []WindowResult
	Aggregate    Aggregate
	Robustness   Robustness
	TotalWindows int
	FrozenParams Params
}

// Run executes the sweep over [start, end]. A range too short for a single
// window returns an empty report; an inverted range is a structural error.
func (t *Tester) Run(table *market.Table, start, end time.Time, frozen Params) (*Report, error) {
	if t.Backtest == nil {
		return nil, fmt.Errorf("walkforward: Backtest is required")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("walkforward: end %s before start %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if t.TrainDays <= 0 || t.TestDays <= 0 || t.StepDays <= 0 {
		return nil, fmt.Errorf("walkforward: train/test/step days must be positive")
	}

	wins := windows(start, end, t.TrainDays, t.TestDays, t.StepDays)

	results := make([]*WindowResult, len(wins))
	errs := make([]error, len(wins))

	workers := t.Workers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	work := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i], errs[i] = t.runWindow(table, wins[i], frozen)
			}
		}()
	}
	for i := range wins {
		work <- i
	}
	close(work)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	report := &Report{FrozenParams: frozen}
	for _, r := range results {
		if r == nil {
			continue // window had no test data
		}
		report.Windows = append(report.Windows, *r)
	}
	report.TotalWindows = len(report.Windows)
	report.Aggregate = aggregate(report.Windows)
	report.Robustness = robustness(report.Windows)
	return report, nil
}

// runWindow runs one window's backtest confined to the test slice. Windows
// whose test range holds no bars are skipped (nil result).
func (t *Tester) runWindow(table *market.Table, w Window, frozen Params) (*WindowResult, error) {
	test := table.Slice(w.TestStart, w.TestEnd)
	if test.Len() == 0 {
		return nil, nil
	}

	res, err := t.Backtest(test, frozen)
	if err != nil {
		return nil, fmt.Errorf("window %d (%s..%s): %w",
			w.ID, w.TestStart.Format(time.DateOnly), w.TestEnd.Format(time.DateOnly), err)
	}

	wr := &WindowResult{
		Window:         w,
		TestDaysActual: len(test.Dates()),
		KPIs:           kpi.Compute(res.Trades, res.EquityCurve),
		TradeCount:     len(res.Trades),
		FinalValue:     res.Metrics.FinalValue,
		TotalReturnPct: res.Metrics.TotalReturnPct,
	}
	return wr, nil
}
