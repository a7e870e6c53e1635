package kpi

import (
	"testing"

	"github.com/rustyeddy/swingtrader/backtest"
	"github.com/stretchr/testify/assert"
)

func TestCompute_EmptyRun(t *testing.T) {
	t.Parallel()

	r := Compute(nil, nil)

	assert.Zero(t, r.TotalTrades)
	assert.Zero(t, r.Expectancy)
	assert.Zero(t, r.MaxDrawdownPct)
	assert.Zero(t, r.ProfitFactor)
}

func TestCompute_MixedTrades(t *testing.T) {
	t.Parallel()

	trades := []backtest.Trade{
		{Symbol: "AAPL", PnL: 500},
		{Symbol: "MSFT", PnL: -200},
		{Symbol: "NVDA", PnL: 300},
		{Symbol: "XOM", PnL: -100},
	}

	r := Compute(trades, nil)

	assert.Equal(t, 4, r.TotalTrades)
	assert.InDelta(t, 125.0, r.Expectancy, 1e-9)
	assert.InDelta(t, 50.0, r.WinRatePct, 1e-9)
	assert.InDelta(t, 800.0, r.GrossProfit, 1e-9)
	assert.InDelta(t, 300.0, r.GrossLoss, 1e-9)
	assert.InDelta(t, 2.67, r.ProfitFactor, 1e-9)
	assert.InDelta(t, 500.0, r.LargestWin, 1e-9)
	assert.InDelta(t, -200.0, r.LargestLoss, 1e-9)
}

func TestCompute_AllWinners(t *testing.T) {
	t.Parallel()

	trades := []backtest.Trade{{PnL: 100}, {PnL: 50}}
	r := Compute(trades, nil)

	assert.InDelta(t, 100.0, r.WinRatePct, 1e-9)
	assert.Zero(t, r.GrossLoss)
	// No losses means no meaningful profit factor.
	assert.Zero(t, r.ProfitFactor)
}

func TestCompute_BreakevenTradeIsNotAWin(t *testing.T) {
	t.Parallel()

	trades := []backtest.Trade{{PnL: 0}, {PnL: 100}}
	r := Compute(trades, nil)

	assert.InDelta(t, 50.0, r.WinRatePct, 1e-9)
}

func TestMaxDrawdownPct(t *testing.T) {
	t.Parallel()

	equity := []backtest.EquityPoint{
		{TotalValue: 100_000},
		{TotalValue: 110_000},
		{TotalValue: 99_000}, // 10% off the 110k peak
		{TotalValue: 108_000},
		{TotalValue: 112_000},
	}

	r := Compute(nil, equity)
	assert.InDelta(t, 10.0, r.MaxDrawdownPct, 1e-9)
}

func TestMaxDrawdownPct_MonotonicCurve(t *testing.T) {
	t.Parallel()

	equity := []backtest.EquityPoint{
		{TotalValue: 100_000},
		{TotalValue: 101_000},
		{TotalValue: 103_000},
	}

	r := Compute(nil, equity)
	assert.Zero(t, r.MaxDrawdownPct)
}
