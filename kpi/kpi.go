// Package kpi computes performance indicators from a completed run's trade
// list and equity curve.
package kpi

import (
	"math"

	"github.com/rustyeddy/swingtrader/backtest"
)

// Report holds the core KPIs for one run or one walk-forward window.
type Report struct {
	Expectancy     float64 // mean P&L per trade
	MaxDrawdownPct float64 // worst peak-to-trough decline
	WinRatePct     float64
	TotalTrades    int

	GrossProfit  float64
	GrossLoss    float64
	ProfitFactor float64
	LargestWin   float64
	LargestLoss  float64
}

// Compute builds a Report. Zero trades yield a zero-valued report, never a
// division by zero.
func Compute(trades []backtest.Trade, equity []backtest.EquityPoint) Report {
	r := Report{
		TotalTrades:    len(trades),
		MaxDrawdownPct: maxDrawdownPct(equity),
	}
	if len(trades) == 0 {
		return r
	}

	wins := 0
	totalPnL := 0.0
	for _, t := range trades {
		totalPnL += t.PnL

		switch {
		case t.PnL > 0:
			wins++
			r.GrossProfit += t.PnL
			r.LargestWin = math.Max(r.LargestWin, t.PnL)
		case t.PnL < 0:
			r.GrossLoss += -t.PnL
			r.LargestLoss = math.Min(r.LargestLoss, t.PnL)
		}
	}

	r.Expectancy = round2(totalPnL / float64(len(trades)))
	r.WinRatePct = round1(float64(wins) / float64(len(trades)) * 100)
	if r.GrossLoss > 0 {
		r.ProfitFactor = round2(r.GrossProfit / r.GrossLoss)
	}
	return r
}

// maxDrawdownPct walks the equity curve tracking the running peak.
func maxDrawdownPct(equity []backtest.EquityPoint) float64 {
	if len(equity) < 2 {
		return 0
	}

	peak := equity[0].TotalValue
	maxDD := 0.0
	for _, p := range equity {
		if p.TotalValue > peak {
			peak = p.TotalValue
		}
		if peak > 0 {
			dd := (peak - p.TotalValue) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return round2(maxDD * 100)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
