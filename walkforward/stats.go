package walkforward

import "math"

// aggregate averages window KPIs. Zero-trade windows count toward
// TotalWindows but are excluded from every average to avoid dividing by
// their empty trade lists.
func aggregate(wins []WindowResult) Aggregate {
	agg := Aggregate{TotalWindows: len(wins)}

	var expSum, wrSum, ddSum float64
	for _, w := range wins {
		if w.TradeCount == 0 {
			continue
		}
		agg.WindowsWithTrades++
		expSum += w.KPIs.Expectancy
		wrSum += w.KPIs.WinRatePct
		ddSum += w.KPIs.MaxDrawdownPct
	}

	if agg.WindowsWithTrades > 0 {
		n := float64(agg.WindowsWithTrades)
		agg.AvgExpectancy = expSum / n
		agg.AvgWinRatePct = wrSum / n
		agg.AvgMaxDrawdownPct = ddSum / n
	}
	return agg
}

// robustness computes the consistency metrics: profitable-window ratio,
// expectancy dispersion, and a score that rewards consistency while
// penalizing volatile expectancy across windows.
func robustness(wins []WindowResult) Robustness {
	var expectancies []float64
	for _, w := range wins {
		if w.TradeCount > 0 {
			expectancies = append(expectancies, w.KPIs.Expectancy)
		}
	}
	if len(expectancies) == 0 {
		return Robustness{}
	}

	profitable := 0
	min, max := expectancies[0], expectancies[0]
	for _, e := range expectancies {
		if e > 0 {
			profitable++
		}
		min = math.Min(min, e)
		max = math.Max(max, e)
	}

	profitablePct := float64(profitable) / float64(len(expectancies)) * 100
	std := sampleStd(expectancies)

	return Robustness{
		ConsistencyScore:     round1(profitablePct - std*10),
		ProfitableWindowsPct: round1(profitablePct),
		ExpectancyStd:        round2(std),
		ExpectancyMin:        round2(min),
		ExpectancyMax:        round2(max),
	}
}

func sampleStd(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals) - 1)

	return math.Sqrt(variance)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
