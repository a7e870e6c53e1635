package indicators

import "math"

// DailyVolatility returns the standard deviation of day-over-day close
// returns, expressed as a fraction (0.03 = 3% daily moves).
func DailyVolatility(closes []float64) float64 {
	if len(closes) < 3 {
		return 0
	}

	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		rets = append(rets, closes[i]/closes[i-1]-1)
	}
	if len(rets) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	variance := 0.0
	for _, r := range rets {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rets) - 1)

	return math.Sqrt(variance)
}

// ReturnPct returns the percentage change from first to last close.
func ReturnPct(first, last float64) float64 {
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}
