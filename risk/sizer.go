package risk

import (
	"fmt"
	"math"
)

// SizingParams controls hybrid position sizing: fixed fractional risk,
// ATR-based stops, confidence participation and a volatility cap.
type SizingParams struct {
	BaseRiskPct       float64 `json:"base_risk_pct" yaml:"base_risk_pct"`
	ATRStopMultiplier float64 `json:"atr_stop_multiplier" yaml:"atr_stop_multiplier"`
	MaxVolatility     float64 `json:"max_volatility" yaml:"max_volatility"`
	MinConfidence     float64 `json:"min_confidence" yaml:"min_confidence"`
}

// DefaultSizing returns the standard sizing parameters: 1% risk per trade,
// 2x ATR stops, 5% daily volatility cap, 62-point confidence floor.
func DefaultSizing() SizingParams {
	return SizingParams{
		BaseRiskPct:       0.01,
		ATRStopMultiplier: 2.0,
		MaxVolatility:     0.05,
		MinConfidence:     62,
	}
}

// participationBuckets maps a confidence floor to a fraction of the risk
// budget. The highest bucket at or below the score wins.
var participationBuckets = []struct {
	MinConfidence float64
	Rate          float64
}{
	{85, 1.00},
	{80, 0.85},
	{75, 0.70},
	{70, 0.55},
	{65, 0.40},
	{60, 0.25},
}

// SizeInputs are the per-trade inputs to the sizer. DailyVolatility is
// optional; when nil no volatility adjustment is applied.
type SizeInputs struct {
	AccountValue    float64
	EntryPrice      float64
	ATR             float64
	Confidence      float64
	DailyVolatility *float64
}

// SizeResult is the sizer's output. A zero-share result carries a Reason
// explaining why no position should be taken; it is not an error.
type SizeResult struct {
	Shares        int
	StopPrice     float64
	RiskAmount    float64
	Participation float64
	StopDistance  float64
	VolAdjustment float64
	Reason        string
}

// Size computes share count, stop price and risk budget for one entry.
//
// shares = floor(account*riskPct*participation / (atr*mult)), scaled down
// when daily volatility exceeds the cap. Realized dollar risk at entry
// (shares * stop distance) never exceeds the participation-scaled budget.
func Size(p SizingParams, in SizeInputs) SizeResult {
	if in.Confidence < p.MinConfidence {
		return SizeResult{
			Reason: fmt.Sprintf("below minimum confidence (%.0f%%)", p.MinConfidence),
		}
	}
	if in.ATR <= 0 {
		return SizeResult{Reason: fmt.Sprintf("invalid ATR: %.4f", in.ATR)}
	}

	baseRisk := in.AccountValue * p.BaseRiskPct
	participation := participationRate(in.Confidence)
	adjustedRisk := baseRisk * participation

	stopDistance := in.ATR * p.ATRStopMultiplier
	stopPrice := in.EntryPrice - stopDistance

	shares := adjustedRisk / stopDistance

	volAdj := 1.0
	if in.DailyVolatility != nil {
		volAdj = volatilityAdjustment(p, *in.DailyVolatility)
		shares *= volAdj
	}

	return SizeResult{
		Shares:        int(math.Floor(shares)),
		StopPrice:     round2(stopPrice),
		RiskAmount:    round2(adjustedRisk),
		Participation: participation,
		StopDistance:  round2(stopDistance),
		VolAdjustment: volAdj,
	}
}

func participationRate(confidence float64) float64 {
	for _, b := range participationBuckets {
		if confidence >= b.MinConfidence {
			return b.Rate
		}
	}
	return 0
}

// volatilityAdjustment shrinks size linearly above the volatility cap:
// 5% vol = 1.0x, 10% vol = 0.5x, floored at 0.25x.
func volatilityAdjustment(p SizingParams, dailyVol float64) float64 {
	if dailyVol <= p.MaxVolatility {
		return 1.0
	}
	return math.Max(p.MaxVolatility/dailyVol, 0.25)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
