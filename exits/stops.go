// Package exits computes stop-loss levels and confidence decay for open
// positions. Everything here is a pure function over explicit inputs so the
// backtest engine and walk-forward windows can share frozen parameters.
package exits

import "math"

// TrendStrength classifies price relative to its 20-day SMA.
type TrendStrength string

const (
	TrendWeak   TrendStrength = "weak"
	TrendNormal TrendStrength = "normal"
	TrendStrong TrendStrength = "strong"
)

// StopType records how the latest stop level was derived.
type StopType string

const (
	StopInitial  StopType = "initial"
	StopTrailing StopType = "trailing"
	StopHeld     StopType = "held"
)

// StopParams holds the k-factor ladder and trend thresholds for the
// volatility-adaptive stop.
type StopParams struct {
	TightK  float64 `json:"tight_k" yaml:"tight_k"`
	NormalK float64 `json:"normal_k" yaml:"normal_k"`
	WideK   float64 `json:"wide_k" yaml:"wide_k"`

	// Trend thresholds as |price-sma|/sma fractions
	WeakTrendMax   float64 `json:"weak_trend_max" yaml:"weak_trend_max"`
	NormalTrendMax float64 `json:"normal_trend_max" yaml:"normal_trend_max"`
}

// DefaultStops returns the standard stop ladder: 1.5/2.0/2.5 ATRs for
// weak/normal/strong trends, with 2% and 5% trend thresholds.
func DefaultStops() StopParams {
	return StopParams{
		TightK:         1.5,
		NormalK:        2.0,
		WideK:          2.5,
		WeakTrendMax:   0.02,
		NormalTrendMax: 0.05,
	}
}

// StopInputs are the per-position inputs for one stop update.
// ExistingStop is nil for a freshly opened position.
type StopInputs struct {
	CurrentPrice float64
	EntryPrice   float64
	ATR          float64
	SMA20        float64
	ExistingStop *float64
	AgeDays      int
}

// StopResult describes the updated stop level.
type StopResult struct {
	StopPrice   float64
	KFactor     float64
	Trend       TrendStrength
	StopType    StopType
	ATRDistance float64
	PnLPct      float64
}

// Update advances a position's stop. New positions get an initial stop at
// entry - k*ATR; existing positions trail at max(existing, price - k*ATR).
// The stop is a strict ratchet: it never decreases across calls.
func Update(p StopParams, in StopInputs) StopResult {
	trend := assessTrend(p, in.CurrentPrice, in.SMA20)
	k := selectK(p, trend, in.AgeDays)

	var stop float64
	var stopType StopType

	if in.ExistingStop == nil {
		stop = in.EntryPrice - k*in.ATR
		stopType = StopInitial
	} else {
		trailing := in.CurrentPrice - k*in.ATR
		stop = math.Max(*in.ExistingStop, trailing)
		if stop > *in.ExistingStop {
			stopType = StopTrailing
		} else {
			stopType = StopHeld
		}
	}

	return StopResult{
		StopPrice:   round2(stop),
		KFactor:     k,
		Trend:       trend,
		StopType:    stopType,
		ATRDistance: round2(k * in.ATR),
		PnLPct:      round1((in.CurrentPrice - in.EntryPrice) / in.EntryPrice * 100),
	}
}

// IsStoppedOut reports whether a price at or below the stop triggers an exit.
func IsStoppedOut(price, stop float64) bool {
	return price <= stop
}

func assessTrend(p StopParams, price, sma20 float64) TrendStrength {
	vsSMA := math.Abs(price-sma20) / sma20

	switch {
	case vsSMA <= p.WeakTrendMax:
		return TrendWeak
	case vsSMA <= p.NormalTrendMax:
		return TrendNormal
	default:
		return TrendStrong
	}
}

// selectK widens the k-factor monotonically with position age: mature
// positions in strong trends always get the wide stop, and anything past
// five days in a normal or strong trend never narrows below NormalK.
func selectK(p StopParams, trend TrendStrength, ageDays int) float64 {
	var base float64
	switch trend {
	case TrendWeak:
		base = p.TightK
	case TrendNormal:
		base = p.NormalK
	default:
		base = p.WideK
	}

	if ageDays >= 10 && trend == TrendStrong {
		return p.WideK
	}
	if ageDays >= 5 && (trend == TrendNormal || trend == TrendStrong) {
		return math.Max(base, p.NormalK)
	}
	return base
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
