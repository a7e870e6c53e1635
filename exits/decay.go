package exits

import "math"

// DecayParams controls how position confidence erodes over time. Decay is
// always recomputed from the entry-time confidence, never compounded on a
// previously decayed value.
type DecayParams struct {
	TimeDecayRate       float64 `json:"time_decay_rate" yaml:"time_decay_rate"`
	GraceDays           int     `json:"grace_days" yaml:"grace_days"`
	StagnationThreshold float64 `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	StagnationDecay     float64 `json:"stagnation_decay" yaml:"stagnation_decay"`
	SectorDecayRate     float64 `json:"sector_decay_rate" yaml:"sector_decay_rate"`
	MinConfidence       float64 `json:"min_confidence" yaml:"min_confidence"`
}

// DefaultDecay returns the standard decay schedule: 0.5 points/day after a
// 10-day grace period, 2.0 for stagnant price action, 1.5 for sector
// weakness, forced exit below 45.
func DefaultDecay() DecayParams {
	return DecayParams{
		TimeDecayRate:       0.5,
		GraceDays:           10,
		StagnationThreshold: 0.02,
		StagnationDecay:     2.0,
		SectorDecayRate:     1.5,
		MinConfidence:       45.0,
	}
}

// DecayInputs are the observations one decay evaluation needs.
// InitialConfidence must be the original entry-time confidence.
type DecayInputs struct {
	InitialConfidence float64
	AgeDays           int
	EntryPrice        float64
	CurrentPrice      float64
	Price5DaysAgo     float64
	SectorPerf5D      float64
	MarketPerf5D      float64
}

// DecayResult breaks the decay into its additive terms.
type DecayResult struct {
	DecayedConfidence float64
	TotalDecay        float64
	Factors           map[string]float64
	ForceExit         bool
	PnLPct            float64
}

// Decay applies time, stagnation and sector-weakness decay to a position's
// entry confidence. The three terms are independent and additive.
func Decay(p DecayParams, in DecayInputs) DecayResult {
	factors := make(map[string]float64)
	total := 0.0

	if d := timeDecay(p, in.AgeDays); d > 0 {
		factors["time_decay"] = d
		total += d
	}
	if d := stagnationDecay(p, in.CurrentPrice, in.Price5DaysAgo); d > 0 {
		factors["stagnation_decay"] = d
		total += d
	}
	if d := sectorDecay(p, in.SectorPerf5D, in.MarketPerf5D); d > 0 {
		factors["sector_decay"] = d
		total += d
	}

	decayed := math.Max(0, in.InitialConfidence-total)

	return DecayResult{
		DecayedConfidence: round1(decayed),
		TotalDecay:        round1(total),
		Factors:           factors,
		ForceExit:         decayed < p.MinConfidence,
		PnLPct:            round1((in.CurrentPrice - in.EntryPrice) / in.EntryPrice * 100),
	}
}

// ShouldForceExit reports whether a decayed confidence mandates an exit.
func ShouldForceExit(p DecayParams, decayedConfidence float64) bool {
	return decayedConfidence < p.MinConfidence
}

// timeDecay is linear after the grace period: aging positions lose
// conviction at TimeDecayRate points per day.
func timeDecay(p DecayParams, ageDays int) float64 {
	if ageDays <= p.GraceDays {
		return 0
	}
	return float64(ageDays-p.GraceDays) * p.TimeDecayRate
}

// stagnationDecay penalizes positions whose price has moved less than the
// threshold over the lookback window.
func stagnationDecay(p DecayParams, current, fiveDaysAgo float64) float64 {
	if fiveDaysAgo == 0 {
		return 0
	}
	change := math.Abs((current - fiveDaysAgo) / fiveDaysAgo)
	if change < p.StagnationThreshold {
		return p.StagnationDecay
	}
	return 0
}

// sectorDecay penalizes positions whose sector lags the market by more
// than one point over the lookback window.
func sectorDecay(p DecayParams, sectorPerf, marketPerf float64) float64 {
	if sectorPerf-marketPerf < -1.0 {
		return p.SectorDecayRate
	}
	return 0
}
