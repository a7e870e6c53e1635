package exits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecay_GracePeriod(t *testing.T) {
	t.Parallel()

	got := Decay(DefaultDecay(), DecayInputs{
		InitialConfidence: 80,
		AgeDays:           10,
		EntryPrice:        100,
		CurrentPrice:      105,
		Price5DaysAgo:     100,
	})

	assert.InDelta(t, 80.0, got.DecayedConfidence, 1e-9)
	assert.Zero(t, got.TotalDecay)
	assert.Empty(t, got.Factors)
	assert.False(t, got.ForceExit)
}

func TestDecay_TimeAndStagnation(t *testing.T) {
	t.Parallel()

	// 15 days old: 5 past grace at 0.5/day, plus a stagnant tape.
	got := Decay(DefaultDecay(), DecayInputs{
		InitialConfidence: 80,
		AgeDays:           15,
		EntryPrice:        100,
		CurrentPrice:      100.5,
		Price5DaysAgo:     100, // 0.5% move: stagnant
		SectorPerf5D:      0,
		MarketPerf5D:      0,
	})

	assert.InDelta(t, 2.5, got.Factors["time_decay"], 1e-9)
	assert.InDelta(t, 2.0, got.Factors["stagnation_decay"], 1e-9)
	assert.InDelta(t, 4.5, got.TotalDecay, 1e-9)
	assert.InDelta(t, 75.5, got.DecayedConfidence, 1e-9)
	assert.False(t, got.ForceExit)
}

func TestDecay_SectorWeakness(t *testing.T) {
	t.Parallel()

	got := Decay(DefaultDecay(), DecayInputs{
		InitialConfidence: 80,
		AgeDays:           5,
		EntryPrice:        100,
		CurrentPrice:      110,
		Price5DaysAgo:     100,
		SectorPerf5D:      -2.0,
		MarketPerf5D:      0.5,
	})

	assert.InDelta(t, 1.5, got.Factors["sector_decay"], 1e-9)
	assert.InDelta(t, 78.5, got.DecayedConfidence, 1e-9)
}

func TestDecay_ForceExit(t *testing.T) {
	t.Parallel()

	// 40 days: 30 past grace at 0.5/day = 15 points, plus stagnation.
	got := Decay(DefaultDecay(), DecayInputs{
		InitialConfidence: 60,
		AgeDays:           40,
		EntryPrice:        100,
		CurrentPrice:      100.1,
		Price5DaysAgo:     100,
	})

	assert.InDelta(t, 43.0, got.DecayedConfidence, 1e-9)
	assert.True(t, got.ForceExit)
}

func TestDecay_NeverNegative(t *testing.T) {
	t.Parallel()

	got := Decay(DefaultDecay(), DecayInputs{
		InitialConfidence: 50,
		AgeDays:           200,
		EntryPrice:        100,
		CurrentPrice:      100,
		Price5DaysAgo:     100,
	})

	assert.GreaterOrEqual(t, got.DecayedConfidence, 0.0)
	assert.True(t, got.ForceExit)
}

func TestDecay_RecomputedNotCompounded(t *testing.T) {
	t.Parallel()

	in := DecayInputs{
		InitialConfidence: 80,
		AgeDays:           15,
		EntryPrice:        100,
		CurrentPrice:      110,
		Price5DaysAgo:     104,
	}

	first := Decay(DefaultDecay(), in)
	second := Decay(DefaultDecay(), in)
	assert.InDelta(t, first.DecayedConfidence, second.DecayedConfidence, 1e-12)
}

func TestShouldForceExit(t *testing.T) {
	t.Parallel()

	p := DefaultDecay()
	assert.True(t, ShouldForceExit(p, 44.9))
	assert.False(t, ShouldForceExit(p, 45.0))
	assert.False(t, ShouldForceExit(p, 80))
}

func TestDecay_ZeroLookbackPrice(t *testing.T) {
	t.Parallel()

	got := Decay(DefaultDecay(), DecayInputs{
		InitialConfidence: 80,
		AgeDays:           5,
		EntryPrice:        100,
		CurrentPrice:      100,
		Price5DaysAgo:     0,
	})

	assert.NotContains(t, got.Factors, "stagnation_decay")
}
