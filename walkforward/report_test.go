package walkforward

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary_EmptyReport(t *testing.T) {
	t.Parallel()

	r := &Report{}
	assert.Equal(t, "No valid windows for walk-forward testing", r.Summary())
}

func TestSummary_RendersSections(t *testing.T) {
	t.Parallel()

	r := &Report{
		TotalWindows: 5,
		Aggregate: Aggregate{
			AvgExpectancy:     42.5,
			AvgWinRatePct:     55,
			AvgMaxDrawdownPct: 3.2,
			WindowsWithTrades: 4,
			TotalWindows:      5,
		},
		Robustness: Robustness{
			ConsistencyScore:     61.0,
			ProfitableWindowsPct: 75.0,
			ExpectancyStd:        1.4,
			ExpectancyMin:        10,
			ExpectancyMax:        80,
		},
	}

	out := r.Summary()
	assert.Contains(t, out, "Total Windows:        5")
	assert.Contains(t, out, "Average Expectancy:   $42.50")
	assert.Contains(t, out, "Consistency Score:    61.0")
	assert.Contains(t, out, "ROBUST")
}

func TestAssessment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		consistency float64
		profitable  float64
		want        string
	}{
		{"robust", 60, 70, "ROBUST"},
		{"moderate", 40, 55, "MODERATE"},
		{"weak", 10, 30, "WEAK"},
		{"profitable_but_volatile", 20, 80, "WEAK"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := &Report{Robustness: Robustness{
				ConsistencyScore:     tt.consistency,
				ProfitableWindowsPct: tt.profitable,
			}}
			assert.Contains(t, r.assessment(), tt.want)
		})
	}
}
