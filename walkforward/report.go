package walkforward

import (
	"fmt"
	"strings"
)

// Summary renders a plain-text sweep report with a robustness assessment.
func (r *Report) Summary() string {
	if r.TotalWindows == 0 {
		return "No valid windows for walk-forward testing"
	}

	var b strings.Builder

	fmt.Fprintln(&b, "=== WALK-FORWARD TESTING RESULTS ===")
	fmt.Fprintf(&b, "Total Windows:        %d\n", r.TotalWindows)
	fmt.Fprintf(&b, "Windows with Trades:  %d\n\n", r.Aggregate.WindowsWithTrades)

	fmt.Fprintln(&b, "AGGREGATED PERFORMANCE:")
	fmt.Fprintf(&b, "  Average Expectancy:   $%.2f\n", r.Aggregate.AvgExpectancy)
	fmt.Fprintf(&b, "  Average Win Rate:     %.1f%%\n", r.Aggregate.AvgWinRatePct)
	fmt.Fprintf(&b, "  Average Max Drawdown: %.1f%%\n\n", r.Aggregate.AvgMaxDrawdownPct)

	fmt.Fprintln(&b, "ROBUSTNESS ANALYSIS:")
	fmt.Fprintf(&b, "  Consistency Score:    %.1f\n", r.Robustness.ConsistencyScore)
	fmt.Fprintf(&b, "  Profitable Windows:   %.1f%%\n", r.Robustness.ProfitableWindowsPct)
	fmt.Fprintf(&b, "  Expectancy Std Dev:   $%.2f\n", r.Robustness.ExpectancyStd)
	fmt.Fprintf(&b, "  Expectancy Range:     $%.2f to $%.2f\n\n",
		r.Robustness.ExpectancyMin, r.Robustness.ExpectancyMax)

	fmt.Fprintln(&b, "OVERFITTING ASSESSMENT:")
	fmt.Fprintf(&b, "  %s\n", r.assessment())

	return b.String()
}

func (r *Report) assessment() string {
	c := r.Robustness.ConsistencyScore
	p := r.Robustness.ProfitableWindowsPct

	switch {
	case c > 50 && p > 60:
		return "ROBUST - consistent performance across time periods"
	case c > 30 && p > 50:
		return "MODERATE - some consistency but requires monitoring"
	default:
		return "WEAK - high variability suggests potential overfitting"
	}
}
