package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swingtrader",
	Short: "A daily equity backtester with risk governance",
	Long: `Swingtrader simulates a daily equity-trading strategy against
historical price data with a risk governor ruling on every trade.

It provides tools for:
  - Backtesting daily strategies without lookahead bias
  - Hybrid ATR/confidence position sizing
  - Ratcheting volatility-adaptive stops and confidence decay
  - Walk-forward robustness testing with frozen parameters
  - SQLite/CSV journaling of trades, equity and decision audits`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
