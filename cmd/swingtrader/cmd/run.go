package cmd

import (
	"fmt"

	"github.com/rustyeddy/swingtrader/backtest"
	"github.com/rustyeddy/swingtrader/config"
	"github.com/rustyeddy/swingtrader/journal"
	"github.com/rustyeddy/swingtrader/kpi"
	"github.com/rustyeddy/swingtrader/market"
	"github.com/rustyeddy/swingtrader/risk"
	"github.com/rustyeddy/swingtrader/strategies"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest over a daily bar CSV",
	Long: `Run executes a full backtest with the momentum signal source and the
risk governor over daily bars.

Example:
  swingtrader run -d data/bars.csv --db journal.sqlite`,
	RunE: runBacktest,
}

var (
	runDataPath   string
	runConfigPath string
	runDBPath     string
	runBalance    float64
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runDataPath, "data", "d", "", "path to daily bar CSV (date,symbol,open,high,low,close,volume[,sector]) (required)")
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to config file (YAML or JSON)")
	runCmd.Flags().StringVar(&runDBPath, "db", "", "path to SQLite journal DB (overrides config)")
	runCmd.Flags().Float64VarP(&runBalance, "balance", "b", 0, "starting capital (overrides config)")

	runCmd.MarkFlagRequired("data")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return err
	}
	if runBalance > 0 {
		cfg.Account.InitialCapital = runBalance
	}
	if runDBPath != "" {
		cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: runDBPath}
	}

	table, err := market.LoadCSV(runDataPath)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	engine := backtest.NewEngine(backtest.Config{
		InitialCapital: cfg.Account.InitialCapital,
		TrailStops:     cfg.Account.TrailStops,
		Stops:          cfg.Stops,
		Journal:        j,
	})

	source := strategies.NewMomentum(cfg.Account.InitialCapital)
	source.Sizing = cfg.Sizing
	source.Decay = cfg.Decay
	source.Stops = cfg.Stops

	dates := table.Dates()
	fmt.Printf("Running backtest: %s to %s (%d trading days)\n",
		dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02"), len(dates))
	fmt.Printf("  Initial capital: $%.0f\n\n", cfg.Account.InitialCapital)

	res, err := engine.Run(table, source, risk.NewGovernor(cfg.Risk))
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}

	printResult(res)
	return nil
}

func printResult(res *backtest.Result) {
	m := res.Metrics
	report := kpi.Compute(res.Trades, res.EquityCurve)

	rejected := 0
	for _, s := range res.SignalLog {
		if !s.Executed {
			rejected++
		}
	}

	fmt.Println("Backtest Complete!")
	fmt.Printf("  Run ID:        %s\n", res.RunID)
	fmt.Printf("  Final Value:   $%.2f\n", m.FinalValue)
	fmt.Printf("  Total Return:  %.2f%%\n", m.TotalReturnPct)
	fmt.Printf("  Trades:        %d (%d wins / %d losses)\n", m.TotalTrades, m.WinningTrades, m.LosingTrades)
	fmt.Printf("  Win Rate:      %.1f%%\n", m.WinRatePct)
	fmt.Printf("  Avg Win/Loss:  $%.2f / $%.2f\n", m.AvgWin, m.AvgLoss)
	fmt.Printf("  Expectancy:    $%.2f\n", report.Expectancy)
	fmt.Printf("  Max Drawdown:  %.2f%%\n", report.MaxDrawdownPct)
	fmt.Printf("  Signals:       %d evaluated, %d rejected\n", len(res.SignalLog), rejected)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.EquityFile, jc.SignalsFile)
	default:
		return journal.Nop{}, nil
	}
}
