package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/swingtrader/backtest"
	"github.com/rustyeddy/swingtrader/market"
	"github.com/rustyeddy/swingtrader/strategies"
	"github.com/rustyeddy/swingtrader/walkforward"
	"github.com/spf13/cobra"
)

var wfCmd = &cobra.Command{
	Use:   "walkforward",
	Short: "Run walk-forward validation over a daily bar CSV",
	Long: `Walkforward splits the date range into rolling train/test windows,
runs a backtest over each test window with frozen parameters, and
reports aggregate and robustness statistics.

Example:
  swingtrader walkforward -d data/bars.csv --start 2023-01-01 --end 2024-12-31`,
	RunE: runWalkForward,
}

var (
	wfDataPath   string
	wfConfigPath string
	wfStart      string
	wfEnd        string
	wfTrainDays  int
	wfTestDays   int
	wfStepDays   int
	wfWorkers    int
)

func init() {
	rootCmd.AddCommand(wfCmd)

	wfCmd.Flags().StringVarP(&wfDataPath, "data", "d", "", "path to daily bar CSV (required)")
	wfCmd.Flags().StringVarP(&wfConfigPath, "config", "c", "", "path to config file (YAML or JSON)")
	wfCmd.Flags().StringVar(&wfStart, "start", "", "range start date YYYY-MM-DD (default: first bar)")
	wfCmd.Flags().StringVar(&wfEnd, "end", "", "range end date YYYY-MM-DD (default: last bar)")
	wfCmd.Flags().IntVar(&wfTrainDays, "train", 0, "training window in days (overrides config)")
	wfCmd.Flags().IntVar(&wfTestDays, "test", 0, "test window in days (overrides config)")
	wfCmd.Flags().IntVar(&wfStepDays, "step", 0, "step between windows in days (overrides config)")
	wfCmd.Flags().IntVar(&wfWorkers, "workers", 0, "parallel window workers (overrides config)")

	wfCmd.MarkFlagRequired("data")
}

func runWalkForward(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(wfConfigPath)
	if err != nil {
		return err
	}

	table, err := market.LoadCSV(wfDataPath)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	dates := table.Dates()
	if len(dates) == 0 {
		return fmt.Errorf("no bars in %s", wfDataPath)
	}

	start, end := dates[0], dates[len(dates)-1]
	if wfStart != "" {
		if start, err = time.Parse("2006-01-02", wfStart); err != nil {
			return fmt.Errorf("parse start date: %w", err)
		}
	}
	if wfEnd != "" {
		if end, err = time.Parse("2006-01-02", wfEnd); err != nil {
			return fmt.Errorf("parse end date: %w", err)
		}
	}

	tester := walkforward.New(walkforward.EngineRunner(func(p walkforward.Params) backtest.SignalSource {
		capital := 100_000.0
		if v, ok := p[walkforward.ParamInitialCapital]; ok {
			capital = v
		}
		return strategies.NewMomentum(capital)
	}))
	tester.TrainDays = cfg.WalkForward.TrainDays
	tester.TestDays = cfg.WalkForward.TestDays
	tester.StepDays = cfg.WalkForward.StepDays
	tester.Workers = cfg.WalkForward.Workers
	if wfTrainDays > 0 {
		tester.TrainDays = wfTrainDays
	}
	if wfTestDays > 0 {
		tester.TestDays = wfTestDays
	}
	if wfStepDays > 0 {
		tester.StepDays = wfStepDays
	}
	if wfWorkers > 0 {
		tester.Workers = wfWorkers
	}

	report, err := tester.Run(table, start, end, cfg.FrozenParams())
	if err != nil {
		return fmt.Errorf("walk-forward: %w", err)
	}

	fmt.Print(report.Summary())
	return nil
}
