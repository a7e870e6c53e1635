package walkforward

import (
	"github.com/rustyeddy/swingtrader/backtest"
	"github.com/rustyeddy/swingtrader/market"
	"github.com/rustyeddy/swingtrader/risk"
)

// Frozen-parameter keys recognized by EngineRunner. Unknown keys are
// ignored so callers can freeze strategy-specific values alongside policy.
const (
	ParamInitialCapital      = "initial_capital"
	ParamMinConfidence       = "min_confidence"
	ParamMaxPositionSize     = "max_position_size"
	ParamMaxSectorExposure   = "max_sector_exposure"
	ParamMinLiquidity        = "min_liquidity"
	ParamForceExitConfidence = "force_exit_confidence"
	ParamMaxDrawdown         = "max_drawdown"
)

// EngineRunner returns a BacktestFunc that runs a fresh backtest.Engine per
// window: a new ledger, a new signal source, and a Governor built from the
// frozen parameters. Nothing carries over between windows.
func EngineRunner(newSource func(frozen Params) backtest.SignalSource) BacktestFunc {
	return func(test *market.Table, frozen Params) (*backtest.Result, error) {
		lim := risk.DefaultLimits()
		applyLimits(&lim, frozen)

		cfg := backtest.Config{TrailStops: true}
		if v, ok := frozen[ParamInitialCapital]; ok {
			cfg.InitialCapital = v
		}

		eng := backtest.NewEngine(cfg)
		return eng.Run(test, newSource(frozen), risk.NewGovernor(lim))
	}
}

func applyLimits(lim *risk.Limits, frozen Params) {
	if v, ok := frozen[ParamMinConfidence]; ok {
		lim.MinConfidence = v
	}
	if v, ok := frozen[ParamMaxPositionSize]; ok {
		lim.MaxPositionSize = int(v)
	}
	if v, ok := frozen[ParamMaxSectorExposure]; ok {
		lim.MaxSectorExposure = v
	}
	if v, ok := frozen[ParamMinLiquidity]; ok {
		lim.MinLiquidity = v
	}
	if v, ok := frozen[ParamForceExitConfidence]; ok {
		lim.ForceExitConfidence = v
	}
	if v, ok := frozen[ParamMaxDrawdown]; ok {
		lim.MaxDrawdown = v
	}
}
