package strategies

import (
	"math"

	"github.com/rustyeddy/swingtrader/backtest"
	"github.com/rustyeddy/swingtrader/exits"
	"github.com/rustyeddy/swingtrader/indicators"
	"github.com/rustyeddy/swingtrader/market"
	"github.com/rustyeddy/swingtrader/risk"
)

const (
	momAtrPeriod = 14
	momSmaPeriod = 20
	lookbackDays = 5
	minTrendPct  = 0.01 // require at least 1% above the SMA to enter
)

// Momentum is a simple trend-following source. It accumulates the
// prior-day bars it is handed, so every indicator value it uses predates
// the day its signals execute on. Entries are sized through risk.Size;
// exits come from confidence decay and trend breaks.
type Momentum struct {
	Sizing       risk.SizingParams
	Decay        exits.DecayParams
	Stops        exits.StopParams
	AccountValue float64

	atrs   map[string]*indicators.ATR
	smas   map[string]*indicators.SMA
	closes map[string][]float64
	sector map[string]string
}

// NewMomentum builds a Momentum source with default parameters and the
// given sizing account value.
func NewMomentum(accountValue float64) *Momentum {
	return &Momentum{
		Sizing:       risk.DefaultSizing(),
		Decay:        exits.DefaultDecay(),
		Stops:        exits.DefaultStops(),
		AccountValue: accountValue,
	}
}

func (m *Momentum) Generate(prevDay []market.Bar, open []backtest.Position) []backtest.Signal {
	m.observe(prevDay)

	held := make(map[string]backtest.Position, len(open))
	for _, p := range open {
		held[p.Symbol] = p
	}

	var signals []backtest.Signal
	signals = append(signals, m.exitSignals(prevDay, open)...)
	signals = append(signals, m.entrySignals(prevDay, held)...)
	return signals
}

// observe folds one more day of history into the per-symbol streams.
func (m *Momentum) observe(bars []market.Bar) {
	if m.atrs == nil {
		m.atrs = make(map[string]*indicators.ATR)
		m.smas = make(map[string]*indicators.SMA)
		m.closes = make(map[string][]float64)
		m.sector = make(map[string]string)
	}

	for _, b := range bars {
		atr, ok := m.atrs[b.Symbol]
		if !ok {
			atr = indicators.NewATR(momAtrPeriod)
			m.atrs[b.Symbol] = atr
		}
		atr.Update(b)

		sma, ok := m.smas[b.Symbol]
		if !ok {
			sma = indicators.NewSMA(momSmaPeriod)
			m.smas[b.Symbol] = sma
		}
		sma.Update(b.Close)

		m.closes[b.Symbol] = append(m.closes[b.Symbol], b.Close)
		if b.Sector != "" {
			m.sector[b.Symbol] = b.Sector
		}
	}
}

func (m *Momentum) entrySignals(prevDay []market.Bar, held map[string]backtest.Position) []backtest.Signal {
	var out []backtest.Signal

	for _, b := range prevDay {
		if _, ok := held[b.Symbol]; ok {
			continue
		}

		atr, sma := m.atrs[b.Symbol], m.smas[b.Symbol]
		if !atr.Ready() || !sma.Ready() {
			continue
		}

		trendPct := (b.Close - sma.Value()) / sma.Value()
		if trendPct < minTrendPct {
			continue
		}

		closes := m.closes[b.Symbol]
		if len(closes) < 2 || closes[len(closes)-1] <= closes[len(closes)-2] {
			continue // need an up day to confirm
		}

		confidence := math.Min(95, 62+trendPct*300)

		vol := indicators.DailyVolatility(tail(closes, momSmaPeriod))
		size := risk.Size(m.Sizing, risk.SizeInputs{
			AccountValue:    m.AccountValue,
			EntryPrice:      b.Close,
			ATR:             atr.Value(),
			Confidence:      confidence,
			DailyVolatility: &vol,
		})
		if size.Shares <= 0 {
			continue
		}

		stop := exits.Update(m.Stops, exits.StopInputs{
			CurrentPrice: b.Close,
			EntryPrice:   b.Close,
			ATR:          atr.Value(),
			SMA20:        sma.Value(),
		})

		out = append(out, backtest.Signal{
			Type:       risk.Entry,
			Symbol:     b.Symbol,
			Sector:     m.sector[b.Symbol],
			Confidence: confidence,
			Shares:     size.Shares,
			StopPrice:  stop.StopPrice,
		})
	}

	return out
}

func (m *Momentum) exitSignals(prevDay []market.Bar, open []backtest.Position) []backtest.Signal {
	if len(open) == 0 || len(prevDay) == 0 {
		return nil
	}

	date := prevDay[0].Date
	marketPerf := m.avgReturn5d("")

	var out []backtest.Signal
	for _, pos := range open {
		closes := m.closes[pos.Symbol]
		if len(closes) == 0 {
			continue
		}
		current := closes[len(closes)-1]

		fiveAgo := current
		if len(closes) > lookbackDays {
			fiveAgo = closes[len(closes)-1-lookbackDays]
		}

		decay := exits.Decay(m.Decay, exits.DecayInputs{
			InitialConfidence: pos.Confidence,
			AgeDays:           pos.AgeDays(date),
			EntryPrice:        pos.EntryPrice,
			CurrentPrice:      current,
			Price5DaysAgo:     fiveAgo,
			SectorPerf5D:      m.avgReturn5d(m.sector[pos.Symbol]),
			MarketPerf5D:      marketPerf,
		})

		trendBroken := false
		if sma := m.smas[pos.Symbol]; sma != nil && sma.Ready() {
			trendBroken = current < sma.Value()
		}

		if !decay.ForceExit && !trendBroken {
			continue
		}

		dc := decay.DecayedConfidence
		out = append(out, backtest.Signal{
			Type:              risk.ExitSignal,
			Symbol:            pos.Symbol,
			Sector:            pos.Sector,
			Confidence:        pos.Confidence,
			DecayedConfidence: &dc,
		})
	}

	return out
}

// avgReturn5d averages the trailing 5-day return across all tracked
// symbols, or across one sector when given.
func (m *Momentum) avgReturn5d(sector string) float64 {
	sum, n := 0.0, 0
	for sym, closes := range m.closes {
		if sector != "" && m.sector[sym] != sector {
			continue
		}
		if len(closes) <= lookbackDays {
			continue
		}
		last := closes[len(closes)-1]
		ago := closes[len(closes)-1-lookbackDays]
		sum += indicators.ReturnPct(ago, last)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func tail(vals []float64, n int) []float64 {
	if len(vals) <= n {
		return vals
	}
	return vals[len(vals)-n:]
}
