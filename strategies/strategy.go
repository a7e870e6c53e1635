// Package strategies provides SignalSource implementations for the
// backtest engine. Sources only ever see the previous trading day's bars,
// so anything they derive is causally safe to act on at the next open.
package strategies

import (
	"github.com/rustyeddy/swingtrader/backtest"
	"github.com/rustyeddy/swingtrader/market"
)

// Noop emits no signals. Useful as a baseline and in tests.
type Noop struct{}

func (Noop) Generate([]market.Bar, []backtest.Position) []backtest.Signal {
	return nil
}
