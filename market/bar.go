package market

import "time"

// Bar is a single daily OHLCV row for one symbol.
type Bar struct {
	Date   time.Time
	Symbol string
	Sector string // optional, used for exposure checks

	Open  float64
	High  float64
	Low   float64
	Close float64

	Volume float64
}

// Range returns the bar's high-low trading range.
func (b Bar) Range() float64 {
	return b.High - b.Low
}
