package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func bar(date time.Time, symbol string, close float64) Bar {
	return Bar{
		Date:   date,
		Symbol: symbol,
		Sector: "tech",
		Open:   close - 1,
		High:   close + 1,
		Low:    close - 2,
		Close:  close,
		Volume: 500_000,
	}
}

func TestNewTable_SortsAndIndexes(t *testing.T) {
	t.Parallel()

	d1, d2, d3 := day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4)

	// Deliberately out of order.
	tbl, err := NewTable([]Bar{
		bar(d3, "AAPL", 103),
		bar(d1, "AAPL", 101),
		bar(d2, "MSFT", 202),
		bar(d2, "AAPL", 102),
	})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{d1, d2, d3}, tbl.Dates())
	assert.Equal(t, 4, tbl.Len())

	b, ok := tbl.Get(d2, "AAPL")
	require.True(t, ok)
	assert.InDelta(t, 102.0, b.Close, 1e-12)

	_, ok = tbl.Get(d1, "MSFT")
	assert.False(t, ok)
}

func TestNewTable_Validation(t *testing.T) {
	t.Parallel()

	d := day(2024, 1, 2)
	tests := []struct {
		name string
		bars []Bar
		want string
	}{
		{"empty_symbol", []Bar{bar(d, "", 100)}, "missing symbol"},
		{"zero_date", []Bar{bar(time.Time{}, "AAPL", 100)}, "missing date"},
		{"negative_price", []Bar{{Date: d, Symbol: "AAPL", Open: -1, High: 1, Low: 1, Close: 1, Volume: 1}}, "prices must be positive"},
		{"high_below_low", []Bar{{Date: d, Symbol: "AAPL", Open: 5, High: 4, Low: 6, Close: 5, Volume: 1}}, "high"},
		{"duplicate", []Bar{bar(d, "AAPL", 100), bar(d, "AAPL", 101)}, "duplicate bar"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTable(tt.bars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTable_DaySortedBySymbol(t *testing.T) {
	t.Parallel()

	d := day(2024, 1, 2)
	tbl, err := NewTable([]Bar{
		bar(d, "MSFT", 200),
		bar(d, "AAPL", 100),
		bar(d, "NVDA", 300),
	})
	require.NoError(t, err)

	bars := tbl.Day(d)
	require.Len(t, bars, 3)
	assert.Equal(t, "AAPL", bars[0].Symbol)
	assert.Equal(t, "MSFT", bars[1].Symbol)
	assert.Equal(t, "NVDA", bars[2].Symbol)

	assert.Empty(t, tbl.Day(day(2024, 1, 3)))
}

func TestTable_SliceInclusive(t *testing.T) {
	t.Parallel()

	var bars []Bar
	for i := 0; i < 10; i++ {
		bars = append(bars, bar(day(2024, 1, 2).AddDate(0, 0, i), "AAPL", 100+float64(i)))
	}
	tbl, err := NewTable(bars)
	require.NoError(t, err)

	sub := tbl.Slice(day(2024, 1, 4), day(2024, 1, 7))
	assert.Equal(t, 4, sub.Len())
	assert.Equal(t, day(2024, 1, 4), sub.Dates()[0])
	assert.Equal(t, day(2024, 1, 7), sub.Dates()[len(sub.Dates())-1])

	empty := tbl.Slice(day(2025, 1, 1), day(2025, 2, 1))
	assert.Zero(t, empty.Len())
	assert.Empty(t, empty.Dates())
}

func TestBar_Range(t *testing.T) {
	t.Parallel()

	b := Bar{High: 105, Low: 99}
	assert.InDelta(t, 6.0, b.Range(), 1e-12)
}
