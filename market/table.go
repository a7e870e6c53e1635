package market

import (
	"fmt"
	"sort"
	"time"
)

// Key identifies one row of the price table.
type Key struct {
	Date   time.Time
	Symbol string
}

// Table holds daily bars keyed by (date, symbol) with O(1) lookup and a
// sorted date index so callers always iterate in ascending date order.
type Table struct {
	rows  map[Key]Bar
	dates []time.Time // sorted, unique
}

// NewTable builds a Table from bars, validating each row. Structurally
// invalid rows (empty symbol, zero date, bad prices) are fatal: a partially
// loaded table could silently misrepresent P&L downstream.
func NewTable(bars []Bar) (*Table, error) {
	t := &Table{rows: make(map[Key]Bar, len(bars))}

	seen := make(map[time.Time]bool)
	for i, b := range bars {
		if err := validateBar(b); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		b.Date = b.Date.UTC().Truncate(24 * time.Hour)

		k := Key{Date: b.Date, Symbol: b.Symbol}
		if _, dup := t.rows[k]; dup {
			return nil, fmt.Errorf("row %d: duplicate bar for %s on %s",
				i, b.Symbol, b.Date.Format("2006-01-02"))
		}
		t.rows[k] = b

		if !seen[b.Date] {
			seen[b.Date] = true
			t.dates = append(t.dates, b.Date)
		}
	}

	sort.Slice(t.dates, func(i, j int) bool { return t.dates[i].Before(t.dates[j]) })
	return t, nil
}

func validateBar(b Bar) error {
	if b.Symbol == "" {
		return fmt.Errorf("missing symbol")
	}
	if b.Date.IsZero() {
		return fmt.Errorf("missing date for %s", b.Symbol)
	}
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("%s %s: prices must be positive",
			b.Symbol, b.Date.Format("2006-01-02"))
	}
	if b.High < b.Low {
		return fmt.Errorf("%s %s: high %.2f below low %.2f",
			b.Symbol, b.Date.Format("2006-01-02"), b.High, b.Low)
	}
	return nil
}

// Dates returns the table's trading days in ascending order.
// The returned slice is shared; callers must not modify it.
func (t *Table) Dates() []time.Time { return t.dates }

// Len returns the number of rows in the table.
func (t *Table) Len() int { return len(t.rows) }

// Get returns the bar for (date, symbol), if present.
func (t *Table) Get(date time.Time, symbol string) (Bar, bool) {
	b, ok := t.rows[Key{Date: date.UTC().Truncate(24 * time.Hour), Symbol: symbol}]
	return b, ok
}

// Day returns all bars for one date, sorted by symbol for determinism.
func (t *Table) Day(date time.Time) []Bar {
	date = date.UTC().Truncate(24 * time.Hour)

	var out []Bar
	for k, b := range t.rows {
		if k.Date.Equal(date) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Slice returns a new Table containing only bars within [start, end]
// (inclusive on both ends, matching walk-forward window boundaries).
func (t *Table) Slice(start, end time.Time) *Table {
	out := &Table{rows: make(map[Key]Bar)}

	for k, b := range t.rows {
		if k.Date.Before(start) || k.Date.After(end) {
			continue
		}
		out.rows[k] = b
	}
	for _, d := range t.dates {
		if !d.Before(start) && !d.After(end) {
			out.dates = append(out.dates, d)
		}
	}
	return out
}
