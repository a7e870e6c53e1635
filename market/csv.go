package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCSV reads daily bars from a CSV file with columns
// date,symbol,open,high,low,close,volume[,sector] and an optional header.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []Bar
	line := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if len(row) == 0 {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "date") {
			continue // header
		}

		b, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, b)
	}

	return NewTable(bars)
}

func parseRow(row []string) (Bar, error) {
	if len(row) < 7 {
		return Bar{}, fmt.Errorf("need at least 7 cols date,symbol,open,high,low,close,volume: %v", row)
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
	if err != nil {
		return Bar{}, fmt.Errorf("bad date %q: %w", row[0], err)
	}

	vals := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+2]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad value %q: %w", row[i+2], err)
		}
		vals[i] = v
	}

	b := Bar{
		Date:   date,
		Symbol: strings.TrimSpace(row[1]),
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}
	if len(row) > 7 {
		b.Sector = strings.TrimSpace(row[7])
	}
	return b, nil
}
