package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV_WithHeaderAndSector(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, `date,symbol,open,high,low,close,volume,sector
2024-01-02,AAPL,100,105,99,104,1200000,tech
2024-01-02,XOM,80,81,79,80.5,900000,energy
2024-01-03,AAPL,104,106,103,105,1100000,tech
`)

	tbl, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Len(t, tbl.Dates(), 2)

	b, ok := tbl.Get(tbl.Dates()[0], "XOM")
	require.True(t, ok)
	assert.Equal(t, "energy", b.Sector)
	assert.InDelta(t, 80.5, b.Close, 1e-12)
}

func TestLoadCSV_NoHeaderNoSector(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "2024-01-02,AAPL,100,105,99,104,1200000\n")

	tbl, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	b, _ := tbl.Get(tbl.Dates()[0], "AAPL")
	assert.Empty(t, b.Sector)
}

func TestLoadCSV_BadRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad_date", "02/01/2024,AAPL,100,105,99,104,1200000\n", "bad date"},
		{"bad_price", "2024-01-02,AAPL,abc,105,99,104,1200000\n", "bad value"},
		{"too_few_cols", "2024-01-02,AAPL,100\n", "at least 7"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadCSV(writeCSV(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
