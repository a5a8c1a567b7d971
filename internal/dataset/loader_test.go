package dataset

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"limaprices/adapters/excel"
	"limaprices/domain/prices"
	"limaprices/internal/errors"
	"limaprices/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestLoadSortsAndDeduplicates(t *testing.T) {
	path := writeCSV(t, `Month,Miraflores,Barranco
2015-03,1820,NA
2015-01,1800,
2015-02,1805,1500
2015-01,1801,1490
`)

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Miraflores", "Barranco"}, table.Districts())
	assert.Equal(t, []time.Time{
		month(2015, time.January),
		month(2015, time.February),
		month(2015, time.March),
	}, table.Months())

	miraflores, err := table.Column("Miraflores")
	require.NoError(t, err)
	assert.Equal(t, []float64{1801, 1805, 1820}, miraflores.Values(), "the later duplicate row wins")

	barranco, err := table.Column("Barranco")
	require.NoError(t, err)
	values := barranco.Values()
	assert.Equal(t, 1490.0, values[0])
	assert.Equal(t, 1500.0, values[1])
	assert.True(t, math.IsNaN(values[2]))

	assert.False(t, table.Fingerprint().IsEmpty())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
		want    string
	}{
		{"malformed month", "Month,Lince\n2015-01,1\nsoon,2\n", errors.CodeDatasetInvalid, "row 3"},
		{"non numeric cell", "Month,Lince\n2015-01,1\n2015-02,lots\n", errors.CodeDatasetInvalid, `"lots" is not a number`},
		{"no districts", "Month\n2015-01\n", errors.CodeDatasetInvalid, "at least one district"},
		{"duplicate district", "Month,Lince,Lince\n2015-01,1,2\n", errors.CodeDatasetInvalid, "duplicate district"},
		{"reserved name", "Month,All Districts\n2015-01,1\n", errors.CodeDatasetInvalid, "reserved"},
		{"empty header", "Month,,Lince\n2015-01,1,2\n", errors.CodeDatasetInvalid, "empty header"},
		{"no rows", "Month,Lince\n", errors.CodeDatasetInvalid, "at least a header row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCSV(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestLoadExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, excel.WriteWorkbook(&buf, excel.Sheet{
		Name:    "Prices",
		Headers: []string{"Month", "San Isidro"},
		Rows: [][]interface{}{
			{"2016-01", 2100},
			{"2015-01", 2000},
		},
	}))
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	s, err := table.Column("San Isidro")
	require.NoError(t, err)
	assert.Equal(t, []float64{2000, 2100}, s.Values())

	percent, years, err := prices.CalculateReturns(s)
	require.NoError(t, err)
	assert.Equal(t, 5.0, percent)
	assert.Equal(t, 1, years)
}

func TestLoadBundledDataset(t *testing.T) {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	path := filepath.Join(filepath.Dir(file), "..", "..", "data", "apartment_prices.csv")

	table, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, table.Districts(), 12)
	assert.Equal(t, month(2010, time.January), table.MinMonth())
	assert.Equal(t, month(2021, time.October), table.MaxMonth())

	for _, name := range table.Districts() {
		info, err := prices.DistrictInfo(table, name)
		require.NoError(t, err, name)
		assert.Equal(t, name, info.District)
	}
}

func TestLoadGeneratedDataset(t *testing.T) {
	config := testkit.DefaultPriceConfig()
	config.MissingRate = 0.2
	ds := testkit.NewPriceGenerator(config).Generate()

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf))
	table, err := Load(writeCSV(t, buf.String()))
	require.NoError(t, err)

	assert.Equal(t, ds.Districts, table.Districts())
	assert.Equal(t, ds.Months, table.Months())
	for _, name := range ds.Districts {
		s, err := table.Column(name)
		require.NoError(t, err)
		for i, got := range s.Values() {
			want := ds.Columns[name][i]
			if math.IsNaN(want) {
				assert.True(t, math.IsNaN(got), "%s row %d", name, i)
				continue
			}
			assert.Equal(t, want, got, "%s row %d", name, i)
		}
	}
}
