package analysis

import (
	"errors"
	"math"
	"testing"
	"time"

	"limaprices/domain/core"
	"limaprices/domain/prices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	s := prices.Series{Name: "Miraflores", Points: []prices.Point{
		{Month: month(2015, time.January), Value: math.NaN()},
		{Month: month(2016, time.January), Value: 100},
		{Month: month(2017, time.January), Value: 110},
		{Month: month(2018, time.January), Value: 99},
		{Month: month(2019, time.January), Value: 121},
	}}

	summary, err := Summarize(s)
	require.NoError(t, err)

	assert.Equal(t, "Miraflores", summary.District)
	assert.Equal(t, 4, summary.Observations)
	assert.Equal(t, month(2016, time.January), summary.FirstMonth)
	assert.Equal(t, month(2019, time.January), summary.LastMonth)
	assert.Equal(t, 100.0, summary.FirstPrice)
	assert.Equal(t, 121.0, summary.LastPrice)
	assert.Equal(t, 99.0, summary.MinPrice)
	assert.Equal(t, 121.0, summary.MaxPrice)
	assert.InDelta(t, 107.5, summary.MeanPrice, 1e-9)
	assert.InDelta(t, 105.0, summary.MedianPrice, 1e-9)
	assert.Equal(t, 21.0, summary.ReturnPercent)
	assert.Equal(t, 3, summary.YearEnds)

	// changes are +10%, -10%, +22.2%
	assert.InDelta(t, 16.27, summary.Volatility, 0.01)
	// 1.21 over ~3 years is ~6.56% a year
	assert.InDelta(t, 6.56, summary.AnnualizedGrowth, 0.01)
}

func TestSummarizeShortSeries(t *testing.T) {
	s := prices.Series{Name: "Lince", Points: []prices.Point{
		{Month: month(2019, time.March), Value: 1500},
	}}

	summary, err := Summarize(s)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Volatility)
	assert.Equal(t, 0.0, summary.AnnualizedGrowth)
	assert.Equal(t, 0.0, summary.ReturnPercent)
	assert.Equal(t, 1500.0, summary.MedianPrice)
}

func TestSummarizeEmpty(t *testing.T) {
	s := prices.Series{Name: "Lince", Points: []prices.Point{{Month: month(2019, time.March), Value: math.NaN()}}}

	_, err := Summarize(s)
	assert.True(t, errors.Is(err, core.ErrEmptySeries))
}

func TestSummarizeTable(t *testing.T) {
	table, err := prices.NewTable(
		[]time.Time{month(2015, time.January), month(2016, time.January)},
		[]string{"Barranco", "Lince"},
		map[string][]float64{
			"Barranco": {1000, 1100},
			"Lince":    {math.NaN(), math.NaN()},
		}, "")
	require.NoError(t, err)

	summaries, skipped := SummarizeTable(table)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Barranco", summaries[0].District)
	assert.Equal(t, 10.0, summaries[0].ReturnPercent)
	assert.Equal(t, []string{"Lince"}, skipped)
}
