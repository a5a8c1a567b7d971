package analysis

import (
	"fmt"
	"math"
	"time"

	"limaprices/domain/core"
	"limaprices/domain/prices"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// DistrictStats summarises the observed prices of one district
type DistrictStats struct {
	District     string    `json:"district"`
	Observations int       `json:"observations"`
	FirstMonth   time.Time `json:"first_month"`
	LastMonth    time.Time `json:"last_month"`
	FirstPrice   float64   `json:"first_price"`
	LastPrice    float64   `json:"last_price"`
	MinPrice     float64   `json:"min_price"`
	MaxPrice     float64   `json:"max_price"`
	MeanPrice    float64   `json:"mean_price"`
	MedianPrice  float64   `json:"median_price"`

	// Volatility is the standard deviation of period-over-period percent changes
	Volatility float64 `json:"volatility"`
	// AnnualizedGrowth is the compound yearly growth in percent
	AnnualizedGrowth float64 `json:"annualized_growth"`

	ReturnPercent float64 `json:"return_percent"`
	YearEnds      int     `json:"year_ends"`
}

// Summarize computes DistrictStats for a series, ignoring missing observations
func Summarize(s prices.Series) (DistrictStats, error) {
	observed := s.DropMissing()
	data := observed.Values()
	if len(data) == 0 {
		return DistrictStats{}, fmt.Errorf("%s: %w", s.Name, core.ErrEmptySeries)
	}

	result := DistrictStats{
		District:     s.Name,
		Observations: len(data),
		FirstMonth:   observed.Points[0].Month,
		LastMonth:    observed.Points[len(data)-1].Month,
		FirstPrice:   data[0],
		LastPrice:    data[len(data)-1],
	}

	var err error
	if result.MinPrice, err = stats.Min(data); err != nil {
		return result, err
	}
	if result.MaxPrice, err = stats.Max(data); err != nil {
		return result, err
	}
	if result.MeanPrice, err = stats.Mean(data); err != nil {
		return result, err
	}
	if result.MedianPrice, err = stats.Median(data); err != nil {
		return result, err
	}

	result.Volatility = volatility(data)
	result.AnnualizedGrowth = annualizedGrowth(result.FirstPrice, result.LastPrice, result.FirstMonth, result.LastMonth)

	if result.ReturnPercent, result.YearEnds, err = prices.CalculateReturns(observed); err != nil {
		return result, err
	}
	return result, nil
}

// SummarizeTable summarises every district that has at least one observation
func SummarizeTable(t *prices.Table) ([]DistrictStats, []string) {
	var out []DistrictStats
	var skipped []string
	for _, s := range t.AllSeries() {
		summary, err := Summarize(s)
		if err != nil {
			skipped = append(skipped, s.Name)
			continue
		}
		out = append(out, summary)
	}
	return out, skipped
}

func volatility(data []float64) float64 {
	if len(data) < 3 {
		return 0
	}
	changes := make([]float64, 0, len(data)-1)
	for i := 1; i < len(data); i++ {
		if data[i-1] == 0 {
			continue
		}
		changes = append(changes, (data[i]-data[i-1])/data[i-1]*100)
	}
	if len(changes) < 2 {
		return 0
	}
	return stat.StdDev(changes, nil)
}

// annualizedGrowth is zero for spans shorter than a month or non-positive prices
func annualizedGrowth(first, last float64, from, to time.Time) float64 {
	years := to.Sub(from).Hours() / 24 / 365.25
	if years < 1.0/12 || first <= 0 || last <= 0 {
		return 0
	}
	return (math.Pow(last/first, 1/years) - 1) * 100
}
