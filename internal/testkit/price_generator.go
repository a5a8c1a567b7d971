// Package testkit generates deterministic synthetic price tables for tests.
package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"limaprices/domain/core"
	"limaprices/domain/prices"
)

// PriceGeneratorConfig configures the synthetic price generator
type PriceGeneratorConfig struct {
	Districts   []string  `json:"districts"`
	Start       time.Time `json:"start"`
	Periods     int       `json:"periods"`
	StepMonths  int       `json:"step_months"`
	BasePrice   float64   `json:"base_price"`
	Drift       float64   `json:"drift"`        // mean growth per period, as a fraction
	Noise       float64   `json:"noise"`        // standard deviation of growth per period
	MissingRate float64   `json:"missing_rate"` // share of cells left empty, last row excluded
	Seed        int64     `json:"seed"`
}

// DefaultPriceConfig returns a quarterly table shaped like the bundled dataset
func DefaultPriceConfig() PriceGeneratorConfig {
	return PriceGeneratorConfig{
		Districts:   []string{"Barranco", "Lince", "Miraflores", "San Isidro"},
		Start:       time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC),
		Periods:     24,
		StepMonths:  3,
		BasePrice:   1500,
		Drift:       0.012,
		Noise:       0.02,
		MissingRate: 0.05,
		Seed:        42,
	}
}

// PriceGenerator produces random-walk price series per district
type PriceGenerator struct {
	config PriceGeneratorConfig
	rng    *rand.Rand
}

// NewPriceGenerator creates a generator; equal configs give equal output
func NewPriceGenerator(config PriceGeneratorConfig) *PriceGenerator {
	return &PriceGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Dataset is one generated price table in column form
type Dataset struct {
	Months    []time.Time
	Districts []string
	Columns   map[string][]float64
}

// Generate draws a new dataset
func (g *PriceGenerator) Generate() Dataset {
	ds := Dataset{
		Months:    make([]time.Time, g.config.Periods),
		Districts: append([]string(nil), g.config.Districts...),
		Columns:   make(map[string][]float64, len(g.config.Districts)),
	}
	for i := range ds.Months {
		ds.Months[i] = g.config.Start.AddDate(0, i*g.config.StepMonths, 0)
	}

	for _, district := range ds.Districts {
		values := make([]float64, g.config.Periods)
		price := g.config.BasePrice * (0.6 + 0.8*g.rng.Float64())
		for i := range values {
			if i > 0 {
				price *= 1 + g.config.Drift + g.config.Noise*g.rng.NormFloat64()
			}
			values[i] = math.Round(price)
			if i < len(values)-1 && g.rng.Float64() < g.config.MissingRate {
				values[i] = math.NaN()
			}
		}
		ds.Columns[district] = values
	}
	return ds
}

// Table builds the immutable table for the dataset
func (ds Dataset) Table() (*prices.Table, error) {
	return prices.NewTable(ds.Months, ds.Districts, ds.Columns, core.DatasetHash(fmt.Sprintf("testkit-%d", len(ds.Months))))
}

// WriteCSV writes the dataset in the file layout the loader reads
func (ds Dataset) WriteCSV(w io.Writer) error {
	out := csv.NewWriter(w)
	if err := out.Write(append([]string{"Month"}, ds.Districts...)); err != nil {
		return err
	}
	for i, m := range ds.Months {
		row := make([]string, 0, len(ds.Districts)+1)
		row = append(row, core.FormatDate(m))
		for _, district := range ds.Districts {
			v := ds.Columns[district][i]
			if math.IsNaN(v) {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}
