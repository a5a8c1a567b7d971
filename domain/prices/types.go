// Package prices holds the apartment price domain: the immutable price series
// table, district selections and the return calculation.
package prices

import (
	"fmt"
	"math"
	"time"

	"limaprices/domain/core"
)

// AllDistricts is the synthetic selection that stands for every column
const AllDistricts = "All Districts"

// Point is one monthly observation; Value is NaN when the cell was missing
type Point struct {
	Month time.Time `json:"month"`
	Value float64   `json:"value"`
}

// Missing reports whether the observation has no value
func (p Point) Missing() bool {
	return math.IsNaN(p.Value)
}

// Series is the price history of one district in ascending month order
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// DropMissing returns a copy of the series without missing observations
func (s Series) DropMissing() Series {
	out := Series{Name: s.Name, Points: make([]Point, 0, len(s.Points))}
	for _, p := range s.Points {
		if !p.Missing() {
			out.Points = append(out.Points, p)
		}
	}
	return out
}

// Values returns the observation values in month order
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Months returns the observation months in order
func (s Series) Months() []time.Time {
	months := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		months[i] = p.Month
	}
	return months
}

// Len returns the number of observations, missing ones included
func (s Series) Len() int { return len(s.Points) }

// DateRange is the inclusive month range picked in the date control
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Selection is the control state read when a search is triggered
type Selection struct {
	District string    `json:"district"`
	Range    DateRange `json:"range"`
}

// IsAll reports whether the selection is the synthetic all-districts option
func (s Selection) IsAll() bool {
	return s.District == AllDistricts
}

// Trigger is one activation of the search control
type Trigger struct {
	ID        core.TriggerID `json:"id"`
	Selection Selection      `json:"selection"`
}

// NewTrigger stamps a selection with a fresh trigger id
func NewTrigger(sel Selection) Trigger {
	return Trigger{ID: core.NewTriggerID(), Selection: sel}
}

// ReturnSummary is the text shown in the district panel
type ReturnSummary struct {
	District string `json:"district"`
	Info     string `json:"info"`
	Return   string `json:"return"`
}

// Table is the price series table: rows are months, columns are districts.
// It is built once and never mutated; accessors hand out copies.
type Table struct {
	months    []time.Time
	districts []string
	columns   map[string][]float64
	hash      core.DatasetHash
}

// NewTable validates and copies the given columns into a Table. Months must be
// strictly ascending and every district column must have one cell per month.
func NewTable(months []time.Time, districts []string, columns map[string][]float64, hash core.DatasetHash) (*Table, error) {
	if len(months) == 0 {
		return nil, fmt.Errorf("table has no months")
	}
	if len(districts) == 0 {
		return nil, fmt.Errorf("table has no districts")
	}
	for i := 1; i < len(months); i++ {
		if !months[i].After(months[i-1]) {
			return nil, fmt.Errorf("months are not strictly ascending at %s", core.FormatDate(months[i]))
		}
	}

	t := &Table{
		months:    append([]time.Time(nil), months...),
		districts: make([]string, 0, len(districts)),
		columns:   make(map[string][]float64, len(districts)),
		hash:      hash,
	}
	for _, name := range districts {
		if name == AllDistricts {
			return nil, fmt.Errorf("district name %q is reserved", name)
		}
		if _, dup := t.columns[name]; dup {
			return nil, fmt.Errorf("duplicate district %q", name)
		}
		values, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("district %q has no column", name)
		}
		if len(values) != len(months) {
			return nil, fmt.Errorf("district %q has %d cells for %d months", name, len(values), len(months))
		}
		t.districts = append(t.districts, name)
		t.columns[name] = append([]float64(nil), values...)
	}
	return t, nil
}

// Months returns the row index
func (t *Table) Months() []time.Time {
	return append([]time.Time(nil), t.months...)
}

// Districts returns the column names in file order
func (t *Table) Districts() []string {
	return append([]string(nil), t.districts...)
}

// Len returns the number of months
func (t *Table) Len() int { return len(t.months) }

// MinMonth returns the earliest month
func (t *Table) MinMonth() time.Time { return t.months[0] }

// MaxMonth returns the latest month
func (t *Table) MaxMonth() time.Time { return t.months[len(t.months)-1] }

// Fingerprint identifies the file the table was loaded from
func (t *Table) Fingerprint() core.DatasetHash { return t.hash }

// HasDistrict reports whether name is a column of the table
func (t *Table) HasDistrict(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns the series of one district, missing cells included
func (t *Table) Column(name string) (Series, error) {
	values, ok := t.columns[name]
	if !ok {
		return Series{}, core.NewDistrictNotFoundError(name)
	}
	s := Series{Name: name, Points: make([]Point, len(t.months))}
	for i, month := range t.months {
		s.Points[i] = Point{Month: month, Value: values[i]}
	}
	return s, nil
}

// AllSeries returns every column in table order
func (t *Table) AllSeries() []Series {
	out := make([]Series, 0, len(t.districts))
	for _, name := range t.districts {
		s, _ := t.Column(name)
		out = append(out, s)
	}
	return out
}

// Select returns the series plotted for a district selection: every column for
// AllDistricts, otherwise the single named column.
func (t *Table) Select(district string) ([]Series, error) {
	if district == AllDistricts {
		return t.AllSeries(), nil
	}
	s, err := t.Column(district)
	if err != nil {
		return nil, err
	}
	return []Series{s}, nil
}
