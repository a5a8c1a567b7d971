package prices

import (
	"fmt"
	"math"
	"strconv"

	"limaprices/domain/core"
)

const (
	// SelectDistrictPrompt is shown while no single district is selected
	SelectDistrictPrompt = "Please select a district for more information"
)

// CalculateReturns computes the percent change between the first and last
// observed prices of a series and the number of year-end marks between the
// two months. Missing observations are dropped first. Percent is rounded half
// to even with no decimals. A zero starting price is not guarded.
func CalculateReturns(s Series) (percent float64, years int, err error) {
	observed := s.DropMissing()
	if len(observed.Points) == 0 {
		return 0, 0, fmt.Errorf("%s: %w", s.Name, core.ErrEmptySeries)
	}

	first := observed.Points[0]
	last := observed.Points[len(observed.Points)-1]

	percent = math.RoundToEven((last.Value - first.Value) / first.Value * 100)
	years = core.CountYearEnds(first.Month, last.Month)
	return percent, years, nil
}

// FormatPercent renders a rounded percent the way the return label shows it,
// with one decimal place ("50.0%")
func FormatPercent(percent float64) string {
	if percent == 0 {
		percent = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(percent, 'f', 1, 64) + "%"
}

// YearsMessage renders the label placed above the return value
func YearsMessage(years int) string {
	return fmt.Sprintf("Return of investment in %d years is", years)
}

// DistrictInfo builds the district panel text for a selection
func DistrictInfo(t *Table, district string) (ReturnSummary, error) {
	if district == AllDistricts {
		return ReturnSummary{Info: SelectDistrictPrompt}, nil
	}

	s, err := t.Column(district)
	if err != nil {
		return ReturnSummary{}, err
	}
	percent, years, err := CalculateReturns(s)
	if err != nil {
		return ReturnSummary{}, err
	}

	return ReturnSummary{
		District: district,
		Info:     YearsMessage(years),
		Return:   FormatPercent(percent),
	}, nil
}
