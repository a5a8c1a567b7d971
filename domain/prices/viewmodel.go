package prices

import "time"

// ViewModel is what the page layout needs from the table: the dropdown
// options and the bounds of the date control.
type ViewModel struct {
	Options []string  `json:"options"`
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
}

// NewViewModel derives the dropdown options and date bounds from a table
func NewViewModel(t *Table) ViewModel {
	districts := t.Districts()
	options := make([]string, 0, len(districts)+1)
	options = append(options, AllDistricts)
	options = append(options, districts...)

	return ViewModel{
		Options: options,
		MinDate: t.MinMonth(),
		MaxDate: t.MaxMonth(),
	}
}

// DefaultSelection is the control state before the user touches anything
func (vm ViewModel) DefaultSelection() Selection {
	return Selection{
		District: AllDistricts,
		Range:    DateRange{Start: vm.MinDate, End: vm.MaxDate},
	}
}
