package core

import (
	"fmt"
	"strings"
	"time"
)

// monthLayouts are the month label formats accepted in dataset files, tried in order
var monthLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"2006/01",
	"Jan 2006",
	"January 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseMonth parses a month label into a UTC timestamp
func ParseMonth(label string) (time.Time, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return time.Time{}, fmt.Errorf("empty month label")
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised month label %q", label)
}

// YearEnd returns midnight of December 31st of the given year
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// CountYearEnds counts the December 31st marks d with start <= d <= end
func CountYearEnds(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	count := 0
	for year := start.Year(); year <= end.Year(); year++ {
		mark := YearEnd(year)
		if !mark.Before(start) && !mark.After(end) {
			count++
		}
	}
	return count
}

// FormatMonth renders a timestamp the way the date pickers display it
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}

// FormatDate renders a timestamp as an ISO date
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
