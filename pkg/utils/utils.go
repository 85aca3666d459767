package utils

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/segyhp/fintrack/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent returns part/whole*100 rounded to 2 places, half away from zero.
// A non-positive whole yields 0 rather than NaN or Inf.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	ratio := decimal.NewFromFloat(part).Div(decimal.NewFromFloat(whole))
	return ratio.Mul(hundred).Round(2).InexactFloat64()
}

// planMonthLayouts are the spellings a spreadsheet cell may produce for a date.
var planMonthLayouts = []string{
	domain.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParsePlanMonth parses the month cell of a plan row.
func ParsePlanMonth(value string) (domain.Date, error) {
	value = strings.TrimSpace(value)

	var lastErr error
	for _, layout := range planMonthLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return domain.DateOf(t), nil
		}
		lastErr = err
	}
	return domain.Date{}, lastErr
}

// YearBounds returns [Jan 1 of year, Jan 1 of year+1).
func YearBounds(year int) (domain.Date, domain.Date) {
	return domain.NewDate(year, time.January, 1), domain.NewDate(year+1, time.January, 1)
}

// SortedYears returns the keys of a year set in ascending order.
func SortedYears(years map[int]struct{}) []int {
	return slices.Sorted(maps.Keys(years))
}
