package utils

import (
	"math"
	"testing"
	"time"

	"github.com/segyhp/fintrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		part     float64
		whole    float64
		expected float64
	}{
		{
			name:     "plan met exactly",
			part:     10000,
			whole:    10000,
			expected: 100,
		},
		{
			name:     "one third",
			part:     1,
			whole:    3,
			expected: 33.33,
		},
		{
			name:     "two thirds rounds up",
			part:     2,
			whole:    3,
			expected: 66.67,
		},
		{
			name:     "half rounds away from zero",
			part:     1,
			whole:    800, // 0.125%
			expected: 0.13,
		},
		{
			name:     "over plan",
			part:     15000,
			whole:    10000,
			expected: 150,
		},
		{
			name:     "zero plan",
			part:     5000,
			whole:    0,
			expected: 0,
		},
		{
			name:     "negative plan",
			part:     5000,
			whole:    -1,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Percent(tt.part, tt.whole)
			assert.Equal(t, tt.expected, result)
			assert.False(t, math.IsNaN(result) || math.IsInf(result, 0))
		})
	}
}

func TestParsePlanMonth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.Date
	}{
		{
			name:     "iso date",
			input:    "2021-02-01",
			expected: domain.NewDate(2021, time.February, 1),
		},
		{
			name:     "spreadsheet datetime",
			input:    "2021-03-01 00:00:00",
			expected: domain.NewDate(2021, time.March, 1),
		},
		{
			name:     "padded",
			input:    " 2021-04-01 ",
			expected: domain.NewDate(2021, time.April, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParsePlanMonth(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	_, err := ParsePlanMonth("February")
	assert.Error(t, err)
}

func TestYearBounds(t *testing.T) {
	from, to := YearBounds(2021)

	assert.Equal(t, domain.NewDate(2021, time.January, 1), from)
	assert.Equal(t, domain.NewDate(2022, time.January, 1), to)
}

func TestSortedYears(t *testing.T) {
	years := map[int]struct{}{2022: {}, 2020: {}, 2021: {}}

	assert.Equal(t, []int{2020, 2021, 2022}, SortedYears(years))
	assert.Empty(t, SortedYears(nil))
}
