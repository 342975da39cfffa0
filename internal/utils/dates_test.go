package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "month must be between 1 and 12")
	})

	t.Run("Day past end of month", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "day must be between 1 and 28")
	})
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    int
		expected int
	}{
		{2024, 1, 31},
		{2024, 2, 29}, // leap year
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 11, 30},
		{2024, 12, 31},
		{2000, 2, 29}, // divisible by 400
		{1900, 2, 28}, // divisible by 100 but not 400
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestAddMonths(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"zero", d(2024, 1, 15), 0, d(2024, 1, 15)},
		{"plain", d(2024, 1, 15), 2, d(2024, 3, 15)},
		{"clamps to leap february", d(2024, 1, 31), 1, d(2024, 2, 29)},
		{"clamps to february", d(2023, 1, 31), 1, d(2023, 2, 28)},
		{"clamps to 30 day month", d(2024, 3, 31), 1, d(2024, 4, 30)},
		{"crosses year", d(2024, 11, 30), 3, d(2025, 2, 28)},
		{"negative", d(2024, 3, 31), -1, d(2024, 2, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.start, tt.months))
		})
	}
}

func TestCombineDateTime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	t.Run("With clock", func(t *testing.T) {
		got, err := CombineDateTime(date, "18:30", loc)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 10, 18, 30, 0, 0, loc), got)
	})

	t.Run("Empty clock is midnight", func(t *testing.T) {
		got, err := CombineDateTime(date, "", loc)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, loc), got)
	})

	t.Run("Invalid clock", func(t *testing.T) {
		_, err := CombineDateTime(date, "25:00", loc)
		assert.Error(t, err)
	})
}
