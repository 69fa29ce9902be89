package services

import (
	"testing"
	"time"

	"klage_registrering_go/models"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculateFristWeeks(t *testing.T) {
	frist, err := CalculateFrist(date(2024, time.January, 10), 2, models.BehandlingstidUnitWeeks)
	assert.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 24), frist)

	frist, err = CalculateFrist(date(2024, time.December, 20), 3, models.BehandlingstidUnitWeeks)
	assert.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 10), frist)
}

func TestCalculateFristMonthsClampsToEndOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		months   int
		expected time.Time
	}{
		{"leap year february", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"non-leap february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"no clamping needed", date(2024, time.March, 15), 2, date(2024, time.May, 15)},
		{"31st into 30-day month", date(2024, time.March, 31), 1, date(2024, time.April, 30)},
		{"across year boundary", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frist, err := CalculateFrist(tt.from, tt.months, models.BehandlingstidUnitMonths)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, frist)
		})
	}
}

func TestCalculateFristUnknownUnit(t *testing.T) {
	_, err := CalculateFrist(date(2024, time.January, 1), 1, "DAYS")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-02-29")
	assert.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 29), parsed)

	_, err = ParseDate("29.02.2024")
	assert.Error(t, err)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-01-05", FormatDate(date(2024, time.January, 5)))
}
