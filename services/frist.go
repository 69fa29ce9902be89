package services

import (
	"fmt"
	"time"

	"klage_registrering_go/models"
)

// ParseDate parses a date string in ISO format (YYYY-MM-DD)
func ParseDate(dateStr string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}
	return parsed, nil
}

// FormatDate formats a date in ISO format (YYYY-MM-DD)
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// CalculateFrist computes the statutory processing deadline: the reference
// date plus the processing time in weeks or months. Month addition clamps to
// the last valid day of the target month (Jan 31 + 1 month = Feb 28/29).
func CalculateFrist(from time.Time, units int, unitTypeID string) (time.Time, error) {
	switch unitTypeID {
	case models.BehandlingstidUnitWeeks:
		return from.AddDate(0, 0, 7*units), nil
	case models.BehandlingstidUnitMonths:
		return addMonthsClamped(from, units), nil
	}
	return time.Time{}, fmt.Errorf("unknown behandlingstid unit: %s", unitTypeID)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	// First day of the target month; time.Date normalizes month overflow
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	if max := daysInMonth(target.Year(), target.Month()); day > max {
		day = max
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, t.Location())
}

// daysInMonth uses day zero of the following month, which time.Date
// normalizes to the last day of the given month
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
