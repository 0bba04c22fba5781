package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	hoursInDay = 24
)

// ParseDateTime accepts either yyyy-mm-dd or an RFC3339 timestamp.
// Plain dates are interpreted as midnight UTC.
func ParseDateTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd or RFC3339", value)
	}
	return t, nil
}

// RentalDays returns the number of whole days between start and end,
// never less than 1
func RentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / hoursInDay)
	if days < 1 {
		return 1
	}
	return days
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		// Check for leap year
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// Months with 30 days: April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	return 31
}

// MonthRange returns [first day, first day of next month) for a month in UTC
func MonthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, DaysInMonth(year, month))
	return from, to, nil
}
