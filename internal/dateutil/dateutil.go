// Package dateutil derives the calendar-day and month identifiers the rest of
// the app keys its state by.
package dateutil

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the local time zone
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Set At to move it.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.At
}

// DateKey formats t as a YYYY-MM-DD calendar day in t's location
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthID formats t as a YYYY-MM month identifier in t's location
func MonthID(t time.Time) string {
	return t.Format(MonthLayout)
}

// Today returns the calendar day for the clock's current time
func Today(clock Clock) string {
	return DateKey(clock.Now())
}

// CurrentMonthID returns the month identifier for the clock's current time
func CurrentMonthID(clock Clock) string {
	return MonthID(clock.Now())
}

// ParseMonthID parses a YYYY-MM identifier into the first day of that month (UTC)
func ParseMonthID(monthID string) (time.Time, error) {
	start, err := time.Parse(MonthLayout, monthID)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month id %q: %w", monthID, err)
	}
	return start, nil
}

// IsDateKey reports whether value is a well-formed YYYY-MM-DD day
func IsDateKey(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// DaysInMonth lists every calendar day of monthID in ascending order
func DaysInMonth(monthID string) ([]string, error) {
	start, err := ParseMonthID(monthID)
	if err != nil {
		return nil, err
	}

	end := start.AddDate(0, 1, 0)
	days := make([]string, 0, 31)
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		days = append(days, DateKey(day))
	}
	return days, nil
}
