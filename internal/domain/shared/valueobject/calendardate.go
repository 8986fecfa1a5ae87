package valueobject

import (
	"fmt"
	"time"
)

// DateLayout is the canonical wire format for calendar dates
const DateLayout = "2006-01-02"

// CalendarDate is an immutable calendar day without time-of-day or timezone.
// The zero value represents "no date" and formats as the empty string.
type CalendarDate struct {
	year  int
	month time.Month
	day   int
	valid bool
}

// NewCalendarDate creates a calendar date from components
func NewCalendarDate(year int, month time.Month, day int) (CalendarDate, error) {
	if month < time.January || month > time.December {
		return CalendarDate{}, fmt.Errorf("invalid month: %d", month)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return CalendarDate{}, fmt.Errorf("invalid day %d for %04d-%02d", day, year, month)
	}
	return CalendarDate{year: year, month: month, day: day, valid: true}, nil
}

// ParseCalendarDate parses a YYYY-MM-DD string into a CalendarDate
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return CalendarDate{year: t.Year(), month: t.Month(), day: t.Day(), valid: true}, nil
}

// IsZero reports whether the date is the "no date" zero value
func (d CalendarDate) IsZero() bool {
	return !d.valid
}

// Year returns the year component
func (d CalendarDate) Year() int { return d.year }

// Month returns the month component
func (d CalendarDate) Month() time.Month { return d.month }

// Day returns the day component
func (d CalendarDate) Day() int { return d.day }

// String formats the date as YYYY-MM-DD, or "" for the zero value
func (d CalendarDate) String() string {
	if !d.valid {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// AddMonths returns the date advanced by the given number of whole months.
// The month component is advanced with year carry; when the original
// day-of-month does not exist in the target month the day is clamped to the
// last valid day (2024-01-31 + 1 month = 2024-02-29). This is calendar-safe
// month addition, not day-count addition.
func (d CalendarDate) AddMonths(months int) CalendarDate {
	if !d.valid {
		return CalendarDate{}
	}
	total := int(d.month) - 1 + months
	year := d.year + total/12
	monthIndex := total % 12
	if monthIndex < 0 {
		monthIndex += 12
		year--
	}
	month := time.Month(monthIndex + 1)

	day := d.day
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return CalendarDate{year: year, month: month, day: day, valid: true}
}

// Before reports whether d is chronologically before other
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

// AddMonthsToDate advances a YYYY-MM-DD date string by the given number of
// months, clamping to month-end. Unparseable input yields "" so callers can
// treat empty as "could not compute" instead of failing.
func AddMonthsToDate(date string, months int) string {
	d, err := ParseCalendarDate(date)
	if err != nil {
		return ""
	}
	return d.AddMonths(months).String()
}

// CurrentMonth returns the current calendar month as YYYY-MM
func CurrentMonth() string {
	now := time.Now()
	return fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
}

// daysInMonth returns the number of days in the given month
func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
