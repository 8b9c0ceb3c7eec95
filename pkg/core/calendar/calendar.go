package calendar

import (
	"math"
	"time"
)

// Day is the length of a calendar day in UTC. It is only meaningful between
// values that have already been normalized with [Truncate].
const Day = 24 * time.Hour

// Date returns the calendar day y-m-d at UTC midnight.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Truncate returns the calendar day of t (in t's own location) at UTC midnight.
// The zero time is returned unchanged.
func Truncate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Today returns the current local calendar day at UTC midnight.
func Today() time.Time {
	return Truncate(time.Now())
}

// AddDays returns the date n calendar days after t, keeping t's clock time and
// location. Negative n moves backwards.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return time.Date(y, m, d+n, hh, mm, ss, t.Nanosecond(), t.Location())
}

// DaysBetween returns the signed number of calendar days from a to b.
// Time of day and time zone are ignored: both dates are reduced to their
// calendar day first.
func DaysBetween(a, b time.Time) int {
	diff := Truncate(b).Sub(Truncate(a))
	return int(math.Ceil(float64(diff) / float64(Day)))
}

// WeekNumber returns the ISO-8601 week number of t.
func WeekNumber(t time.Time) int {
	_, w := t.ISOWeek()
	return w
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	y, m, _ := t.Date()
	// Day 0 of the next month is the last day of this one.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location())
}

// Quarter returns the quarter (1-4) that t falls in.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// QuarterStart returns the first day of t's quarter.
func QuarterStart(t time.Time) time.Time {
	first := time.Month((Quarter(t)-1)*3 + 1)
	return time.Date(t.Year(), first, 1, 0, 0, 0, 0, t.Location())
}

// QuarterEnd returns the last day of t's quarter.
func QuarterEnd(t time.Time) time.Time {
	last := time.Month(Quarter(t) * 3)
	return time.Date(t.Year(), last+1, 0, 0, 0, 0, 0, t.Location())
}

// IsWeekend reports whether t is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsMonday reports whether t is a Monday.
func IsMonday(t time.Time) bool { return t.Weekday() == time.Monday }

// IsFirstOfMonth reports whether t is the first day of a month.
func IsFirstOfMonth(t time.Time) bool { return t.Day() == 1 }

// IsFirstOfYear reports whether t is January 1st.
func IsFirstOfYear(t time.Time) bool { return t.Day() == 1 && t.Month() == time.January }

// IsFirstOfQuarter reports whether t is the first day of a quarter.
func IsFirstOfQuarter(t time.Time) bool {
	return t.Day() == 1 && (int(t.Month())-1)%3 == 0
}

// Clamp limits t to the calendar days [lo, hi].
func Clamp(t, lo, hi time.Time) time.Time {
	if DaysBetween(lo, t) < 0 {
		return lo
	}
	if DaysBetween(t, hi) < 0 {
		return hi
	}
	return t
}

// NextMonday returns the first Monday on or after t.
func NextMonday(t time.Time) time.Time {
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	return AddDays(t, offset)
}
