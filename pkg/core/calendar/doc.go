// Package calendar provides the date arithmetic used by the timeline engine.
//
// # Calendar Days
//
// Work items carry calendar dates without a time of day. The engine represents
// them as [time.Time] values at UTC midnight (see [Date] and [Truncate]); the
// zero value means "no date" and is a normal, expected state for unscheduled
// items.
//
// # DST Safety
//
// [AddDays] increments the day field and lets [time.Date] normalize the result,
// so adding days never produces a 23- or 25-hour "day" around daylight-saving
// transitions:
//
//	sydney, _ := time.LoadLocation("Australia/Sydney")
//	d := time.Date(2025, time.October, 4, 0, 0, 0, 0, sydney)
//	calendar.AddDays(d, 2) // 2025-10-06 00:00 AEDT
//
// [DaysBetween] first maps both arguments to UTC midnight of their own calendar
// day, so the same calendar day compares equal in every time zone and the
// time of day is ignored.
//
// # Weeks, Months and Quarters
//
// [WeekNumber] returns the ISO-8601 week (weeks start on Monday, week 1
// contains the first Thursday of the year). Month and quarter boundaries
// ([MonthStart], [MonthEnd], [QuarterStart], [QuarterEnd]) account for month
// lengths and leap years.
//
// # Iteration
//
// [Days] yields one (index, date) pair per calendar day of a span. The sequence
// is lazy and restartable, so multi-year windows cost nothing until ranged over.
package calendar
