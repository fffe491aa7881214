// internal/domain/subscription/calendar.go
package subscription

import "time"

const secondsPerDay = 24 * 60 * 60

// DateOf drops the clock part of t, keeping its calendar date as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays moves date forward by n days (backwards for negative n).
func AddDays(date time.Time, n int) time.Time {
	return DateOf(date).AddDate(0, 0, n)
}

// AddMonths moves date by n months. The day of month is clamped to the
// length of the target month, so Jan 31 + 1 month is the last day of February.
func AddMonths(date time.Time, n int) time.Time {
	y, m, d := DateOf(date).Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DayDifference returns the signed number of days from b to a.
func DayDifference(a, b time.Time) int {
	return int((DateOf(a).Unix() - DateOf(b).Unix()) / secondsPerDay)
}

func daysIn(year int, month time.Month) int {
	// day 0 of the following month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthsSinceEpoch(date time.Time) int {
	date = DateOf(date)
	return (date.Year()-epoch.Year())*12 + int(date.Month()-epoch.Month())
}
