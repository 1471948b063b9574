package services

import "time"

// addMonthsClamped advances t by the given number of calendar months,
// clamping the day to the last valid day of the target month. A purchase
// on Jan 31 lands on Feb 28 (or 29), not Mar 2 as naive date arithmetic
// would produce.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()
	target := time.Date(y, m+time.Month(months), 1, h, min, sec, t.Nanosecond(), t.Location())
	if last := daysInMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, h, min, sec, t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthRange returns the half-open [start, end) interval covering the
// given calendar month. Entry dates are stored in UTC.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
