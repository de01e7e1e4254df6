package service

import "time"

// DayFloor truncates t to the start of its calendar day. The truncated date is
// the grouping key of the daily stats aggregate.
func DayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayCeil returns the last second of t's calendar day, so date-range filters
// include the full end day.
func DayCeil(t time.Time) time.Time {
	return DayFloor(t).Add(24*time.Hour - time.Second)
}

// MonthRange returns the first and last day of t's calendar month, day-floored.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}
