package service

import (
	"fmt"
	"time"
)

const (
	PeriodDay   = "dia"
	PeriodWeek  = "semana"
	PeriodMonth = "mes"
)

// periodBounds returns the inclusive [start, end] interval of the reporting
// period containing ref: the calendar day, the Monday-to-Sunday week, or the
// calendar month.
func periodBounds(period string, ref time.Time) (time.Time, time.Time, error) {
	ref = ref.UTC()
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	var start, next time.Time
	switch period {
	case PeriodDay:
		start = day
		next = day.AddDate(0, 0, 1)
	case PeriodWeek:
		// Monday is the first day of the week.
		offset := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -offset)
		next = start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		next = start.AddDate(0, 1, 0)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q", period)
	}

	return start, next.Add(-time.Nanosecond), nil
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
