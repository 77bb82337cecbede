package aggregate

import "time"

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(location(loc)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, location(loc))
}

// StartOfWeek returns Monday 00:00 local time of the week containing t.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7 // monday -> 0
	return day.AddDate(0, 0, -offset)
}

// DayBounds returns [start, end) of the local day containing t.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// WeekBounds returns [start, end) of the Monday-first week containing t.
func WeekBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfWeek(t, loc)
	return start, start.AddDate(0, 0, 7)
}

// LastDays returns the window covering the last n local days, today included.
func LastDays(now time.Time, n int, loc *time.Location) (time.Time, time.Time) {
	if n < 1 {
		n = 1
	}
	start, end := DayBounds(now, loc)
	return start.AddDate(0, 0, -(n - 1)), end
}

// LastWeeks returns the window covering the last n weeks, the current one included.
func LastWeeks(now time.Time, n int, loc *time.Location) (time.Time, time.Time) {
	if n < 1 {
		n = 1
	}
	start, end := WeekBounds(now, loc)
	return start.AddDate(0, 0, -7*(n-1)), end
}

func (b Bucketing) Bounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if b == Weekly {
		return WeekBounds(t, loc)
	}
	return DayBounds(t, loc)
}
