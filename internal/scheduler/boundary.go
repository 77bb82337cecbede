package scheduler

import (
	"time"

	"github.com/2beens/levelup/internal/aggregate"
)

// NextMidnight returns the first local midnight after now.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	return aggregate.StartOfDay(now, loc).AddDate(0, 0, 1)
}

// NextMonday returns the first Monday 00:00 local time after now.
func NextMonday(now time.Time, loc *time.Location) time.Time {
	return aggregate.StartOfWeek(now, loc).AddDate(0, 0, 7)
}

// DailyBoundary yields local midnights in loc. Days are calendar days, so
// a DST switch makes one of them 23 or 25 hours long.
func DailyBoundary(loc *time.Location) Boundary {
	return func(t time.Time) time.Time {
		return NextMidnight(t, loc)
	}
}

// WeeklyBoundary yields Mondays 00:00 in loc.
func WeeklyBoundary(loc *time.Location) Boundary {
	return func(t time.Time) time.Time {
		return NextMonday(t, loc)
	}
}
