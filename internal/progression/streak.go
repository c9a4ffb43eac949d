package progression

import "time"

// civilDay returns midnight UTC of t's calendar date in loc, so that day
// arithmetic is immune to DST shifts in loc.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayGap returns the number of calendar days from prev to next in loc.
// It is negative when next falls on an earlier day than prev.
func DayGap(prev, next time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return int(civilDay(next, loc).Sub(civilDay(prev, loc)).Hours() / 24)
}

// nextStreak computes the streak day for an activity on day.
// Same-day (or clock-skewed earlier) activity leaves the streak alone,
// the following day extends it, and any longer gap restarts at 1.
func nextStreak(c Counters, day time.Time, loc *time.Location) int {
	if c.LastActivityDate.IsZero() {
		return 1
	}

	switch gap := DayGap(c.LastActivityDate, day, loc); {
	case gap <= 0:
		if c.StreakCount < 1 {
			return 1
		}
		return c.StreakCount
	case gap == 1:
		return c.StreakCount + 1
	default:
		return 1
	}
}
