package results

import (
	"fmt"
	"time"

	"github.com/abhisek/cbsetutor/internal/progression"
	"github.com/abhisek/cbsetutor/internal/store"
)

// toCounters converts a stored row into updater input. The stored civil
// date is interpreted in loc so day gaps line up with the updater.
func toCounters(rec *store.CountersRecord, loc *time.Location) (progression.Counters, error) {
	c := progression.Counters{
		TotalXP:        rec.TotalXP,
		CurrentLevel:   max(rec.CurrentLevel, 1),
		StreakCount:    rec.StreakCount,
		LongestStreak:  rec.LongestStreak,
		TotalQuizzes:   rec.TotalQuizzes,
		PerfectQuizzes: rec.PerfectQuizzes,
	}
	if rec.LastActivityDate != "" {
		d, err := time.ParseInLocation(store.DateLayout, rec.LastActivityDate, loc)
		if err != nil {
			return c, fmt.Errorf("parse last activity date %q: %w", rec.LastActivityDate, err)
		}
		c.LastActivityDate = d
	}
	return c, nil
}

// fromCounters builds the row to write for c, carrying the version that
// was read so the write is conditional on it.
func fromCounters(userID string, c progression.Counters, version int64, loc *time.Location) *store.CountersRecord {
	rec := &store.CountersRecord{
		UserID:         userID,
		TotalXP:        c.TotalXP,
		CurrentLevel:   c.CurrentLevel,
		StreakCount:    c.StreakCount,
		LongestStreak:  c.LongestStreak,
		TotalQuizzes:   c.TotalQuizzes,
		PerfectQuizzes: c.PerfectQuizzes,
		Version:        version,
	}
	if !c.LastActivityDate.IsZero() {
		rec.LastActivityDate = c.LastActivityDate.In(loc).Format(store.DateLayout)
	}
	return rec
}
