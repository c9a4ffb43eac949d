package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const countersTable = "progression_counters"

// counterRepo implements CounterRepo with optimistic versioning.
type counterRepo struct {
	db *sql.DB
}

func (r *counterRepo) ReadCounters(ctx context.Context, userID string) (*CountersRecord, error) {
	query, args := sqlite.Select(
		"total_xp", "current_level", "streak_count", "longest_streak",
		"last_activity_date", "total_quizzes", "perfect_quizzes", "version", "updated_at",
	).
		From(sqlite.Table(countersTable)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	rec := &CountersRecord{UserID: userID}
	var updatedAt int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.TotalXP, &rec.CurrentLevel, &rec.StreakCount, &rec.LongestStreak,
		&rec.LastActivityDate, &rec.TotalQuizzes, &rec.PerfectQuizzes, &rec.Version, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &CountersRecord{UserID: userID, CurrentLevel: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read counters for %s: %w", userID, err)
	}
	rec.UpdatedAt = time.UnixMilli(updatedAt)
	return rec, nil
}

func (r *counterRepo) WriteCounters(ctx context.Context, rec *CountersRecord) error {
	now := time.Now()

	var query string
	var args []any
	if rec.Version == 0 {
		query, args = sqlite.Insert(countersTable).
			Columns(
				"user_id", "total_xp", "current_level", "streak_count", "longest_streak",
				"last_activity_date", "total_quizzes", "perfect_quizzes", "version", "updated_at",
			).
			Values(
				rec.UserID, rec.TotalXP, rec.CurrentLevel, rec.StreakCount, rec.LongestStreak,
				rec.LastActivityDate, rec.TotalQuizzes, rec.PerfectQuizzes, 1, now.UnixMilli(),
			).
			OnConflict(entsql.ConflictColumns("user_id"), entsql.DoNothing()).
			Query()
	} else {
		query, args = sqlite.Update(countersTable).
			Set("total_xp", rec.TotalXP).
			Set("current_level", rec.CurrentLevel).
			Set("streak_count", rec.StreakCount).
			Set("longest_streak", rec.LongestStreak).
			Set("last_activity_date", rec.LastActivityDate).
			Set("total_quizzes", rec.TotalQuizzes).
			Set("perfect_quizzes", rec.PerfectQuizzes).
			Set("version", rec.Version+1).
			Set("updated_at", now.UnixMilli()).
			Where(entsql.And(
				entsql.EQ("user_id", rec.UserID),
				entsql.EQ("version", rec.Version),
			)).
			Query()
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("write counters for %s: %w", rec.UserID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write counters for %s: %w", rec.UserID, err)
	}
	if n == 0 {
		return ErrStaleCounters
	}

	rec.Version++
	rec.UpdatedAt = now
	return nil
}
