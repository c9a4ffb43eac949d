package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const badgeEventsTable = "badge_events"

func (r *eventRepo) AppendBadgeEvent(ctx context.Context, data BadgeEventData) error {
	seqNum, err := r.seq.Next(ctx, r.db)
	if err != nil {
		return err
	}

	query, args := sqlite.Insert(badgeEventsTable).
		Columns("sequence", "timestamp", "user_id", "badge_id", "rarity", "attempt_id", "reason").
		Values(seqNum, time.Now().UnixMilli(), data.UserID, data.BadgeID, data.Rarity, data.AttemptID, data.Reason).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save badge event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryBadgeEvents(ctx context.Context, userID string, opts QueryOpts) ([]BadgeEventRecord, error) {
	sel := sqlite.Select("id", "sequence", "timestamp", "user_id", "badge_id", "rarity", "attempt_id", "reason").
		From(sqlite.Table(badgeEventsTable)).
		Where(entsql.EQ("user_id", userID))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query badge events: %w", err)
	}
	defer rows.Close()

	var out []BadgeEventRecord
	for rows.Next() {
		var rec BadgeEventRecord
		var ts int64
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.UserID, &rec.BadgeID,
			&rec.Rarity, &rec.AttemptID, &rec.Reason,
		); err != nil {
			return nil, fmt.Errorf("scan badge event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) QueryAssessmentEvents(ctx context.Context, userID string, opts QueryOpts) ([]AssessmentEventRecord, error) {
	sel := sqlite.Select(
		"id", "sequence", "timestamp", "attempt_id", "user_id", "subject_id",
		"from_status", "to_status", "score_percent", "total_questions",
		"correct_answers", "skipped_answers", "learning_path", "critical_gaps",
	).
		From(sqlite.Table(assessmentEventsTable)).
		Where(entsql.EQ("user_id", userID))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	defer rows.Close()

	var out []AssessmentEventRecord
	for rows.Next() {
		var rec AssessmentEventRecord
		var ts int64
		var path, gaps string
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.AttemptID, &rec.UserID, &rec.SubjectID,
			&rec.FromStatus, &rec.ToStatus, &rec.ScorePercent, &rec.TotalQuestions,
			&rec.CorrectAnswers, &rec.SkippedAnswers, &path, &gaps,
		); err != nil {
			return nil, fmt.Errorf("scan assessment event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.LearningPath = decodeList(path)
		rec.CriticalGaps = decodeList(gaps)
		rec.MasteryPercent = rec.ScorePercent
		out = append(out, rec)
	}
	return out, rows.Err()
}
