package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	assessmentEventsTable = "assessment_events"
	subjectProgressTable  = "subject_progress"
)

type outcomeRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *outcomeRepo) PersistGradingOutcome(ctx context.Context, data GradingOutcomeData) error {
	path, err := encodeList(data.LearningPath)
	if err != nil {
		return fmt.Errorf("encode learning path: %w", err)
	}
	gaps, err := encodeList(data.CriticalGaps)
	if err != nil {
		return fmt.Errorf("encode critical gaps: %w", err)
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		seqNum, err := r.seq.Next(ctx, tx)
		if err != nil {
			return err
		}
		now := time.Now().UnixMilli()

		query, args := sqlite.Insert(assessmentEventsTable).
			Columns(
				"sequence", "timestamp", "attempt_id", "user_id", "subject_id",
				"from_status", "to_status", "score_percent", "total_questions",
				"correct_answers", "skipped_answers", "learning_path", "critical_gaps",
			).
			Values(
				seqNum, now, data.AttemptID, data.UserID, data.SubjectID,
				data.FromStatus, data.ToStatus, data.ScorePercent, data.TotalQuestions,
				data.CorrectAnswers, data.SkippedAnswers, path, gaps,
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save assessment event: %w", err)
		}

		query, args = sqlite.Insert(subjectProgressTable).
			Columns("user_id", "subject_id", "status", "mastery_percent", "last_score", "attempts", "updated_at").
			Values(data.UserID, data.SubjectID, data.ToStatus, data.MasteryPercent, data.ScorePercent, 1, now).
			OnConflict(
				entsql.ConflictColumns("user_id", "subject_id"),
				entsql.ResolveWith(func(u *entsql.UpdateSet) {
					u.SetExcluded("status")
					u.SetExcluded("mastery_percent")
					u.SetExcluded("last_score")
					u.SetExcluded("updated_at")
					u.Add("attempts", 1)
				}),
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert subject progress: %w", err)
		}
		return nil
	})
}

var subjectProgressColumns = []string{
	"user_id", "subject_id", "status", "mastery_percent", "last_score", "attempts", "updated_at",
}

func (r *outcomeRepo) SubjectProgress(ctx context.Context, userID, subjectID string) (*SubjectProgressRecord, error) {
	query, args := sqlite.Select(subjectProgressColumns...).
		From(sqlite.Table(subjectProgressTable)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("subject_id", subjectID),
		)).
		Query()

	rec, err := scanSubjectProgress(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read subject progress: %w", err)
	}
	return rec, nil
}

func (r *outcomeRepo) ListSubjectProgress(ctx context.Context, userID string) ([]SubjectProgressRecord, error) {
	query, args := sqlite.Select(subjectProgressColumns...).
		From(sqlite.Table(subjectProgressTable)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Asc("subject_id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subject progress: %w", err)
	}
	defer rows.Close()

	var out []SubjectProgressRecord
	for rows.Next() {
		rec, err := scanSubjectProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subject progress: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubjectProgress(row rowScanner) (*SubjectProgressRecord, error) {
	var rec SubjectProgressRecord
	var updatedAt int64
	if err := row.Scan(
		&rec.UserID, &rec.SubjectID, &rec.Status, &rec.MasteryPercent,
		&rec.LastScore, &rec.Attempts, &updatedAt,
	); err != nil {
		return nil, err
	}
	rec.UpdatedAt = time.UnixMilli(updatedAt)
	return &rec, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	return string(b), err
}

func decodeList(s string) []string {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
