package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const questionsTable = "questions"

type questionRepo struct {
	db *sql.DB
}

func (r *questionRepo) SaveQuestionSet(ctx context.Context, subjectID string, questions []QuestionRecord) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args := sqlite.Delete(questionsTable).
			Where(entsql.EQ("subject_id", subjectID)).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear questions for %s: %w", subjectID, err)
		}
		if len(questions) == 0 {
			return nil
		}

		ins := sqlite.Insert(questionsTable).
			Columns("subject_id", "position", "question_id", "concept_tag", "correct_option_index")
		for i, q := range questions {
			ins = ins.Values(subjectID, i, q.ID, q.ConceptTag, q.CorrectOptionIndex)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert questions for %s: %w", subjectID, err)
		}
		return nil
	})
}

func (r *questionRepo) ReadQuestionSet(ctx context.Context, subjectID string) ([]QuestionRecord, error) {
	query, args := sqlite.Select("question_id", "concept_tag", "correct_option_index").
		From(sqlite.Table(questionsTable)).
		Where(entsql.EQ("subject_id", subjectID)).
		OrderBy(entsql.Asc("position")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions for %s: %w", subjectID, err)
	}
	defer rows.Close()

	out := []QuestionRecord{}
	for rows.Next() {
		var q QuestionRecord
		if err := rows.Scan(&q.ID, &q.ConceptTag, &q.CorrectOptionIndex); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *questionRepo) ListSubjects(ctx context.Context) ([]string, error) {
	query, args := sqlite.Select("subject_id").
		Distinct().
		From(sqlite.Table(questionsTable)).
		OrderBy(entsql.Asc("subject_id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
