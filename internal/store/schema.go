package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order on every Open. Statements must be idempotent.
// DDL stays raw SQL; ent's builders only cover the statements repos run.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`,
	`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,

	`CREATE TABLE IF NOT EXISTS progression_counters (
		user_id TEXT PRIMARY KEY,
		total_xp INTEGER NOT NULL DEFAULT 0,
		current_level INTEGER NOT NULL DEFAULT 1,
		streak_count INTEGER NOT NULL DEFAULT 0,
		longest_streak INTEGER NOT NULL DEFAULT 0,
		last_activity_date TEXT NOT NULL DEFAULT '',
		total_quizzes INTEGER NOT NULL DEFAULT 0,
		perfect_quizzes INTEGER NOT NULL DEFAULT 0,
		version INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS questions (
		subject_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		question_id TEXT NOT NULL,
		concept_tag TEXT NOT NULL,
		correct_option_index INTEGER NOT NULL,
		PRIMARY KEY (subject_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS subject_progress (
		user_id TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		status TEXT NOT NULL,
		mastery_percent INTEGER NOT NULL DEFAULT 0,
		last_score INTEGER NOT NULL DEFAULT 0,
		attempts INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, subject_id)
	)`,

	`CREATE TABLE IF NOT EXISTS assessment_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		attempt_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		from_status TEXT NOT NULL,
		to_status TEXT NOT NULL,
		score_percent INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		correct_answers INTEGER NOT NULL,
		skipped_answers INTEGER NOT NULL,
		learning_path TEXT NOT NULL DEFAULT '[]',
		critical_gaps TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessment_events_user ON assessment_events (user_id, subject_id)`,

	`CREATE TABLE IF NOT EXISTS badge_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		user_id TEXT NOT NULL,
		badge_id TEXT NOT NULL,
		rarity TEXT NOT NULL,
		attempt_id TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_badge_events_user ON badge_events (user_id)`,

	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
