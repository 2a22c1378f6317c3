package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

func migrate(ctx context.Context, db *sqlx.DB, dialect Dialect) error {
	stmts := schemaSQLite
	if dialect == DialectPostgres {
		stmts = schemaPostgres
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL,
		topic_id TEXT NOT NULL,
		entry_id TEXT NOT NULL,
		correct INTEGER NOT NULL,
		incorrect INTEGER NOT NULL,
		accuracy_percent INTEGER NOT NULL,
		time_taken_seconds INTEGER NOT NULL,
		speed_per_minute REAL NOT NULL,
		timed_out BOOLEAN NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS attempts_topic_entry ON attempts (topic_id, entry_id)`,
	`CREATE TABLE IF NOT EXISTS visits (
		topic_id TEXT NOT NULL,
		entry_id TEXT NOT NULL,
		activity TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (topic_id, entry_id, activity)
	)`,
	`CREATE TABLE IF NOT EXISTS llm_calls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
}

var schemaPostgres = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val BIGINT NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		sequence BIGINT NOT NULL,
		topic_id TEXT NOT NULL,
		entry_id TEXT NOT NULL,
		correct INTEGER NOT NULL,
		incorrect INTEGER NOT NULL,
		accuracy_percent INTEGER NOT NULL,
		time_taken_seconds INTEGER NOT NULL,
		speed_per_minute DOUBLE PRECISION NOT NULL,
		timed_out BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS attempts_topic_entry ON attempts (topic_id, entry_id)`,
	`CREATE TABLE IF NOT EXISTS visits (
		topic_id TEXT NOT NULL,
		entry_id TEXT NOT NULL,
		activity TEXT NOT NULL,
		sequence BIGINT NOT NULL,
		created_at BIGINT NOT NULL,
		PRIMARY KEY (topic_id, entry_id, activity)
	)`,
	`CREATE TABLE IF NOT EXISTS llm_calls (
		id BIGSERIAL PRIMARY KEY,
		sequence BIGINT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms BIGINT NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL
	)`,
}
