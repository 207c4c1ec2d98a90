package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, []string{
		`
	CREATE TABLE IF NOT EXISTS search_runs (
		run_id TEXT PRIMARY KEY,
		hub TEXT NOT NULL,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		turnaround_ns INTEGER NOT NULL,
		duration_scale REAL NOT NULL,
		closed_at_hub INTEGER NOT NULL,
		plan_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS plan_legs (
		run_id TEXT NOT NULL REFERENCES search_runs(run_id) ON DELETE CASCADE,
		plan_index INTEGER NOT NULL,
		leg_index INTEGER NOT NULL,
		kind TEXT NOT NULL,
		orig TEXT NOT NULL,
		dest TEXT NOT NULL,
		dept TEXT NOT NULL,
		arrv TEXT NOT NULL,
		PRIMARY KEY (run_id, plan_index, leg_index)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_search_runs_created_at
	ON search_runs(created_at);
	`,
	})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, []string{
		`
	CREATE TABLE IF NOT EXISTS search_runs (
		run_id TEXT PRIMARY KEY,
		hub TEXT NOT NULL,
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		turnaround_ns BIGINT NOT NULL,
		duration_scale DOUBLE PRECISION NOT NULL,
		closed_at_hub BOOLEAN NOT NULL,
		plan_count INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS plan_legs (
		run_id TEXT NOT NULL REFERENCES search_runs(run_id) ON DELETE CASCADE,
		plan_index INTEGER NOT NULL,
		leg_index INTEGER NOT NULL,
		kind TEXT NOT NULL,
		orig TEXT NOT NULL,
		dest TEXT NOT NULL,
		dept TIMESTAMPTZ NOT NULL,
		arrv TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (run_id, plan_index, leg_index)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_search_runs_created_at
	ON search_runs(created_at DESC);
	`,
	})
}

func initSchema(ctx context.Context, db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
