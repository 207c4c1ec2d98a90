package repositories

import (
	"context"
	"database/sql"
	"errors"
	"flight-plan-service/internal/domain"
	"flight-plan-service/internal/platform/obs"
	"fmt"
	"time"
)

// SQLPlanStore is the Postgres-backed PlanStore (pgx stdlib driver).
type SQLPlanStore struct {
	DB *sql.DB
}

func NewSQLPlanStore(db *sql.DB) *SQLPlanStore {
	return &SQLPlanStore{DB: db}
}

// Store a run and every leg of its plans in one transaction.
func (s *SQLPlanStore) SaveRun(ctx context.Context, run *domain.SearchRun) (err error) {
	defer obs.Time(ctx, "store.sql.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sql plan store: db is nil")
	}
	if run == nil || run.ID == "" {
		return errors.New("save run: run id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO search_runs (run_id, hub, start_at, end_at, turnaround_ns, duration_scale, closed_at_hub, plan_count, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		run.ID,
		run.Hub,
		run.Start.UTC(),
		run.End.UTC(),
		int64(run.Turnaround),
		run.DurationScale,
		run.ClosedAtHub,
		len(run.Plans),
		run.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save run: insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO plan_legs (run_id, plan_index, leg_index, kind, orig, dest, dept, arrv)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`)
	if err != nil {
		return fmt.Errorf("save run: db prepare: %w", err)
	}
	defer stmt.Close()

	for pi, p := range run.Plans {
		for li, l := range p.Legs() {
			if _, err := stmt.ExecContext(ctx,
				run.ID, pi, li, l.Kind.String(), l.Orig, l.Dest, l.Dept.UTC(), l.Arrv.UTC(),
			); err != nil {
				return fmt.Errorf("save run: insert plan %d leg %d: %w", pi, li, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit: %w", err)
	}

	return nil
}

// Load a run with all of its plans.
func (s *SQLPlanStore) GetRun(ctx context.Context, id string) (_ *domain.SearchRun, err error) {
	defer obs.Time(ctx, "store.sql.GetRun")(&err)

	if s.DB == nil {
		return nil, errors.New("sql plan store: db is nil")
	}

	var (
		run          domain.SearchRun
		turnaroundNs int64
		planCount    int
	)
	err = s.DB.QueryRowContext(ctx, `
	SELECT run_id, hub, start_at, end_at, turnaround_ns, duration_scale, closed_at_hub, plan_count, created_at
	FROM search_runs
	WHERE run_id = $1;
	`, id).Scan(
		&run.ID, &run.Hub, &run.Start, &run.End, &turnaroundNs,
		&run.DurationScale, &run.ClosedAtHub, &planCount, &run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, domain.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: query search_runs: %w", id, err)
	}
	run.Turnaround = time.Duration(turnaroundNs)

	rows, err := s.DB.QueryContext(ctx, `
	SELECT plan_index, leg_index, kind, orig, dest, dept, arrv
	FROM plan_legs
	WHERE run_id = $1
	ORDER BY plan_index, leg_index;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: query plan_legs: %w", id, err)
	}
	defer rows.Close()

	legs := make([]legRow, 0, 64)
	for rows.Next() {
		var (
			r    legRow
			kind string
		)
		if err := rows.Scan(&r.planIndex, &r.legIndex, &kind, &r.leg.Orig, &r.leg.Dest, &r.leg.Dept, &r.leg.Arrv); err != nil {
			return nil, fmt.Errorf("get run %s: scan leg: %w", id, err)
		}
		if r.leg.Kind, err = domain.ParseLegKind(kind); err != nil {
			return nil, fmt.Errorf("get run %s: %w", id, err)
		}
		legs = append(legs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run %s: row iteration: %w", id, err)
	}

	if run.Plans, err = assemblePlans(legs, planCount); err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}

	return &run, nil
}

// List the most recent runs first.
func (s *SQLPlanStore) ListRuns(ctx context.Context, limit int) (_ []domain.RunSummary, err error) {
	defer obs.Time(ctx, "store.sql.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sql plan store: db is nil")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT run_id, hub, start_at, end_at, plan_count, created_at
	FROM search_runs
	ORDER BY created_at DESC, run_id
	LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query search_runs: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RunSummary, 0, limit)
	for rows.Next() {
		var r domain.RunSummary
		if err := rows.Scan(&r.ID, &r.Hub, &r.Start, &r.End, &r.PlanCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return out, nil
}
