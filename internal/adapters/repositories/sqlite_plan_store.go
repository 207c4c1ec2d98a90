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

// Fixed-width UTC layout so stored timestamps sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite-backed implementation of the PlanStore port.
type SqlitePlanStore struct{ DB *sql.DB }

func NewSqlitePlanStore(db *sql.DB) *SqlitePlanStore {
	return &SqlitePlanStore{DB: db}
}

func formatSqliteTime(t time.Time) string { return t.UTC().Format(sqliteTimeLayout) }

func parseSqliteTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// Store a run and every leg of its plans in one transaction.
func (s *SqlitePlanStore) SaveRun(ctx context.Context, run *domain.SearchRun) (err error) {
	defer obs.Time(ctx, "store.sqlite.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sqlite plan store: DB is nil")
	}
	if run == nil || run.ID == "" {
		return errors.New("save run: run id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO search_runs (
		run_id,
		hub,
		start_at,
		end_at,
		turnaround_ns,
		duration_scale,
		closed_at_hub,
		plan_count,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		run.ID,
		run.Hub,
		formatSqliteTime(run.Start),
		formatSqliteTime(run.End),
		int64(run.Turnaround),
		run.DurationScale,
		boolToInt(run.ClosedAtHub),
		len(run.Plans),
		formatSqliteTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save run: insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO plan_legs (
		run_id,
		plan_index,
		leg_index,
		kind,
		orig,
		dest,
		dept,
		arrv
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save run: prepare leg insert: %w", err)
	}
	defer stmt.Close()

	for pi, p := range run.Plans {
		for li, l := range p.Legs() {
			if _, err := stmt.ExecContext(ctx,
				run.ID, pi, li, l.Kind.String(), l.Orig, l.Dest,
				formatSqliteTime(l.Dept), formatSqliteTime(l.Arrv),
			); err != nil {
				return fmt.Errorf("save run: insert plan %d leg %d: %w", pi, li, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit tx: %w", err)
	}

	return nil
}

// Load a run with all of its plans.
func (s *SqlitePlanStore) GetRun(ctx context.Context, id string) (_ *domain.SearchRun, err error) {
	defer obs.Time(ctx, "store.sqlite.GetRun")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite plan store: DB is nil")
	}

	var (
		run                    domain.SearchRun
		start, end, created    string
		turnaroundNs           int64
		closedAtHub, planCount int
	)
	err = s.DB.QueryRowContext(ctx, `
	SELECT
		run_id,
		hub,
		start_at,
		end_at,
		turnaround_ns,
		duration_scale,
		closed_at_hub,
		plan_count,
		created_at
	FROM search_runs
	WHERE run_id = ?;
	`, id).Scan(
		&run.ID, &run.Hub, &start, &end, &turnaroundNs,
		&run.DurationScale, &closedAtHub, &planCount, &created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, domain.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: query search_runs: %w", id, err)
	}

	if run.Start, err = parseSqliteTime(start); err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	if run.End, err = parseSqliteTime(end); err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	if run.CreatedAt, err = parseSqliteTime(created); err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	run.Turnaround = time.Duration(turnaroundNs)
	run.ClosedAtHub = closedAtHub != 0

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		plan_index,
		leg_index,
		kind,
		orig,
		dest,
		dept,
		arrv
	FROM plan_legs
	WHERE run_id = ?
	ORDER BY plan_index, leg_index;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: query plan_legs: %w", id, err)
	}
	defer rows.Close()

	legs := make([]legRow, 0, 64)
	for rows.Next() {
		var (
			r          legRow
			kind       string
			dept, arrv string
		)
		if err := rows.Scan(&r.planIndex, &r.legIndex, &kind, &r.leg.Orig, &r.leg.Dest, &dept, &arrv); err != nil {
			return nil, fmt.Errorf("get run %s: scan leg: %w", id, err)
		}
		if r.leg.Kind, err = domain.ParseLegKind(kind); err != nil {
			return nil, fmt.Errorf("get run %s: %w", id, err)
		}
		if r.leg.Dept, err = parseSqliteTime(dept); err != nil {
			return nil, fmt.Errorf("get run %s: %w", id, err)
		}
		if r.leg.Arrv, err = parseSqliteTime(arrv); err != nil {
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
func (s *SqlitePlanStore) ListRuns(ctx context.Context, limit int) (_ []domain.RunSummary, err error) {
	defer obs.Time(ctx, "store.sqlite.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite plan store: DB is nil")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		run_id,
		hub,
		start_at,
		end_at,
		plan_count,
		created_at
	FROM search_runs
	ORDER BY created_at DESC, run_id
	LIMIT ?;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query search_runs: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RunSummary, 0, limit)
	for rows.Next() {
		var (
			r                   domain.RunSummary
			start, end, created string
		)
		if err := rows.Scan(&r.ID, &r.Hub, &start, &end, &r.PlanCount, &created); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		if r.Start, err = parseSqliteTime(start); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		if r.End, err = parseSqliteTime(end); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		if r.CreatedAt, err = parseSqliteTime(created); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return out, nil
}
