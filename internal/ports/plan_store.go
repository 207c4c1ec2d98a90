package ports

import (
	"context"
	"flight-plan-service/internal/domain"
)

// Port: a boundary for persisting executed searches and their plans.
type PlanStore interface {
	SaveRun(ctx context.Context, run *domain.SearchRun) error
	// Return the run with its plans, or domain.ErrRunNotFound.
	GetRun(ctx context.Context, id string) (*domain.SearchRun, error)
	// Return the most recent runs first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)
}
