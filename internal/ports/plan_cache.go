package ports

import (
	"context"
	"flight-plan-service/internal/domain"
)

// Optional fast path in front of the enumeration engine, keyed by search key.
type PlanCache interface {
	// Return cached plans. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]*domain.Plan, bool, error)
	Put(ctx context.Context, key string, plans []*domain.Plan) error
}
