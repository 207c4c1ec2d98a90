package cache

import (
	"context"
	"encoding/json"
	"errors"
	"flight-plan-service/internal/domain"
	"flight-plan-service/internal/platform/obs"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	planKeyPrefix   = "flightplan:plans:"
	defaultPlansTTL = 10 * time.Minute
)

// RedisPlanCache keeps enumeration results keyed by search key.
type RedisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// A non-positive ttl selects the default.
func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	if ttl <= 0 {
		ttl = defaultPlansTTL
	}
	return &RedisPlanCache{client: client, ttl: ttl}
}

type cachedLeg struct {
	Kind string    `json:"kind"`
	Orig string    `json:"orig"`
	Dest string    `json:"dest"`
	Dept time.Time `json:"dept"`
	Arrv time.Time `json:"arrv"`
}

func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ []*domain.Plan, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if c.client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}

	data, err := c.client.Get(ctx, planKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: %w", err)
	}

	var stored [][]cachedLeg
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, false, fmt.Errorf("get plan cache: decode %s: %w", key, err)
	}

	plans := make([]*domain.Plan, 0, len(stored))
	for i, legs := range stored {
		p, err := decodePlan(legs)
		if err != nil {
			return nil, false, fmt.Errorf("get plan cache: plan %d: %w", i, err)
		}
		plans = append(plans, p)
	}

	return plans, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key string, plans []*domain.Plan) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if c.client == nil {
		return errors.New("plan cache: client is nil")
	}

	stored := make([][]cachedLeg, 0, len(plans))
	for _, p := range plans {
		legs := p.Legs()
		out := make([]cachedLeg, 0, len(legs))
		for _, l := range legs {
			out = append(out, cachedLeg{
				Kind: l.Kind.String(),
				Orig: l.Orig,
				Dest: l.Dest,
				Dept: l.Dept,
				Arrv: l.Arrv,
			})
		}
		stored = append(stored, out)
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("put plan cache: encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, planKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("put plan cache: %w", err)
	}

	return nil
}

func decodePlan(legs []cachedLeg) (*domain.Plan, error) {
	out := make([]domain.Leg, 0, len(legs))
	for _, l := range legs {
		kind, err := domain.ParseLegKind(l.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Leg{Kind: kind, Orig: l.Orig, Dest: l.Dest, Dept: l.Dept, Arrv: l.Arrv})
	}
	return domain.PlanFromLegs(out)
}
