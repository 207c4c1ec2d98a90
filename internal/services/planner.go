package services

import (
	"context"
	"errors"
	"flight-plan-service/internal/domain"
	"flight-plan-service/internal/platform/obs"
	"flight-plan-service/internal/ports"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type PlanFlightsRequest struct {
	Search     SearchRequest
	CloseAtHub bool
}

// Planner runs searches over one network and hands results to the optional
// store and cache. Store, Cache and Metrics may be nil.
type Planner struct {
	Network *domain.Network
	Store   ports.PlanStore
	Cache   ports.PlanCache
	Metrics *obs.Metrics

	// Timeout bounds one shared enumeration. Zero means no bound.
	Timeout time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	group singleflight.Group
}

// Plan resolves a search to a recorded SearchRun.
//
// Concurrent identical requests share one enumeration, which runs detached
// from any single caller and is bounded by Timeout. Each caller stops waiting
// when its own ctx ends. A cache hit skips the engine entirely; cache
// failures only degrade to a fresh search.
func (p *Planner) Plan(ctx context.Context, req PlanFlightsRequest) (_ *domain.SearchRun, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if err := req.Search.Validate(p.Network); err != nil {
		p.countSearch("rejected")
		return nil, err
	}

	key := SearchKey(p.Network, req.Search, req.CloseAtHub)

	ch := p.group.DoChan(key, func() (any, error) {
		sctx := context.WithoutCancel(ctx)
		if p.Timeout > 0 {
			var cancel context.CancelFunc
			sctx, cancel = context.WithTimeout(sctx, p.Timeout)
			defer cancel()
		}
		return p.plans(sctx, key, req)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		p.countSearch("abandoned")
		return nil, fmt.Errorf("plan flights: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		switch {
		case errors.Is(res.Err, domain.ErrConfiguration):
			p.countSearch("rejected")
		case errors.Is(res.Err, context.DeadlineExceeded):
			p.countSearch("timeout")
		default:
			p.countSearch("failed")
		}
		return nil, fmt.Errorf("plan flights: %w", res.Err)
	}
	plans := res.Val.([]*domain.Plan)

	run := &domain.SearchRun{
		ID:            uuid.NewString(),
		Hub:           req.Search.Hub,
		Start:         req.Search.Start,
		End:           req.Search.End,
		Turnaround:    req.Search.Turnaround,
		DurationScale: req.Search.scale(),
		ClosedAtHub:   req.CloseAtHub,
		CreatedAt:     p.now(),
		Plans:         plans,
	}

	if p.Store != nil {
		if err := p.Store.SaveRun(ctx, run); err != nil {
			p.countSearch("failed")
			return nil, fmt.Errorf("plan flights: save run %s: %w", run.ID, err)
		}
	}

	p.countSearch("ok")
	return run, nil
}

func (p *Planner) plans(ctx context.Context, key string, req PlanFlightsRequest) ([]*domain.Plan, error) {
	if p.Cache != nil {
		plans, ok, err := p.Cache.Get(ctx, key)
		switch {
		case err != nil:
			zap.L().Warn("plan cache lookup failed",
				zap.String("req_id", obs.RequestID(ctx)), zap.String("key", key), zap.Error(err))
			p.countCache("error")
		case ok:
			p.countCache("hit")
			return plans, nil
		default:
			p.countCache("miss")
		}
	}

	start := time.Now()
	res, err := Enumerate(ctx, p.Network, req.Search)
	if err != nil {
		return nil, err
	}
	if p.Metrics != nil {
		p.Metrics.SearchDuration.Observe(time.Since(start).Seconds())
		p.Metrics.PlansCompleted.Observe(float64(res.Stats.Completed))
		p.Metrics.PlansExpanded.Add(float64(res.Stats.Expanded))
	}

	plans := res.Plans
	if req.CloseAtHub {
		plans = CloseAtHub(plans, req.Search.Hub)
	}

	zap.L().Info("search finished",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("hub", req.Search.Hub),
		zap.Int("seeded", res.Stats.Seeded),
		zap.Int("expanded", res.Stats.Expanded),
		zap.Int("completed", res.Stats.Completed),
		zap.Int("returned", len(plans)),
		zap.Int("max_legs", res.Stats.MaxLegs),
	)

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, key, plans); err != nil {
			zap.L().Warn("plan cache store failed",
				zap.String("req_id", obs.RequestID(ctx)), zap.String("key", key), zap.Error(err))
		}
	}

	return plans, nil
}

func (p *Planner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Planner) countSearch(outcome string) {
	if p.Metrics != nil {
		p.Metrics.Searches.WithLabelValues(outcome).Inc()
	}
}

func (p *Planner) countCache(result string) {
	if p.Metrics != nil {
		p.Metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
