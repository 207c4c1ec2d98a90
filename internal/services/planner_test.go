package services

import (
	"context"
	"errors"
	"flight-plan-service/internal/domain"
	"flight-plan-service/internal/platform/obs"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu   sync.Mutex
	runs map[string]*domain.SearchRun
	err  error
}

func (s *memoryStore) SaveRun(_ context.Context, run *domain.SearchRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.runs == nil {
		s.runs = map[string]*domain.SearchRun{}
	}
	s.runs[run.ID] = run
	return nil
}

func (s *memoryStore) GetRun(_ context.Context, id string) (*domain.SearchRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return run, nil
}

func (s *memoryStore) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RunSummary, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r.Summary())
	}
	return out, nil
}

type memoryCache struct {
	mu     sync.Mutex
	plans  map[string][]*domain.Plan
	getErr error
	gets   int
	puts   int
}

func (c *memoryCache) Get(_ context.Context, key string) ([]*domain.Plan, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	p, ok := c.plans[key]
	return p, ok, nil
}

func (c *memoryCache) Put(_ context.Context, key string, plans []*domain.Plan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.plans == nil {
		c.plans = map[string][]*domain.Plan{}
	}
	c.plans[key] = plans
	return nil
}

func morningRequest() PlanFlightsRequest {
	return PlanFlightsRequest{Search: SearchRequest{
		Hub:        "SAW",
		Start:      clock(6, 0),
		End:        clock(9, 0),
		Turnaround: 30 * time.Minute,
	}}
}

func TestPlannerSavesRun(t *testing.T) {
	store := &memoryStore{}
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	metrics := obs.NewMetrics()
	p := &Planner{
		Network: turkeyNetwork(t),
		Store:   store,
		Metrics: metrics,
		Now:     func() time.Time { return created },
	}

	run, err := p.Plan(context.Background(), morningRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "SAW", run.Hub)
	assert.Equal(t, created, run.CreatedAt)
	assert.Equal(t, 1.0, run.DurationScale)
	assert.Len(t, run.Plans, 4)

	saved, err := store.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Same(t, run, saved)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Searches.WithLabelValues("ok")))
}

func TestPlannerClosesAtHub(t *testing.T) {
	p := &Planner{Network: turkeyNetwork(t)}
	req := morningRequest()
	req.CloseAtHub = true

	run, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, run.ClosedAtHub)
	assert.Len(t, run.Plans, 2)
}

func TestPlannerUsesCache(t *testing.T) {
	net := turkeyNetwork(t)
	cache := &memoryCache{}
	p := &Planner{Network: net, Cache: cache}

	first, err := p.Plan(context.Background(), morningRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts)

	// Replace the cached entry so a hit is observable.
	key := SearchKey(net, morningRequest().Search, false)
	cache.plans[key] = first.Plans[:1]

	second, err := p.Plan(context.Background(), morningRequest())
	require.NoError(t, err)
	assert.Len(t, second.Plans, 1)
	assert.Equal(t, 1, cache.puts)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPlannerFallsBackWhenCacheFails(t *testing.T) {
	cache := &memoryCache{getErr: errors.New("connection refused")}
	p := &Planner{Network: turkeyNetwork(t), Cache: cache}

	run, err := p.Plan(context.Background(), morningRequest())
	require.NoError(t, err)
	assert.Len(t, run.Plans, 4)
	assert.Equal(t, 1, cache.puts)
}

func TestPlannerRejectsBadRequest(t *testing.T) {
	store := &memoryStore{}
	metrics := obs.NewMetrics()
	p := &Planner{Network: turkeyNetwork(t), Store: store, Metrics: metrics}

	req := morningRequest()
	req.Search.Hub = "IST"

	_, err := p.Plan(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Empty(t, store.runs)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Searches.WithLabelValues("rejected")))
}

func TestPlannerReportsStoreFailure(t *testing.T) {
	p := &Planner{Network: turkeyNetwork(t), Store: &memoryStore{err: errors.New("disk full")}}

	_, err := p.Plan(context.Background(), morningRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSearchKey(t *testing.T) {
	net := turkeyNetwork(t)
	req := morningRequest().Search

	assert.Equal(t, SearchKey(net, req, false), SearchKey(net, req, false))
	assert.NotEqual(t, SearchKey(net, req, false), SearchKey(net, req, true))

	scaled := req
	scaled.DurationScale = 1.5
	assert.NotEqual(t, SearchKey(net, req, false), SearchKey(net, scaled, false))

	// An unset scale is the same search as an explicit 1.
	one := req
	one.DurationScale = 1
	assert.Equal(t, SearchKey(net, req, false), SearchKey(net, one, false))

	// The same instant in another zone is the same search.
	local := req
	local.Start = req.Start.In(time.FixedZone("TRT", 3*60*60))
	assert.Equal(t, SearchKey(net, req, false), SearchKey(net, local, false))
}

// gatedCache holds every lookup until gate is closed or the lookup's ctx ends.
type gatedCache struct {
	memoryCache
	gate    chan struct{}
	entered chan struct{}
	once    sync.Once
}

func newGatedCache() *gatedCache {
	return &gatedCache{gate: make(chan struct{}), entered: make(chan struct{})}
}

func (c *gatedCache) Get(ctx context.Context, key string) ([]*domain.Plan, bool, error) {
	c.once.Do(func() { close(c.entered) })
	select {
	case <-c.gate:
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
	return c.memoryCache.Get(ctx, key)
}

func TestPlannerSharesConcurrentSearches(t *testing.T) {
	cache := newGatedCache()
	p := &Planner{Network: turkeyNetwork(t), Cache: cache}

	const callers = 5
	var (
		started sync.WaitGroup
		done    sync.WaitGroup
		runs    = make([]*domain.SearchRun, callers)
		errs    = make([]error, callers)
	)
	started.Add(callers)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			runs[i], errs[i] = p.Plan(context.Background(), morningRequest())
		}(i)
	}
	started.Wait()
	<-cache.entered
	time.Sleep(20 * time.Millisecond)
	close(cache.gate)
	done.Wait()

	ids := map[string]bool{}
	for i := range runs {
		require.NoError(t, errs[i])
		assert.Len(t, runs[i].Plans, 4)
		ids[runs[i].ID] = true
	}
	assert.Len(t, ids, callers)
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.puts)
}

func TestPlannerCallerCancelLeavesOthersRunning(t *testing.T) {
	cache := newGatedCache()
	p := &Planner{Network: turkeyNetwork(t), Cache: cache}

	ctx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := p.Plan(ctx, morningRequest())
		leaderErr <- err
	}()
	<-cache.entered

	type result struct {
		run *domain.SearchRun
		err error
	}
	follower := make(chan result, 1)
	go func() {
		run, err := p.Plan(context.Background(), morningRequest())
		follower <- result{run, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(cache.gate)
	res := <-follower
	require.NoError(t, res.err)
	assert.Len(t, res.run.Plans, 4)
}

func TestPlannerTimesOut(t *testing.T) {
	metrics := obs.NewMetrics()
	p := &Planner{
		Network: turkeyNetwork(t),
		Cache:   newGatedCache(),
		Metrics: metrics,
		Timeout: 20 * time.Millisecond,
	}

	_, err := p.Plan(context.Background(), morningRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Searches.WithLabelValues("timeout")))
}
