package repositories

import (
	"context"
	"flight-plan-service/internal/config"
	"flight-plan-service/internal/domain"
	"flight-plan-service/internal/platform/db"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func clock(h, m int) time.Time {
	return time.Date(2026, 3, 14, h, m, 0, 0, time.UTC)
}

func newStore(t *testing.T) *SqlitePlanStore {
	t.Helper()
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "plans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(ctx, conn))
	// Schema creation is idempotent.
	require.NoError(t, InitSchema(ctx, conn))

	return NewSqlitePlanStore(conn)
}

func samplePlans(t *testing.T) []*domain.Plan {
	t.Helper()
	first, err := domain.PlanFromLegs([]domain.Leg{
		domain.AirLeg("SAW", "ESB", clock(6, 0), clock(7, 0)),
		domain.IdleLeg("ESB", clock(7, 0), clock(7, 30)),
		domain.AirLeg("ESB", "SAW", clock(7, 30), clock(8, 30)),
		domain.IdleLeg("SAW", clock(8, 30), clock(9, 0)),
	})
	require.NoError(t, err)
	second, err := domain.PlanFromLegs([]domain.Leg{
		domain.AirLeg("SAW", "AYT", clock(6, 0), clock(7, 15)),
		domain.IdleLeg("AYT", clock(7, 15), clock(7, 45)),
	})
	require.NoError(t, err)
	return []*domain.Plan{first, second}
}

func sampleRun(t *testing.T, id string, created time.Time) *domain.SearchRun {
	return &domain.SearchRun{
		ID:            id,
		Hub:           "SAW",
		Start:         clock(6, 0),
		End:           clock(9, 0),
		Turnaround:    30 * time.Minute,
		DurationScale: 1.25,
		ClosedAtHub:   true,
		CreatedAt:     created,
		Plans:         samplePlans(t),
	}
}

func TestSqlitePlanStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	run := sampleRun(t, "run-1", time.Date(2026, 3, 14, 5, 0, 0, 123, time.UTC))
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Hub, got.Hub)
	assert.True(t, run.Start.Equal(got.Start))
	assert.True(t, run.End.Equal(got.End))
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, run.Turnaround, got.Turnaround)
	assert.Equal(t, run.DurationScale, got.DurationScale)
	assert.True(t, got.ClosedAtHub)

	require.Len(t, got.Plans, len(run.Plans))
	for i := range run.Plans {
		assert.Equal(t, run.Plans[i].Key(), got.Plans[i].Key(), "plan %d", i)
	}
}

func TestSqlitePlanStoreEmptyRun(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	run := sampleRun(t, "empty", clock(5, 0))
	run.Plans = nil
	run.ClosedAtHub = false
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got.Plans)
	assert.False(t, got.ClosedAtHub)
}

func TestSqlitePlanStoreRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.SaveRun(ctx, sampleRun(t, "dup", clock(5, 0))))
	assert.Error(t, store.SaveRun(ctx, sampleRun(t, "dup", clock(5, 1))))

	// The failed save left the first run intact.
	got, err := store.GetRun(ctx, "dup")
	require.NoError(t, err)
	assert.True(t, clock(5, 0).Equal(got.CreatedAt))
	assert.Len(t, got.Plans, 2)
}

func TestSqlitePlanStoreNotFound(t *testing.T) {
	_, err := newStore(t).GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestSqlitePlanStoreListRuns(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveRun(ctx, sampleRun(t, id, clock(10+i, 0))))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.Equal(t, 2, runs[0].PlanCount)

	all, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSqlitePlanStoreTimesQueries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(zap.ReplaceGlobals(zap.New(core)))

	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveRun(ctx, sampleRun(t, "timed", clock(5, 0))))
	_, err := store.GetRun(ctx, "timed")
	require.NoError(t, err)
	_, err = store.ListRuns(ctx, 1)
	require.NoError(t, err)

	for _, op := range []string{"store.sqlite.SaveRun", "store.sqlite.GetRun", "store.sqlite.ListRuns"} {
		assert.Equal(t, 1, logs.FilterField(zap.String("op", op)).Len(), op)
	}
}

func TestAssemblePlansRejectsGaps(t *testing.T) {
	rows := []legRow{
		{planIndex: 0, legIndex: 0, leg: domain.AirLeg("SAW", "ESB", clock(6, 0), clock(7, 0))},
		{planIndex: 0, legIndex: 2, leg: domain.IdleLeg("ESB", clock(7, 0), clock(7, 30))},
	}
	_, err := assemblePlans(rows, 1)
	assert.Error(t, err)

	_, err = assemblePlans(rows[:1], 0)
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	store, conn, err := OpenStore(ctx, config.StoreConfig{
		Driver: config.DriverSQLite,
		DBPath: filepath.Join(t.TempDir(), "open.db"),
	})
	require.NoError(t, err)
	sqliteConn := conn
	t.Cleanup(func() { _ = sqliteConn.Close() })
	assert.IsType(t, &SqlitePlanStore{}, store)

	store, conn, err = OpenStore(ctx, config.StoreConfig{Driver: config.DriverNone})
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.Nil(t, conn)

	_, _, err = OpenStore(ctx, config.StoreConfig{Driver: "mysql"})
	assert.Error(t, err)
}
