package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestTimeLogsFailure(t *testing.T) {
	logs := observe(t)
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")

	err := errors.New("boom")
	Time(ctx, "store.SaveRun")(&err)

	entries := logs.FilterMessage("operation failed").All()
	if len(entries) != 1 {
		t.Fatalf("failed entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["req_id"] != "req-1" || fields["op"] != "store.SaveRun" {
		t.Fatalf("fields = %v, want req_id=req-1 op=store.SaveRun", fields)
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("level = %v, want warn", entries[0].Level)
	}
}

func TestTimeLogsSuccessAtDebug(t *testing.T) {
	logs := observe(t)

	var err error
	Time(context.Background(), "search.Enumerate")(&err)

	if n := logs.FilterMessage("operation done").Len(); n != 1 {
		t.Fatalf("done entries = %d, want 1", n)
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID() = %q, want empty", got)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger("loud", false); err == nil {
		t.Fatalf("NewLogger(loud) error = nil, want error")
	}
	logger, err := NewLogger("debug", true)
	if err != nil {
		t.Fatalf("NewLogger(debug) error = %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug level not enabled")
	}
}

func TestMetricsRegistry(t *testing.T) {
	m := NewMetrics()
	m.Searches.WithLabelValues("ok").Inc()
	m.CacheLookups.WithLabelValues("miss").Add(2)

	if got := testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")); got != 2 {
		t.Fatalf("cache misses = %v, want 2", got)
	}
	if n, err := testutil.GatherAndCount(m.Registry(), "flightplan_searches_total"); err != nil || n != 1 {
		t.Fatalf("GatherAndCount() = %d, %v, want 1, nil", n, err)
	}
}
