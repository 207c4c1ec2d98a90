package repositories

import (
	"context"
	"database/sql"
	"flight-plan-service/internal/config"
	"flight-plan-service/internal/platform/db"
	"flight-plan-service/internal/ports"
	"fmt"
)

// OpenStore connects the PlanStore selected by cfg.Driver and makes sure the
// SQLite schema exists. The "none" driver yields a nil store and connection.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (ports.PlanStore, *sql.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := InitSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return NewSqlitePlanStore(conn), conn, nil
	case config.DriverPostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return NewSQLPlanStore(conn), conn, nil
	case config.DriverNone:
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("open store: unknown driver %q", cfg.Driver)
	}
}
