package main

import (
	"context"
	"flight-plan-service/internal/adapters/repositories"
	"flight-plan-service/internal/config"
	"flight-plan-service/internal/platform/db"
	"fmt"
	"log"

	"github.com/joho/godotenv"
)

// dbtool creates the run tables for the configured store driver.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := initSchema(context.Background(), cfg.Store); err != nil {
		log.Fatal(err)
	}

	log.Println("Schema ready.")
}

func initSchema(ctx context.Context, cfg config.StoreConfig) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		log.Println("Initializing postgres schema...")
		if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer conn.Close()

		log.Printf("Initializing sqlite schema at %s...", cfg.DBPath)
		if err := repositories.InitSchema(ctx, conn); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
	default:
		return fmt.Errorf("STORE_DRIVER %q has no schema", cfg.Driver)
	}
	return nil
}
