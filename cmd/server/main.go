package main

import (
	"context"
	"errors"
	"flight-plan-service/internal/adapters/cache"
	"flight-plan-service/internal/adapters/network"
	"flight-plan-service/internal/adapters/repositories"
	"flight-plan-service/internal/api"
	"flight-plan-service/internal/api/handlers"
	"flight-plan-service/internal/config"
	"flight-plan-service/internal/platform/obs"
	"flight-plan-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (network source, store, cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	flights, err := network.Source(cfg.Network.Path).LoadNetwork(ctx)
	if err != nil {
		return fmt.Errorf("load network: %w", err)
	}
	zap.L().Info("network loaded",
		zap.String("path", cfg.Network.Path),
		zap.Int("airports", flights.Len()),
		zap.Int("arcs", len(flights.Arcs())),
	)

	checks := map[string]handlers.HealthCheck{}

	store, conn, err := repositories.OpenStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	if conn != nil {
		defer conn.Close()
		checks[cfg.Store.Driver] = conn.PingContext
	}

	metrics := obs.NewMetrics()
	planner := &services.Planner{
		Network: flights,
		Store:   store,
		Metrics: metrics,
		Timeout: cfg.Search.Timeout,
	}

	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		planner.Cache = cache.NewRedisPlanCache(client, cfg.Redis.TTL)
		checks["redis"] = func(ctx context.Context) error { return cache.HealthCheck(ctx, client) }
	}

	router := api.NewRouter(api.Deps{
		Planner:  planner,
		Store:    store,
		Defaults: cfg.Search,
		Metrics:  metrics,
		Checks:   checks,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Driver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
