package api

import (
	"flight-plan-service/internal/api/handlers"
	"flight-plan-service/internal/config"
	"flight-plan-service/internal/platform/obs"
	"flight-plan-service/internal/ports"
	"flight-plan-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP surface needs. Store, Metrics and
// Checks are optional.
type Deps struct {
	Planner  *services.Planner
	Store    ports.PlanStore
	Defaults config.SearchConfig
	Metrics  *obs.Metrics
	Checks   map[string]handlers.HealthCheck
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware)

	health := &handlers.HealthHandler{Checks: d.Checks}
	network := &handlers.NetworkHandler{Network: d.Planner.Network}
	plans := &handlers.PlanHandler{Planner: d.Planner, Defaults: d.Defaults}

	r.HandleFunc("/health", health.Get).Methods(http.MethodGet)
	r.HandleFunc("/network", network.Get).Methods(http.MethodGet)
	r.HandleFunc("/plans", plans.Plan).Methods(http.MethodPost)

	if d.Store != nil {
		runs := &handlers.RunHandler{Store: d.Store}
		r.HandleFunc("/runs", runs.List).Methods(http.MethodGet)
		r.HandleFunc("/runs/{id}", runs.Get).Methods(http.MethodGet)
	}

	if d.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry(), promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
	}

	return r
}
