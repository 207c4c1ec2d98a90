package handlers

import (
	"context"
	"net/http"
	"sort"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthHandler is a liveness endpoint that also pings optional dependencies.
type HealthHandler struct {
	Checks map[string]HealthCheck
}

type healthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	res := healthResponse{Status: "ok"}
	status := http.StatusOK

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if res.Services == nil {
			res.Services = make(map[string]string, len(names))
		}
		if err := h.Checks[name](r.Context()); err != nil {
			res.Services[name] = "unhealthy: " + err.Error()
			res.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		res.Services[name] = "healthy"
	}

	writeJSON(w, r, status, res)
}
