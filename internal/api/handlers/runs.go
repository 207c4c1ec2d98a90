package handlers

import (
	"errors"
	"flight-plan-service/internal/api/dto"
	"flight-plan-service/internal/domain"
	"flight-plan-service/internal/ports"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const maxListLimit = 100

// RunHandler exposes read-only access to recorded search runs.
type RunHandler struct {
	Store ports.PlanStore
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		internalError(w, r, "list runs failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRunSummaries(runs))
}

func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	run, err := h.Store.GetRun(r.Context(), id)
	if errors.Is(err, domain.ErrRunNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		internalError(w, r, "get run failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRun(run))
}
