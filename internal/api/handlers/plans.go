package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"flight-plan-service/internal/api/dto"
	"flight-plan-service/internal/config"
	"flight-plan-service/internal/domain"
	"flight-plan-service/internal/services"
	"io"
	"net/http"
	"strings"
	"time"
)

// statusClientClosedRequest is reported when the caller went away mid-search.
const statusClientClosedRequest = 499

type PlanHandler struct {
	Planner  *services.Planner
	Defaults config.SearchConfig

	// Now defaults to time.Now.
	Now func() time.Time
}

// Plan runs one search and returns the recorded run.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	search, err := h.searchRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	run, err := h.Planner.Plan(r.Context(), services.PlanFlightsRequest{
		Search:     search,
		CloseAtHub: req.CloseAtHub,
	})
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "search timed out")
		return
	case errors.Is(err, context.Canceled):
		writeError(w, r, statusClientClosedRequest, "request canceled")
		return
	case err != nil:
		internalError(w, r, "plan flights failed", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromRun(run))
}

// searchRequest fills unset fields from the configured defaults.
func (h *PlanHandler) searchRequest(req dto.PlanRequest) (services.SearchRequest, error) {
	hub := strings.TrimSpace(req.Hub)
	if hub == "" {
		hub = h.Defaults.Hub
	}
	if hub == "" {
		return services.SearchRequest{}, errors.New("hub is required")
	}

	var start time.Time
	if req.StartAt != nil {
		start = *req.StartAt
	} else {
		s, err := h.Defaults.StartTime(h.now())
		if err != nil {
			return services.SearchRequest{}, err
		}
		start = s
	}

	end := start.Add(h.Defaults.Window)
	if req.EndAt != nil {
		end = *req.EndAt
	}

	turnaround := h.Defaults.Turnaround
	if req.TurnaroundMinutes != nil {
		turnaround = time.Duration(*req.TurnaroundMinutes) * time.Minute
	}

	scale := h.Defaults.DurationScale
	if req.DurationScale != nil {
		scale = *req.DurationScale
	}

	return services.SearchRequest{
		Hub:           hub,
		Start:         start,
		End:           end,
		Turnaround:    turnaround,
		DurationScale: scale,
	}, nil
}

func (h *PlanHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
