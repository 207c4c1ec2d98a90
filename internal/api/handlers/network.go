package handlers

import (
	"flight-plan-service/internal/api/dto"
	"flight-plan-service/internal/domain"
	"net/http"
)

type NetworkHandler struct {
	Network *domain.Network
}

func (h *NetworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.FromNetwork(h.Network))
}
