package handlers

import (
	"net/http"

	"studyaid-backend/internal/models"
	"studyaid-backend/internal/services"
)

type CapabilityHandler struct {
	prober services.CapabilityProber
}

func NewCapabilityHandler(prober services.CapabilityProber) *CapabilityHandler {
	return &CapabilityHandler{prober: prober}
}

type capabilityResponse struct {
	models.CapabilityState
	Readiness models.Readiness `json:"readiness"`
	Message   string           `json:"message"`
}

func (h *CapabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	state := h.prober.Probe(r.Context())
	writeJSON(w, http.StatusOK, capabilityResponse{
		CapabilityState: state,
		Readiness:       state.Readiness(),
		Message:         state.Message(),
	})
}
