package handlers

import (
	"encoding/json"
	"net/http"

	"studyaid-backend/internal/models"
	"studyaid-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch kind := services.KindOf(err); kind {
	case services.KindInvalidInput, services.KindInvalidEncoding:
		writeJSON(w, http.StatusBadRequest, errorResp(string(kind), services.MessageOf(err), r))
	case services.KindBackendUnavailable, services.KindTransportFailure, services.KindExtractionFailure:
		writeJSON(w, http.StatusInternalServerError, errorResp(string(kind), services.MessageOf(err), r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
