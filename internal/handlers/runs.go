package handlers

import (
	"context"
	"net/http"
	"strconv"

	"studyaid-backend/internal/models"
	"studyaid-backend/internal/repository"
)

type runLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.GenerationRun, error)
}

type RunHandler struct {
	runs runLister
}

// NewRunHandler accepts a nil repo when no database is configured.
func NewRunHandler(repo *repository.GenerationRunRepo) *RunHandler {
	h := &RunHandler{}
	if repo != nil {
		h.runs = repo
	}
	return h
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("RUN_LOG_DISABLED", "Run log is not configured", r))
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "limit must be a positive integer", r))
			return
		}
		if n > 100 {
			n = 100
		}
		limit = n
	}

	runs, err := h.runs.ListRecent(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch runs", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs": runs,
	})
}
