package handlers

import (
	"encoding/json"
	"net/http"

	"studyaid-backend/internal/models"
	"studyaid-backend/internal/services"
)

// GradeQuiz scores a set of selections against generated quiz items.
func GradeQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.GradeQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if len(req.Quizzes) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No quiz questions provided", r))
		return
	}

	writeJSON(w, http.StatusOK, services.GradeQuiz(req.Quizzes, req.Selections))
}
