package services

import "studyaid-backend/internal/models"

// GradeQuiz counts selections that equal the item's answer. Missing
// selections count as wrong.
func GradeQuiz(items []models.QuizItem, selections []string) models.GradeQuizResponse {
	correct := 0
	for i, q := range items {
		if i < len(selections) && selections[i] != "" && selections[i] == q.Answer {
			correct++
		}
	}

	resp := models.GradeQuizResponse{Correct: correct, Total: len(items)}
	switch {
	case resp.Total > 0 && correct == resp.Total:
		resp.Message, resp.Emoji = "Perfect! 🎉 You're a study master!", "🏆"
	case resp.Total > 0 && correct*2 >= resp.Total:
		resp.Message, resp.Emoji = "Good job! 😊 Keep improving!", "👍"
	default:
		resp.Message, resp.Emoji = "Keep trying! 💪 You can do better!", "💡"
	}
	return resp
}
