package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"studyaid-backend/internal/models"
)

const MalformedOutputMessage = "Model failed to return valid JSON."

var jsonFenceMarker = regexp.MustCompile("(?i)```json")

// CleanModelOutput drops the first ```json marker, every remaining ``` fence,
// and surrounding whitespace.
func CleanModelOutput(raw string) string {
	if loc := jsonFenceMarker.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]] + raw[loc[1]:]
	}
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

// Normalize parses model output into the shape required by t. It never
// fails: unparseable output comes back as a malformed result carrying the
// cleaned text.
func Normalize(t models.ContentType, raw string) models.GenerationResult {
	cleaned := CleanModelOutput(raw)
	malformed := models.MalformedResult(t, cleaned, MalformedOutputMessage)

	switch t {
	case models.ContentSummaries:
		var out struct {
			Summary *string `json:"summary"`
		}
		if err := json.Unmarshal([]byte(cleaned), &out); err != nil || out.Summary == nil {
			return malformed
		}
		return models.SummaryResult(*out.Summary)

	case models.ContentFlashcards:
		var cards []models.Flashcard
		if err := json.Unmarshal([]byte(cleaned), &cards); err != nil || cards == nil {
			return malformed
		}
		return models.FlashcardResult(cards)

	case models.ContentQuizzes:
		var items []models.QuizItem
		if err := json.Unmarshal([]byte(cleaned), &items); err != nil || items == nil {
			return malformed
		}
		return models.QuizResult(items)
	}
	return malformed
}

// QuizDiagnostics flags items whose answer is not among their options. The
// items are still returned to the caller unchanged.
func QuizDiagnostics(items []models.QuizItem) []models.Diagnostic {
	var diags []models.Diagnostic
	for i, q := range items {
		if !q.AnswerInOptions() {
			diags = append(diags, models.Diagnostic{
				Code:    "QUIZ_ANSWER_NOT_IN_OPTIONS",
				Message: fmt.Sprintf("quiz item %d has an answer that is not one of its options", i+1),
			})
		}
	}
	return diags
}
