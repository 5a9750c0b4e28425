package services

import (
	"testing"

	"studyaid-backend/internal/models"
)

func TestGradeQuiz(t *testing.T) {
	items := []models.QuizItem{
		{Question: "Q1", Options: []string{"a", "b"}, Answer: "a"},
		{Question: "Q2", Options: []string{"a", "b"}, Answer: "b"},
		{Question: "Q3", Options: []string{"a", "b"}, Answer: "a"},
		{Question: "Q4", Options: []string{"a", "b"}, Answer: "b"},
	}

	tests := []struct {
		name       string
		selections []string
		correct    int
		emoji      string
	}{
		{"all correct", []string{"a", "b", "a", "b"}, 4, "🏆"},
		{"half correct", []string{"a", "b", "b", "a"}, 2, "👍"},
		{"mostly wrong", []string{"b", "a", "b", "b"}, 1, "💡"},
		{"missing selections", []string{"a"}, 1, "💡"},
		{"none", nil, 0, "💡"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := GradeQuiz(items, tc.selections)
			if got.Correct != tc.correct || got.Total != 4 || got.Emoji != tc.emoji {
				t.Fatalf("unexpected grade: %+v", got)
			}
		})
	}
}

func TestGradeQuiz_EmptyAnswerNeverMatches(t *testing.T) {
	got := GradeQuiz([]models.QuizItem{{Question: "Q", Options: []string{"a"}, Answer: ""}}, []string{""})
	if got.Correct != 0 {
		t.Fatalf("expected no credit for an empty selection, got %+v", got)
	}
}
