package services

import (
	"testing"

	"studyaid-backend/internal/models"
)

func TestCleanModelOutput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n[{\"question\":\"Q\",\"answer\":\"A\"}]\n```", `[{"question":"Q","answer":"A"}]`},
		{"upper case tag", "```JSON\n{}\n```", "{}"},
		{"bare fence", "```\n[]\n```", "[]"},
		{"no fence", "  []  ", "[]"},
		{"only first tag removed", "```json [\"```json\"] ```", `["json"]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanModelOutput(tc.in); got != tc.want {
				t.Errorf("CleanModelOutput(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_FencedFlashcards(t *testing.T) {
	raw := "```json\n[{\"question\":\"Q\",\"answer\":\"A\"}]\n```"

	res := Normalize(models.ContentFlashcards, raw)

	if res.Malformed() {
		t.Fatalf("expected parsed flashcards, got error %q", res.Error)
	}
	if len(res.Flashcards) != 1 || res.Flashcards[0] != (models.Flashcard{Question: "Q", Answer: "A"}) {
		t.Fatalf("unexpected flashcards: %+v", res.Flashcards)
	}
}

func TestNormalize_Malformed(t *testing.T) {
	res := Normalize(models.ContentFlashcards, "Sure! Here are your cards:")

	if !res.Malformed() {
		t.Fatalf("expected malformed result")
	}
	if res.Raw != "Sure! Here are your cards:" || res.Error != MalformedOutputMessage {
		t.Fatalf("unexpected malformed result: raw=%q error=%q", res.Raw, res.Error)
	}
}

func TestNormalize_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		t         models.ContentType
		raw       string
		malformed bool
		items     int
	}{
		{"summary object", models.ContentSummaries, `{"summary":"- point"}`, false, 1},
		{"summary missing field", models.ContentSummaries, `{"text":"- point"}`, true, 0},
		{"summary as array", models.ContentSummaries, `["- point"]`, true, 0},
		{"flashcards object", models.ContentFlashcards, `{"question":"Q","answer":"A"}`, true, 0},
		{"flashcards null", models.ContentFlashcards, `null`, true, 0},
		{"flashcards empty", models.ContentFlashcards, `[]`, false, 0},
		{"flashcards trailing text", models.ContentFlashcards, `[] and more`, true, 0},
		{"quizzes", models.ContentQuizzes, `[{"question":"Q","options":["a","b"],"answer":"a"}]`, false, 1},
		{"quizzes bad options", models.ContentQuizzes, `[{"question":"Q","options":"a","answer":"a"}]`, true, 0},
		{"unknown type", models.ContentType("notes"), `[]`, true, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Normalize(tc.t, tc.raw)
			if res.Malformed() != tc.malformed {
				t.Fatalf("malformed = %v, want %v (result %+v)", res.Malformed(), tc.malformed, res)
			}
			if res.ItemCount() != tc.items {
				t.Fatalf("item count = %d, want %d", res.ItemCount(), tc.items)
			}
		})
	}
}

func TestQuizDiagnostics_DoesNotDropItems(t *testing.T) {
	items := []models.QuizItem{
		{Question: "Q1", Options: []string{"a", "b"}, Answer: "a"},
		{Question: "Q2", Options: []string{"a", "b"}, Answer: "c"},
	}

	diags := QuizDiagnostics(items)

	if len(diags) != 1 || diags[0].Code != "QUIZ_ANSWER_NOT_IN_OPTIONS" {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(items) != 2 {
		t.Fatalf("items must be left untouched")
	}
}
