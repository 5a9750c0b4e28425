package models

import (
	"encoding/json"
	"strings"
)

// ContentType selects which study material a request produces.
type ContentType string

const (
	ContentSummaries  ContentType = "summaries"
	ContentFlashcards ContentType = "flashcards"
	ContentQuizzes    ContentType = "quizzes"
)

func ParseContentType(s string) (ContentType, bool) {
	switch t := ContentType(strings.TrimSpace(s)); t {
	case ContentSummaries, ContentFlashcards, ContentQuizzes:
		return t, true
	}
	return "", false
}

// UploadedFile is a file as handed over by a caller, before encoding.
type UploadedFile struct {
	Name     string
	MimeType string
	Raw      []byte
}

// EncodedFile carries a file as a bare base64 payload (no data-URL header).
type EncodedFile struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GenerationRequest struct {
	Type  ContentType   `json:"type"`
	Text  string        `json:"text"`
	Files []EncodedFile `json:"files"`
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type QuizItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// AnswerInOptions reports whether the answer is one of the item's options.
func (q QuizItem) AnswerInOptions() bool {
	for _, o := range q.Options {
		if o == q.Answer {
			return true
		}
	}
	return false
}

// Diagnostic describes something that was dropped or degraded while serving
// a request without failing it.
type Diagnostic struct {
	File    string `json:"file,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GenerationResult is exactly one of a summary, a flashcard set, a quiz set,
// or a malformed-output record holding the cleaned raw text.
type GenerationResult struct {
	Type        ContentType
	Summary     string
	Flashcards  []Flashcard
	Quizzes     []QuizItem
	Raw         string
	Error       string
	Diagnostics []Diagnostic
}

func SummaryResult(summary string) GenerationResult {
	return GenerationResult{Type: ContentSummaries, Summary: summary}
}

func FlashcardResult(cards []Flashcard) GenerationResult {
	if cards == nil {
		cards = []Flashcard{}
	}
	return GenerationResult{Type: ContentFlashcards, Flashcards: cards}
}

func QuizResult(items []QuizItem) GenerationResult {
	if items == nil {
		items = []QuizItem{}
	}
	return GenerationResult{Type: ContentQuizzes, Quizzes: items}
}

func MalformedResult(t ContentType, raw, message string) GenerationResult {
	return GenerationResult{Type: t, Raw: raw, Error: message}
}

// Malformed reports whether the model output could not be parsed.
func (r GenerationResult) Malformed() bool {
	return r.Error != ""
}

// ItemCount is the number of generated items: 1 for a summary, 0 when malformed.
func (r GenerationResult) ItemCount() int {
	if r.Malformed() {
		return 0
	}
	switch r.Type {
	case ContentSummaries:
		return 1
	case ContentFlashcards:
		return len(r.Flashcards)
	case ContentQuizzes:
		return len(r.Quizzes)
	}
	return 0
}

func (r GenerationResult) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	switch {
	case r.Malformed():
		out["raw"] = r.Raw
		out["error"] = r.Error
	case r.Type == ContentSummaries:
		out["summary"] = r.Summary
	case r.Type == ContentFlashcards:
		out["flashcards"] = nonNilCards(r.Flashcards)
	case r.Type == ContentQuizzes:
		out["quizzes"] = nonNilQuizzes(r.Quizzes)
	}
	if len(r.Diagnostics) > 0 {
		out["diagnostics"] = r.Diagnostics
	}
	return json.Marshal(out)
}

func nonNilCards(c []Flashcard) []Flashcard {
	if c == nil {
		return []Flashcard{}
	}
	return c
}

func nonNilQuizzes(q []QuizItem) []QuizItem {
	if q == nil {
		return []QuizItem{}
	}
	return q
}

type GradeQuizRequest struct {
	Quizzes    []QuizItem `json:"quizzes"`
	Selections []string   `json:"selections"`
}

type GradeQuizResponse struct {
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Message string `json:"message"`
	Emoji   string `json:"emoji"`
}
