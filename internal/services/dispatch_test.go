package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studyaid-backend/internal/models"
)

func TestDeviceDispatcher_SummariesNeedSummarizer(t *testing.T) {
	lm := &stubLanguageModel{reply: `[]`}
	d := NewDeviceDispatcher(Environment{Unified: stubNamespace{lm: lm}})

	_, err := d.Dispatch(context.Background(), models.GenerationRequest{Type: models.ContentSummaries, Text: "cells"})

	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	if lm.calls() != 0 {
		t.Fatalf("language model must not be used for summaries")
	}
}

func TestDeviceDispatcher_Summarize(t *testing.T) {
	s := &stubSummarizer{summary: "- cells divide"}
	d := NewDeviceDispatcher(Environment{Unified: stubNamespace{summarizer: s}})

	res, err := d.Dispatch(context.Background(), models.GenerationRequest{Type: models.ContentSummaries, Text: "Mitosis notes"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Summary != "- cells divide" {
		t.Fatalf("expected summarizer output verbatim, got %q", res.Summary)
	}
	if len(s.created) != 1 || s.created[0].Type != "key-points" {
		t.Fatalf("expected a key-points session, got %+v", s.created)
	}
	if len(s.inputs) != 1 || s.inputs[0] != "Mitosis notes" {
		t.Fatalf("expected raw text to be summarized, got %+v", s.inputs)
	}
}

func TestDeviceDispatcher_FlashcardsThroughLanguageModel(t *testing.T) {
	lm := &stubLanguageModel{reply: "```json\n[{\"question\":\"Q\",\"answer\":\"A\"}]\n```"}
	d := NewDeviceDispatcher(Environment{LegacyLanguageModel: lm})

	res, err := d.Dispatch(context.Background(), models.GenerationRequest{
		Type:  models.ContentFlashcards,
		Text:  "Generate 8 flashcards about mitosis",
		Files: []models.EncodedFile{{Name: "photo.png", MimeType: "image/png", Data: "iVBORw0K"}},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(res.Flashcards) != 1 {
		t.Fatalf("expected one flashcard, got %+v", res)
	}

	if lm.calls() != 1 {
		t.Fatalf("expected exactly one prompt, got %d", lm.calls())
	}
	session := lm.sessions[0]
	if len(session.ExpectedInputs) != 1 || session.ExpectedInputs[0].Type != "text" || session.ExpectedInputs[0].Languages[0] != "en" {
		t.Fatalf("unexpected session inputs: %+v", session.ExpectedInputs)
	}
	msgs := lm.messages[0]
	if len(msgs) != 1 || msgs[0].Role != "user" || len(msgs[0].Content) != 1 || msgs[0].Content[0].Type != "text" {
		t.Fatalf("expected one user turn with one text part, got %+v", msgs)
	}
	if !strings.Contains(msgs[0].Content[0].Value, "create 8 study flashcards") {
		t.Fatalf("expected count in prompt, got %q", msgs[0].Content[0].Value)
	}
	if strings.Contains(msgs[0].Content[0].Value, "iVBORw0K") {
		t.Fatalf("attachments must not be transmitted")
	}
	if lm.opts[0].OutputLanguage != "en" {
		t.Fatalf("expected English output, got %q", lm.opts[0].OutputLanguage)
	}
}

func TestDeviceDispatcher_TransportFailure(t *testing.T) {
	lm := &stubLanguageModel{err: errors.New("connection refused")}
	d := NewDeviceDispatcher(Environment{LegacyLanguageModel: lm})

	_, err := d.Dispatch(context.Background(), models.GenerationRequest{Type: models.ContentQuizzes, Text: "cells"})
	if !errors.Is(err, ErrTransportFailure) {
		t.Fatalf("expected ErrTransportFailure, got %v", err)
	}
	if lm.calls() != 1 {
		t.Fatalf("expected no retry, got %d calls", lm.calls())
	}
}

func TestServerDispatcher(t *testing.T) {
	files := []models.EncodedFile{{Name: "notes.pdf", MimeType: "application/pdf", Data: "JVBERi0="}}
	tests := []struct {
		name       string
		t          models.ContentType
		text       string
		reply      string
		wantPrompt string
	}{
		{"summary", models.ContentSummaries, "cells", `{"summary":"- a"}`, "Summarize this content"},
		{"flashcards", models.ContentFlashcards, "3 flashcards", `[]`, "create 3 study flashcards"},
		{"quizzes", models.ContentQuizzes, "Make 4 questions", `[]`, "Generate 4 multiple-choice"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &stubCompleter{available: true, reply: tc.reply}
			res, err := NewServerDispatcher(c).Dispatch(context.Background(), models.GenerationRequest{Type: tc.t, Text: tc.text, Files: files})
			if err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			if res.Malformed() {
				t.Fatalf("unexpected malformed result: %+v", res)
			}
			if len(c.prompts) != 1 || !strings.Contains(c.prompts[0], tc.wantPrompt) {
				t.Fatalf("expected prompt containing %q, got %v", tc.wantPrompt, c.prompts)
			}
			if len(c.attachments[0]) != 1 || c.attachments[0][0].Name != "notes.pdf" {
				t.Fatalf("expected the file to be sent, got %+v", c.attachments[0])
			}
		})
	}
}

func TestServerDispatcher_UndecodableAttachmentIsReported(t *testing.T) {
	c := &stubCompleter{available: true, reply: `[]`}
	files := []models.EncodedFile{
		{Name: "broken.png", MimeType: "image/png", Data: "not*base64"},
		{Name: "notes.pdf", MimeType: "application/pdf", Data: "JVBERi0="},
	}

	res, err := NewServerDispatcher(c).Dispatch(context.Background(), models.GenerationRequest{
		Type:  models.ContentFlashcards,
		Text:  "cells",
		Files: files,
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(c.attachments[0]) != 1 || c.attachments[0][0].Name != "notes.pdf" {
		t.Fatalf("expected only the decodable file to be sent, got %+v", c.attachments[0])
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].File != "broken.png" || res.Diagnostics[0].Code != string(KindInvalidEncoding) {
		t.Fatalf("expected an INVALID_ENCODING diagnostic for broken.png, got %+v", res.Diagnostics)
	}
}
