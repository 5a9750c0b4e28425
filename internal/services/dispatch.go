package services

import (
	"context"
	"log"

	"studyaid-backend/internal/models"
)

// Dispatcher turns a prepared request into exactly one backend call. It
// never retries.
type Dispatcher interface {
	// Name identifies the backend in logs and run records.
	Name() string
	// AcceptsAttachments reports whether files are sent to the model. When
	// false, PDF text is extracted and appended to the request text instead.
	AcceptsAttachments() bool
	Dispatch(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, error)
}

// ServerDispatcher sends the prompt and all files to a hosted model in a
// single call.
type ServerDispatcher struct {
	completer Completer
}

func NewServerDispatcher(c Completer) *ServerDispatcher {
	return &ServerDispatcher{completer: c}
}

func (d *ServerDispatcher) Name() string { return "server" }

func (d *ServerDispatcher) AcceptsAttachments() bool { return true }

func (d *ServerDispatcher) Dispatch(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, error) {
	var prompt string
	switch req.Type {
	case models.ContentSummaries:
		prompt = SummaryPrompt(req.Text)
	case models.ContentFlashcards:
		prompt = FlashcardPrompt(FlashcardCount(req.Text), req.Text)
	case models.ContentQuizzes:
		prompt = QuizPrompt(QuizCount(req.Text), req.Text)
	default:
		return models.GenerationResult{}, invalidInput("Invalid type")
	}

	files, diags := decodableFiles(req.Files)
	raw, err := d.completer.Complete(ctx, prompt, files)
	if err != nil {
		return models.GenerationResult{}, err
	}
	result := Normalize(req.Type, raw)
	result.Diagnostics = append(result.Diagnostics, diags...)
	return result, nil
}

// decodableFiles drops attachments whose payload does not decode. Each
// dropped file is reported instead of failing the request.
func decodableFiles(files []models.EncodedFile) ([]models.EncodedFile, []models.Diagnostic) {
	kept := make([]models.EncodedFile, 0, len(files))
	var diags []models.Diagnostic
	for _, f := range files {
		if _, err := DecodeFile(f); err != nil {
			diags = append(diags, diagnosticFor(f.Name, KindInvalidEncoding, err))
			continue
		}
		kept = append(kept, f)
	}
	return kept, diags
}

// DeviceDispatcher drives on-device capabilities: a summarizer for
// summaries and a language model for flashcards and quizzes.
type DeviceDispatcher struct {
	env Environment
}

func NewDeviceDispatcher(env Environment) *DeviceDispatcher {
	return &DeviceDispatcher{env: env}
}

func (d *DeviceDispatcher) Name() string { return "device" }

func (d *DeviceDispatcher) AcceptsAttachments() bool { return false }

func (d *DeviceDispatcher) Dispatch(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, error) {
	if len(req.Files) > 0 {
		log.Printf("device backend: %d attachment(s) prepared but not transmitted", len(req.Files))
	}

	switch req.Type {
	case models.ContentSummaries:
		return d.summarize(ctx, req.Text)
	case models.ContentFlashcards:
		return d.prompt(ctx, models.ContentFlashcards, FlashcardPrompt(FlashcardCount(req.Text), req.Text))
	case models.ContentQuizzes:
		return d.prompt(ctx, models.ContentQuizzes, QuizPrompt(QuizCount(req.Text), req.Text))
	}
	return models.GenerationResult{}, invalidInput("Invalid type")
}

// summarize wraps the summarizer output directly; it is not JSON.
func (d *DeviceDispatcher) summarize(ctx context.Context, text string) (models.GenerationResult, error) {
	summarizer, _ := d.env.Summarizer(ctx)
	if summarizer == nil {
		return models.GenerationResult{}, backendUnavailable("Summarizer is not available on this device")
	}

	session, err := summarizer.Create(ctx, SummarizerOptions{Type: "key-points"})
	if err != nil {
		return models.GenerationResult{}, transportFailure(err, "failed to create summarizer session")
	}
	summary, err := session.Summarize(ctx, text)
	if err != nil {
		return models.GenerationResult{}, transportFailure(err, "summarizer call failed")
	}
	return models.SummaryResult(summary), nil
}

func (d *DeviceDispatcher) prompt(ctx context.Context, t models.ContentType, prompt string) (models.GenerationResult, error) {
	lm, _ := d.env.LanguageModel(ctx)
	if lm == nil {
		return models.GenerationResult{}, backendUnavailable("Language model is not available on this device")
	}

	english := []ModalityExpectation{{Type: "text", Languages: []string{"en"}}}
	session, err := lm.Create(ctx, SessionOptions{ExpectedInputs: english, ExpectedOutputs: english})
	if err != nil {
		return models.GenerationResult{}, transportFailure(err, "failed to create language model session")
	}

	messages := []Message{{
		Role:    "user",
		Content: []MessagePart{{Type: "text", Value: prompt}},
	}}
	raw, err := session.Prompt(ctx, messages, PromptOptions{OutputLanguage: "en"})
	if err != nil {
		return models.GenerationResult{}, transportFailure(err, "language model call failed")
	}
	return Normalize(t, raw), nil
}
