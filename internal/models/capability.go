package models

// BackendKind identifies where a generation capability lives.
type BackendKind string

const (
	BackendNone    BackendKind = ""
	BackendServer  BackendKind = "server"
	BackendUnified BackendKind = "unified"
	BackendLegacy  BackendKind = "legacy"
)

type Readiness string

const (
	ReadinessFull              Readiness = "full"
	ReadinessSummarizerOnly    Readiness = "summarizer_only"
	ReadinessLanguageModelOnly Readiness = "language_model_only"
	ReadinessCritical          Readiness = "critical"
)

// CapabilityState is advisory: a ready flag does not guarantee a later call
// succeeds.
type CapabilityState struct {
	SummarizerReady     bool        `json:"summarizer_ready"`
	LanguageModelReady  bool        `json:"language_model_ready"`
	SummarizerSource    BackendKind `json:"summarizer_source,omitempty"`
	LanguageModelSource BackendKind `json:"language_model_source,omitempty"`
}

func (s CapabilityState) Readiness() Readiness {
	switch {
	case s.SummarizerReady && s.LanguageModelReady:
		return ReadinessFull
	case s.SummarizerReady:
		return ReadinessSummarizerOnly
	case s.LanguageModelReady:
		return ReadinessLanguageModelOnly
	}
	return ReadinessCritical
}

// Message is the user-facing status line for the readiness level.
func (s CapabilityState) Message() string {
	switch s.Readiness() {
	case ReadinessFull:
		return "All AI features are available."
	case ReadinessSummarizerOnly:
		return "Summaries are available. Flashcards and quizzes need a language model."
	case ReadinessLanguageModelOnly:
		return "Flashcards and quizzes are available. Summaries need a summarizer model."
	}
	return "No AI models are available. Generation is blocked until a summarizer or language model is installed."
}

// Supports reports whether the state claims support for a content type.
func (s CapabilityState) Supports(t ContentType) bool {
	if t == ContentSummaries {
		return s.SummarizerReady
	}
	return s.LanguageModelReady
}
