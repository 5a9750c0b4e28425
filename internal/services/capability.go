package services

import (
	"context"

	"studyaid-backend/internal/models"
)

// SummarizerOptions configures a summarizer session. Type is the summary
// style, e.g. "key-points".
type SummarizerOptions struct {
	Type string
}

type Summarizer interface {
	Create(ctx context.Context, opts SummarizerOptions) (SummarizerSession, error)
}

type SummarizerSession interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type ModalityExpectation struct {
	Type      string
	Languages []string
}

type SessionOptions struct {
	ExpectedInputs  []ModalityExpectation
	ExpectedOutputs []ModalityExpectation
}

type MessagePart struct {
	Type  string
	Value string
}

type Message struct {
	Role    string
	Content []MessagePart
}

type PromptOptions struct {
	OutputLanguage string
}

type LanguageModel interface {
	Create(ctx context.Context, opts SessionOptions) (LanguageModelSession, error)
}

type LanguageModelSession interface {
	Prompt(ctx context.Context, messages []Message, opts PromptOptions) (string, error)
}

// Namespace is a unified capability namespace that may expose a summarizer
// and a language model.
type Namespace interface {
	Summarizer(ctx context.Context) (Summarizer, bool)
	LanguageModel(ctx context.Context) (LanguageModel, bool)
}

// availabilityChecker is implemented by capability objects whose existence
// depends on a remote model being installed.
type availabilityChecker interface {
	Available(ctx context.Context) bool
}

// Environment is the set of on-device capabilities visible to the process.
// Nil fields are absent.
type Environment struct {
	Unified             Namespace
	LegacySummarizer    Summarizer
	LegacyLanguageModel LanguageModel
}

// Summarizer prefers the unified namespace over the legacy object.
func (e Environment) Summarizer(ctx context.Context) (Summarizer, models.BackendKind) {
	if e.Unified != nil {
		if s, ok := e.Unified.Summarizer(ctx); ok && s != nil {
			return s, models.BackendUnified
		}
	}
	if e.LegacySummarizer != nil && present(ctx, e.LegacySummarizer) {
		return e.LegacySummarizer, models.BackendLegacy
	}
	return nil, models.BackendNone
}

func (e Environment) LanguageModel(ctx context.Context) (LanguageModel, models.BackendKind) {
	if e.Unified != nil {
		if lm, ok := e.Unified.LanguageModel(ctx); ok && lm != nil {
			return lm, models.BackendUnified
		}
	}
	if e.LegacyLanguageModel != nil && present(ctx, e.LegacyLanguageModel) {
		return e.LegacyLanguageModel, models.BackendLegacy
	}
	return nil, models.BackendNone
}

func present(ctx context.Context, v interface{}) bool {
	if c, ok := v.(availabilityChecker); ok {
		return c.Available(ctx)
	}
	return true
}

type CapabilityProber interface {
	Probe(ctx context.Context) models.CapabilityState
}

// DeviceProber inspects an Environment. It never fails; missing pieces
// simply read as not ready.
type DeviceProber struct {
	env Environment
}

func NewDeviceProber(env Environment) *DeviceProber {
	return &DeviceProber{env: env}
}

func (p *DeviceProber) Probe(ctx context.Context) models.CapabilityState {
	var state models.CapabilityState
	if s, kind := p.env.Summarizer(ctx); s != nil {
		state.SummarizerReady = true
		state.SummarizerSource = kind
	}
	if lm, kind := p.env.LanguageModel(ctx); lm != nil {
		state.LanguageModelReady = true
		state.LanguageModelSource = kind
	}
	return state
}

// ServerProber reports both capabilities ready when the hosted model is
// configured.
type ServerProber struct {
	completer Completer
}

func NewServerProber(c Completer) *ServerProber {
	return &ServerProber{completer: c}
}

func (p *ServerProber) Probe(ctx context.Context) models.CapabilityState {
	if p.completer == nil || !p.completer.Available() {
		return models.CapabilityState{}
	}
	return models.CapabilityState{
		SummarizerReady:     true,
		LanguageModelReady:  true,
		SummarizerSource:    models.BackendServer,
		LanguageModelSource: models.BackendServer,
	}
}
