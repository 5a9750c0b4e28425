package services

import (
	"context"
	"fmt"
	"log"
)

const (
	BackendModeServer = "server"
	BackendModeDevice = "device"
)

type BackendOptions struct {
	Mode string

	GeminiAPIKey string
	GeminiModel  string

	OllamaHost            string
	OllamaSummarizerModel string
	OllamaLanguageModel   string

	LegacyBaseURL         string
	LegacyAPIKey          string
	LegacySummarizerModel string
	LegacyLanguageModel   string
}

// Backend bundles the dispatcher and prober for one configured mode.
type Backend struct {
	Dispatcher Dispatcher
	Prober     CapabilityProber
	close      func()
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

func NewBackend(ctx context.Context, opts BackendOptions) (*Backend, error) {
	switch opts.Mode {
	case BackendModeServer, "":
		gemini, err := NewGeminiService(ctx, opts.GeminiAPIKey, opts.GeminiModel)
		if err != nil {
			return nil, err
		}
		if !gemini.Available() {
			log.Println("⚠️  GEMINI_API_KEY is not set, generation requests will fail")
		}
		return &Backend{
			Dispatcher: NewServerDispatcher(gemini),
			Prober:     NewServerProber(gemini),
			close:      gemini.Close,
		}, nil

	case BackendModeDevice:
		env, err := deviceEnvironment(opts)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Dispatcher: NewDeviceDispatcher(env),
			Prober:     NewDeviceProber(env),
		}, nil
	}
	return nil, fmt.Errorf("unknown backend %q (want %q or %q)", opts.Mode, BackendModeServer, BackendModeDevice)
}

func deviceEnvironment(opts BackendOptions) (Environment, error) {
	var env Environment
	if opts.OllamaSummarizerModel != "" || opts.OllamaLanguageModel != "" {
		ns, err := NewOllamaNamespace(opts.OllamaHost, opts.OllamaSummarizerModel, opts.OllamaLanguageModel)
		if err != nil {
			return env, err
		}
		env.Unified = ns
	}
	if opts.LegacyBaseURL != "" {
		client := NewOpenAICompatClient(opts.LegacyBaseURL, opts.LegacyAPIKey)
		if opts.LegacySummarizerModel != "" {
			env.LegacySummarizer = NewLegacySummarizer(client, opts.LegacySummarizerModel)
		}
		if opts.LegacyLanguageModel != "" {
			env.LegacyLanguageModel = NewLegacyLanguageModel(client, opts.LegacyLanguageModel)
		}
	}
	return env, nil
}
