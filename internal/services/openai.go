package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"
)

// NewOpenAICompatClient points go-openai at a local OpenAI-compatible server
// (llama.cpp, LM Studio, vLLM).
func NewOpenAICompatClient(baseURL, apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// LegacySummarizer is a standalone summarizer object served by an
// OpenAI-compatible endpoint.
type LegacySummarizer struct {
	client *openai.Client
	model  string
}

func NewLegacySummarizer(client *openai.Client, model string) *LegacySummarizer {
	return &LegacySummarizer{client: client, model: model}
}

func (s *LegacySummarizer) Available(ctx context.Context) bool {
	return hasOpenAIModel(ctx, s.client, s.model)
}

func (s *LegacySummarizer) Create(ctx context.Context, opts SummarizerOptions) (SummarizerSession, error) {
	system, ok := summaryStyles[opts.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported summary type %q", opts.Type)
	}
	return &legacySummarizerSession{client: s.client, model: s.model, system: system}, nil
}

type legacySummarizerSession struct {
	client *openai.Client
	model  string
	system string
}

func (s *legacySummarizerSession) Summarize(ctx context.Context, text string) (string, error) {
	return chatCompletion(ctx, s.client, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.system},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
}

// LegacyLanguageModel is a standalone language model object served by an
// OpenAI-compatible endpoint.
type LegacyLanguageModel struct {
	client *openai.Client
	model  string
}

func NewLegacyLanguageModel(client *openai.Client, model string) *LegacyLanguageModel {
	return &LegacyLanguageModel{client: client, model: model}
}

func (m *LegacyLanguageModel) Available(ctx context.Context) bool {
	return hasOpenAIModel(ctx, m.client, m.model)
}

func (m *LegacyLanguageModel) Create(ctx context.Context, opts SessionOptions) (LanguageModelSession, error) {
	if err := checkTextOnly(opts); err != nil {
		return nil, err
	}
	return &legacyLanguageModelSession{client: m.client, model: m.model}, nil
}

type legacyLanguageModelSession struct {
	client *openai.Client
	model  string
}

func (s *legacyLanguageModelSession) Prompt(ctx context.Context, messages []Message, opts PromptOptions) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if lang := languageName(opts.OutputLanguage); lang != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Respond in " + lang + ".",
		})
	}
	for _, m := range messages {
		parts := make([]openai.ChatMessagePart, 0, len(m.Content))
		for _, p := range m.Content {
			if p.Type != "text" {
				return "", fmt.Errorf("unsupported message part type %q", p.Type)
			}
			parts = append(parts, openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: p.Value})
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, MultiContent: parts})
	}

	return chatCompletion(ctx, s.client, openai.ChatCompletionRequest{Model: s.model, Messages: msgs})
}

func chatCompletion(ctx context.Context, client *openai.Client, req openai.ChatCompletionRequest) (string, error) {
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from model server")
	}
	return resp.Choices[0].Message.Content, nil
}

func hasOpenAIModel(ctx context.Context, client *openai.Client, model string) bool {
	if client == nil || model == "" {
		return false
	}
	list, err := client.ListModels(ctx)
	if err != nil {
		log.Printf("legacy model server: list models: %v", err)
		return false
	}
	for _, m := range list.Models {
		if sameModel(m.ID, model) {
			return true
		}
	}
	return false
}
