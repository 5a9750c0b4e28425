package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

const DefaultOllamaHost = "http://localhost:11434"

// OllamaNamespace is the unified on-device namespace. A capability is
// exposed only while its model is installed on the local Ollama server.
type OllamaNamespace struct {
	client          *ollama.Client
	summarizerModel string
	languageModel   string
}

func NewOllamaNamespace(host, summarizerModel, languageModel string) (*OllamaNamespace, error) {
	if host == "" {
		host = DefaultOllamaHost
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}

	httpClient := &http.Client{Timeout: 120 * time.Second}
	return &OllamaNamespace{
		client:          ollama.NewClient(u, httpClient),
		summarizerModel: summarizerModel,
		languageModel:   languageModel,
	}, nil
}

func (n *OllamaNamespace) Summarizer(ctx context.Context) (Summarizer, bool) {
	if !n.hasModel(ctx, n.summarizerModel) {
		return nil, false
	}
	return &ollamaSummarizer{client: n.client, model: n.summarizerModel}, true
}

func (n *OllamaNamespace) LanguageModel(ctx context.Context) (LanguageModel, bool) {
	if !n.hasModel(ctx, n.languageModel) {
		return nil, false
	}
	return &ollamaLanguageModel{client: n.client, model: n.languageModel}, true
}

func (n *OllamaNamespace) hasModel(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}
	resp, err := n.client.List(ctx)
	if err != nil {
		log.Printf("ollama: list models: %v", err)
		return false
	}
	for _, m := range resp.Models {
		if sameModel(m.Name, name) || sameModel(m.Model, name) {
			return true
		}
	}
	return false
}

// sameModel treats "llama3" and "llama3:latest" as the same model.
func sameModel(a, b string) bool {
	return strings.TrimSuffix(a, ":latest") == strings.TrimSuffix(b, ":latest")
}

var summaryStyles = map[string]string{
	"key-points": "Summarize the text as a markdown bulleted list of its key points. Output only the list.",
	"tldr":       "Summarize the text in one or two short sentences.",
}

type ollamaSummarizer struct {
	client *ollama.Client
	model  string
}

func (s *ollamaSummarizer) Create(ctx context.Context, opts SummarizerOptions) (SummarizerSession, error) {
	system, ok := summaryStyles[opts.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported summary type %q", opts.Type)
	}
	return &ollamaSummarizerSession{client: s.client, model: s.model, system: system}, nil
}

type ollamaSummarizerSession struct {
	client *ollama.Client
	model  string
	system string
}

func (s *ollamaSummarizerSession) Summarize(ctx context.Context, text string) (string, error) {
	stream := false
	req := &ollama.GenerateRequest{
		Model:  s.model,
		System: s.system,
		Prompt: text,
		Stream: &stream,
	}

	var out strings.Builder
	if err := s.client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		out.WriteString(gr.Response)
		return nil
	}); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

type ollamaLanguageModel struct {
	client *ollama.Client
	model  string
}

func (m *ollamaLanguageModel) Create(ctx context.Context, opts SessionOptions) (LanguageModelSession, error) {
	if err := checkTextOnly(opts); err != nil {
		return nil, err
	}
	return &ollamaLanguageModelSession{client: m.client, model: m.model}, nil
}

type ollamaLanguageModelSession struct {
	client *ollama.Client
	model  string
}

func (s *ollamaLanguageModelSession) Prompt(ctx context.Context, messages []Message, opts PromptOptions) (string, error) {
	msgs := make([]ollama.Message, 0, len(messages)+1)
	if lang := languageName(opts.OutputLanguage); lang != "" {
		msgs = append(msgs, ollama.Message{Role: "system", Content: "Respond in " + lang + "."})
	}
	for _, m := range messages {
		content, err := textContent(m)
		if err != nil {
			return "", err
		}
		msgs = append(msgs, ollama.Message{Role: m.Role, Content: content})
	}

	stream := false
	req := &ollama.ChatRequest{
		Model:    s.model,
		Messages: msgs,
		Stream:   &stream,
	}

	var out strings.Builder
	if err := s.client.Chat(ctx, req, func(cr ollama.ChatResponse) error {
		out.WriteString(cr.Message.Content)
		return nil
	}); err != nil {
		return "", err
	}
	return out.String(), nil
}

// checkTextOnly rejects sessions that expect anything other than text.
func checkTextOnly(opts SessionOptions) error {
	for _, e := range append(append([]ModalityExpectation{}, opts.ExpectedInputs...), opts.ExpectedOutputs...) {
		if e.Type != "text" {
			return fmt.Errorf("unsupported modality %q", e.Type)
		}
	}
	return nil
}

func textContent(m Message) (string, error) {
	texts := make([]string, 0, len(m.Content))
	for _, p := range m.Content {
		if p.Type != "text" {
			return "", fmt.Errorf("unsupported message part type %q", p.Type)
		}
		texts = append(texts, p.Value)
	}
	return strings.Join(texts, "\n"), nil
}

func languageName(code string) string {
	switch strings.ToLower(code) {
	case "":
		return ""
	case "en":
		return "English"
	case "es":
		return "Spanish"
	case "ja":
		return "Japanese"
	}
	return code
}
