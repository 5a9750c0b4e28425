package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"studyaid-backend/internal/models"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// Completer sends one prompt, with optional inline attachments, to a hosted
// model and returns its text.
type Completer interface {
	Available() bool
	Complete(ctx context.Context, prompt string, attachments []models.EncodedFile) (string, error)
}

type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiService returns a service that fails every call when apiKey is
// empty, so a missing key surfaces on the first request instead of at boot.
func NewGeminiService(ctx context.Context, apiKey, modelName string) (*GeminiService, error) {
	if apiKey == "" {
		return &GeminiService{}, nil
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetTopP(0.95)
	model.ResponseMIMEType = "application/json"

	return &GeminiService{client: client, model: model}, nil
}

func (s *GeminiService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *GeminiService) Available() bool {
	return s.model != nil
}

func (s *GeminiService) Complete(ctx context.Context, prompt string, attachments []models.EncodedFile) (string, error) {
	if s.model == nil {
		return "", transportFailure(nil, "Gemini API key is not configured")
	}

	parts := []genai.Part{genai.Text(prompt)}
	for _, f := range attachments {
		data, err := DecodeFile(f)
		if err != nil {
			log.Printf("gemini: skipping attachment %s: %v", f.Name, err)
			continue
		}
		parts = append(parts, genai.Blob{MIMEType: f.MimeType, Data: data})
	}

	resp, err := s.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", transportFailure(err, "Gemini API error")
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	text := extractText(resp)
	if text == "" {
		log.Println("WARNING: Gemini returned empty text")
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
