package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient generates replies through Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no text in GenAI response")
	}
	return text, nil
}
