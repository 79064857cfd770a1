package ai

import (
	"aura_journal/internal/models"
	"context"
	"fmt"

	"go.uber.org/zap"
)

const sentimentSystemPrompt = `You are an empathetic AI therapist analyzing journal entries. Analyze the sentiment and provide insights in JSON format.

Respond with this exact JSON structure:
{
  "mood": "happy|sad|anxious|excited|neutral|angry|calm",
  "sentimentScore": number between -1 and 1,
  "confidence": number between 0 and 1,
  "insights": {
    "emotions": ["array of detected emotions"],
    "themes": ["array of main themes"],
    "suggestions": ["array of helpful suggestions"]
  }
}`

// SentimentClassifier classifies journal text with any Generator.
type SentimentClassifier struct {
	gen    Generator
	logger *zap.Logger
}

func NewSentimentClassifier(gen Generator, logger *zap.Logger) *SentimentClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SentimentClassifier{gen: gen, logger: logger}
}

func (c *SentimentClassifier) Classify(ctx context.Context, text string) (models.Classification, error) {
	prompt := fmt.Sprintf("Please analyze this journal entry: %q", text)

	reply, err := c.gen.Generate(ctx, sentimentSystemPrompt, prompt)
	if err != nil {
		return models.Classification{}, fmt.Errorf("analyze sentiment: %w", err)
	}

	result, err := ParseSentimentResponse(reply)
	if err != nil {
		c.logger.Debug("unparseable sentiment reply", zap.String("reply", reply))
		return models.Classification{}, fmt.Errorf("analyze sentiment: %w", err)
	}
	return result, nil
}
