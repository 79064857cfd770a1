package ai

import (
	"aura_journal/internal/models"
	"encoding/json"
	"fmt"
	"strings"
)

const defaultConfidence = 0.5

// sentimentReply mirrors the JSON object the model is asked for. Pointers tell
// a missing field apart from an explicit zero.
type sentimentReply struct {
	Mood           string   `json:"mood"`
	SentimentScore *float64 `json:"sentimentScore"`
	Confidence     *float64 `json:"confidence"`
	Insights       *struct {
		Emotions    []string `json:"emotions"`
		Themes      []string `json:"themes"`
		Suggestions []string `json:"suggestions"`
	} `json:"insights"`
}

// ParseSentimentResponse pulls the JSON object out of a model reply and
// normalizes it into a Classification.
func ParseSentimentResponse(response string) (models.Classification, error) {
	jsonText, err := extractJSONObject(response)
	if err != nil {
		return models.Classification{}, err
	}

	var reply sentimentReply
	if err := json.Unmarshal([]byte(jsonText), &reply); err != nil {
		return models.Classification{}, fmt.Errorf("invalid sentiment JSON: %w", err)
	}

	return normalize(reply), nil
}

func normalize(reply sentimentReply) models.Classification {
	mood, err := models.ParseMood(reply.Mood)
	if err != nil {
		mood = models.MoodNeutral
	}

	score := 0.0
	if reply.SentimentScore != nil {
		score = clamp(*reply.SentimentScore, -1, 1)
	}
	confidence := defaultConfidence
	if reply.Confidence != nil {
		confidence = clamp(*reply.Confidence, 0, 1)
	}

	c := models.Classification{
		Mood:           mood,
		SentimentScore: score,
		Confidence:     confidence,
		Insights: models.AIInsights{
			Emotions:    []string{},
			Themes:      []string{},
			Suggestions: []string{},
		},
	}
	if reply.Insights != nil {
		c.Insights.Emotions = cleanList(reply.Insights.Emotions)
		c.Insights.Themes = cleanList(reply.Insights.Themes)
		c.Insights.Suggestions = cleanList(reply.Insights.Suggestions)
	}
	return c
}

// extractJSONObject strips code fences and any prose around the first
// top-level object.
func extractJSONObject(response string) (string, error) {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object in model response")
	}
	return text[start : end+1], nil
}

func cleanList(items []string) []string {
	result := []string{}
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
