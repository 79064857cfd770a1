package models

import (
	"time"
)

type AIInsights struct {
	Emotions    []string `json:"emotions"`
	Themes      []string `json:"themes"`
	Suggestions []string `json:"suggestions"`
}

type JournalEntry struct {
	ID             string      `json:"id" db:"id"`
	Content        string      `json:"content" db:"content"`
	Mood           Mood        `json:"mood" db:"mood"`
	SentimentScore *float64    `json:"sentimentScore" db:"sentiment_score"`
	Confidence     *float64    `json:"confidence" db:"confidence"`
	AIInsights     *AIInsights `json:"aiInsights" db:"ai_insights"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
}

// Classified reports whether AI-derived fields were attached to the entry.
func (e JournalEntry) Classified() bool {
	return e.SentimentScore != nil
}

// Classification is the normalized output of the sentiment classifier.
type Classification struct {
	Mood           Mood       `json:"mood"`
	SentimentScore float64    `json:"sentimentScore"`
	Confidence     float64    `json:"confidence"`
	Insights       AIInsights `json:"insights"`
}

func (e JournalEntry) Clone() JournalEntry {
	out := e
	if e.SentimentScore != nil {
		v := *e.SentimentScore
		out.SentimentScore = &v
	}
	if e.Confidence != nil {
		v := *e.Confidence
		out.Confidence = &v
	}
	if e.AIInsights != nil {
		ins := AIInsights{
			Emotions:    append([]string(nil), e.AIInsights.Emotions...),
			Themes:      append([]string(nil), e.AIInsights.Themes...),
			Suggestions: append([]string(nil), e.AIInsights.Suggestions...),
		}
		out.AIInsights = &ins
	}
	return out
}
