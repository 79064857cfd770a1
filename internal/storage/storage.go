package storage

import (
	"aura_journal/internal/models"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUninitialized = errors.New("progress record is not initialized")
)

// ProgressFunc derives the next progress state from the current one.
// Returning an error aborts the write it is part of.
type ProgressFunc func(current models.ProgressRecord) (models.ProgressRecord, error)

// EntryUpdate mutates an entry in place inside UpdateEntry.
type EntryUpdate func(entry *models.JournalEntry) error

// Store is the ordered, appendable record store behind the journal.
type Store interface {
	CreateEntry(ctx context.Context, entry models.JournalEntry, advance ProgressFunc) (models.JournalEntry, models.ProgressRecord, error)
	ListEntries(ctx context.Context) ([]models.JournalEntry, error)
	GetEntry(ctx context.Context, id string) (models.JournalEntry, error)
	UpdateEntry(ctx context.Context, id string, update EntryUpdate) (models.JournalEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	AttachClassification(ctx context.Context, id string, c models.Classification, point models.MoodDataPoint) (models.JournalEntry, models.MoodDataPoint, error)

	AppendMood(ctx context.Context, point models.MoodDataPoint) (models.MoodDataPoint, error)
	ListMood(ctx context.Context) ([]models.MoodDataPoint, error)
	ListMoodInRange(ctx context.Context, r models.DateRange) ([]models.MoodDataPoint, error)

	GetProgress(ctx context.Context) (models.ProgressRecord, error)
	SaveProgress(ctx context.Context, p models.ProgressRecord) (models.ProgressRecord, error)

	Close()
}

func applyClassification(entry *models.JournalEntry, c models.Classification) {
	score := c.SentimentScore
	confidence := c.Confidence
	insights := models.AIInsights{
		Emotions:    append([]string{}, c.Insights.Emotions...),
		Themes:      append([]string{}, c.Insights.Themes...),
		Suggestions: append([]string{}, c.Insights.Suggestions...),
	}
	entry.SentimentScore = &score
	entry.Confidence = &confidence
	entry.AIInsights = &insights
}

func stampPoint(point models.MoodDataPoint) models.MoodDataPoint {
	if point.ID == "" {
		point.ID = uuid.NewString()
	}
	if point.CreatedAt.IsZero() {
		point.CreatedAt = time.Now().UTC()
	}
	return point
}
