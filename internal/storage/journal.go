package storage

import (
	"aura_journal/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JournalStorage struct {
	pool *pgxpool.Pool
}

func NewJournalStorage(pool *pgxpool.Pool) *JournalStorage {
	return &JournalStorage{
		pool: pool,
	}
}

const journalColumns = `id, content, mood, sentiment_score, confidence, ai_insights, created_at`

func (db_js *JournalStorage) insert(ctx context.Context, q querier, entry models.JournalEntry) error {
	op := "internal/storage/journal.go insert"

	insights, err := encodeInsights(entry.AIInsights)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sql_query := `
	INSERT INTO journal_entries
	(id, content, mood, sentiment_score, confidence, ai_insights, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err = q.Exec(
		ctx,
		sql_query,
		entry.ID,
		entry.Content,
		string(entry.Mood),
		entry.SentimentScore,
		entry.Confidence,
		insights,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Failure to create entry in %s: %w", op, err)
	}

	return nil
}

func (db_js *JournalStorage) GetEntries(ctx context.Context) ([]models.JournalEntry, error) {
	op := "internal/storage/journal.go GetEntries"

	sql_query := `
	SELECT ` + journalColumns + ` FROM journal_entries
	ORDER BY created_at DESC;
	`

	rows, err := db_js.pool.Query(ctx, sql_query)
	if err != nil {
		return nil, fmt.Errorf("Failure to get entries in %s: %w", op, err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("Failure to Scan entries in %s: %w", op, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

func (db_js *JournalStorage) get(ctx context.Context, q querier, id string, forUpdate bool) (models.JournalEntry, error) {
	op := "internal/storage/journal.go get"

	sql_query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE id = $1`
	if forUpdate {
		sql_query += ` FOR UPDATE`
	}

	entry, err := scanEntry(q.QueryRow(ctx, sql_query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.JournalEntry{}, fmt.Errorf("%s: journal entry %s: %w", op, id, ErrNotFound)
	}
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	return entry, nil
}

func (db_js *JournalStorage) GetEntry(ctx context.Context, id string) (models.JournalEntry, error) {
	return db_js.get(ctx, db_js.pool, id, false)
}

func (db_js *JournalStorage) update(ctx context.Context, q querier, entry models.JournalEntry) error {
	op := "internal/storage/journal.go update"

	insights, err := encodeInsights(entry.AIInsights)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sql_query := `
	UPDATE journal_entries SET
	content = $2, mood = $3, sentiment_score = $4, confidence = $5, ai_insights = $6
	WHERE id = $1
	`

	tag, err := q.Exec(ctx, sql_query,
		entry.ID,
		entry.Content,
		string(entry.Mood),
		entry.SentimentScore,
		entry.Confidence,
		insights,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: journal entry %s: %w", op, entry.ID, ErrNotFound)
	}
	return nil
}

func (db_js *JournalStorage) DeleteEntry(ctx context.Context, id string) error {
	op := "internal/storage/journal.go DeleteEntry"

	tag, err := db_js.pool.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: journal entry %s: %w", op, id, ErrNotFound)
	}
	return nil
}

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var entry models.JournalEntry
	var mood string
	var insightsJSON []byte

	err := row.Scan(
		&entry.ID,
		&entry.Content,
		&mood,
		&entry.SentimentScore,
		&entry.Confidence,
		&insightsJSON,
		&entry.CreatedAt,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	entry.Mood = models.Mood(mood)

	if len(insightsJSON) > 0 && string(insightsJSON) != "null" {
		var insights models.AIInsights
		if err := json.Unmarshal(insightsJSON, &insights); err != nil {
			return models.JournalEntry{}, fmt.Errorf("decode ai_insights: %w", err)
		}
		entry.AIInsights = &insights
	}
	return entry, nil
}

func encodeInsights(insights *models.AIInsights) ([]byte, error) {
	if insights == nil {
		return nil, nil
	}
	b, err := json.Marshal(insights)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ai insights: %w", err)
	}
	return b, nil
}
