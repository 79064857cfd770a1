package storage

import (
	"aura_journal/internal/models"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MoodStorage struct {
	pool *pgxpool.Pool
}

func NewMoodStorage(pool *pgxpool.Pool) *MoodStorage {
	return &MoodStorage{
		pool: pool,
	}
}

func (db_ms *MoodStorage) insert(ctx context.Context, q querier, point models.MoodDataPoint) error {
	op := "internal/storage/mood.go insert"

	sql_query := `
	INSERT INTO mood_data
	(id, date, mood, intensity, notes, entry_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err := q.Exec(ctx, sql_query,
		point.ID,
		point.Date,
		string(point.Mood),
		point.Intensity,
		point.Notes,
		point.EntryID,
		point.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Failure to create mood point in %s: %w", op, err)
	}
	return nil
}

// GetMood returns every point newest-first, or only those inside r when it is set.
func (db_ms *MoodStorage) GetMood(ctx context.Context, r *models.DateRange) ([]models.MoodDataPoint, error) {
	op := "internal/storage/mood.go GetMood"

	sql_query := `SELECT id, date, mood, intensity, notes, entry_id, created_at FROM mood_data`
	args := []any{}
	if r != nil {
		sql_query += ` WHERE date >= $1 AND date <= $2`
		args = append(args, r.Start, r.End)
	}
	sql_query += ` ORDER BY created_at DESC`

	rows, err := db_ms.pool.Query(ctx, sql_query, args...)
	if err != nil {
		return nil, fmt.Errorf("Failure to get mood data in %s: %w", op, err)
	}
	defer rows.Close()

	points := []models.MoodDataPoint{}
	for rows.Next() {
		var p models.MoodDataPoint
		var mood string
		if err := rows.Scan(&p.ID, &p.Date, &mood, &p.Intensity, &p.Notes, &p.EntryID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("Failure to Scan mood data in %s: %w", op, err)
		}
		p.Mood = models.Mood(mood)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return points, nil
}
