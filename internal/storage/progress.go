package storage

import (
	"aura_journal/internal/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressStorage struct {
	pool *pgxpool.Pool
}

func NewProgressStorage(pool *pgxpool.Pool) *ProgressStorage {
	return &ProgressStorage{
		pool: pool,
	}
}

func (db_ps *ProgressStorage) get(ctx context.Context, q querier, forUpdate bool) (models.ProgressRecord, error) {
	op := "internal/storage/progress.go get"

	sql_query := `
	SELECT id, streak, total_entries, badges, aura_level, last_entry_date, created_at, updated_at
	FROM user_progress
	ORDER BY created_at
	LIMIT 1
	`
	if forUpdate {
		sql_query += ` FOR UPDATE`
	}

	var p models.ProgressRecord
	var badges []string

	err := q.QueryRow(ctx, sql_query).Scan(
		&p.ID,
		&p.Streak,
		&p.TotalEntries,
		&badges, //pgx TEXT[] -> []string
		&p.AuraLevel,
		&p.LastEntryDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ProgressRecord{}, fmt.Errorf("%s: %w", op, ErrUninitialized)
	}
	if err != nil {
		return models.ProgressRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Badges, err = decodeBadges(badges)
	if err != nil {
		return models.ProgressRecord{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func decodeBadges(raw []string) ([]models.Badge, error) {
	out := make([]models.Badge, 0, len(raw))
	for _, s := range raw {
		b := models.Badge(s)
		if !b.Valid() {
			return nil, fmt.Errorf("unknown badge %q", s)
		}
		out = append(out, b)
	}
	return out, nil
}

func (db_ps *ProgressStorage) save(ctx context.Context, q querier, p models.ProgressRecord) error {
	op := "internal/storage/progress.go save"

	badges := make([]string, 0, len(p.Badges))
	for _, b := range p.Badges {
		badges = append(badges, string(b))
	}

	sql_query := `
	INSERT INTO user_progress (id, streak, total_entries, badges, aura_level, last_entry_date, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
	streak = EXCLUDED.streak,
	total_entries = EXCLUDED.total_entries,
	badges = EXCLUDED.badges,
	aura_level = EXCLUDED.aura_level,
	last_entry_date = EXCLUDED.last_entry_date,
	updated_at = EXCLUDED.updated_at
	`

	_, err := q.Exec(ctx, sql_query,
		p.ID,
		p.Streak,
		p.TotalEntries,
		badges, // pgx []string -> TEXT[]
		p.AuraLevel,
		p.LastEntryDate,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to save progress: %w", op, err)
	}
	return nil
}

// EnsureProgress creates the singleton progress row when the table is empty.
func (db_ps *ProgressStorage) EnsureProgress(ctx context.Context) (models.ProgressRecord, error) {
	p, err := db_ps.get(ctx, db_ps.pool, false)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrUninitialized) {
		return models.ProgressRecord{}, err
	}

	p = models.NewProgressRecord(uuid.NewString(), time.Now().UTC())
	if err := db_ps.save(ctx, db_ps.pool, p); err != nil {
		return models.ProgressRecord{}, err
	}
	return p, nil
}
