package storage

import (
	"aura_journal/internal/models"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStorage implements Store on top of the journal, mood and progress tables.
type PostgresStorage struct {
	pool     *pgxpool.Pool
	journal  *JournalStorage
	mood     *MoodStorage
	progress *ProgressStorage
}

func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{
		pool:     pool,
		journal:  NewJournalStorage(pool),
		mood:     NewMoodStorage(pool),
		progress: NewProgressStorage(pool),
	}
}

// OpenPostgres connects and pings. Call Init once the schema is in place.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStorage, error) {
	op := "internal/storage/postgres.go OpenPostgres"

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to connect to db: %w", op, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: unable to ping db: %w", op, err)
	}

	return NewPostgresStorage(pool), nil
}

// Init creates the singleton progress row if the table is still empty.
func (s *PostgresStorage) Init(ctx context.Context) error {
	_, err := s.progress.EnsureProgress(ctx)
	return err
}

func (s *PostgresStorage) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *PostgresStorage) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// no-op once committed
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStorage) CreateEntry(ctx context.Context, entry models.JournalEntry, advance ProgressFunc) (models.JournalEntry, models.ProgressRecord, error) {
	op := "internal/storage/postgres.go CreateEntry"

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var next models.ProgressRecord
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		current, err := s.progress.get(ctx, tx, true)
		if err != nil {
			return err
		}
		next = current
		if advance != nil {
			next, err = advance(current.Clone())
			if err != nil {
				return fmt.Errorf("advance progress: %w", err)
			}
		}
		if err := s.journal.insert(ctx, tx, entry); err != nil {
			return err
		}
		return s.progress.save(ctx, tx, next)
	})
	if err != nil {
		return models.JournalEntry{}, models.ProgressRecord{}, fmt.Errorf("%s: %w", op, err)
	}
	return entry, next, nil
}

func (s *PostgresStorage) ListEntries(ctx context.Context) ([]models.JournalEntry, error) {
	return s.journal.GetEntries(ctx)
}

func (s *PostgresStorage) GetEntry(ctx context.Context, id string) (models.JournalEntry, error) {
	return s.journal.GetEntry(ctx, id)
}

func (s *PostgresStorage) UpdateEntry(ctx context.Context, id string, update EntryUpdate) (models.JournalEntry, error) {
	var updated models.JournalEntry
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		current, err := s.journal.get(ctx, tx, id, true)
		if err != nil {
			return err
		}
		updated = current
		if err := update(&updated); err != nil {
			return err
		}
		updated.ID = current.ID
		updated.CreatedAt = current.CreatedAt
		return s.journal.update(ctx, tx, updated)
	})
	if err != nil {
		return models.JournalEntry{}, err
	}
	return updated, nil
}

func (s *PostgresStorage) DeleteEntry(ctx context.Context, id string) error {
	return s.journal.DeleteEntry(ctx, id)
}

func (s *PostgresStorage) AttachClassification(ctx context.Context, id string, c models.Classification, point models.MoodDataPoint) (models.JournalEntry, models.MoodDataPoint, error) {
	op := "internal/storage/postgres.go AttachClassification"

	point = stampPoint(point)

	var updated models.JournalEntry
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		current, err := s.journal.get(ctx, tx, id, true)
		if err != nil {
			return err
		}
		updated = current
		applyClassification(&updated, c)
		if err := s.journal.update(ctx, tx, updated); err != nil {
			return err
		}
		return s.mood.insert(ctx, tx, point)
	})
	if err != nil {
		return models.JournalEntry{}, models.MoodDataPoint{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, point, nil
}

func (s *PostgresStorage) AppendMood(ctx context.Context, point models.MoodDataPoint) (models.MoodDataPoint, error) {
	point = stampPoint(point)
	if err := s.mood.insert(ctx, s.pool, point); err != nil {
		return models.MoodDataPoint{}, err
	}
	return point, nil
}

func (s *PostgresStorage) ListMood(ctx context.Context) ([]models.MoodDataPoint, error) {
	return s.mood.GetMood(ctx, nil)
}

func (s *PostgresStorage) ListMoodInRange(ctx context.Context, r models.DateRange) ([]models.MoodDataPoint, error) {
	return s.mood.GetMood(ctx, &r)
}

func (s *PostgresStorage) GetProgress(ctx context.Context) (models.ProgressRecord, error) {
	return s.progress.get(ctx, s.pool, false)
}

func (s *PostgresStorage) SaveProgress(ctx context.Context, p models.ProgressRecord) (models.ProgressRecord, error) {
	op := "internal/storage/postgres.go SaveProgress"

	var saved models.ProgressRecord
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		current, err := s.progress.get(ctx, tx, true)
		if err != nil {
			return err
		}
		saved = p.Clone()
		saved.ID = current.ID
		saved.CreatedAt = current.CreatedAt
		return s.progress.save(ctx, tx, saved)
	})
	if err != nil {
		return models.ProgressRecord{}, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

func (s *PostgresStorage) Close() {
	s.pool.Close()
}

var _ Store = (*PostgresStorage)(nil)
