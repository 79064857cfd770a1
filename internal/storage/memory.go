package storage

import (
	"aura_journal/internal/models"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage keeps everything in process memory. Nothing survives a restart.
type MemoryStorage struct {
	mu       sync.RWMutex
	entries  []models.JournalEntry
	mood     []models.MoodDataPoint
	progress *models.ProgressRecord
	now      func() time.Time
}

// NewMemoryStorage returns a store with a freshly initialized progress record.
func NewMemoryStorage() *MemoryStorage {
	now := time.Now().UTC()
	progress := models.NewProgressRecord(uuid.NewString(), now)
	return &MemoryStorage{
		entries:  []models.JournalEntry{},
		mood:     []models.MoodDataPoint{},
		progress: &progress,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStorage) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now()
}

func (s *MemoryStorage) CreateEntry(_ context.Context, entry models.JournalEntry, advance ProgressFunc) (models.JournalEntry, models.ProgressRecord, error) {
	op := "internal/storage/memory.go CreateEntry"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress == nil {
		return models.JournalEntry{}, models.ProgressRecord{}, fmt.Errorf("%s: %w", op, ErrUninitialized)
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.clock()
	}

	next := s.progress.Clone()
	if advance != nil {
		var err error
		next, err = advance(s.progress.Clone())
		if err != nil {
			return models.JournalEntry{}, models.ProgressRecord{}, fmt.Errorf("%s: advance progress: %w", op, err)
		}
	}

	// both writes land only after advance succeeded
	s.entries = append(s.entries, entry.Clone())
	s.progress = &next

	return entry.Clone(), next.Clone(), nil
}

func (s *MemoryStorage) ListEntries(_ context.Context) ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.JournalEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i].Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStorage) indexOf(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStorage) GetEntry(_ context.Context, id string) (models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.JournalEntry{}, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}
	return s.entries[idx].Clone(), nil
}

func (s *MemoryStorage) UpdateEntry(_ context.Context, id string, update EntryUpdate) (models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.JournalEntry{}, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}

	updated := s.entries[idx].Clone()
	if err := update(&updated); err != nil {
		return models.JournalEntry{}, err
	}
	// identity and creation time are not updatable
	updated.ID = s.entries[idx].ID
	updated.CreatedAt = s.entries[idx].CreatedAt
	s.entries[idx] = updated

	return updated.Clone(), nil
}

func (s *MemoryStorage) DeleteEntry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return nil
}

func (s *MemoryStorage) AttachClassification(_ context.Context, id string, c models.Classification, point models.MoodDataPoint) (models.JournalEntry, models.MoodDataPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.JournalEntry{}, models.MoodDataPoint{}, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}

	updated := s.entries[idx].Clone()
	applyClassification(&updated, c)

	point = s.stamp(point)
	s.entries[idx] = updated
	s.mood = append(s.mood, point)

	return updated.Clone(), point.Clone(), nil
}

func (s *MemoryStorage) stamp(point models.MoodDataPoint) models.MoodDataPoint {
	if point.CreatedAt.IsZero() {
		point.CreatedAt = s.clock()
	}
	return stampPoint(point).Clone()
}

func (s *MemoryStorage) AppendMood(_ context.Context, point models.MoodDataPoint) (models.MoodDataPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	point = s.stamp(point)
	s.mood = append(s.mood, point)
	return point.Clone(), nil
}

func (s *MemoryStorage) ListMood(_ context.Context) ([]models.MoodDataPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MoodDataPoint, 0, len(s.mood))
	for i := len(s.mood) - 1; i >= 0; i-- {
		out = append(out, s.mood[i].Clone())
	}
	models.SortNewestFirst(out)
	return out, nil
}

func (s *MemoryStorage) ListMoodInRange(ctx context.Context, r models.DateRange) ([]models.MoodDataPoint, error) {
	all, err := s.ListMood(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.MoodDataPoint, 0, len(all))
	for _, p := range all {
		if r.Contains(p.Date) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStorage) GetProgress(_ context.Context) (models.ProgressRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.progress == nil {
		return models.ProgressRecord{}, ErrUninitialized
	}
	return s.progress.Clone(), nil
}

// SaveProgress replaces the progress record; its ID and CreatedAt are kept.
func (s *MemoryStorage) SaveProgress(_ context.Context, p models.ProgressRecord) (models.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress == nil {
		return models.ProgressRecord{}, ErrUninitialized
	}
	next := p.Clone()
	next.ID = s.progress.ID
	next.CreatedAt = s.progress.CreatedAt
	s.progress = &next
	return next.Clone(), nil
}

func (s *MemoryStorage) Close() {}

var _ Store = (*MemoryStorage)(nil)
