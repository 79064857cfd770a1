package usecases

import (
	"aura_journal/internal/models"
	"aura_journal/internal/storage"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Classifier is the external sentiment service. Implementations must honor ctx.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
}

// JournalService is the operation surface the HTTP layer maps onto routes.
//
// Writes that touch the progress record or an entry are serialized through
// writeMu. Reads go straight to the store and work on its snapshots.
type JournalService struct {
	store           storage.Store
	classifier      Classifier
	insights        *InsightSynthesizer
	logger          *zap.Logger
	now             func() time.Time
	location        *time.Location
	classifyTimeout time.Duration

	writeMu sync.Mutex
}

type Option func(*JournalService)

func WithClock(now func() time.Time) Option {
	return func(s *JournalService) { s.now = now }
}

// WithLocation sets the time zone that decides which calendar day an entry belongs to.
func WithLocation(loc *time.Location) Option {
	return func(s *JournalService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithInsights(in *InsightSynthesizer) Option {
	return func(s *JournalService) {
		if in != nil {
			s.insights = in
		}
	}
}

func WithClassifyTimeout(d time.Duration) Option {
	return func(s *JournalService) { s.classifyTimeout = d }
}

func NewJournalService(store storage.Store, classifier Classifier, logger *zap.Logger, opts ...Option) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &JournalService{
		store:      store,
		classifier: classifier,
		insights:   NewInsightSynthesizer(nil, nil),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		location:   time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JournalService) dayOf(t time.Time) string {
	return models.DayOf(t.In(s.location))
}

func (s *JournalService) today() string {
	return s.dayOf(s.now())
}

// CreateEntry persists a new entry and advances streak, total and badges in the
// same unit of work. Classification is a separate step.
func (s *JournalService) CreateEntry(ctx context.Context, content, mood string) (models.JournalEntry, models.ProgressRecord, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.JournalEntry{}, models.ProgressRecord{}, NewInvalidError("content is required")
	}
	m, err := models.ParseMood(mood)
	if err != nil {
		return models.JournalEntry{}, models.ProgressRecord{}, NewInvalidError(err.Error())
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := s.now()
	today := s.dayOf(now)

	entry, progress, err := s.store.CreateEntry(ctx, models.JournalEntry{
		Content:   content,
		Mood:      m,
		CreatedAt: now,
	}, func(current models.ProgressRecord) (models.ProgressRecord, error) {
		return AdvanceProgress(current, today, now)
	})
	if err != nil {
		s.logger.Error("create entry failed", zap.Error(err))
		return models.JournalEntry{}, models.ProgressRecord{}, fromStore(err, "progress record not found")
	}

	s.logger.Info("journal entry created",
		zap.String("entry_id", entry.ID),
		zap.String("mood", string(entry.Mood)),
		zap.Int("streak", progress.Streak),
		zap.Int("total_entries", progress.TotalEntries),
		zap.Int("badges", len(progress.Badges)))

	return entry, progress, nil
}

// ClassifyEntry asks the classifier about a stored entry and attaches the result.
// It can be retried after an upstream failure; progress is never touched here.
func (s *JournalService) ClassifyEntry(ctx context.Context, entryID string) (models.JournalEntry, models.Classification, error) {
	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return models.JournalEntry{}, models.Classification{}, fromStore(err, "journal entry not found")
	}
	if entry.Classified() {
		return models.JournalEntry{}, models.Classification{}, NewConflictError("journal entry is already classified")
	}
	if s.classifier == nil {
		return entry, models.Classification{}, NewUpstreamError("sentiment classifier is not configured", nil)
	}

	callCtx := ctx
	if s.classifyTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.classifyTimeout)
		defer cancel()
	}

	started := s.now()
	c, err := s.classifier.Classify(callCtx, entry.Content)
	if err != nil {
		s.logger.Warn("sentiment classification failed",
			zap.String("entry_id", entryID),
			zap.Duration("elapsed", s.now().Sub(started)),
			zap.Error(err))
		return entry, models.Classification{}, NewUpstreamError("sentiment classification failed", err)
	}

	updated, err := s.AttachClassification(ctx, entryID, c)
	if err != nil {
		return entry, c, err
	}
	return updated, c, nil
}

// AttachClassification merges classifier output into an entry and records the
// derived mood point, dated on the day the entry was written.
func (s *JournalService) AttachClassification(ctx context.Context, entryID string, c models.Classification) (models.JournalEntry, error) {
	if !c.Mood.Valid() {
		return models.JournalEntry{}, NewInvalidError(fmt.Sprintf("unknown mood %q", c.Mood))
	}
	if c.SentimentScore < -1 || c.SentimentScore > 1 {
		return models.JournalEntry{}, NewInvalidError("sentiment score must be within [-1, 1]")
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return models.JournalEntry{}, NewInvalidError("confidence must be within [0, 1]")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return models.JournalEntry{}, fromStore(err, "journal entry not found")
	}
	if entry.Classified() {
		return models.JournalEntry{}, NewConflictError("journal entry is already classified")
	}

	note := fmt.Sprintf("AI detected mood: %s", c.Mood)
	id := entry.ID
	point := models.MoodDataPoint{
		Date:      s.dayOf(entry.CreatedAt),
		Mood:      c.Mood,
		Intensity: IntensityFromSentiment(c.SentimentScore),
		Notes:     &note,
		EntryID:   &id,
		CreatedAt: s.now(),
	}

	updated, point, err := s.store.AttachClassification(ctx, entryID, c, point)
	if err != nil {
		s.logger.Error("attach classification failed", zap.String("entry_id", entryID), zap.Error(err))
		return models.JournalEntry{}, fromStore(err, "journal entry not found")
	}

	s.logger.Info("classification attached",
		zap.String("entry_id", entryID),
		zap.String("mood", string(c.Mood)),
		zap.Float64("sentiment_score", c.SentimentScore),
		zap.Int("intensity", point.Intensity))

	return updated, nil
}

func (s *JournalService) ListEntries(ctx context.Context) ([]models.JournalEntry, error) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, fromStore(err, "journal entries not found")
	}
	return entries, nil
}

func (s *JournalService) GetEntry(ctx context.Context, id string) (models.JournalEntry, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return models.JournalEntry{}, fromStore(err, "journal entry not found")
	}
	return entry, nil
}

// EditEntry rewrites the content and mood of an entry that has not been
// classified yet. Nil arguments leave the field as it is.
func (s *JournalService) EditEntry(ctx context.Context, id string, content, mood *string) (models.JournalEntry, error) {
	var m models.Mood
	if mood != nil {
		parsed, err := models.ParseMood(*mood)
		if err != nil {
			return models.JournalEntry{}, NewInvalidError(err.Error())
		}
		m = parsed
	}
	var text string
	if content != nil {
		text = strings.TrimSpace(*content)
		if text == "" {
			return models.JournalEntry{}, NewInvalidError("content is required")
		}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	updated, err := s.store.UpdateEntry(ctx, id, func(e *models.JournalEntry) error {
		if e.Classified() {
			return NewConflictError("classified entries can not be edited")
		}
		if content != nil {
			e.Content = text
		}
		if mood != nil {
			e.Mood = m
		}
		return nil
	})
	if err != nil {
		return models.JournalEntry{}, fromStore(err, "journal entry not found")
	}
	s.logger.Info("journal entry edited", zap.String("entry_id", id))
	return updated, nil
}

// DeleteEntry removes an entry. Progress and derived mood points stay as they are.
func (s *JournalService) DeleteEntry(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.DeleteEntry(ctx, id); err != nil {
		return fromStore(err, "journal entry not found")
	}
	s.logger.Info("journal entry deleted", zap.String("entry_id", id))
	return nil
}

type CheckInInput struct {
	Date      string  `json:"date"`
	Mood      string  `json:"mood"`
	Intensity int     `json:"intensity"`
	Notes     *string `json:"notes"`
	EntryID   *string `json:"entryId"`
}

// CheckIn records a manual mood point. It does not count as a journal entry.
func (s *JournalService) CheckIn(ctx context.Context, in CheckInInput) (models.MoodDataPoint, error) {
	m, err := models.ParseMood(in.Mood)
	if err != nil {
		return models.MoodDataPoint{}, NewInvalidError(err.Error())
	}
	if !validIntensity(in.Intensity) {
		return models.MoodDataPoint{}, NewInvalidError(fmt.Sprintf("intensity must be within [%d, %d]", models.MinIntensity, models.MaxIntensity))
	}
	date := in.Date
	if date == "" {
		date = s.today()
	} else if _, err := models.ParseDate(date); err != nil {
		return models.MoodDataPoint{}, NewInvalidError(err.Error())
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	point, err := s.store.AppendMood(ctx, models.MoodDataPoint{
		Date:      date,
		Mood:      m,
		Intensity: in.Intensity,
		Notes:     in.Notes,
		EntryID:   in.EntryID,
		CreatedAt: s.now(),
	})
	if err != nil {
		return models.MoodDataPoint{}, fromStore(err, "mood data not found")
	}
	return point, nil
}

// ListMood returns points newest-first, restricted to r when given.
func (s *JournalService) ListMood(ctx context.Context, r *models.DateRange) ([]models.MoodDataPoint, error) {
	if r == nil {
		points, err := s.store.ListMood(ctx)
		return points, fromStore(err, "mood data not found")
	}
	if err := r.Validate(); err != nil {
		return nil, NewInvalidError(err.Error())
	}
	points, err := s.store.ListMoodInRange(ctx, *r)
	return points, fromStore(err, "mood data not found")
}

func (s *JournalService) MoodTrend(ctx context.Context, limit int, r *models.DateRange) ([]models.TrendPoint, error) {
	if r != nil {
		if err := r.Validate(); err != nil {
			return nil, NewInvalidError(err.Error())
		}
	}
	points, err := s.store.ListMood(ctx)
	if err != nil {
		return nil, fromStore(err, "mood data not found")
	}
	return NewMoodAggregator(points).Trend(limit, r), nil
}

// MoodEntriesInLastNDays counts mood points dated within [ref-n, ref]; ref defaults to today.
func (s *JournalService) MoodEntriesInLastNDays(ctx context.Context, n int, ref string) (int, error) {
	if ref == "" {
		ref = s.today()
	}
	points, err := s.store.ListMood(ctx)
	if err != nil {
		return 0, fromStore(err, "mood data not found")
	}
	return NewMoodAggregator(points).EntriesInLastNDays(n, ref)
}

func (s *JournalService) GetProgress(ctx context.Context) (models.ProgressRecord, error) {
	p, err := s.store.GetProgress(ctx)
	if err != nil {
		return models.ProgressRecord{}, fromStore(err, "progress record not found")
	}
	return p, nil
}

func (s *JournalService) GetStats(ctx context.Context) (Stats, error) {
	points, err := s.store.ListMood(ctx)
	if err != nil {
		return Stats{}, fromStore(err, "mood data not found")
	}
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return Stats{}, fromStore(err, "journal entries not found")
	}

	days := make([]string, 0, len(entries))
	for _, e := range entries {
		days = append(days, s.dayOf(e.CreatedAt))
	}
	return buildStats(points, entries, days, s.today())
}

func (s *JournalService) GetInsights(ctx context.Context) ([]string, error) {
	points, err := s.store.ListMood(ctx)
	if err != nil {
		return nil, fromStore(err, "mood data not found")
	}
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, fromStore(err, "journal entries not found")
	}
	return s.insights.Synthesize(points, entries), nil
}
