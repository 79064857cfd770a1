package handlers

import (
	"aura_journal/internal/models"
	"aura_journal/internal/storage"
	"aura_journal/internal/usecases"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type switchableClassifier struct {
	mu  sync.Mutex
	err error
}

func (c *switchableClassifier) Classify(_ context.Context, _ string) (models.Classification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return models.Classification{}, c.err
	}
	return models.Classification{
		Mood:           models.MoodHappy,
		SentimentScore: 0.8,
		Confidence:     0.9,
		Insights:       models.AIInsights{Emotions: []string{"joy"}},
	}, nil
}

func (c *switchableClassifier) set(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, store storage.Store, classifier usecases.Classifier) *httptest.Server {
	t.Helper()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := usecases.NewJournalService(store, classifier, zap.NewNop(),
		usecases.WithClock(func() time.Time { return now }))
	srv := httptest.NewServer(NewRouter(svc, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func TestCreateEntry_ClassifiesAndReturnsProgress(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage(), &switchableClassifier{})

	resp, env := do(t, http.MethodPost, srv.URL+"/api/journal-entries",
		`{"content":"Had a great day at the park","mood":"happy"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", env.Status)

	var data createEntryResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Entry.ID)
	require.NotNil(t, data.Entry.SentimentScore)
	assert.Equal(t, 0.8, *data.Entry.SentimentScore)
	assert.Equal(t, 1, data.Progress.TotalEntries)
	assert.Contains(t, data.Progress.Badges, models.BadgeFirstEntry)
	require.NotNil(t, data.Classification)

	resp, env = do(t, http.MethodGet, srv.URL+"/api/mood-data", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var points []models.MoodDataPoint
	require.NoError(t, json.Unmarshal(env.Data, &points))
	require.Len(t, points, 1)
	assert.Equal(t, 5, points[0].Intensity)
	assert.Equal(t, "2024-03-15", points[0].Date)
}

func TestCreateEntry_UpstreamFailureThenRetry(t *testing.T) {
	classifier := &switchableClassifier{err: errors.New("model unavailable")}
	srv := newTestServer(t, storage.NewMemoryStorage(), classifier)

	resp, env := do(t, http.MethodPost, srv.URL+"/api/journal-entries", `{"content":"Rough day","mood":"sad"}`)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, string(usecases.ErrorUpstream), env.Code)

	var data createEntryResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Entry.ID)
	assert.Nil(t, data.Entry.SentimentScore)
	assert.Equal(t, 1, data.Progress.TotalEntries)

	classifier.set(nil)
	resp, _ = do(t, http.MethodPost, srv.URL+"/api/journal-entries/"+data.Entry.ID+"/classification", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/journal-entries/"+data.Entry.ID+"/classification", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env = do(t, http.MethodGet, srv.URL+"/api/user/progress", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var progress models.ProgressRecord
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Equal(t, 1, progress.TotalEntries)
	assert.Equal(t, 1, progress.Streak)
}

func TestCreateEntry_Validation(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage(), &switchableClassifier{})

	for _, body := range []string{`{"content":"","mood":"happy"}`, `{"content":"x","mood":"furious"}`, `not json`} {
		resp, env := do(t, http.MethodPost, srv.URL+"/api/journal-entries", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, string(usecases.ErrorInvalid), env.Code, body)
	}
}

func TestEntryLifecycle(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage(), &switchableClassifier{err: errors.New("offline")})

	_, env := do(t, http.MethodPost, srv.URL+"/api/journal-entries", `{"content":"draft","mood":"neutral"}`)
	var created createEntryResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	url := srv.URL + "/api/journal-entries/" + created.Entry.ID

	resp, env := do(t, http.MethodPatch, url, `{"content":"final","mood":"calm"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edited models.JournalEntry
	require.NoError(t, json.Unmarshal(env.Data, &edited))
	assert.Equal(t, "final", edited.Content)
	assert.Equal(t, models.MoodCalm, edited.Mood)

	resp, _ = do(t, http.MethodGet, url, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, url, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, env = do(t, http.MethodGet, url, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, string(usecases.ErrorNotFound), env.Code)

	resp, _ = do(t, http.MethodPut, url, `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMoodData(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage(), nil)

	for _, body := range []string{
		`{"date":"2024-03-10","mood":"calm","intensity":3}`,
		`{"date":"2024-03-12","mood":"happy","intensity":5,"notes":"sunny"}`,
		`{"mood":"sad","intensity":2}`,
	} {
		resp, _ := do(t, http.MethodPost, srv.URL+"/api/mood-data", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	}

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/mood-data", `{"date":"2024-03-12","mood":"happy","intensity":9}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env := do(t, http.MethodGet, srv.URL+"/api/mood-data?startDate=2024-03-11&endDate=2024-03-15", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var points []models.MoodDataPoint
	require.NoError(t, json.Unmarshal(env.Data, &points))
	require.Len(t, points, 2)
	assert.Equal(t, "2024-03-15", points[0].Date)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/mood-data?startDate=2024-03-11", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env = do(t, http.MethodGet, srv.URL+"/api/mood-data/trend?limit=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trend []models.TrendPoint
	require.NoError(t, json.Unmarshal(env.Data, &trend))
	assert.Equal(t, []models.TrendPoint{{Date: "2024-03-12", Intensity: 5}, {Date: "2024-03-15", Intensity: 2}}, trend)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/mood-data/trend?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMoodCalendarFeed(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage(), nil)
	resp, _ := do(t, http.MethodPost, srv.URL+"/api/mood-data", `{"date":"2024-03-10","mood":"calm","intensity":3}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err := http.Get(srv.URL + "/api/mood-data/calendar.ics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/calendar"))
	assert.Contains(t, string(body), "DTSTART;VALUE=DATE:20240310")
}

func TestMoodCalendarFeed_NoPoints(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage(), nil)

	resp, err := http.Get(srv.URL + "/api/mood-data/calendar.ics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp2, _ := do(t, http.MethodPost, srv.URL+"/api/mood-data", `{"date":"2024-03-10","mood":"calm","intensity":3}`)
	require.Equal(t, http.StatusCreated, resp2.StatusCode)

	// a range that misses every point is empty as well
	resp3, err := http.Get(srv.URL + "/api/mood-data/calendar.ics?startDate=2024-04-01&endDate=2024-04-30")
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp3.StatusCode)
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage(), &switchableClassifier{})

	resp, env := do(t, http.MethodGet, srv.URL+"/api/analytics/insights", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var insights []string
	require.NoError(t, json.Unmarshal(env.Data, &insights))
	assert.Equal(t, usecases.DefaultOnboardingInsights, insights)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/journal-entries", `{"content":"good","mood":"happy"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env = do(t, http.MethodGet, srv.URL+"/api/user/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats usecases.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 1, stats.EntriesThisWeek)
	assert.Equal(t, 100, stats.PositivePercentage)
	assert.Equal(t, models.MoodHappy, stats.MostFrequentMood)

	resp, env = do(t, http.MethodGet, srv.URL+"/api/music/recommendations?mood=calm", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tracks []models.MusicRecommendation
	require.NoError(t, json.Unmarshal(env.Data, &tracks))
	require.NotEmpty(t, tracks)
	for _, tr := range tracks {
		assert.Equal(t, models.MoodCalm, tr.Mood)
	}

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/music/recommendations?mood=bored", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/user/stats", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestUninitializedStoreIsServerError(t *testing.T) {
	srv := newTestServer(t, &storage.MemoryStorage{}, nil)

	resp, env := do(t, http.MethodGet, srv.URL+"/api/user/progress", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, string(usecases.ErrorUninitialized), env.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStorage(), nil)
	resp, env := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", env.Status)
}
