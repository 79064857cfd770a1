package handlers

import (
	"aura_journal/internal/usecases"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func NewRouter(s *usecases.JournalService, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	journal := NewJournalHandler(s, logger)
	mood := NewMoodHandler(s, logger)
	analytics := NewAnalyticsHandler(s, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/journal-entries", journal.HandleEntries)
	mux.HandleFunc("/api/journal-entries/{id}", journal.HandleEntry)
	mux.HandleFunc("/api/journal-entries/{id}/classification", journal.HandleClassify)

	mux.HandleFunc("/api/mood-data", mood.HandleMood)
	mux.HandleFunc("/api/mood-data/trend", mood.HandleTrend)
	mux.HandleFunc("/api/mood-data/calendar.ics", mood.HandleCalendar)

	mux.HandleFunc("/api/user/progress", analytics.HandleProgress)
	mux.HandleFunc("/api/user/stats", analytics.HandleStats)
	mux.HandleFunc("/api/analytics/insights", analytics.HandleInsights)
	mux.HandleFunc("/api/music/recommendations", analytics.HandleMusic)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, "health", http.StatusOK, map[string]string{"status": "ok"})
	})

	return logRequests(mux, logger)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}
