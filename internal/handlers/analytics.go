package handlers

import (
	"aura_journal/internal/models"
	"aura_journal/internal/usecases"
	"net/http"

	"go.uber.org/zap"
)

// AnalyticsHandler serves the read-only progress, stats, insights and music views.
type AnalyticsHandler struct {
	service *usecases.JournalService
	logger  *zap.Logger
}

func NewAnalyticsHandler(s *usecases.JournalService, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{service: s, logger: logger}
}

func (ah *AnalyticsHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/analytics.go HandleProgress"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, ah.logger, op, r)
		return
	}

	progress, err := ah.service.GetProgress(r.Context())
	if err != nil {
		writeError(w, ah.logger, op, err, nil)
		return
	}
	writeData(w, ah.logger, op, http.StatusOK, progress)
}

func (ah *AnalyticsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/analytics.go HandleStats"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, ah.logger, op, r)
		return
	}

	stats, err := ah.service.GetStats(r.Context())
	if err != nil {
		writeError(w, ah.logger, op, err, nil)
		return
	}
	writeData(w, ah.logger, op, http.StatusOK, stats)
}

func (ah *AnalyticsHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/analytics.go HandleInsights"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, ah.logger, op, r)
		return
	}

	insights, err := ah.service.GetInsights(r.Context())
	if err != nil {
		writeError(w, ah.logger, op, err, nil)
		return
	}
	writeData(w, ah.logger, op, http.StatusOK, insights)
}

func (ah *AnalyticsHandler) HandleMusic(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/analytics.go HandleMusic"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, ah.logger, op, r)
		return
	}

	var mood *models.Mood
	if raw := r.URL.Query().Get("mood"); raw != "" {
		m, err := models.ParseMood(raw)
		if err != nil {
			writeError(w, ah.logger, op, usecases.NewInvalidError(err.Error()), nil)
			return
		}
		mood = &m
	}
	writeData(w, ah.logger, op, http.StatusOK, usecases.MusicRecommendations(mood))
}
