package handlers

import (
	"aura_journal/internal/export"
	"aura_journal/internal/models"
	"aura_journal/internal/usecases"
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const defaultTrendLimit = 30

type MoodHandler struct {
	service *usecases.JournalService
	logger  *zap.Logger
	now     func() time.Time
}

func NewMoodHandler(s *usecases.JournalService, logger *zap.Logger) *MoodHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MoodHandler{service: s, logger: logger, now: time.Now}
}

// parseRange reads startDate/endDate. Both or neither must be present.
func parseRange(r *http.Request) (*models.DateRange, error) {
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, usecases.NewInvalidError("startDate and endDate must be given together")
	}
	return &models.DateRange{Start: start, End: end}, nil
}

// HandleMood serves GET and POST /api/mood-data.
func (mh *MoodHandler) HandleMood(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/mood.go HandleMood"

	switch r.Method {
	case http.MethodGet:
		rng, err := parseRange(r)
		if err != nil {
			writeError(w, mh.logger, op, err, nil)
			return
		}
		points, err := mh.service.ListMood(r.Context(), rng)
		if err != nil {
			writeError(w, mh.logger, op, err, nil)
			return
		}
		writeData(w, mh.logger, op, http.StatusOK, points)

	case http.MethodPost:
		var input usecases.CheckInInput
		if err := decodeBody(w, r, &input); err != nil {
			writeError(w, mh.logger, op, err, nil)
			return
		}
		point, err := mh.service.CheckIn(r.Context(), input)
		if err != nil {
			writeError(w, mh.logger, op, err, nil)
			return
		}
		writeData(w, mh.logger, op, http.StatusCreated, point)

	default:
		methodNotAllowed(w, mh.logger, op, r)
	}
}

func (mh *MoodHandler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/mood.go HandleTrend"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, mh.logger, op, r)
		return
	}

	limit := defaultTrendLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 0 {
			writeError(w, mh.logger, op, usecases.NewInvalidError("limit must be a non-negative integer"), nil)
			return
		}
		limit = l
	}

	rng, err := parseRange(r)
	if err != nil {
		writeError(w, mh.logger, op, err, nil)
		return
	}

	trend, err := mh.service.MoodTrend(r.Context(), limit, rng)
	if err != nil {
		writeError(w, mh.logger, op, err, nil)
		return
	}
	writeData(w, mh.logger, op, http.StatusOK, trend)
}

// HandleCalendar serves the mood history as an iCalendar feed.
func (mh *MoodHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/mood.go HandleCalendar"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, mh.logger, op, r)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		writeError(w, mh.logger, op, err, nil)
		return
	}
	points, err := mh.service.ListMood(r.Context(), rng)
	if err != nil {
		writeError(w, mh.logger, op, err, nil)
		return
	}

	var buf bytes.Buffer
	err = export.WriteMoodCalendar(&buf, points, mh.now())
	if errors.Is(err, export.ErrEmptyCalendar) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(w, mh.logger, op, err, nil)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="mood.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		mh.logger.Warn("failed to write calendar", zap.String("op", op), zap.Error(err))
	}
}
