package handlers

import (
	"aura_journal/internal/models"
	"aura_journal/internal/usecases"
	"net/http"

	"go.uber.org/zap"
)

type JournalHandler struct {
	service *usecases.JournalService
	logger  *zap.Logger
}

func NewJournalHandler(s *usecases.JournalService, logger *zap.Logger) *JournalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalHandler{service: s, logger: logger}
}

// HandleEntries serves GET and POST /api/journal-entries.
func (jh *JournalHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jh.HandleGetEntries(w, r)
	case http.MethodPost:
		jh.HandleCreateEntry(w, r)
	default:
		methodNotAllowed(w, jh.logger, "internal/handlers/journal.go HandleEntries", r)
	}
}

type createEntryResponse struct {
	Entry          models.JournalEntry    `json:"entry"`
	Progress       models.ProgressRecord  `json:"progress"`
	Classification *models.Classification `json:"classification,omitempty"`
}

// HandleCreateEntry stores the entry, then classifies it. A failed
// classification answers 502 but still returns the stored entry.
func (jh *JournalHandler) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleCreateEntry"

	var input struct {
		Content string `json:"content"`
		Mood    string `json:"mood"`
	}
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, jh.logger, op, err, nil)
		return
	}

	entry, progress, err := jh.service.CreateEntry(r.Context(), input.Content, input.Mood)
	if err != nil {
		writeError(w, jh.logger, op, err, nil)
		return
	}

	response := createEntryResponse{Entry: entry, Progress: progress}

	classified, c, err := jh.service.ClassifyEntry(r.Context(), entry.ID)
	if err != nil {
		writeError(w, jh.logger, op, err, response)
		return
	}
	response.Entry = classified
	response.Classification = &c

	writeData(w, jh.logger, op, http.StatusCreated, response)
}

func (jh *JournalHandler) HandleGetEntries(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleGetEntries"

	entries, err := jh.service.ListEntries(r.Context())
	if err != nil {
		writeError(w, jh.logger, op, err, nil)
		return
	}
	writeData(w, jh.logger, op, http.StatusOK, entries)
}

// HandleEntry serves GET, PATCH and DELETE /api/journal-entries/{id}.
func (jh *JournalHandler) HandleEntry(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleEntry"
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		entry, err := jh.service.GetEntry(r.Context(), id)
		if err != nil {
			writeError(w, jh.logger, op, err, nil)
			return
		}
		writeData(w, jh.logger, op, http.StatusOK, entry)

	case http.MethodPatch:
		var input struct {
			Content *string `json:"content"`
			Mood    *string `json:"mood"`
		}
		if err := decodeBody(w, r, &input); err != nil {
			writeError(w, jh.logger, op, err, nil)
			return
		}
		entry, err := jh.service.EditEntry(r.Context(), id, input.Content, input.Mood)
		if err != nil {
			writeError(w, jh.logger, op, err, nil)
			return
		}
		writeData(w, jh.logger, op, http.StatusOK, entry)

	case http.MethodDelete:
		if err := jh.service.DeleteEntry(r.Context(), id); err != nil {
			writeError(w, jh.logger, op, err, nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, jh.logger, op, r)
	}
}

// HandleClassify serves POST /api/journal-entries/{id}/classification, the
// retry path after an upstream failure.
func (jh *JournalHandler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleClassify"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, jh.logger, op, r)
		return
	}

	entry, c, err := jh.service.ClassifyEntry(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, jh.logger, op, err, nil)
		return
	}
	writeData(w, jh.logger, op, http.StatusOK, map[string]any{
		"entry":          entry,
		"classification": c,
	})
}
