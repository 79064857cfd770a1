package handlers

import (
	"aura_journal/internal/usecases"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func statusFor(err error) int {
	se, ok := usecases.AsServiceError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch se.Code {
	case usecases.ErrorInvalid:
		return http.StatusBadRequest
	case usecases.ErrorNotFound:
		return http.StatusNotFound
	case usecases.ErrorConflict:
		return http.StatusConflict
	case usecases.ErrorUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, op string, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Warn("failed to encode response", zap.String("op", op), zap.Error(err))
	}
}

func writeData(w http.ResponseWriter, logger *zap.Logger, op string, status int, data any) {
	writeJSON(w, logger, op, status, map[string]any{
		"status": "success",
		"data":   data,
	})
}

// writeError maps a service error onto its status code. data, when not nil,
// carries whatever was persisted before the failure.
func writeError(w http.ResponseWriter, logger *zap.Logger, op string, err error, data any) {
	status := statusFor(err)

	code := "internal"
	message := "Internal error"
	if se, ok := usecases.AsServiceError(err); ok {
		code = string(se.Code)
		message = se.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("op", op), zap.Int("status", status), zap.Error(err))
	} else {
		logger.Info("request rejected", zap.String("op", op), zap.Int("status", status), zap.Error(err))
	}

	response := map[string]any{
		"status":  "error",
		"code":    code,
		"message": message,
	}
	if data != nil {
		response["data"] = data
	}
	writeJSON(w, logger, op, status, response)
}

func methodNotAllowed(w http.ResponseWriter, logger *zap.Logger, op string, r *http.Request) {
	logger.Info("method not allowed", zap.String("op", op), zap.String("method", r.Method))
	http.Error(w, "Method not allowed.", http.StatusMethodNotAllowed)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return usecases.NewInvalidError("Couldnt decode json. Wrong request.")
	}
	if dec.More() {
		return usecases.NewInvalidError("request body must contain a single JSON object")
	}
	return nil
}
