package http

import (
	"encoding/json"
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

// baseResponse is the envelope returned on every failed request. Successful
// requests return the record or receipt directly.
type baseResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message,omitempty"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps a domain error to its HTTP status. Infrastructure
// failures become a generic 500 with no internal detail leaked.
func writeError(w http.ResponseWriter, err error) {
	resp := baseResponse{Success: false}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		resp.Message = err.Error()
		resp.ValidationErrors = domain.FieldsOf(err)
		logger.Warn("validation error", "message", resp.Message)
		writeJSON(w, http.StatusBadRequest, resp)
	case domain.KindInvalidOperation:
		resp.Message = err.Error()
		logger.Warn("invalid operation", "message", resp.Message)
		writeJSON(w, http.StatusBadRequest, resp)
	case domain.KindNotFound:
		resp.Message = err.Error()
		logger.Warn("resource not found", "message", resp.Message)
		writeJSON(w, http.StatusNotFound, resp)
	case domain.KindConflict:
		resp.Message = err.Error()
		logger.Warn("conflict", "message", resp.Message)
		writeJSON(w, http.StatusConflict, resp)
	default:
		resp.Message = "An unexpected error occurred."
		logger.Error("unexpected error", "error", err)
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}
