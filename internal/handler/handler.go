// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/townboard/townboard/internal/handler/dto"
	"github.com/townboard/townboard/internal/service"
)

// NotFound handles 404 responses for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response is already committed; nothing useful left to do.
		_ = err
	}
}

// writeError writes a JSON error body of the form {"error": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}

// writeServiceError maps service errors to HTTP responses. Each handler
// funnels its failures through here so the status mapping lives in one
// place.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var ve *service.ValidationError

	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, service.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "you do not own this resource")
	case errors.Is(err, service.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, service.ErrCommentNotFound):
		writeError(w, http.StatusNotFound, "comment not found")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email is already registered")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}
