package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/townboard/townboard/internal/activity"
	"github.com/townboard/townboard/internal/auth"
	"github.com/townboard/townboard/internal/handler/dto"
	"github.com/townboard/townboard/internal/middleware"
	"github.com/townboard/townboard/internal/service"
)

// CommentHandler handles HTTP requests for event comments.
type CommentHandler struct {
	svc      *service.CommentService
	activity ActivityPublisher
	logger   *slog.Logger
}

// NewCommentHandler creates a new CommentHandler. The publisher may be nil
// to disable activity feed capture.
func NewCommentHandler(svc *service.CommentService, publisher ActivityPublisher, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		svc:      svc,
		activity: publisher,
		logger:   logger,
	}
}

// List handles GET /api/events/{id}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	comments, err := h.svc.List(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCommentListResponse(comments))
}

// Add handles POST /api/events/{id}/comments.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}

	actor := auth.ActorFromContext(r.Context())

	comment, err := h.svc.Add(r.Context(), actor, eventID, text)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("comment_added",
		"comment_id", comment.ID,
		"event_id", comment.EventID,
	)
	if h.activity != nil && actor != nil {
		h.activity.PublishAsync(activity.EntryPayload{
			Kind:       activity.KindCommentAdded,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			SubjectID:  comment.EventID,
			OccurredAt: time.Now().UnixMilli(),
		})
	}

	writeJSON(w, http.StatusCreated, dto.ToCommentResponse(comment))
}

// Edit handles PUT /api/comments/{id}.
func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}

	actor := auth.ActorFromContext(r.Context())

	comment, err := h.svc.Edit(r.Context(), actor, id, text)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("comment_edited", "comment_id", comment.ID)

	writeJSON(w, http.StatusOK, dto.ToCommentResponse(comment))
}

// Delete handles DELETE /api/comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor := auth.ActorFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("comment_deleted", "comment_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentHandler) decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req dto.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	if err := middleware.ValidateLength(req.Text, middleware.MaxCommentLength); err != nil {
		writeError(w, http.StatusBadRequest, "text: "+err.Error())
		return "", false
	}
	return req.Text, true
}
