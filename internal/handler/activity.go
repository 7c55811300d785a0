package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/townboard/townboard/internal/activity"
	"github.com/townboard/townboard/internal/handler/dto"
	"github.com/townboard/townboard/internal/model"
)

// ActivityPublisher enqueues feed entries without blocking the request.
// A nil publisher disables feed capture.
type ActivityPublisher interface {
	PublishAsync(entry activity.EntryPayload)
}

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityFeed reads persisted activity entries.
type ActivityFeed interface {
	ListRecentActivity(ctx context.Context, limit int) ([]*model.Activity, error)
}

// ActivityHandler serves the town activity feed.
type ActivityHandler struct {
	feed   ActivityFeed
	logger *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(feed ActivityFeed, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		feed:   feed,
		logger: logger,
	}
}

// List handles GET /api/activity. The optional limit query parameter caps
// the number of entries returned, newest first.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	entries, err := h.feed.ListRecentActivity(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToActivityListResponse(entries))
}
