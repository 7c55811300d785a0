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
	"github.com/townboard/townboard/internal/model"
	"github.com/townboard/townboard/internal/search"
	"github.com/townboard/townboard/internal/service"
)

// EventHandler handles HTTP requests for the event catalog.
type EventHandler struct {
	svc      *service.EventService
	activity ActivityPublisher
	logger   *slog.Logger
}

// NewEventHandler creates a new EventHandler. The publisher may be nil to
// disable activity feed capture.
func NewEventHandler(svc *service.EventService, publisher ActivityPublisher, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		svc:      svc,
		activity: publisher,
		logger:   logger,
	}
}

func (h *EventHandler) publishActivity(kind string, actor *model.User, subjectID, title string) {
	if h.activity == nil || actor == nil {
		return
	}
	h.activity.PublishAsync(activity.EntryPayload{
		Kind:       kind,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		SubjectID:  subjectID,
		Title:      activity.TruncateTitle(title),
		OccurredAt: time.Now().UnixMilli(),
	})
}

// List handles GET /api/events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEventListResponse(events))
}

// Search handles GET /api/events/search.
// All query fields are optional; an empty query is the full listing.
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := search.Query{
		Keyword:  params.Get("keyword"),
		Category: params.Get("category"),
		Date:     params.Get("date"),
		Location: params.Get("location"),
	}

	events, err := h.svc.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEventListResponse(events))
}

// Get handles GET /api/events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToEventResponse(event))
}

// Create handles POST /api/events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeEventInput(w, r)
	if !ok {
		return
	}

	actor := auth.ActorFromContext(r.Context())

	event, err := h.svc.Create(r.Context(), actor, input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("event_created",
		"event_id", event.ID,
		"creator_id", event.CreatorID,
	)
	h.publishActivity(activity.KindEventCreated, actor, event.ID, event.Title)

	writeJSON(w, http.StatusCreated, dto.ToEventResponse(event))
}

// Update handles PUT /api/events/{id}.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	input, ok := h.decodeEventInput(w, r)
	if !ok {
		return
	}

	actor := auth.ActorFromContext(r.Context())

	event, err := h.svc.Update(r.Context(), actor, id, input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("event_updated", "event_id", event.ID)
	h.publishActivity(activity.KindEventUpdated, actor, event.ID, event.Title)

	writeJSON(w, http.StatusOK, dto.ToEventResponse(event))
}

// Delete handles DELETE /api/events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor := auth.ActorFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("event_deleted", "event_id", id)
	h.publishActivity(activity.KindEventDeleted, actor, id, "")

	w.WriteHeader(http.StatusNoContent)
}

// decodeEventInput decodes and length-checks an event payload. On failure
// it writes the error response and reports false.
func (h *EventHandler) decodeEventInput(w http.ResponseWriter, r *http.Request) (service.EventInput, bool) {
	var req dto.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return service.EventInput{}, false
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"title", req.Title, middleware.MaxTitleLength},
		{"description", req.Description, middleware.MaxDescriptionLength},
		{"location", req.Location, middleware.MaxLocationLength},
		{"organizer", req.Organizer, middleware.MaxOrganizerLength},
	}
	for _, l := range lengths {
		if err := middleware.ValidateLength(l.value, l.max); err != nil {
			writeError(w, http.StatusBadRequest, l.field+": "+err.Error())
			return service.EventInput{}, false
		}
	}

	return service.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		Organizer:   req.Organizer,
	}, true
}
