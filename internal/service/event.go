package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/townboard/townboard/internal/metrics"
	"github.com/townboard/townboard/internal/model"
	"github.com/townboard/townboard/internal/policy"
	"github.com/townboard/townboard/internal/repository"
	"github.com/townboard/townboard/internal/search"
)

// EventRepository is the persistence surface the event catalog needs.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]*model.Event, error)
	UpdateEvent(ctx context.Context, event *model.Event) error
	DeleteEventCascade(ctx context.Context, id string) error
}

// EventService owns the event collection: CRUD with ownership enforcement
// plus keyword/field search.
type EventService struct {
	repo    EventRepository
	metrics metrics.Recorder
}

// NewEventService creates a new EventService.
func NewEventService(repo EventRepository, recorder metrics.Recorder) *EventService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &EventService{
		repo:    repo,
		metrics: recorder,
	}
}

// EventInput carries the mutable event fields for create and update.
// ID and creator are assigned server-side and never read from input.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Category    string
	Organizer   string
}

// validate trims the input in place and reports the first offending field.
func (in *EventInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Location = strings.TrimSpace(in.Location)
	in.Category = strings.TrimSpace(in.Category)
	in.Organizer = strings.TrimSpace(in.Organizer)

	if in.Title == "" {
		return requiredField("title")
	}
	if in.Date == "" {
		return requiredField("date")
	}
	if in.Time == "" {
		return requiredField("time")
	}
	if in.Location == "" {
		return requiredField("location")
	}
	if in.Description == "" {
		return requiredField("description")
	}
	if !model.Category(in.Category).IsValid() {
		return invalidField("category", "must be one of Community, Market, Fitness, Art")
	}
	return nil
}

// List returns every event in the stable catalog order.
func (s *EventService) List(ctx context.Context) ([]*model.Event, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Get returns one event by id.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// Search filters the catalog. An empty query returns the full listing.
func (s *EventService) Search(ctx context.Context, query search.Query) ([]*model.Event, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}

	s.metrics.IncSearchPerformed()

	return search.Filter(events, query), nil
}

// Create adds a new event owned by the actor. When the organizer is left
// blank it defaults to the actor's display name.
func (s *EventService) Create(ctx context.Context, actor *model.User, input EventInput) (*model.Event, error) {
	if !policy.CanAct(actor, "", policy.ActionCreate) {
		return nil, ErrNotAuthenticated
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	organizer := input.Organizer
	if organizer == "" {
		organizer = actor.Name
	}

	event := &model.Event{
		ID:          ulid.Make().String(),
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		Category:    model.Category(input.Category),
		Organizer:   organizer,
		CreatorID:   actor.ID,
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.metrics.IncEventCreated()

	return event, nil
}

// Update replaces the mutable fields of an event the actor owns.
// The ownership check runs before validation: a non-owner gets ErrForbidden
// regardless of what they sent.
func (s *EventService) Update(ctx context.Context, actor *model.User, id string, input EventInput) (*model.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanAct(actor, event.CreatorID, policy.ActionUpdate) {
		if actor == nil {
			return nil, ErrNotAuthenticated
		}
		return nil, ErrForbidden
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	updated := &model.Event{
		ID:          event.ID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		Category:    model.Category(input.Category),
		Organizer:   input.Organizer,
		CreatorID:   event.CreatorID,
	}

	if err := s.repo.UpdateEvent(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.metrics.IncEventUpdated()

	return updated, nil
}

// Delete removes an event the actor owns together with all of its comments.
// Deleting an already-absent id reports ErrEventNotFound so retrying
// callers can tell the difference.
func (s *EventService) Delete(ctx context.Context, actor *model.User, id string) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanAct(actor, event.CreatorID, policy.ActionDelete) {
		if actor == nil {
			return ErrNotAuthenticated
		}
		return ErrForbidden
	}

	if err := s.repo.DeleteEventCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	s.metrics.IncEventDeleted()

	return nil
}
