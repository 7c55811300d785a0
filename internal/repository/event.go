package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/townboard/townboard/internal/model"
)

// ErrEventNotFound is returned when no event exists for the given id.
var ErrEventNotFound = errors.New("event not found")

const eventColumns = "id, title, description, date, time, location, category, organizer, creator_id"

// CreateEvent inserts a new event into the database.
func (r *Repository) CreateEvent(ctx context.Context, event *model.Event) error {
	query := `
		INSERT INTO events (id, title, description, date, time, location, category, organizer, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Time,
		event.Location,
		string(event.Category),
		event.Organizer,
		event.CreatorID,
	)

	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetEvent retrieves an event by its ID.
func (r *Repository) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// ListEvents retrieves all events in a stable listing order.
func (r *Repository) ListEvents(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date, time, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// UpdateEvent replaces an event's mutable fields in a single statement.
// ID and creator_id are never touched.
func (r *Repository) UpdateEvent(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4, time = $5, location = $6, category = $7, organizer = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Time,
		event.Location,
		string(event.Category),
		event.Organizer,
	)

	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	return nil
}

// DeleteEventCascade removes an event and all of its comments in one
// transaction, so readers never observe a half-deleted event.
func (r *Repository) DeleteEventCascade(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event comments: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit event deletion: %w", err)
	}

	return nil
}

// EventExists checks if an event exists.
func (r *Repository) EventExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check event existence: %w", err)
	}

	return exists, nil
}

// scanEvent scans a single row into an Event model.
func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	var category string
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Time,
		&event.Location,
		&category,
		&event.Organizer,
		&event.CreatorID,
	)
	if err != nil {
		return nil, err
	}
	event.Category = model.Category(category)
	return &event, nil
}
