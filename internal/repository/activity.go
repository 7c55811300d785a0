package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/townboard/townboard/internal/model"
)

const activityColumns = "id, stream_id, kind, actor_id, actor_name, subject_id, title, occurred_at"

// BulkInsertActivities inserts feed entries in a single batch round trip.
// Entries whose stream id is already present are skipped, so redelivered
// stream messages stay idempotent.
func (r *Repository) BulkInsertActivities(ctx context.Context, entries []*model.Activity) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO activities (id, stream_id, kind, actor_id, actor_name, subject_id, title, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (stream_id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(query,
			entry.ID,
			entry.StreamID,
			entry.Kind,
			entry.ActorID,
			entry.ActorName,
			entry.SubjectID,
			entry.Title,
			entry.OccurredAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert activity: %w", err)
		}
	}

	return nil
}

// ListRecentActivity returns the newest feed entries first.
func (r *Repository) ListRecentActivity(ctx context.Context, limit int) ([]*model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY occurred_at DESC, id DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := make([]*model.Activity, 0)
	for rows.Next() {
		var entry model.Activity
		if err := rows.Scan(
			&entry.ID,
			&entry.StreamID,
			&entry.Kind,
			&entry.ActorID,
			&entry.ActorName,
			&entry.SubjectID,
			&entry.Title,
			&entry.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity rows: %w", err)
	}

	return entries, nil
}
