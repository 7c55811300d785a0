package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/townboard/townboard/internal/model"
)

// ErrCommentNotFound is returned when no comment exists for the given id.
var ErrCommentNotFound = errors.New("comment not found")

const commentColumns = "id, event_id, user_id, user_name, text, created_at"

// CreateComment inserts a new comment into the database.
func (r *Repository) CreateComment(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (id, event_id, user_id, user_name, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.EventID,
		comment.UserID,
		comment.UserName,
		comment.Text,
		comment.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetComment retrieves a comment by its ID.
func (r *Repository) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// ListCommentsForEvent retrieves an event's comments in ascending creation
// order. Returns an empty slice when the event has no comments.
func (r *Repository) ListCommentsForEvent(ctx context.Context, eventID string) ([]*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE event_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// UpdateCommentText replaces a comment's text.
func (r *Repository) UpdateCommentText(ctx context.Context, id, text string) error {
	query := `UPDATE comments SET text = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, text)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// DeleteComment removes a comment.
func (r *Repository) DeleteComment(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// scanComment scans a single row into a Comment model.
func scanComment(row pgx.Row) (*model.Comment, error) {
	var comment model.Comment
	err := row.Scan(
		&comment.ID,
		&comment.EventID,
		&comment.UserID,
		&comment.UserName,
		&comment.Text,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
