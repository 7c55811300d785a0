package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/townboard/townboard/internal/metrics"
	"github.com/townboard/townboard/internal/model"
	"github.com/townboard/townboard/internal/policy"
	"github.com/townboard/townboard/internal/repository"
)

// CommentRepository is the persistence surface the comment ledger needs.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	ListCommentsForEvent(ctx context.Context, eventID string) ([]*model.Comment, error)
	UpdateCommentText(ctx context.Context, id, text string) error
	DeleteComment(ctx context.Context, id string) error
}

// EventChecker verifies that a comment's target event exists.
type EventChecker interface {
	EventExists(ctx context.Context, id string) (bool, error)
}

// CommentService owns comments scoped to events.
type CommentService struct {
	repo    CommentRepository
	events  EventChecker
	metrics metrics.Recorder
}

// NewCommentService creates a new CommentService.
func NewCommentService(repo CommentRepository, events EventChecker, recorder metrics.Recorder) *CommentService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CommentService{
		repo:    repo,
		events:  events,
		metrics: recorder,
	}
}

// List returns an event's comments in ascending creation order. An event
// without comments yields an empty slice; an unknown event yields
// ErrEventNotFound.
func (s *CommentService) List(ctx context.Context, eventID string) ([]*model.Comment, error) {
	exists, err := s.events.EventExists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	comments, err := s.repo.ListCommentsForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Add posts a comment on an event. The author's display name is captured
// on the comment so clients render it without another lookup.
func (s *CommentService) Add(ctx context.Context, actor *model.User, eventID, text string) (*model.Comment, error) {
	if !policy.CanAct(actor, "", policy.ActionCreate) {
		return nil, ErrNotAuthenticated
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, requiredField("text")
	}

	exists, err := s.events.EventExists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	comment := &model.Comment{
		ID:        ulid.Make().String(),
		EventID:   eventID,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.metrics.IncCommentCreated()

	return comment, nil
}

// Edit replaces a comment's text. Only the author may edit, and the check
// runs before validation so a non-owner sees ErrForbidden even for bad
// input. A failed edit leaves the stored text untouched.
func (s *CommentService) Edit(ctx context.Context, actor *model.User, commentID, text string) (*model.Comment, error) {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if !policy.CanAct(actor, comment.UserID, policy.ActionUpdate) {
		if actor == nil {
			return nil, ErrNotAuthenticated
		}
		return nil, ErrForbidden
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, requiredField("text")
	}

	if err := s.repo.UpdateCommentText(ctx, commentID, text); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	comment.Text = text
	return comment, nil
}

// Delete removes a comment the actor owns.
func (s *CommentService) Delete(ctx context.Context, actor *model.User, commentID string) error {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return err
	}

	if !policy.CanAct(actor, comment.UserID, policy.ActionDelete) {
		if actor == nil {
			return ErrNotAuthenticated
		}
		return ErrForbidden
	}

	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}

	return nil
}

func (s *CommentService) get(ctx context.Context, commentID string) (*model.Comment, error) {
	comment, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}
