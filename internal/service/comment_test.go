package service

import (
	"context"
	"errors"
	"testing"

	"github.com/townboard/townboard/internal/testutil"
)

func newCommentFixture(t *testing.T) (*CommentService, *EventService, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	return NewCommentService(store, store, nil), NewEventService(store, nil), store
}

func TestCommentService_AddAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	comments, events, _ := newCommentFixture(t)
	owner := testutil.NewTestUser(t, "u1", "Owner", "owner@example.com")
	commenter := testutil.NewTestUser(t, "u2", "Jane Doe", "jane@example.com")

	event, err := events.Create(ctx, owner, validEventInput())
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	first, err := comments.Add(ctx, commenter, event.ID, "  Looking forward to it!  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.Text != "Looking forward to it!" {
		t.Errorf("expected trimmed text, got %q", first.Text)
	}
	if first.UserName != "Jane Doe" {
		t.Errorf("expected author name on comment, got %q", first.UserName)
	}
	if first.EventID != event.ID {
		t.Errorf("expected event %q, got %q", event.ID, first.EventID)
	}

	second, err := comments.Add(ctx, owner, event.ID, "Starts at nine sharp.")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	listed, err := comments.List(ctx, event.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(listed))
	}
	// Oldest first.
	if listed[0].ID != first.ID || listed[1].ID != second.ID {
		t.Fatalf("comments out of order: %q, %q", listed[0].ID, listed[1].ID)
	}
}

func TestCommentService_List_EmptyAndUnknownEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	comments, events, _ := newCommentFixture(t)
	owner := testutil.NewTestUser(t, "u1", "Owner", "owner@example.com")

	event, err := events.Create(ctx, owner, validEventInput())
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	listed, err := comments.List(ctx, event.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed == nil || len(listed) != 0 {
		t.Fatalf("expected empty slice, got %v", listed)
	}

	if _, err := comments.List(ctx, "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestCommentService_Add_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	comments, events, _ := newCommentFixture(t)
	owner := testutil.NewTestUser(t, "u1", "Owner", "owner@example.com")

	event, err := events.Create(ctx, owner, validEventInput())
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if _, err := comments.Add(ctx, nil, event.ID, "hi"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	_, err = comments.Add(ctx, owner, event.ID, "   ")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "text" {
		t.Fatalf("expected text validation error, got %v", err)
	}

	if _, err := comments.Add(ctx, owner, "missing", "hi"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestCommentService_Edit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	comments, events, _ := newCommentFixture(t)
	owner := testutil.NewTestUser(t, "u1", "Owner", "owner@example.com")
	author := testutil.NewTestUser(t, "u2", "Author", "author@example.com")

	event, err := events.Create(ctx, owner, validEventInput())
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	comment, err := comments.Add(ctx, author, event.ID, "Original text")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	edited, err := comments.Edit(ctx, author, comment.ID, "Edited text")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Text != "Edited text" {
		t.Errorf("unexpected text %q", edited.Text)
	}

	// A whitespace-only edit is rejected and leaves the stored text alone.
	_, err = comments.Edit(ctx, author, comment.ID, "   ")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "text" {
		t.Fatalf("expected text validation error, got %v", err)
	}
	listed, err := comments.List(ctx, event.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed[0].Text != "Edited text" {
		t.Fatalf("rejected edit changed stored text to %q", listed[0].Text)
	}

	// Only the author may edit, even though the event belongs to someone else.
	if _, err := comments.Edit(ctx, owner, comment.ID, "Hijacked"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := comments.Edit(ctx, nil, comment.ID, "Hijacked"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	if _, err := comments.Edit(ctx, author, "missing", "text"); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestCommentService_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	comments, events, _ := newCommentFixture(t)
	owner := testutil.NewTestUser(t, "u1", "Owner", "owner@example.com")
	author := testutil.NewTestUser(t, "u2", "Author", "author@example.com")

	event, err := events.Create(ctx, owner, validEventInput())
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	comment, err := comments.Add(ctx, author, event.ID, "Delete me later")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Owning the event does not grant rights over someone else's comment.
	if err := comments.Delete(ctx, owner, comment.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := comments.Delete(ctx, nil, comment.ID); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	if err := comments.Delete(ctx, author, comment.ID); err != nil {
		t.Fatalf("delete as author: %v", err)
	}

	listed, err := comments.List(ctx, event.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected no comments, got %d", len(listed))
	}

	if err := comments.Delete(ctx, author, comment.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound on repeat delete, got %v", err)
	}
}
