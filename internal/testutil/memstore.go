package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/townboard/townboard/internal/model"
	"github.com/townboard/townboard/internal/repository"
)

// MemStore is an in-memory stand-in for the Postgres repository and the
// Redis session store. It returns the same sentinel errors as the real
// repository so services behave identically in tests.
type MemStore struct {
	mu       sync.Mutex
	users    map[string]*model.User
	events   map[string]*model.Event
	comments map[string]*model.Comment
	sessions map[string]memSession
}

type memSession struct {
	userID    string
	expiresAt time.Time
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:    make(map[string]*model.User),
		events:   make(map[string]*model.Event),
		comments: make(map[string]*model.Comment),
		sessions: make(map[string]memSession),
	}
}

// ----- users -----

// CreateUser stores a user, enforcing case-insensitive email uniqueness.
func (m *MemStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrEmailExists
		}
	}

	clone := *user
	m.users[user.ID] = &clone
	return nil
}

// GetUserByID returns the user with the given id.
func (m *MemStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// GetUserByEmail returns the user matching the email, case-insensitively.
func (m *MemStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// ----- events -----

// CreateEvent stores an event.
func (m *MemStore) CreateEvent(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *event
	m.events[event.ID] = &clone
	return nil
}

// GetEvent returns the event with the given id.
func (m *MemStore) GetEvent(_ context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event, ok := m.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	clone := *event
	return &clone, nil
}

// ListEvents returns all events ordered by (date, time, id), the same
// stable order the SQL listing uses.
func (m *MemStore) ListEvents(_ context.Context) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]*model.Event, 0, len(m.events))
	for _, event := range m.events {
		clone := *event
		events = append(events, &clone)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// UpdateEvent replaces an event's mutable fields.
func (m *MemStore) UpdateEvent(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.events[event.ID]
	if !ok {
		return repository.ErrEventNotFound
	}

	clone := *event
	clone.CreatorID = existing.CreatorID
	m.events[event.ID] = &clone
	return nil
}

// DeleteEventCascade removes an event and all of its comments atomically
// with respect to other MemStore calls.
func (m *MemStore) DeleteEventCascade(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[id]; !ok {
		return repository.ErrEventNotFound
	}

	delete(m.events, id)
	for commentID, comment := range m.comments {
		if comment.EventID == id {
			delete(m.comments, commentID)
		}
	}
	return nil
}

// EventExists checks if an event exists.
func (m *MemStore) EventExists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.events[id]
	return ok, nil
}

// ----- comments -----

// CreateComment stores a comment.
func (m *MemStore) CreateComment(_ context.Context, comment *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *comment
	m.comments[comment.ID] = &clone
	return nil
}

// GetComment returns the comment with the given id.
func (m *MemStore) GetComment(_ context.Context, id string) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comment, ok := m.comments[id]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}
	clone := *comment
	return &clone, nil
}

// ListCommentsForEvent returns an event's comments in ascending creation
// order.
func (m *MemStore) ListCommentsForEvent(_ context.Context, eventID string) ([]*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comments := make([]*model.Comment, 0)
	for _, comment := range m.comments {
		if comment.EventID == eventID {
			clone := *comment
			comments = append(comments, &clone)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

// UpdateCommentText replaces a comment's text.
func (m *MemStore) UpdateCommentText(_ context.Context, id, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	comment, ok := m.comments[id]
	if !ok {
		return repository.ErrCommentNotFound
	}
	comment.Text = text
	return nil
}

// DeleteComment removes a comment.
func (m *MemStore) DeleteComment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}

// ----- sessions -----

// CreateSession binds a token to a user with the given time-to-live.
func (m *MemStore) CreateSession(_ context.Context, token, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[token] = memSession{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// ResolveSession returns the user ID bound to the token, or "" when the
// token is unknown or expired.
func (m *MemStore) ResolveSession(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok || time.Now().After(session.expiresAt) {
		return "", nil
	}
	return session.userID, nil
}

// DestroySession removes the session bound to the token.
func (m *MemStore) DestroySession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

// CommentCount reports how many comments are stored, across all events.
func (m *MemStore) CommentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.comments)
}

