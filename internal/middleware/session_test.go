package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/townboard/townboard/internal/auth"
	"github.com/townboard/townboard/internal/model"
)

type fakeSessions struct {
	tokens map[string]string
	err    error
}

func (f *fakeSessions) ResolveSession(_ context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.tokens[token], nil
}

type fakeUsers struct {
	users map[string]*model.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func actorEcho(t *testing.T, gotActor **model.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotActor = auth.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSession(t *testing.T) {
	token := strings.Repeat("ab", 32)
	user := &model.User{ID: "u1", Name: "John", Email: "john@example.com"}

	sessions := &fakeSessions{tokens: map[string]string{token: "u1"}}
	users := &fakeUsers{users: map[string]*model.User{"u1": user}}

	mw := Session(SessionConfig{
		Logger:   discardLogger(),
		Sessions: sessions,
		Users:    users,
	})

	tests := []struct {
		name      string
		cookie    *http.Cookie
		wantActor bool
	}{
		{
			name:      "valid session resolves actor",
			cookie:    &http.Cookie{Name: SessionCookieName, Value: token},
			wantActor: true,
		},
		{
			name:      "no cookie is anonymous",
			cookie:    nil,
			wantActor: false,
		},
		{
			name:      "unknown token is anonymous",
			cookie:    &http.Cookie{Name: SessionCookieName, Value: strings.Repeat("cd", 32)},
			wantActor: false,
		},
		{
			name:      "malformed token is anonymous",
			cookie:    &http.Cookie{Name: SessionCookieName, Value: "not-a-token"},
			wantActor: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotActor *model.User
			handler := mw(actorEcho(t, &gotActor))

			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("unexpected status %d", rec.Code)
			}
			if tt.wantActor && (gotActor == nil || gotActor.ID != "u1") {
				t.Fatalf("expected actor u1, got %v", gotActor)
			}
			if !tt.wantActor && gotActor != nil {
				t.Fatalf("expected anonymous, got %v", gotActor)
			}
		})
	}
}

func TestSession_StoreErrorIsAnonymous(t *testing.T) {
	token := strings.Repeat("ab", 32)

	mw := Session(SessionConfig{
		Logger:   discardLogger(),
		Sessions: &fakeSessions{err: errors.New("redis down")},
		Users:    &fakeUsers{},
	})

	var gotActor *model.User
	handler := mw(actorEcho(t, &gotActor))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// A broken session store must not take down reads.
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if gotActor != nil {
		t.Fatalf("expected anonymous, got %v", gotActor)
	}
}

func TestSession_DanglingUserIsAnonymous(t *testing.T) {
	token := strings.Repeat("ab", 32)

	mw := Session(SessionConfig{
		Logger:   discardLogger(),
		Sessions: &fakeSessions{tokens: map[string]string{token: "gone"}},
		Users:    &fakeUsers{users: map[string]*model.User{}},
	})

	var gotActor *model.User
	handler := mw(actorEcho(t, &gotActor))

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if gotActor != nil {
		t.Fatalf("expected anonymous, got %v", gotActor)
	}
}
