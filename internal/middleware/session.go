package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/townboard/townboard/internal/auth"
	"github.com/townboard/townboard/internal/model"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "townboard_session"

// SessionResolver maps a session token to the user ID it was issued for.
// An unknown or expired token resolves to "" without an error.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (string, error)
}

// ActorLoader loads the user behind a resolved session.
type ActorLoader interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger   *slog.Logger
	Sessions SessionResolver
	Users    ActorLoader
}

// Session returns a middleware that resolves the session cookie to an
// actor and injects it into the request context. Requests without a valid
// session proceed as anonymous; rejecting them is the handlers' call.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || !auth.ValidTokenFormat(cookie.Value) {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := cfg.Sessions.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				cfg.Logger.Error("session lookup failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := cfg.Users.GetByID(r.Context(), userID)
			if err != nil {
				cfg.Logger.Error("actor lookup failed",
					slog.String("error", err.Error()),
					slog.String("user_id", userID),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}
			if actor == nil {
				// Session outlived the account. Treat as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
