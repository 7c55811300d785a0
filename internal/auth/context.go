package auth

import (
	"context"

	"github.com/townboard/townboard/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// actorContextKey is the context key for the resolved request actor.
const actorContextKey contextKey = "actor"

// ContextWithActor attaches the authenticated user to the context.
// Passing nil is a no-op so anonymous requests keep a clean context.
func ContextWithActor(ctx context.Context, actor *model.User) context.Context {
	if actor == nil {
		return ctx
	}
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext retrieves the authenticated user from the context.
// Returns nil for anonymous requests.
func ActorFromContext(ctx context.Context) *model.User {
	actor, ok := ctx.Value(actorContextKey).(*model.User)
	if !ok {
		return nil
	}
	return actor
}
