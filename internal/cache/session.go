package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// sessionPrefix is the Redis key prefix for session records.
const sessionPrefix = "session:"

// sessionRecord is the session payload stored in Redis. The TTL on the key
// is the expiry, so an existing record is always live.
type sessionRecord struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSession binds a token to a user with the given time-to-live.
func (c *Cache) CreateSession(ctx context.Context, token, userID string, ttl time.Duration) error {
	record := sessionRecord{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := c.client.Set(ctx, sessionPrefix+token, data, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// ResolveSession returns the user ID bound to the token, or "" when the
// token is unknown or expired. Absence of a session is not an error; the
// caller treats it as an anonymous request.
func (c *Cache) ResolveSession(ctx context.Context, token string) (string, error) {
	data, err := c.client.Get(ctx, sessionPrefix+token).Bytes()
	if err != nil {
		// Expired and unknown tokens look identical here.
		return "", nil //nolint:nilerr
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		// Corrupted record - treat as anonymous
		return "", nil //nolint:nilerr
	}

	return record.UserID, nil
}

// DestroySession removes the session bound to the token. Destroying an
// unknown token is not an error.
func (c *Cache) DestroySession(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
