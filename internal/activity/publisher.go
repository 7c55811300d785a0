// Package activity captures board actions onto a Redis stream and
// persists them as the town activity feed.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/townboard/townboard/internal/metrics"
)

const (
	// StreamKey is the Redis stream for activity entries.
	StreamKey = "stream:activity"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:activity:dlq"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// Entry kinds recorded on the feed.
const (
	KindEventCreated = "event_created"
	KindEventUpdated = "event_updated"
	KindEventDeleted = "event_deleted"
	KindCommentAdded = "comment_added"
)

// EntryPayload is the compressed entry format for the Redis stream.
type EntryPayload struct {
	Kind       string `json:"k"`            // entry kind
	ActorID    string `json:"aid"`          // actor user id
	ActorName  string `json:"an,omitempty"` // actor display name
	SubjectID  string `json:"sid"`          // event or comment id
	Title      string `json:"ti,omitempty"` // event title (truncated)
	OccurredAt int64  `json:"t"`            // Unix milliseconds
}

// Publisher enqueues activity entries to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new activity entry publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "activity.publisher"),
		metrics: recorder,
	}
}

// Publish adds an activity entry to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, entry EntryPayload) (string, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("marshal entry: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true, // ~MAXLEN for performance
		ID:     "*",  // Auto-generate ID
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()

	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned (fire-and-forget).
func (p *Publisher) PublishAsync(entry EntryPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, entry)
		if err != nil {
			p.logger.Warn("failed to publish activity entry",
				"kind", entry.Kind,
				"subject_id", entry.SubjectID,
				"error", err,
			)
			p.metrics.IncActivityPublished("dropped")
			return
		}

		p.logger.Debug("activity entry published",
			"kind", entry.Kind,
			"stream_id", streamID,
		)
		p.metrics.IncActivityPublished("success")
	}()
}

// TruncateTitle truncates an event title to the feed's cap.
func TruncateTitle(title string) string {
	if len(title) > maxTitleLength {
		return title[:maxTitleLength]
	}
	return title
}
