package model

import "time"

// Activity is a single entry on the town activity feed. StreamID is the
// Redis stream entry id of the message that produced it and doubles as
// the idempotency key for inserts.
type Activity struct {
	ID         string    `json:"id"`
	StreamID   string    `json:"stream_id"`
	Kind       string    `json:"kind"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	SubjectID  string    `json:"subject_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}
