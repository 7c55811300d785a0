// Package activity captures board actions onto a Redis stream and
// persists them as the town activity feed.
package activity

import "fmt"

const (
	maxTitleLength     = 200
	maxActorNameLength = 100
)

// ValidateEntryPayload validates activity entry payload fields.
func ValidateEntryPayload(entry EntryPayload) error {
	switch entry.Kind {
	case KindEventCreated, KindEventUpdated, KindEventDeleted, KindCommentAdded:
	default:
		return fmt.Errorf("unknown kind %q", entry.Kind)
	}
	if entry.ActorID == "" {
		return fmt.Errorf("actor_id is required")
	}
	if entry.SubjectID == "" {
		return fmt.Errorf("subject_id is required")
	}
	if entry.OccurredAt <= 0 {
		return fmt.Errorf("occurred_at must be set")
	}
	if len(entry.Title) > maxTitleLength {
		return fmt.Errorf("title too long")
	}
	if len(entry.ActorName) > maxActorNameLength {
		return fmt.Errorf("actor_name too long")
	}
	return nil
}
